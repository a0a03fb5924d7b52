// Package store persists templates locally under their fixed storage keys.
// Values are the JSON documents the editor writes after every change; readers
// always pass them back through the schema normalizer.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-reportforms/pkg/schema"
)

// ErrNotFound reports that no value is stored under a key.
var ErrNotFound = errors.New("store: key not found")

// Store is a synchronous local key/value store.
type Store interface {
	// Load returns the raw bytes stored under key or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the value stored under key.
	Save(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists the stored keys in ascending order.
	Keys(ctx context.Context) ([]string, error)
	Close() error
}

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Open builds the store selected by driver. path is the directory for the
// file driver and the database file for the sqlite driver.
func Open(ctx context.Context, driver, path string) (Store, error) {
	switch driver {
	case "", DriverFile:
		return NewFileStore(path)
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite:
		return OpenSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}
}

// LoadTemplate reads the template stored for kind. Missing, empty or
// unreadable values yield the default; only lookup failures other than
// ErrNotFound are returned.
func LoadTemplate(ctx context.Context, s Store, kind schema.Kind) (any, bool, error) {
	desc, ok := schema.Lookup(kind)
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", schema.ErrUnknownKind, kind)
	}
	data, err := s.Load(ctx, desc.StorageKey)
	if errors.Is(err, ErrNotFound) {
		def, derr := schema.Default(kind)
		return def, false, derr
	}
	if err != nil {
		return nil, false, fmt.Errorf("store: load %s: %w", desc.StorageKey, err)
	}
	tmpl, err := schema.Decode(kind, data)
	return tmpl, err == nil, err
}

// SaveTemplate writes template as JSON under the storage key of kind.
func SaveTemplate(ctx context.Context, s Store, kind schema.Kind, template any) error {
	desc, ok := schema.Lookup(kind)
	if !ok {
		return fmt.Errorf("%w: %q", schema.ErrUnknownKind, kind)
	}
	data, err := json.Marshal(template)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", desc.StorageKey, err)
	}
	if err := s.Save(ctx, desc.StorageKey, data); err != nil {
		return fmt.Errorf("store: save %s: %w", desc.StorageKey, err)
	}
	return nil
}
