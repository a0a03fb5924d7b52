package remote

import (
	"context"
	"fmt"

	"github.com/goliatone/go-reportforms/pkg/schema"
)

// FetchTemplate reads the shared copy of kind. Accounts-receivable kinds
// live in the device settings document, every other kind in the KV store.
// found is false when nothing usable is stored; raw is not normalized.
func (c *Client) FetchTemplate(ctx context.Context, kind schema.Kind) (raw any, found bool, err error) {
	desc, ok := schema.Lookup(kind)
	if !ok {
		return nil, false, fmt.Errorf("remote: %w: %q", schema.ErrUnknownKind, kind)
	}
	if desc.Family == schema.FamilyAccountsReceivable {
		return c.GetDeviceSetting(ctx, desc.StorageKey)
	}
	return c.GetKV(ctx, desc.StorageKey)
}

// PutTemplate replaces the shared copy of kind with template.
func (c *Client) PutTemplate(ctx context.Context, kind schema.Kind, template any) error {
	desc, ok := schema.Lookup(kind)
	if !ok {
		return fmt.Errorf("remote: %w: %q", schema.ErrUnknownKind, kind)
	}
	if desc.Family == schema.FamilyAccountsReceivable {
		return c.PutDeviceSetting(ctx, desc.StorageKey, template)
	}
	return c.PutKV(ctx, desc.StorageKey, template)
}
