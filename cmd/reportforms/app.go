package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-reportforms/pkg/config"
	"github.com/goliatone/go-reportforms/pkg/editor"
	"github.com/goliatone/go-reportforms/pkg/remote"
	"github.com/goliatone/go-reportforms/pkg/schema"
	"github.com/goliatone/go-reportforms/pkg/store"
)

// app holds what the commands share: configuration, logger and a lazily
// opened editing session.
type app struct {
	cfg config.Config
	env env
	log *zap.Logger

	store  store.Store
	editor *editor.Editor
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("close store", zap.Error(err))
		}
	}
}

// session opens the local store and restores every template from it.
func (a *app) session(ctx context.Context, fns ...editor.OptionFn) (*editor.Editor, error) {
	if a.editor != nil {
		return a.editor, nil
	}
	s, err := store.Open(ctx, a.cfg.Store.Driver, a.cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	a.store = s

	clients, err := a.clients()
	if err != nil {
		return nil, err
	}
	base := []editor.OptionFn{
		editor.WithStore(s),
		editor.WithLogger(a.log),
		editor.WithRemotes(clients),
	}
	ed, err := editor.New(ctx, append(base, fns...)...)
	if err != nil {
		return nil, err
	}
	a.editor = ed
	return ed, nil
}

// clients builds one remote client per family. Relative bases are left
// unconfigured by the editor, so say which families that affects.
func (a *app) clients() (map[schema.Family]*remote.Client, error) {
	for _, desc := range schema.Kinds() {
		if base := a.cfg.BaseForKind(desc.Kind); strings.HasPrefix(base, "/") {
			a.log.Warn("relative api base needs an origin, remote calls disabled",
				zap.String("kind", desc.Kind.String()), zap.String("base", base))
		}
	}
	return editor.NewClients(a.cfg, remote.WithLogger(a.log))
}

// selected opens the session with kind selected.
func (a *app) selected(ctx context.Context, raw string) (*editor.Editor, schema.Kind, error) {
	kind, err := schema.ParseKind(raw)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", errUsage, err)
	}
	ed, err := a.session(ctx)
	if err != nil {
		return nil, "", err
	}
	if err := ed.Select(ctx, kind); err != nil {
		return nil, "", err
	}
	return ed, kind, nil
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.env.stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func (a *app) println(args ...any) {
	fmt.Fprintln(a.env.stdout, args...)
}
