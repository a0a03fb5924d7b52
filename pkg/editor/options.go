package editor

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-reportforms/pkg/preview"
	"github.com/goliatone/go-reportforms/pkg/remote"
	"github.com/goliatone/go-reportforms/pkg/schema"
	"github.com/goliatone/go-reportforms/pkg/store"
)

// Options configures an Editor.
type Options struct {
	Store  store.Store
	Logger *zap.Logger
	// Remotes holds one client per backend family. A missing family behaves
	// like an unconfigured base.
	Remotes map[schema.Family]*remote.Client
	Sample  preview.Sample
	// AutoRefresh fetches the latest accounts-receivable documents when an
	// accounts-receivable kind becomes selected.
	AutoRefresh bool
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		Logger:      zap.NewNop(),
		Remotes:     map[schema.Family]*remote.Client{},
		Sample:      preview.DefaultSample(),
		AutoRefresh: true,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Remotes == nil {
		opts.Remotes = map[schema.Family]*remote.Client{}
	}
	return opts
}

func WithStore(s store.Store) OptionFn {
	return func(o *Options) {
		if s != nil {
			o.Store = s
		}
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithRemote binds client to family.
func WithRemote(family schema.Family, client *remote.Client) OptionFn {
	return func(o *Options) {
		if o.Remotes == nil {
			o.Remotes = map[schema.Family]*remote.Client{}
		}
		o.Remotes[family] = client
	}
}

// WithRemotes binds every client in clients.
func WithRemotes(clients map[schema.Family]*remote.Client) OptionFn {
	return func(o *Options) {
		for family, client := range clients {
			WithRemote(family, client)(o)
		}
	}
}

func WithSample(sample preview.Sample) OptionFn {
	return func(o *Options) {
		o.Sample = sample
	}
}

func WithAutoRefresh(enabled bool) OptionFn {
	return func(o *Options) {
		o.AutoRefresh = enabled
	}
}
