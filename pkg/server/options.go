package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-reportforms/pkg/orchestrator"
	"github.com/goliatone/go-reportforms/pkg/uischema"
)

// GuardFunc rejects a request before it reaches a handler. Returning an
// HTTPError picks the status code.
type GuardFunc func(r *http.Request) error

type Options struct {
	// BasePath is the public prefix the routes are reachable under. Links
	// in the page are built from it.
	BasePath     string
	ThemeName    string
	ThemeVariant string
	Page         uischema.PageConfig
	Orchestrator *orchestrator.Orchestrator
	Logger       *zap.Logger
	Guard        GuardFunc
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		BasePath: "/",
		Logger:   zap.NewNop(),
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
	opts.BasePath = mountPath(opts.BasePath)
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithBasePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BasePath = path
	}
}

// WithTheme picks the palette the page is rendered with.
func WithTheme(name, variant string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ThemeName = name
		o.ThemeVariant = variant
	}
}

// WithPageConfig overrides the page chrome loaded from the embedded
// overlays.
func WithPageConfig(page uischema.PageConfig) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Page = page
	}
}

func WithOrchestrator(orch *orchestrator.Orchestrator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Orchestrator = orch
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}
