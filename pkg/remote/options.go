package remote

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-reportforms/pkg/apispec"
)

// Options configures a Client.
type Options struct {
	HTTPClient *http.Client
	Logger     *zap.Logger
	Spec       *apispec.Spec
	// ValidateResponses checks decoded JSON bodies against Spec.
	ValidateResponses bool
	// Now supplies "today" for the delivery note window.
	Now func() time.Time
	// Window is how far back the latest delivery note lookup searches.
	WindowYears int
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		HTTPClient:  &http.Client{Timeout: 15 * time.Second},
		Logger:      zap.NewNop(),
		Now:         time.Now,
		WindowYears: 5,
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
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.WindowYears <= 0 {
		opts.WindowYears = 5
	}
	return opts
}

func WithHTTPClient(client *http.Client) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.HTTPClient = client
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

func WithSpec(spec *apispec.Spec) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Spec = spec
	}
}

func WithResponseValidation(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ValidateResponses = enabled
	}
}

func WithClock(now func() time.Time) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Now = now
	}
}

func WithWindowYears(years int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.WindowYears = years
	}
}
