package model

import (
	"github.com/goliatone/go-reportforms/internal/model"
	"github.com/goliatone/go-reportforms/pkg/schema"
)

// Builder converts a template into the form model of its kind.
type Builder interface {
	Build(kind schema.Kind, template any) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler func(string) string
	step    string
}

// WithLabeler overrides the fallback label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithStep sets the input increment of numeric fields.
func WithStep(step string) BuilderOption {
	return func(opts *builderOptions) {
		opts.step = step
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	return model.New(model.Options{Labeler: cfg.labeler, Step: cfg.step})
}
