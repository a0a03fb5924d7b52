// Package reportforms is the quick-start surface of the report template
// editor: build an orchestrator, render a template kind to HTML, and reach
// the embedded renderer assets without importing the sub-packages.
package reportforms

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-reportforms/pkg/orchestrator"
	"github.com/goliatone/go-reportforms/pkg/render"
	"github.com/goliatone/go-reportforms/pkg/schema"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// FieldSubset aliases render.FieldSubset for callers rendering one group of
// fields.
type FieldSubset = render.FieldSubset

// Kind aliases schema.Kind.
type Kind = schema.Kind

func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders template (defaults when nil) of kind with the named
// renderer, "" meaning the vanilla HTML editor.
func GenerateHTML(ctx context.Context, kind Kind, template any, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Kind:     kind,
		Template: template,
		Renderer: rendererName,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// palette choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithPalette sets the palette id and variant used when a request names none.
func WithPalette(id, variant string) orchestrator.Option {
	return orchestrator.WithDefaultTheme(id, variant)
}
