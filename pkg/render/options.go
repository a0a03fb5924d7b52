package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-reportforms/pkg/preview"
)

// RenderOptions describe per-request data that renderers can use to
// customise their output without mutating the form model pipeline.
type RenderOptions struct {
	// Values overrides field values by dotted path, e.g. an edit the form
	// should echo back before it is persisted.
	Values map[string]any
	// Errors carries edit failures keyed by field path. Messages under the
	// empty key are form level.
	Errors map[string][]string
	// HiddenFields are emitted as hidden inputs inside the form.
	HiddenFields map[string]string
	// Theme is the resolved palette; nil renders without CSS variables.
	Theme *theme.RendererConfig
	// Page carries the editor chrome around the form. Renderers that only
	// emit the form ignore it.
	Page *Page
	// Subset limits the rendered fields.
	Subset FieldSubset
}

// Page is the editor chrome: header, template list, connection helper,
// status line and preview.
type Page struct {
	Title        string
	Subtitle     string
	HomeHref     string
	HomeLabel    string
	ListTitle    string
	PreviewTitle string
	Actions      []Action
	Kinds        []KindEntry
	Status       string
	Busy         bool
	Helper       Helper
	Preview      *preview.Preview
	// BasePath prefixes the API and asset routes the page talks to.
	BasePath string
}

// Action is a header button.
type Action struct {
	Kind  string
	Label string
	Type  string
}

// KindEntry is one row of the template list.
type KindEntry struct {
	ID     string
	Name   string
	Family string
	Active bool
}

// Helper describes the backend the selected template is saved to.
type Helper struct {
	Title string
	Value string
	Note  string
}
