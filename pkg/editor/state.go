package editor

import (
	"fmt"

	"github.com/goliatone/go-reportforms/pkg/remote"
	"github.com/goliatone/go-reportforms/pkg/schema"
)

// State is one editing session. It is a value: every With* method returns
// an updated copy and leaves the receiver untouched. Persisting the result
// is the caller's job.
type State struct {
	Selected schema.Kind
	// Templates holds the current template of every kind.
	Templates map[schema.Kind]any
	// Status is the last action message; empty means idle.
	Status string
	Busy   bool
	// PreviewNonce increments after each successful settings save so the
	// embedded documents are fetched again.
	PreviewNonce int
	Documents    Documents
}

// Documents is the state of the latest invoice and delivery note lookup.
type Documents struct {
	Loading      bool
	Error        string
	Invoice      *remote.Invoice
	DeliveryNote *remote.DeliveryNote
}

// NewState returns a session on the default kind with every template at
// its default.
func NewState() State {
	s := State{Selected: schema.DefaultKind(), Templates: make(map[schema.Kind]any)}
	for _, desc := range schema.Kinds() {
		def, _ := schema.Default(desc.Kind)
		s.Templates[desc.Kind] = def
	}
	return s
}

func (s State) clone() State {
	next := s
	next.Templates = make(map[schema.Kind]any, len(s.Templates))
	for kind, tpl := range s.Templates {
		next.Templates[kind] = tpl
	}
	return next
}

// Active returns the template of the selected kind.
func (s State) Active() any { return s.Templates[s.Selected] }

// Descriptor describes the selected kind.
func (s State) Descriptor() (schema.Descriptor, bool) { return schema.Lookup(s.Selected) }

// Title is the heading of the edit panel.
func (s State) Title() string {
	if desc, ok := s.Descriptor(); ok {
		return desc.Name
	}
	return fallbackHeader
}

// StatusText is Status, or the idle hint when there is none.
func (s State) StatusText() string {
	if s.Status == "" {
		return MsgIdle
	}
	return s.Status
}

func (s State) WithSelected(kind schema.Kind) (State, error) {
	if _, ok := schema.Lookup(kind); !ok {
		return s, fmt.Errorf("editor: %w: %q", schema.ErrUnknownKind, kind)
	}
	next := s.clone()
	next.Selected = kind
	return next, nil
}

// WithTemplate stores raw for kind after normalizing it.
func (s State) WithTemplate(kind schema.Kind, raw any) (State, error) {
	tpl, err := schema.Renormalize(kind, raw)
	if err != nil {
		return s, fmt.Errorf("editor: %w", err)
	}
	next := s.clone()
	next.Templates[kind] = tpl
	return next, nil
}

// WithEdit sets one field of the selected template. path is a field path as
// listed by schema.Fields, e.g. "layout.titleFontPx".
func (s State) WithEdit(path string, value any) (State, error) {
	tpl, err := schema.Apply(s.Selected, s.Active(), path, value)
	if err != nil {
		return s, fmt.Errorf("editor: %w", err)
	}
	next := s.clone()
	next.Templates[s.Selected] = tpl
	return next, nil
}

// WithDefaults resets kind to its default template.
func (s State) WithDefaults(kind schema.Kind) (State, error) {
	def, err := schema.Default(kind)
	if err != nil {
		return s, fmt.Errorf("editor: %w", err)
	}
	next := s.clone()
	next.Templates[kind] = def
	return next, nil
}

func (s State) WithStatus(msg string) State {
	next := s.clone()
	next.Status = msg
	return next
}

func (s State) withBusy(busy bool) State {
	next := s.clone()
	next.Busy = busy
	return next
}

func (s State) withDocuments(docs Documents) State {
	next := s.clone()
	next.Documents = docs
	return next
}
