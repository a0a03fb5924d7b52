package uischema

import "strings"

// Store keeps the parsed overlays. It is safe for concurrent readers when
// treated as immutable after construction.
type Store struct {
	page  PageConfig
	forms map[string]Form
}

// PageConfig holds the editor chrome strings shared by every kind.
type PageConfig struct {
	Title        string         `json:"title" yaml:"title"`
	Subtitle     string         `json:"subtitle" yaml:"subtitle"`
	HomeHref     string         `json:"homeHref" yaml:"homeHref"`
	HomeLabel    string         `json:"homeLabel" yaml:"homeLabel"`
	ListTitle    string         `json:"listTitle" yaml:"listTitle"`
	PreviewTitle string         `json:"previewTitle" yaml:"previewTitle"`
	Actions      []ActionConfig `json:"actions" yaml:"actions"`
}

// Action returns the action of kind, if declared.
func (p PageConfig) Action(kind string) (ActionConfig, bool) {
	for _, a := range p.Actions {
		if a.Kind == kind {
			return a, true
		}
	}
	return ActionConfig{}, false
}

// ActionConfig is one header button.
type ActionConfig struct {
	Kind  string `json:"kind" yaml:"kind"`
	Label string `json:"label" yaml:"label"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Form describes the overrides for one template kind.
type Form struct {
	ID       string
	Source   string
	Subtitle string
	Sections []SectionConfig
	Fields   map[string]FieldConfig
}

// SectionConfig names a group of fields in the edit panel.
type SectionConfig struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Order       *int   `json:"order,omitempty" yaml:"order,omitempty"`
}

// FieldConfig customises how a field is labelled and rendered.
type FieldConfig struct {
	Section     string            `json:"section,omitempty" yaml:"section,omitempty"`
	Order       *int              `json:"order,omitempty" yaml:"order,omitempty"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	HelpText    string            `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Widget      string            `json:"widget,omitempty" yaml:"widget,omitempty"`
	Step        string            `json:"step,omitempty" yaml:"step,omitempty"`
	Rows        int               `json:"rows,omitempty" yaml:"rows,omitempty"`
	CSSClass    string            `json:"cssClass,omitempty" yaml:"cssClass,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`
}

// NormalizeFieldPath trims a field key and collapses stray dots so
// "text..labels.cash." and "text.labels.cash" address the same field.
func NormalizeFieldPath(path string) string {
	trimmed := strings.Trim(strings.TrimSpace(path), ".")
	for strings.Contains(trimmed, "..") {
		trimmed = strings.ReplaceAll(trimmed, "..", ".")
	}
	return trimmed
}
