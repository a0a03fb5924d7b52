package model

// FieldType is the input kind a template leaf is edited with.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

const (
	ValidationRuleMin = "min"
	ValidationRuleMax = "max"
)

// ValidationRule is a single constraint on a field. Numeric bounds keep their
// threshold in Params["value"] as a string so JSON snapshots stay stable.
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Field is one editable leaf of a template.
type Field struct {
	// Name is the dotted template path, e.g. "layout.titleFontPx".
	Name        string           `json:"name"`
	Type        FieldType        `json:"type"`
	Group       string           `json:"group,omitempty"`
	Label       string           `json:"label,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
	Description string           `json:"description,omitempty"`
	Section     string           `json:"section,omitempty"`
	Order       int              `json:"order,omitempty"`
	Step        string           `json:"step,omitempty"`
	Value       any              `json:"value"`
	Default     any              `json:"default,omitempty"`
	Validations []ValidationRule `json:"validations,omitempty"`
	// UIHints carries renderer directives such as widget, rows or cssClass.
	UIHints  map[string]string `json:"uiHints,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Section groups fields under a heading in the edit panel.
type Section struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order,omitempty"`
}

// FormModel is the edit form of one template kind.
type FormModel struct {
	Kind     string            `json:"kind"`
	Title    string            `json:"title"`
	Endpoint string            `json:"endpoint,omitempty"`
	Method   string            `json:"method,omitempty"`
	Sections []Section         `json:"sections,omitempty"`
	Fields   []Field           `json:"fields"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// FieldsIn returns the fields assigned to section in form order.
func (f FormModel) FieldsIn(section string) []Field {
	var out []Field
	for _, field := range f.Fields {
		if field.Section == section {
			out = append(out, field)
		}
	}
	return out
}

// Field looks up a field by path.
func (f FormModel) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Bound returns the numeric bound of kind (min or max) when present.
func (f Field) Bound(kind string) (string, bool) {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			value, ok := rule.Params["value"]
			return value, ok
		}
	}
	return "", false
}
