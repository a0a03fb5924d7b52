package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-reportforms/pkg/apispec"
	"github.com/goliatone/go-reportforms/pkg/schema"
)

// Section ids assigned before overlays run. Grouped kinds use their group
// name; the flat accounts-receivable settings share one section.
const (
	SectionText     = "text"
	SectionLayout   = "layout"
	SectionSettings = "settings"
)

// Builder converts a template value into the form model of its kind.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.Step != "" {
		opts.Step = options.Step
	}
	return &Builder{opts: opts}
}

// Build lists every editable leaf of kind with its current value taken from
// template. The template is normalized first, so partial or foreign values
// produce the same form as their normalized equivalent.
func (b *Builder) Build(kind schema.Kind, template any) (FormModel, error) {
	if err := validateInput(kind, template); err != nil {
		return FormModel{}, err
	}
	desc, _ := schema.Lookup(kind)

	normalized, err := schema.Renormalize(kind, template)
	if err != nil {
		return FormModel{}, fmt.Errorf("model builder: %w", err)
	}
	values, err := flatten(normalized)
	if err != nil {
		return FormModel{}, fmt.Errorf("model builder: encode %s: %w", kind, err)
	}
	defaults := map[string]any{}
	if def, derr := schema.Default(kind); derr == nil {
		defaults, _ = flatten(def)
	}

	leaves, err := schema.Fields(kind)
	if err != nil {
		return FormModel{}, fmt.Errorf("model builder: %w", err)
	}

	form := FormModel{
		Kind:     string(kind),
		Title:    desc.Name,
		Metadata: map[string]string{"storageKey": desc.StorageKey, "family": string(desc.Family)},
	}
	form.Endpoint, form.Method = endpointFor(desc)

	seen := map[string]bool{}
	for i, leaf := range leaves {
		section := leaf.Group
		if section == "" {
			section = SectionSettings
		}
		if !seen[section] {
			seen[section] = true
			form.Sections = append(form.Sections, Section{
				ID:    section,
				Title: b.opts.Labeler(section),
				Order: len(form.Sections),
			})
		}
		form.Fields = append(form.Fields, b.field(leaf, section, i, values, defaults))
	}
	return form, nil
}

func (b *Builder) field(leaf schema.Field, section string, order int, values, defaults map[string]any) Field {
	field := Field{
		Name:    leaf.Path,
		Type:    fieldType(leaf.Type),
		Group:   leaf.Group,
		Label:   b.opts.Labeler(strings.TrimPrefix(leaf.Path, leaf.Group+".")),
		Section: section,
		Order:   order,
		Value:   values[leaf.Path],
		Default: defaults[leaf.Path],
	}
	if field.Type == FieldTypeNumber {
		field.Step = b.opts.Step
	}
	if leaf.Range != nil {
		field.Validations = []ValidationRule{
			{Kind: ValidationRuleMin, Params: map[string]string{"value": formatBound(leaf.Range.Min)}},
			{Kind: ValidationRuleMax, Params: map[string]string{"value": formatBound(leaf.Range.Max)}},
		}
	}
	return field
}

func fieldType(t schema.FieldType) FieldType {
	switch t {
	case schema.FieldNumber:
		return FieldTypeNumber
	case schema.FieldBoolean:
		return FieldTypeBoolean
	default:
		return FieldTypeString
	}
}

func formatBound(v float64) string {
	s, _ := CanonicalizeValue(v)
	return s
}

// endpointFor names the backend write a saved form ends up in.
func endpointFor(desc schema.Descriptor) (string, string) {
	spec, err := apispec.Default()
	if err != nil {
		return "", ""
	}
	opID, params := apispec.OpPutKV, map[string]string{"key": desc.StorageKey}
	if desc.Kind.IsAccountsReceivable() {
		opID, params = apispec.OpPutDeviceSettings, nil
	}
	op, ok := spec.Operation(opID)
	if !ok {
		return "", ""
	}
	path, err := op.Expand(params)
	if err != nil {
		return "", ""
	}
	return path, op.Method
}

// flatten encodes value and indexes its leaves by dotted path.
func flatten(value any) (map[string]any, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	out := make(map[string]any)
	var walk func(prefix string, node map[string]any)
	walk = func(prefix string, node map[string]any) {
		for key, v := range node {
			path := key
			if prefix != "" {
				path = prefix + "." + key
			}
			if nested, ok := v.(map[string]any); ok {
				walk(path, nested)
				continue
			}
			out[path] = v
		}
	}
	walk("", root)
	return out, nil
}
