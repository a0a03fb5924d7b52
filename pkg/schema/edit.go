package schema

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ErrUnknownField is returned when an edit names a path the kind does not
// declare.
var ErrUnknownField = errors.New("schema: unknown field")

// FieldType is the primitive type stored at a template path.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
)

// Field describes one editable leaf of a template.
type Field struct {
	// Path is the dotted JSON path, e.g. "text.labels.cash".
	Path  string    `json:"path"`
	Group string    `json:"group,omitempty"`
	Key   string    `json:"key"`
	Type  FieldType `json:"type"`
	Range *Range    `json:"range,omitempty"`
}

// Fields lists the editable leaves of kind in declaration order. The version
// tag is not editable and is omitted.
func Fields(kind Kind) ([]Field, error) {
	def, err := Default(kind)
	if err != nil {
		return nil, err
	}
	ranges := Ranges(kind)
	var out []Field
	walkFields(reflect.TypeOf(def), nil, func(path []string, typ FieldType) {
		f := Field{
			Path: strings.Join(path, "."),
			Key:  path[len(path)-1],
			Type: typ,
		}
		if len(path) > 1 {
			f.Group = path[0]
		}
		if r, ok := ranges[f.Path]; ok {
			f.Range = &r
		}
		out = append(out, f)
	})
	return out, nil
}

func walkFields(t reflect.Type, prefix []string, visit func([]string, FieldType)) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
		if name == "" || name == "-" || name == "version" {
			continue
		}
		path := append(append([]string(nil), prefix...), name)
		switch sf.Type.Kind() {
		case reflect.Struct:
			walkFields(sf.Type, path, visit)
		case reflect.String:
			visit(path, FieldString)
		case reflect.Float64, reflect.Int:
			visit(path, FieldNumber)
		case reflect.Bool:
			visit(path, FieldBoolean)
		}
	}
}

// FieldByPath finds the field declared at path.
func FieldByPath(kind Kind, path string) (Field, error) {
	fields, err := Fields(kind)
	if err != nil {
		return Field{}, err
	}
	for _, f := range fields {
		if f.Path == path {
			return f, nil
		}
	}
	return Field{}, fmt.Errorf("%w: %s %q", ErrUnknownField, kind, path)
}

// Apply returns a new template equal to current with path set to value and
// the result normalized. current is left untouched. String values aimed at
// boolean fields are parsed so CLI input behaves like a checkbox.
func Apply(kind Kind, current any, path string, value any) (any, error) {
	field, err := FieldByPath(kind, path)
	if err != nil {
		return nil, err
	}
	raw, err := toRaw(current)
	if err != nil {
		return nil, fmt.Errorf("schema: encode %s: %w", kind, err)
	}
	root, ok := objectOf(raw)
	if !ok {
		root = fields{}
	} else {
		root = cloneFields(root)
	}

	if s, isString := value.(string); isString && field.Type == FieldBoolean {
		parsed, perr := strconv.ParseBool(strings.TrimSpace(s))
		if perr != nil {
			return nil, fmt.Errorf("schema: %s expects a boolean: %w", path, perr)
		}
		value = parsed
	}

	setPath(root, strings.Split(path, "."), value)
	return Normalize(kind, map[string]any(root))
}

func setPath(target fields, segments []string, value any) {
	current := target
	for i, segment := range segments {
		if i == len(segments)-1 {
			current[segment] = value
			return
		}
		next, ok := objectOf(current[segment])
		if !ok {
			next = fields{}
		}
		current[segment] = map[string]any(next)
		current = next
	}
}

func cloneFields(src fields) fields {
	out := make(fields, len(src))
	for key, value := range src {
		if nested, ok := objectOf(value); ok {
			out[key] = map[string]any(cloneFields(nested))
			continue
		}
		out[key] = value
	}
	return out
}

// ParseValue converts text input, as typed on a command line or posted by
// an HTML form, into the value type of field. NaN and infinities are
// rejected for number fields.
func ParseValue(field Field, raw string) (any, error) {
	switch field.Type {
	case FieldBoolean:
		switch strings.TrimSpace(raw) {
		case "", "off":
			return false, nil
		case "on":
			return true, nil
		}
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("schema: %s expects a boolean: %w", field.Path, err)
		}
		return v, nil
	case FieldNumber:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("schema: %s expects a number: %w", field.Path, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("schema: %s expects a finite number, got %q", field.Path, raw)
		}
		return v, nil
	default:
		return raw, nil
	}
}
