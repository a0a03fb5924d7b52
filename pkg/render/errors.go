package render

import (
	"strings"

	"github.com/goliatone/go-reportforms/pkg/model"
)

// ErrorMapping splits an error payload into field-level and form-level
// messages keyed by dotted field paths.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MapErrorPayload normalises error keys (dotted paths, JSON pointers such as
// "/layout/titleFontPx", or a "body" wrapper) onto the fields of form.
// Unknown paths become form-level errors so messages are not lost.
func MapErrorPayload(form model.FormModel, payload map[string][]string) ErrorMapping {
	var mapping ErrorMapping
	known := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		known[field.Name] = struct{}{}
	}

	for raw, messages := range payload {
		clean := normalizeMessages(messages)
		if len(clean) == 0 {
			continue
		}
		path := errorPath(raw)
		if _, ok := known[path]; !ok {
			mapping.Form = append(mapping.Form, clean...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		mapping.Fields[path] = append(mapping.Fields[path], clean...)
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func errorPath(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimLeft(clean, "#$/.")
	clean = strings.ReplaceAll(clean, "/", ".")
	clean = strings.TrimPrefix(clean, "body.")
	return strings.Trim(clean, ".")
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
