package render

import (
	"strings"

	"github.com/goliatone/go-reportforms/pkg/model"
)

// FieldSubset restricts rendering to some sections or field paths. A field
// matches when either list names it; empty lists match everything.
type FieldSubset struct {
	Sections []string
	Fields   []string
}

// Empty reports whether the subset filters nothing.
func (s FieldSubset) Empty() bool {
	return len(s.Sections) == 0 && len(s.Fields) == 0
}

// ApplySubset removes fields that do not match subset and drops sections
// left without fields. When subset is empty or form is nil, the form is
// returned unchanged.
func ApplySubset(form *model.FormModel, subset FieldSubset) {
	if form == nil || subset.Empty() {
		return
	}
	sections := toSet(subset.Sections)
	fields := toSet(subset.Fields)

	filtered := make([]model.Field, 0, len(form.Fields))
	used := make(map[string]struct{})
	for _, field := range form.Fields {
		_, bySection := sections[field.Section]
		_, byName := fields[field.Name]
		if !bySection && !byName {
			continue
		}
		filtered = append(filtered, field)
		used[field.Section] = struct{}{}
	}
	form.Fields = filtered

	kept := make([]model.Section, 0, len(form.Sections))
	for _, section := range form.Sections {
		if _, ok := used[section.ID]; ok {
			kept = append(kept, section)
		}
	}
	form.Sections = kept
}

func toSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out[trimmed] = struct{}{}
		}
	}
	return out
}
