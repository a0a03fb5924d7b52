package tui

import (
	"fmt"
	"strings"
)

// State tracks collected answers and known errors keyed by dotted field
// paths. Values are stored nested, so "layout.titleFontPx" ends up under
// values["layout"]["titleFontPx"].
type State struct {
	values map[string]any
	errors map[string][]string
}

// NewState seeds the state with prefilled values and errors. Prefill keys
// are dotted paths.
func NewState(prefill map[string]any, errs map[string][]string) *State {
	s := &State{values: make(map[string]any), errors: make(map[string][]string, len(errs))}
	for path, value := range prefill {
		_ = s.SetValue(path, value)
	}
	for path, messages := range errs {
		s.errors[path] = append([]string(nil), messages...)
	}
	return s
}

// Values returns the collected values (mutable).
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// ErrorsFor returns the errors attached to a dotted path.
func (s *State) ErrorsFor(path string) []string {
	if s == nil {
		return nil
	}
	return s.errors[path]
}

// GetValue resolves a dotted path.
func (s *State) GetValue(path string) (any, bool) {
	if s == nil || path == "" {
		return nil, false
	}
	var current any = s.values
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = node[segment]; !ok {
			return nil, false
		}
	}
	return current, true
}

// SetValue writes value at a dotted path, creating intermediate groups.
func (s *State) SetValue(path string, value any) error {
	if s == nil {
		return fmt.Errorf("tui: state is nil")
	}
	segments := strings.Split(path, ".")
	node := s.values
	for i, segment := range segments {
		if segment == "" {
			return fmt.Errorf("tui: empty segment in path %q", path)
		}
		if i == len(segments)-1 {
			node[segment] = value
			return nil
		}
		child, ok := node[segment].(map[string]any)
		if !ok {
			if _, exists := node[segment]; exists {
				return fmt.Errorf("tui: %q is not a group in path %q", segment, path)
			}
			child = make(map[string]any)
			node[segment] = child
		}
		node = child
	}
	return nil
}
