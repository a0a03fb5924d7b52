package derive

import (
	"sort"
	"strings"
)

// Substitute replaces every "{name}" token in tmpl with values[name].
// Replacement is a single pass, so a value that itself contains a token is
// emitted verbatim. Unknown tokens are left in place.
func Substitute(tmpl string, values map[string]string) string {
	if len(values) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names)*2)
	for _, name := range names {
		pairs = append(pairs, "{"+name+"}", values[name])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
