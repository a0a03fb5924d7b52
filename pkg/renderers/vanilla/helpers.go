package vanilla

import "strings"

// controlID derives the element id of a field path: "layout.titleFontPx"
// becomes "rf-layout-titleFontPx".
func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "rf-" + strings.ReplaceAll(trimmed, ".", "-")
}

// sanitizeClassList drops tokens in the renderer's own rf- namespace so
// overlays cannot collide with generated classes.
func sanitizeClassList(value string) string {
	tokens := strings.Fields(value)
	keep := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if strings.HasPrefix(token, "rf-") {
			continue
		}
		keep = append(keep, token)
	}
	return strings.Join(keep, " ")
}

func joinPath(base, suffix string) string {
	base = strings.TrimRight(base, "/")
	if suffix == "" {
		return base
	}
	if !strings.HasPrefix(suffix, "/") {
		suffix = "/" + suffix
	}
	return base + suffix
}
