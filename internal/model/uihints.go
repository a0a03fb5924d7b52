package model

import (
	"sort"
	"strconv"
)

var (
	uiHintKeys = []string{
		"cssClass",
		"helpText",
		"hideLabel",
		"inputMode",
		"inputType",
		"placeholder",
		"rows",
		"unit",
		"widget",
	}

	uiHintKeySet = func(keys []string) map[string]struct{} {
		result := make(map[string]struct{}, len(keys))
		for _, key := range keys {
			result[key] = struct{}{}
		}
		return result
	}(uiHintKeys)
)

// AllowedUIHintKeys returns a sorted copy of the recognised UI hint keys.
func AllowedUIHintKeys() []string {
	keys := append([]string(nil), uiHintKeys...)
	sort.Strings(keys)
	return keys
}

// IsAllowedUIHintKey reports whether key participates in the UI hint
// contract.
func IsAllowedUIHintKey(key string) bool {
	_, ok := uiHintKeySet[key]
	return ok
}

// FilterUIHints drops unknown keys and empty values. It returns nil when
// nothing survives.
func FilterUIHints(hints map[string]string) map[string]string {
	var out map[string]string
	for key, value := range hints {
		if value == "" || !IsAllowedUIHintKey(key) {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[key] = value
	}
	return out
}

// CanonicalizeValue renders a hint or field value as the string an input
// element carries. Returns false for values that have no stable form.
func CanonicalizeValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 64), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case interface{ String() string }:
		return v.String(), true
	default:
		return "", false
	}
}
