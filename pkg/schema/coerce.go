package schema

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// fields wraps one object level of untrusted input. A nil map behaves like an
// empty object so every lookup falls back to the default.
type fields map[string]any

// objectOf returns value as a field set when it is a non-null object.
func objectOf(value any) (fields, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return fields(typed), true
	case fields:
		return typed, true
	default:
		return nil, false
	}
}

// group reads a nested object, treating anything else as empty.
func (f fields) group(key string) fields {
	obj, _ := objectOf(f[key])
	return obj
}

// present reports whether key holds a non-null value.
func (f fields) present(key string) (any, bool) {
	value, ok := f[key]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// text keeps any present value, stringified, and falls back only when the
// key is missing or null. Empty strings survive.
func (f fields) text(key, fallback string) string {
	value, ok := f.present(key)
	if !ok {
		return fallback
	}
	return stringify(value)
}

// number coerces a present value and falls back when it is missing, null,
// or not a finite number.
func (f fields) number(key string, fallback float64) float64 {
	value, ok := f.present(key)
	if !ok {
		return fallback
	}
	n := toNumber(value)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return n
}

// trimmed is the flat-settings string rule: blank after trimming means the
// default.
func (f fields) trimmed(key, fallback string) string {
	value, ok := f.present(key)
	if !ok {
		return fallback
	}
	out := strings.TrimSpace(stringify(value))
	if out == "" {
		return fallback
	}
	return out
}

// clamped is the flat-settings number rule: non-finite input yields the
// fallback as is, everything else is pinned into r.
func (f fields) clamped(key string, fallback float64, r Range) float64 {
	value, ok := f.present(key)
	if !ok {
		return fallback
	}
	n := toNumber(value)
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return fallback
	}
	return r.Clamp(n)
}

// flag is false only for a literal false.
func (f fields) flag(key string) bool {
	value, ok := f[key].(bool)
	return !ok || value
}

// stringify follows the conversion a browser applies when template JSON is
// coerced with String(value).
func stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return "null"
	case string:
		return typed
	case bool:
		if typed {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(typed)
	case float32:
		return formatNumber(float64(typed))
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case json.Number:
		if f, err := typed.Float64(); err == nil {
			return formatNumber(f)
		}
		return typed.String()
	case []any:
		parts := make([]string, len(typed))
		for i, item := range typed {
			if item == nil {
				continue
			}
			parts[i] = stringify(item)
		}
		return strings.Join(parts, ",")
	case map[string]any, fields:
		return "[object Object]"
	default:
		return ""
	}
}

// formatNumber renders the shortest round-tripping form, switching to
// exponent notation outside [1e-6, 1e21) like the browser does.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		out := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(out, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// toNumber mirrors Number(value). NaN marks values that cannot be read.
func toNumber(value any) float64 {
	switch typed := value.(type) {
	case nil:
		return 0
	case float64:
		return typed
	case float32:
		return float64(typed)
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case json.Number:
		return parseNumber(typed.String())
	case bool:
		if typed {
			return 1
		}
		return 0
	case string:
		return parseNumber(typed)
	case []any:
		switch len(typed) {
		case 0:
			return 0
		case 1:
			return parseNumber(stringify(typed[0]))
		default:
			return math.NaN()
		}
	default:
		return math.NaN()
	}
}

func parseNumber(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}
	if !decimalLiteral.MatchString(s) {
		return math.NaN()
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// ParseFloat reports overflow with ±Inf alongside the error.
		if math.IsInf(n, 0) {
			return n
		}
		return math.NaN()
	}
	return n
}
