package serialization

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	capitalizedWord = regexp.MustCompile(`(.)([A-Z][a-z0-9]+)`)
	lowerThenUpper  = regexp.MustCompile(`([a-z])([A-Z])`)
)

// ToSnakeCase converts a camelCase or PascalCase identifier to snake_case.
// Runs of capitals stay together, so class names map to layer name prefixes:
//
//	"maxValue"  → "max_value"
//	"ReLU"      → "re_lu"
//	"LeakyReLU" → "leaky_re_lu"
func ToSnakeCase(s string) string {
	s = capitalizedWord.ReplaceAllString(s, "${1}_${2}")
	s = lowerThenUpper.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}

// ToCamelCase converts a snake_case identifier to lowerCamelCase:
// "max_value" → "maxValue". Leading underscores are kept.
func ToCamelCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	upperNext := false
	for i, r := range s {
		switch {
		case r == '_' && b.Len() > 0 && i < len(s)-1:
			upperNext = true
		case upperNext:
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToPythonic renames map keys to snake_case, descending into nested maps and
// slices. The input is not modified.
func ToPythonic(v any) any {
	return renameKeys(v, ToSnakeCase)
}

// FromPythonic renames map keys to lowerCamelCase, descending into nested
// maps and slices. It inverts ToPythonic for keys without consecutive
// capitals.
func FromPythonic(v any) any {
	return renameKeys(v, ToCamelCase)
}

// ToPythonicMap is ToPythonic for the common top-level map case.
func ToPythonicMap(m map[string]any) map[string]any {
	out, _ := ToPythonic(m).(map[string]any)
	return out
}

// FromPythonicMap is FromPythonic for the common top-level map case.
func FromPythonicMap(m map[string]any) map[string]any {
	out, _ := FromPythonic(m).(map[string]any)
	return out
}

func renameKeys(v any, rename func(string) string) any {
	switch val := v.(type) {
	case map[string]any:
		if val == nil {
			return val
		}
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[rename(k)] = renameKeys(item, rename)
		}
		return out
	case []any:
		if val == nil {
			return val
		}
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = renameKeys(item, rename)
		}
		return out
	case []map[string]any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = renameKeys(item, rename)
		}
		return out
	default:
		return v
	}
}
