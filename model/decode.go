package model

import (
	"fmt"
	"math"
	"strings"
)

// asMap returns v as a map[string]any. Maps with non-string keys, as produced
// by some YAML decoders for unquoted numeric keys, are converted with their
// keys rendered through fmt.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// isExtensionKey reports whether key is a specification extension (x-*).
func isExtensionKey(key string) bool {
	return strings.HasPrefix(key, "x-")
}

// extractExtensions collects x-* keys from a map into an extension map.
// Returns nil if no extensions found (not an empty map).
func extractExtensions(m map[string]any) map[string]any {
	var extra map[string]any
	for k, v := range m {
		if isExtensionKey(k) {
			if extra == nil {
				extra = make(map[string]any)
			}
			extra[k] = v
		}
	}
	return extra
}

// mapGetString extracts a string from m[key]. The second result reports
// whether the key was present at all, whatever its type.
func mapGetString(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, true
}

// mapGetBool extracts a bool from m[key], false when absent or mistyped.
func mapGetBool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

// mapGetBoolPtr extracts a *bool from m[key].
func mapGetBoolPtr(m map[string]any, key string) *bool {
	v, ok := m[key]
	if !ok {
		return nil
	}
	if b, ok := v.(bool); ok {
		return &b
	}
	return nil
}

// mapGetStringSlice extracts a []string from m[key], handling the []any that
// yaml.Unmarshal / json.Unmarshal produce.
func mapGetStringSlice(m map[string]any, key string) []string {
	v, ok := m[key]
	if !ok {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

// mapGetFloat64Ptr extracts a *float64 from m[key].
// Handles both float64 (from JSON) and int (from YAML) numeric values.
func mapGetFloat64Ptr(m map[string]any, key string) *float64 {
	v, ok := m[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	case int64:
		f := float64(n)
		return &f
	case uint64:
		f := float64(n)
		return &f
	case uint:
		f := float64(n)
		return &f
	default:
		return nil
	}
}

// mapGetIntPtr extracts a *int from m[key].
// Handles both float64 (from JSON) and int (from YAML) numeric values.
func mapGetIntPtr(m map[string]any, key string) *int {
	v, ok := m[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case float64:
		i := int(n)
		return &i
	case int:
		return &n
	case int64:
		i := int(n)
		return &i
	case uint64:
		if n > math.MaxInt {
			return nil
		}
		i := int(n)
		return &i
	case uint:
		if n > math.MaxInt {
			return nil
		}
		i := int(n)
		return &i
	default:
		return nil
	}
}

// schemaTypes reads the type keyword, which 3.1 allows as a string or an
// array of strings.
func schemaTypes(m map[string]any) []string {
	switch t := m["type"].(type) {
	case string:
		return []string{t}
	case []any:
		return mapGetStringSlice(m, "type")
	default:
		return nil
	}
}
