// Package loader turns OpenAPI source text into the generic tree consumed by
// the model package, and provides fetchers for externally referenced documents.
//
// The validator never performs I/O itself; callers hand it a tree produced by
// [Parse] and, when the document references other files or URLs, a fetch
// function such as [FileFetcher], [HTTPFetcher], or [Mux].
package loader

import (
	"fmt"
	"os"

	"github.com/erraggy/oasvet/oaserrors"
	"go.yaml.in/yaml/v4"
)

// MaxFileSize is the maximum size (in bytes) accepted for a single document.
const MaxFileSize = 10 * 1024 * 1024 // 10MB

// Parse decodes YAML or JSON source into a generic tree of map[string]any,
// []any, and scalars. JSON is parsed by the YAML decoder, which accepts it as
// a subset.
func Parse(data []byte) (any, error) {
	return parse("", data)
}

// ParseFile reads and decodes the document at path.
func ParseFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to read %s: %w", path, err)
	}
	if int64(len(data)) > MaxFileSize {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        MaxFileSize,
			Actual:       int64(len(data)),
			Message:      path,
		}
	}
	return parse(path, data)
}

func parse(source string, data []byte) (any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &oaserrors.ParseError{Path: source, Message: "invalid YAML or JSON", Cause: err}
	}
	return Normalize(raw), nil
}

// Normalize converts every map[any]any in v (produced by YAML for mappings
// with non-string keys such as unquoted response codes) into map[string]any.
// Keys are rendered with fmt's %v verb, so 200 becomes "200".
func Normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = Normalize(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = Normalize(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = Normalize(val)
		}
		return t
	default:
		return v
	}
}
