// Package yaml decodes YAML request bodies into the same loose value shape
// the JSON source produces, so one schema validates both.
package yaml

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	restshape "github.com/restshape/restshape"
)

// DecodeBytes decodes a YAML document into a JSON-like loose value: mapping
// keys become strings, integers become json-compatible int64, and floats
// float64. A decode failure is reported as Issues with CodeParseError.
func DecodeBytes(b []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, restshape.Issues{{Path: "/", Code: restshape.CodeParseError, Message: "Invalid YAML request body", Cause: err}}
	}
	return normalize(v), nil
}

// normalize converts YAML-decoded values (which may contain map[any]any from
// older documents, and typed ints) into JSON-like values recursively.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalize(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[keyString(k)] = normalize(vv)
		}
		return out
	case []any:
		out := make([]any, 0, len(t))
		for _, vv := range t {
			out = append(out, normalize(vv))
		}
		return out
	case int:
		return int64(t)
	default:
		return v
	}
}

func keyString(k any) string {
	switch t := k.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
