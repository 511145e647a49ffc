package data

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParsePath splits a dot-separated JSON path such as "cpu.load". An empty
// query is the root path.
func ParsePath(query string) ([]string, error) {
	if query == "" {
		return nil, nil
	}
	path := strings.Split(query, ".")
	for _, p := range path {
		if p == "" {
			return nil, fmt.Errorf("invalid path %q", query)
		}
	}
	return path, nil
}

// DecodeJSON decodes raw JSON text. Text that is not valid JSON is returned
// as a string.
func DecodeJSON(raw []byte) any {
	var out any
	if json.Unmarshal(raw, &out) == nil {
		return out
	}
	return string(raw)
}

// JSONPath follows path through nested objects decoded from JSON and converts
// the value found there. Missing keys read as Unknown.
func JSONPath(v any, path []string) Data {
	cur := v
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return Unknown()
		}
		if cur, ok = m[key]; !ok {
			return Unknown()
		}
	}
	return FromJSON(cur)
}

// FromJSON converts a decoded JSON scalar. Objects, arrays and null read as
// Unknown.
func FromJSON(v any) Data {
	switch x := v.(type) {
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case float64:
		return Float64(x)
	case float32:
		return Float64(float64(x))
	case int:
		return Int64(int64(x))
	case int32:
		return Int32(x)
	case int64:
		return Int64(x)
	case uint32:
		return Int64(int64(x))
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int64(i)
		}
		if f, err := x.Float64(); err == nil {
			return Float64(f)
		}
	}
	return Unknown()
}
