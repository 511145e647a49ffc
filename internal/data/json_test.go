package data

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON(t *testing.T) {
	testCases := []struct {
		in       any
		expected Data
	}{
		{in: "s", expected: String("s")},
		{in: true, expected: Bool(true)},
		{in: 1.5, expected: Float64(1.5)},
		{in: 3, expected: Int64(3)},
		{in: json.Number("12"), expected: Int64(12)},
		{in: json.Number("1.25"), expected: Float64(1.25)},
		{in: nil, expected: Unknown()},
		{in: []any{1}, expected: Unknown()},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, FromJSON(tc.in), "%#v", tc.in)
	}
}

func TestJSONPath(t *testing.T) {
	doc := DecodeJSON([]byte(`{"cpu": {"load": 0.5, "cores": 8}, "host": "box"}`))

	testCases := []struct {
		query    string
		expected Data
	}{
		{"cpu.load", Float64(0.5)},
		{"cpu.cores", Float64(8)},
		{"host", String("box")},
		{"host.name", Unknown()},
		{"cpu.temp", Unknown()},
		{"", Unknown()},
	}
	for _, tc := range testCases {
		path, err := ParsePath(tc.query)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, JSONPath(doc, path), tc.query)
	}
}

func TestParsePath_Invalid(t *testing.T) {
	for _, q := range []string{"a..b", ".a", "a."} {
		_, err := ParsePath(q)
		assert.Error(t, err, q)
	}
}

func TestDecodeJSON_Text(t *testing.T) {
	assert.Equal(t, "not json", DecodeJSON([]byte("not json")))
	assert.Equal(t, 42.0, DecodeJSON([]byte("42")))
}
