package data

import (
	"fmt"
	"strings"
)

// Format is the representation a binding asks for.
type Format uint8

const (
	FormatString Format = iota
	FormatInt32
	FormatInt64
	FormatFloat
	FormatBool
)

var formatNames = map[string]Format{
	"string": FormatString,
	"i32":    FormatInt32,
	"u32":    FormatInt32,
	"i64":    FormatInt64,
	"u64":    FormatInt64,
	"int":    FormatInt64,
	"uint":   FormatInt64,
	"f64":    FormatFloat,
	"float":  FormatFloat,
	"bool":   FormatBool,
}

// ParseFormat parses a format name as written in widget markup.
func ParseFormat(s string) (Format, error) {
	f, ok := formatNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return FormatString, fmt.Errorf("unknown data format %q (expected one of string, i32, i64, int, f64, float, bool)", s)
	}
	return f, nil
}

func (f Format) String() string {
	switch f {
	case FormatString:
		return "string"
	case FormatInt32:
		return "i32"
	case FormatInt64:
		return "i64"
	case FormatFloat:
		return "float"
	case FormatBool:
		return "bool"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}
