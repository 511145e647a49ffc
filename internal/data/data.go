package data

import (
	"fmt"
	"strconv"
)

// Kind identifies which variant a Data value holds.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindString
	KindInt32
	KindInt64
	KindFloat64
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt32:
		return "i32"
	case KindInt64:
		return "i64"
	case KindFloat64:
		return "f64"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Data is a tagged value. The zero value is Unknown, which is a valid
// placeholder (for example a sensor that is absent on this machine).
type Data struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

// String returns a Data holding a string.
func String(v string) Data { return Data{kind: KindString, s: v} }

// Int32 returns a Data holding a 32-bit integer.
func Int32(v int32) Data { return Data{kind: KindInt32, i: int64(v)} }

// Int64 returns a Data holding a 64-bit integer.
func Int64(v int64) Data { return Data{kind: KindInt64, i: v} }

// Float64 returns a Data holding a float.
func Float64(v float64) Data { return Data{kind: KindFloat64, f: v} }

// Bool returns a Data holding a boolean.
func Bool(v bool) Data { return Data{kind: KindBool, b: v} }

// Unknown returns the placeholder value.
func Unknown() Data { return Data{} }

// Kind reports the variant held by d.
func (d Data) Kind() Kind { return d.kind }

// IsUnknown reports whether d is the Unknown placeholder.
func (d Data) IsUnknown() bool { return d.kind == KindUnknown }

// String renders d for logs and debugging. Use a Formatter for display text.
func (d Data) String() string {
	switch d.kind {
	case KindString:
		return strconv.Quote(d.s)
	case KindInt32, KindInt64:
		return fmt.Sprintf("%s(%d)", d.kind, d.i)
	case KindFloat64:
		return fmt.Sprintf("f64(%s)", strconv.FormatFloat(d.f, 'g', -1, 64))
	case KindBool:
		return fmt.Sprintf("bool(%t)", d.b)
	default:
		return "unknown"
	}
}

// Environment maps binding names to their values for a single tick.
type Environment map[string]Data

// Lookup returns the value bound to name.
func (e Environment) Lookup(name string) (Data, bool) {
	v, ok := e[name]
	return v, ok
}
