package data

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Mode selects how conversions treat values that have no sensible
// representation in the target type.
type Mode uint8

const (
	// Lenient turns Unknown and unparsable values into the zero value.
	Lenient Mode = iota
	// Strict reports them as a *ConversionError.
	Strict
)

// ConversionError reports a strict conversion between incompatible variants.
type ConversionError struct {
	From  Kind
	To    Format
	Value string
}

func (e *ConversionError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("cannot convert %s %s to %s", e.From, e.Value, e.To)
	}
	return fmt.Sprintf("cannot convert %s to %s", e.From, e.To)
}

func (d Data) fail(to Format, mode Mode) error {
	if mode == Lenient {
		return nil
	}
	e := &ConversionError{From: d.kind, To: to}
	if d.kind == KindString {
		e.Value = strconv.Quote(d.s)
	}
	return e
}

// AsString converts d to its plain textual form.
func (d Data) AsString(mode Mode) (string, error) {
	switch d.kind {
	case KindString:
		return d.s, nil
	case KindInt32, KindInt64:
		return strconv.FormatInt(d.i, 10), nil
	case KindFloat64:
		return strconv.FormatFloat(d.f, 'f', -1, 64), nil
	case KindBool:
		return strconv.FormatBool(d.b), nil
	default:
		return "", d.fail(FormatString, mode)
	}
}

// AsInt converts d to an integer. Floats truncate toward zero.
func (d Data) AsInt(mode Mode) (int64, error) {
	switch d.kind {
	case KindString:
		v, err := strconv.ParseInt(strings.TrimSpace(d.s), 10, 64)
		if err != nil {
			return 0, d.fail(FormatInt64, mode)
		}
		return v, nil
	case KindInt32, KindInt64:
		return d.i, nil
	case KindFloat64:
		if math.IsNaN(d.f) {
			return 0, d.fail(FormatInt64, mode)
		}
		return int64(d.f), nil
	case KindBool:
		if d.b {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, d.fail(FormatInt64, mode)
	}
}

// AsFloat converts d to a float.
func (d Data) AsFloat(mode Mode) (float64, error) {
	switch d.kind {
	case KindString:
		v, err := strconv.ParseFloat(strings.TrimSpace(d.s), 64)
		if err != nil {
			return 0, d.fail(FormatFloat, mode)
		}
		return v, nil
	case KindInt32, KindInt64:
		return float64(d.i), nil
	case KindFloat64:
		return d.f, nil
	case KindBool:
		if d.b {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, d.fail(FormatFloat, mode)
	}
}

// AsBool converts d to a boolean. A float is true when its magnitude exceeds
// machine epsilon.
func (d Data) AsBool(mode Mode) (bool, error) {
	switch d.kind {
	case KindString:
		v, err := strconv.ParseBool(strings.TrimSpace(d.s))
		if err != nil {
			return false, d.fail(FormatBool, mode)
		}
		return v, nil
	case KindInt32, KindInt64:
		return d.i != 0, nil
	case KindFloat64:
		return math.Abs(d.f) > epsilon, nil
	case KindBool:
		return d.b, nil
	default:
		return false, d.fail(FormatBool, mode)
	}
}

// epsilon is the difference between 1 and the next representable float64.
const epsilon = 0x1p-52

// Convert re-tags d as the variant matching f. Unknown is preserved as-is in
// both modes since it is a valid value for every format.
func (d Data) Convert(f Format, mode Mode) (Data, error) {
	if d.kind == KindUnknown {
		return d, nil
	}
	switch f {
	case FormatString:
		s, err := d.AsString(mode)
		return String(s), err
	case FormatInt32:
		v, err := d.AsInt(mode)
		if err != nil {
			return Unknown(), err
		}
		if v > math.MaxInt32 || v < math.MinInt32 {
			if err := d.fail(FormatInt32, mode); err != nil {
				return Unknown(), err
			}
		}
		return Int32(int32(v)), nil
	case FormatInt64:
		v, err := d.AsInt(mode)
		if err != nil {
			return Unknown(), err
		}
		return Int64(v), nil
	case FormatFloat:
		v, err := d.AsFloat(mode)
		if err != nil {
			return Unknown(), err
		}
		return Float64(v), nil
	case FormatBool:
		v, err := d.AsBool(mode)
		if err != nil {
			return Unknown(), err
		}
		return Bool(v), nil
	default:
		return Unknown(), fmt.Errorf("unsupported format %s", f)
	}
}
