package data

import (
	"math"
	"strconv"
	"strings"
)

// Formatter turns a Data value into display text.
//
// A zero DivideBy means no scaling. Precision only applies to FormatFloat.
type Formatter struct {
	Format    Format
	Precision int
	DivideBy  float64
	Suffix    string
}

// Format renders d according to f. In Lenient mode the error is always nil.
func (f Formatter) Format(d Data, mode Mode) (string, error) {
	div := f.DivideBy
	if div == 0 {
		div = 1
	}

	var content string
	switch f.Format {
	case FormatInt32, FormatInt64:
		v, err := d.AsInt(mode)
		if err != nil {
			return "", err
		}
		if div == math.Trunc(div) && math.Abs(div) < math.MaxInt64 {
			v /= int64(div)
		} else {
			v = int64(float64(v) / div)
		}
		content = strconv.FormatInt(v, 10)
	case FormatFloat:
		v, err := d.AsFloat(mode)
		if err != nil {
			return "", err
		}
		content = FormatFixed(v/div, f.Precision)
	case FormatBool:
		v, err := d.AsBool(mode)
		if err != nil {
			return "", err
		}
		content = strconv.FormatBool(v)
	default:
		v, err := d.AsString(mode)
		if err != nil {
			return "", err
		}
		content = v
	}
	return content + f.Suffix, nil
}

// FormatFixed prints v with exactly prec decimals, rounding half away from
// zero on the shortest decimal representation of v. This makes 12.345 print
// as 12.35 even though its binary value sits slightly below the midpoint.
func FormatFixed(v float64, prec int) string {
	if prec < 0 {
		prec = 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', prec, 64)
	}

	neg := v < 0
	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	var digits []byte
	if len(frac) <= prec {
		digits = []byte(intPart + frac + strings.Repeat("0", prec-len(frac)))
	} else {
		digits = []byte(intPart + frac[:prec])
		if frac[prec] >= '5' {
			digits = roundUp(digits)
		}
	}

	n := len(digits) - prec
	out := string(digits[:n])
	if prec > 0 {
		out += "." + string(digits[n:])
	}
	if neg && strings.Trim(out, "0.") != "" {
		out = "-" + out
	}
	return out
}

// roundUp adds one unit in the last place to a string of decimal digits.
func roundUp(digits []byte) []byte {
	for i := len(digits) - 1; i >= 0; i-- {
		if digits[i] < '9' {
			digits[i]++
			return digits
		}
		digits[i] = '0'
	}
	return append([]byte{'1'}, digits...)
}
