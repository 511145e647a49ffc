package data

import (
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"
)

// FromCty converts a primitive cty value, as produced by evaluating a literal
// in widget markup, into Data. Null and unknown values become Unknown.
func FromCty(v cty.Value) (Data, error) {
	if v.IsNull() || !v.IsKnown() {
		return Unknown(), nil
	}
	switch v.Type() {
	case cty.String:
		return String(v.AsString()), nil
	case cty.Bool:
		return Bool(v.True()), nil
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return Int64(i), nil
			}
		}
		f, _ := bf.Float64()
		return Float64(f), nil
	default:
		return Unknown(), fmt.Errorf("cannot use %s value as data", v.Type().FriendlyName())
	}
}
