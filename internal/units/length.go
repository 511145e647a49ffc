// Package units holds the small value types used by widget markup: lengths
// relative to the viewport, alignments, and colors.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Unit is the unit of a Length.
type Unit uint8

const (
	Pixel Unit = iota
	ViewportHeight
	ViewportWidth
)

// Length is a distance expressed in pixels or as a percentage of the
// viewport height (vh) or width (vw).
type Length struct {
	Value float64
	Unit  Unit
}

// Px returns a pixel length.
func Px(v float64) Length { return Length{Value: v, Unit: Pixel} }

// ParseLength parses "12px", "50vh" or "10vw". A bare number is read as pixels.
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	unit := Pixel
	num := s
	switch {
	case strings.HasSuffix(s, "px"):
		num = s[:len(s)-2]
	case strings.HasSuffix(s, "vh"):
		unit, num = ViewportHeight, s[:len(s)-2]
	case strings.HasSuffix(s, "vw"):
		unit, num = ViewportWidth, s[:len(s)-2]
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Length{}, fmt.Errorf("%q does not match any length syntax (expected px, vh or vw)", s)
	}
	return Length{Value: v, Unit: unit}, nil
}

// Pixels resolves l against the viewport size.
func (l Length) Pixels(viewportWidth, viewportHeight float64) float64 {
	switch l.Unit {
	case ViewportHeight:
		return l.Value * viewportHeight / 100
	case ViewportWidth:
		return l.Value * viewportWidth / 100
	default:
		return l.Value
	}
}

// IsZero reports whether l is zero regardless of its unit.
func (l Length) IsZero() bool {
	return math.Abs(l.Value) < 0x1p-52
}

func (l Length) String() string {
	v := strconv.FormatFloat(l.Value, 'f', -1, 64)
	switch l.Unit {
	case ViewportHeight:
		return v + "vh"
	case ViewportWidth:
		return v + "vw"
	default:
		return v + "px"
	}
}
