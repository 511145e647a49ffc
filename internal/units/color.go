package units

import (
	"fmt"
	"strings"

	"github.com/gogpu/gg"
)

// Color is an RGBA color that remembers how it was written.
type Color struct {
	gg.RGBA
	origin string
}

var namedColors = map[string]string{
	"black":       "#000000",
	"white":       "#ffffff",
	"red":         "#ff0000",
	"green":       "#008000",
	"lime":        "#00ff00",
	"blue":        "#0000ff",
	"yellow":      "#ffff00",
	"cyan":        "#00ffff",
	"magenta":     "#ff00ff",
	"gray":        "#808080",
	"grey":        "#808080",
	"silver":      "#c0c0c0",
	"orange":      "#ffa500",
	"purple":      "#800080",
	"transparent": "#00000000",
}

// ParseColor accepts #rgb, #rgba, #rrggbb, #rrggbbaa and a few CSS color names.
func ParseColor(s string) (Color, error) {
	origin := strings.TrimSpace(s)
	hex := strings.ToLower(origin)
	if named, ok := namedColors[hex]; ok {
		hex = named
	}
	if !strings.HasPrefix(hex, "#") {
		return Color{}, fmt.Errorf("failed to parse color %q", s)
	}
	digits := hex[1:]
	switch len(digits) {
	case 3, 4, 6, 8:
	default:
		return Color{}, fmt.Errorf("failed to parse color %q", s)
	}
	for _, c := range digits {
		if !strings.ContainsRune("0123456789abcdef", c) {
			return Color{}, fmt.Errorf("failed to parse color %q", s)
		}
	}
	return Color{RGBA: gg.Hex(digits), origin: origin}, nil
}

// MustParseColor is ParseColor for constants known to be valid.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.RGBA.A = a
	c.origin = ""
	return c
}

func (c Color) String() string {
	if c.origin != "" {
		return c.origin
	}
	return fmt.Sprintf("rgba(%.0f,%.0f,%.0f,%.2f)", c.R*255, c.G*255, c.B*255, c.A)
}
