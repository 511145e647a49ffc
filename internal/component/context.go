package component

import (
	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/fonts"
	"github.com/vk/tickgrid/internal/units"
)

// UpdateEnv is what Update sees on each tick.
type UpdateEnv struct {
	Vars data.Environment
}

// Fonts resolves font faces for text.
type Fonts interface {
	ResolveWeight(family, weight string, size float64) (*fonts.Face, error)
}

// Style holds the defaults applied to text that does not set its own.
type Style struct {
	Foreground units.Color
	FontFamily string
	FontWeight string
}

// RenderContext is read-only while a tree renders.
type RenderContext struct {
	ViewportWidth  float64
	ViewportHeight float64
	Style          Style
	Fonts          Fonts
	Vars           data.Environment
}

// px converts l against the viewport.
func (rc *RenderContext) px(l units.Length) float64 {
	return l.Pixels(rc.ViewportWidth, rc.ViewportHeight)
}
