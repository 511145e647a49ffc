package component

import (
	"errors"
	"fmt"

	"github.com/vk/tickgrid/internal/fonts"
	"github.com/vk/tickgrid/internal/scene"
	"github.com/vk/tickgrid/internal/units"
)

// DefaultFontSize is used when a text does not set one.
const DefaultFontSize = 16

// TextAlign anchors a text at its left edge, center or right edge.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// ParseTextAlign parses left, center or right.
func ParseTextAlign(s string) (TextAlign, error) {
	switch s {
	case "", "left", "start":
		return AlignLeft, nil
	case "center", "middle":
		return AlignCenter, nil
	case "right", "end":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("invalid text_align %q", s)
}

// Text is a single line of templated text. Unset attributes fall back to the
// render style.
type Text struct {
	base
	Color      *units.Color
	Align      TextAlign
	FontSize   float64
	FontFamily string
	FontWeight string
	Content    []Fragment
}

func (t *Text) Render(rc *RenderContext) (scene.Node, error) {
	size := t.FontSize
	if size <= 0 {
		size = DefaultFontSize
	}
	family := t.FontFamily
	if family == "" {
		family = rc.Style.FontFamily
	}
	weight := t.FontWeight
	if weight == "" {
		weight = rc.Style.FontWeight
	}
	color := rc.Style.Foreground
	if t.Color != nil {
		color = *t.Color
	}

	if rc.Fonts == nil {
		return nil, &RenderError{Kind: UnknownFont, Name: family}
	}
	face, err := rc.Fonts.ResolveWeight(family, weight, size)
	if err != nil {
		rerr := &RenderError{Kind: UnknownFont, Name: family, Err: err}
		var unknown *fonts.UnknownFamilyError
		if errors.As(err, &unknown) {
			rerr.Suggestions = unknown.Suggestions
		}
		return nil, rerr
	}

	content := Interpolate(t.Content, rc.Vars)
	width := face.Measure(content)
	height := face.Height()

	var x0 float64
	switch t.Align {
	case AlignCenter:
		x0 = -width / 2
	case AlignRight:
		x0 = -width
	}

	return scene.NewGroup(
		&scene.Box{Rect: scene.Rect{X: x0, Y: 0, W: width, H: height}},
		&scene.Text{
			X:       x0,
			Y:       0,
			Content: content,
			Family:  face.Family,
			Weight:  face.Weight,
			Size:    size,
			Color:   color,
			Width:   width,
			Height:  height,
			Ascent:  face.Ascender(),
		},
	), nil
}
