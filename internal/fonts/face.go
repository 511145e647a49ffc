package fonts

import "github.com/gogpu/gg/text"

// Face is a font family at a given weight and size.
type Face struct {
	Family string
	Weight string
	Size   float64

	face text.Face
}

// Height is the line box height: ascent plus descent.
func (f *Face) Height() float64 {
	m := f.face.Metrics()
	return m.Ascent + m.Descent
}

// Ascender is the distance from the top of the line box to the baseline.
func (f *Face) Ascender() float64 {
	return f.face.Metrics().Ascent
}

// Measure returns the advance width of s.
func (f *Face) Measure(s string) float64 {
	return f.face.Advance(s)
}

// TextFace exposes the underlying face for rasterization.
func (f *Face) TextFace() text.Face {
	return f.face
}
