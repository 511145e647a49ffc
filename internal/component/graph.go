package component

import (
	"math"

	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/scene"
	"github.com/vk/tickgrid/internal/setup"
	"github.com/vk/tickgrid/internal/units"
)

// Graph defaults.
const (
	DefaultSampleCount = 10
	DefaultFillOpacity = 0.6
)

// Graph plots the recent history of a variable as a line over a filled
// area. Values are scaled so Min is the bottom edge and Max the top edge. A
// nil FillOpacity means DefaultFillOpacity.
type Graph struct {
	base
	Name        string
	Width       units.Length
	Height      units.Length
	Min, Max    float64
	SampleCount int
	StrokeColor units.Color
	StrokeWidth float64
	FillColor   *units.Color
	FillOpacity *float64

	samples []float64
}

func (g *Graph) count() int {
	if g.SampleCount < 1 {
		return DefaultSampleCount
	}
	return g.SampleCount
}

// Setup clears the sample history.
func (g *Graph) Setup() []setup.Job {
	g.reset()
	return nil
}

func (g *Graph) reset() {
	g.samples = make([]float64, g.count())
	for i := range g.samples {
		g.samples[i] = math.NaN()
	}
}

// Update shifts the current value of the variable into the history. A
// missing or unknown value is recorded as a gap.
func (g *Graph) Update(env *UpdateEnv) error {
	if len(g.samples) != g.count() {
		g.reset()
	}
	v := math.NaN()
	if d, ok := env.Vars.Lookup(g.Name); ok && !d.IsUnknown() {
		v, _ = d.AsFloat(data.Lenient)
	}
	copy(g.samples, g.samples[1:])
	g.samples[len(g.samples)-1] = v
	return nil
}

// Samples returns a copy of the sample history, oldest first.
func (g *Graph) Samples() []float64 {
	return append([]float64(nil), g.samples...)
}

func (g *Graph) Render(rc *RenderContext) (scene.Node, error) {
	w, h := rc.px(g.Width), rc.px(g.Height)
	n := g.count()

	var line []scene.Point
	for i, s := range g.samples {
		if math.IsNaN(s) {
			continue
		}
		var x float64
		if n > 1 {
			x = float64(i) * w / float64(n-1)
		}
		y := h
		if g.Max != g.Min {
			y = h - (s-g.Min)/(g.Max-g.Min)*h
		}
		line = append(line, scene.Point{X: x, Y: y})
	}

	out := scene.NewGroup(&scene.Box{Rect: scene.Rect{W: w, H: h}})
	if len(line) == 0 {
		return out, nil
	}

	out.Append(&scene.Path{
		Points: line,
		Stroke: &scene.Stroke{Color: g.StrokeColor, Width: g.StrokeWidth},
	})

	fillColor := g.StrokeColor
	if g.FillColor != nil {
		fillColor = *g.FillColor
	}
	opacity := DefaultFillOpacity
	if g.FillOpacity != nil {
		opacity = *g.FillOpacity
	}
	area := make([]scene.Point, 0, len(line)+3)
	area = append(area, scene.Point{X: line[0].X, Y: h})
	area = append(area, line...)
	area = append(area, scene.Point{X: w, Y: h}, scene.Point{X: line[0].X, Y: h})
	out.Append(&scene.Path{
		Points: area,
		Closed: true,
		Fill:   &scene.Fill{Color: fillColor.WithAlpha(fillColor.A * opacity)},
	})
	return out, nil
}
