package component

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/scene"
	"github.com/vk/tickgrid/internal/units"
)

func newGraph() *Graph {
	return &Graph{
		Name:        "load",
		Width:       units.Px(30),
		Height:      units.Px(10),
		Min:         0,
		Max:         100,
		SampleCount: 4,
		StrokeColor: units.MustParseColor("#ff0000"),
		StrokeWidth: 1,
	}
}

func TestGraphSetupResetsSamples(t *testing.T) {
	g := newGraph()
	assert.Empty(t, g.Setup())

	samples := g.Samples()
	require.Len(t, samples, 4)
	for _, s := range samples {
		assert.True(t, math.IsNaN(s))
	}
}

func TestGraphUpdateShiftsSamples(t *testing.T) {
	g := newGraph()
	g.Setup()

	for _, v := range []data.Data{data.Int32(10), data.Float64(20.5), data.String("30")} {
		require.NoError(t, g.Update(&UpdateEnv{Vars: data.Environment{"load": v}}))
	}
	require.NoError(t, g.Update(&UpdateEnv{Vars: data.Environment{}}))

	samples := g.Samples()
	assert.Equal(t, []float64{10, 20.5, 30}, samples[:3])
	assert.True(t, math.IsNaN(samples[3]), "missing variable is a gap")
}

func TestGraphRender(t *testing.T) {
	rc, _ := newRenderContext(t, nil)
	g := newGraph()
	g.Setup()

	t.Run("no samples renders only the backdrop", func(t *testing.T) {
		n, err := g.Render(rc)
		require.NoError(t, err)
		leaves := scene.Leaves(n)
		require.Len(t, leaves, 1)
		assert.Equal(t, scene.Rect{W: 30, H: 10}, n.Bounds())
	})

	for _, v := range []float64{0, 50, 100} {
		require.NoError(t, g.Update(&UpdateEnv{Vars: data.Environment{"load": data.Float64(v)}}))
	}

	t.Run("line and area", func(t *testing.T) {
		n, err := g.Render(rc)
		require.NoError(t, err)
		leaves := scene.Leaves(n)
		require.Len(t, leaves, 3)

		line, ok := leaves[1].(*scene.Path)
		require.True(t, ok)
		require.NotNil(t, line.Stroke)
		assert.Equal(t, []scene.Point{{10, 10}, {20, 5}, {30, 0}}, line.Points)

		area, ok := leaves[2].(*scene.Path)
		require.True(t, ok)
		require.NotNil(t, area.Fill)
		assert.True(t, area.Closed)
		assert.Equal(t, []scene.Point{{10, 10}, {10, 10}, {20, 5}, {30, 0}, {30, 10}, {10, 10}}, area.Points)
		assert.InDelta(t, DefaultFillOpacity, area.Fill.Color.A, 1e-9)

		assert.Equal(t, scene.Rect{W: 30, H: 10}, n.Bounds())
	})

	t.Run("explicit zero opacity is kept", func(t *testing.T) {
		zero := 0.0
		g.FillOpacity = &zero
		defer func() { g.FillOpacity = nil }()

		n, err := g.Render(rc)
		require.NoError(t, err)
		area := scene.Leaves(n)[2].(*scene.Path)
		assert.Zero(t, area.Fill.Color.A)
	})

	t.Run("render does not consume samples", func(t *testing.T) {
		before := g.Samples()
		_, err := g.Render(rc)
		require.NoError(t, err)
		assert.Equal(t, before[1:], g.Samples()[1:])
	})
}
