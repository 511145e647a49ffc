package component

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/fonts"
	"github.com/vk/tickgrid/internal/scene"
	"github.com/vk/tickgrid/internal/units"
)

// block is a fixed-size leaf: a graph with no samples renders only its
// backdrop.
func block(w, h float64) *Graph {
	return &Graph{Width: units.Px(w), Height: units.Px(h)}
}

func newRenderContext(t *testing.T, vars data.Environment) (*RenderContext, string) {
	t.Helper()
	reg := fonts.NewRegistry()
	family, err := reg.LoadData(goregular.TTF)
	require.NoError(t, err)
	return &RenderContext{
		ViewportWidth:  800,
		ViewportHeight: 600,
		Style: Style{
			Foreground: units.MustParseColor("white"),
			FontFamily: family,
		},
		Fonts: reg,
		Vars:  vars,
	}, family
}

// placements returns the offsets of the translated children of a box
// render, skipping the leading backdrop.
func placements(t *testing.T, n scene.Node) (backdrop scene.Rect, at []scene.Point) {
	t.Helper()
	g, ok := n.(*scene.Group)
	require.True(t, ok, "box renders a group")
	require.NotEmpty(t, g.Children)
	box, ok := g.Children[0].(*scene.Box)
	require.True(t, ok, "first child is the backdrop")
	require.Nil(t, box.Fill)
	for _, c := range g.Children[1:] {
		wrap, ok := c.(*scene.Group)
		require.True(t, ok)
		at = append(at, scene.Point{X: wrap.X, Y: wrap.Y})
	}
	return box.Rect, at
}
