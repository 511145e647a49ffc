package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/scene"
)

func TestIfSelectsBranch(t *testing.T) {
	then, otherwise := block(10, 10), block(20, 20)

	tests := []struct {
		name string
		cond Expr
		els  Component
		want scene.Rect
	}{
		{"true with else", Literal(data.Bool(true)), otherwise, scene.Rect{W: 10, H: 10}},
		{"true without else", Literal(data.Bool(true)), nil, scene.Rect{W: 10, H: 10}},
		{"false with else", Literal(data.Bool(false)), otherwise, scene.Rect{W: 20, H: 20}},
		{"false without else", Literal(data.Bool(false)), nil, scene.Rect{}},
		{"variable coerced from float", Var("load"), otherwise, scene.Rect{W: 10, H: 10}},
		{"variable below epsilon is false", Var("tiny"), otherwise, scene.Rect{W: 20, H: 20}},
		{"unknown value is false", Var("unknown"), otherwise, scene.Rect{W: 20, H: 20}},
		{"non boolean string is false", Literal(data.String("yes please")), otherwise, scene.Rect{W: 20, H: 20}},
	}

	vars := data.Environment{
		"load":    data.Float64(0.3),
		"tiny":    data.Float64(1e-17),
		"unknown": data.Unknown(),
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rc, _ := newRenderContext(t, vars)
			n, err := (&If{Cond: tc.cond, Then: then, Else: tc.els}).Render(rc)
			require.NoError(t, err)
			assert.Equal(t, tc.want, n.Bounds())
		})
	}
}

func TestIfFalseWithoutElseIsEmptyGroup(t *testing.T) {
	rc, _ := newRenderContext(t, nil)
	n, err := (&If{Cond: Literal(data.Bool(false)), Then: block(1, 1)}).Render(rc)
	require.NoError(t, err)

	g, ok := n.(*scene.Group)
	require.True(t, ok)
	assert.Empty(t, g.Children)
	assert.True(t, g.Bounds().Empty())
}

func TestIfUnboundVariable(t *testing.T) {
	rc, _ := newRenderContext(t, data.Environment{})
	_, err := (&If{Cond: Var("battery_charging"), Then: block(1, 1)}).Render(rc)

	var rerr *RenderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, UnboundVariable, rerr.Kind)
	assert.Equal(t, "battery_charging", rerr.Name)
}

func TestIfVisitsBothBranches(t *testing.T) {
	then := &Graph{Name: "a", SampleCount: 2}
	otherwise := &Graph{Name: "a", SampleCount: 3}
	c := &If{Cond: Literal(data.Bool(true)), Then: then, Else: otherwise}

	assert.Empty(t, c.Setup())
	assert.Len(t, then.Samples(), 2)
	assert.Len(t, otherwise.Samples(), 3)

	require.NoError(t, c.Update(&UpdateEnv{Vars: data.Environment{"a": data.Float64(1)}}))
	assert.Equal(t, 1.0, then.Samples()[1])
	assert.Equal(t, 1.0, otherwise.Samples()[2])
}

func TestNilChildrenRenderNothing(t *testing.T) {
	rc, _ := newRenderContext(t, nil)
	env := &UpdateEnv{Vars: data.Environment{}}

	for name, c := range map[string]Component{
		"if without branches":   &If{Cond: Literal(data.Bool(true))},
		"overlap without child": &Overlap{},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, c.Setup())
			require.NoError(t, c.Update(env))
			n, err := c.Render(rc)
			require.NoError(t, err)
			assert.True(t, n.Bounds().Empty())
		})
	}

	t.Run("overlap without child inside a box", func(t *testing.T) {
		n, err := (&HBox{Children: []Component{block(10, 5), &Overlap{}}}).Render(rc)
		require.NoError(t, err)
		backdrop, _ := placements(t, n)
		assert.Equal(t, scene.Rect{W: 10, H: 5}, backdrop)
	})
}
