package widget

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/vk/tickgrid/internal/component"
	"github.com/vk/tickgrid/internal/data"
	"github.com/vk/tickgrid/internal/fonts"
	"github.com/vk/tickgrid/internal/registry"
	"github.com/vk/tickgrid/internal/resolver"
	"github.com/vk/tickgrid/internal/scene"
	"github.com/vk/tickgrid/internal/setup"
	"github.com/vk/tickgrid/internal/units"
)

type boolSource struct{ v bool }

func (s *boolSource) Query(string, data.Format) (registry.Handle, error) {
	return registry.HandleFunc(func() data.Data { return data.Bool(s.v) }), nil
}

func (s *boolSource) Update(context.Context) error { return nil }

func newTree() component.Component {
	return &component.VBox{Children: []component.Component{
		&component.FetchData{Declaration: setup.Declaration{Name: "charging", Source: "battery", Query: "charging", Format: data.FormatBool}},
		&component.If{
			Cond: component.Var("charging"),
			Then: &component.Text{Content: []component.Fragment{component.Lit("charging")}},
			Else: &component.Text{Content: []component.Fragment{component.Lit("discharging")}},
		},
	}}
}

func fixture(t *testing.T) (*registry.Registry, *fonts.Registry, string) {
	t.Helper()
	reg := registry.New()
	reg.RegisterSource("battery", &boolSource{v: true})
	fr := fonts.NewRegistry()
	family, err := fr.LoadData(goregular.TTF)
	require.NoError(t, err)
	return reg, fr, family
}

func renderContext(fr *fonts.Registry, family string, vars data.Environment) *component.RenderContext {
	return &component.RenderContext{
		ViewportWidth:  200,
		ViewportHeight: 40,
		Style:          component.Style{Foreground: units.MustParseColor("white"), FontFamily: family},
		Fonts:          fr,
		Vars:           vars,
	}
}

func TestRenderBeforeSetupFailsWithUnboundVariable(t *testing.T) {
	_, fr, family := fixture(t)
	w := New("battery", Position{}, newTree())

	for range 3 {
		_, err := w.Render(renderContext(fr, family, data.Environment{}))
		var rerr *component.RenderError
		require.ErrorAs(t, err, &rerr)
		assert.Equal(t, component.UnboundVariable, rerr.Kind)
		assert.Equal(t, "charging", rerr.Name)
	}
}

func TestLifecycle(t *testing.T) {
	reg, fr, family := fixture(t)
	w := New("battery", Position{}, newTree())
	sc := setup.NewContext(fr, reg, nil)

	require.NoError(t, w.Setup(context.Background(), &setup.Scheduler{}, sc))
	require.Len(t, w.Bindings(), 1)

	env, err := resolver.New(reg).Resolve(context.Background(), w.Bindings())
	require.NoError(t, err)
	require.NoError(t, w.Update(&component.UpdateEnv{Vars: env}))

	n, err := w.Render(renderContext(fr, family, env))
	require.NoError(t, err)

	var texts []string
	for _, leaf := range scene.Leaves(n) {
		if txt, ok := leaf.(*scene.Text); ok {
			texts = append(texts, txt.Content)
		}
	}
	assert.Equal(t, []string{"charging"}, texts)
}

func TestSetupRunsOnce(t *testing.T) {
	reg, fr, _ := fixture(t)
	w := New("battery", Position{}, newTree())
	sc := setup.NewContext(fr, reg, nil)

	require.NoError(t, w.Setup(context.Background(), &setup.Scheduler{}, sc))
	err := w.Setup(context.Background(), &setup.Scheduler{}, sc)
	assert.ErrorIs(t, err, ErrAlreadySetUp)
	assert.Len(t, sc.Bindings(), 1, "second setup must not run jobs")
}

func TestFailedSetupCannotBeRetried(t *testing.T) {
	_, fr, _ := fixture(t)
	w := New("battery", Position{}, newTree())
	sc := setup.NewContext(fr, registry.New(), nil)

	err := w.Setup(context.Background(), &setup.Scheduler{}, sc)
	var serr *setup.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, setup.UnknownSource, serr.Kind)

	assert.ErrorIs(t, w.Setup(context.Background(), &setup.Scheduler{}, sc), ErrAlreadySetUp)
}

func TestPlacement(t *testing.T) {
	n := scene.NewGroup(&scene.Box{Rect: scene.Rect{W: 40, H: 10}})

	tests := []struct {
		name string
		pos  Position
		want scene.Placement
	}{
		{"top left", Position{X: Anchor{Offset: units.Px(5)}, Y: Anchor{Offset: units.Px(2)}}, scene.Placement{Node: n, X: 5, Y: 2, Zoom: 1}},
		{"centered", Position{X: Anchor{Align: units.Center}, Y: Anchor{Align: units.Center}}, scene.Placement{Node: n, X: 80, Y: 15, Zoom: 1}},
		{"bottom right", Position{X: Anchor{Align: units.End, Offset: units.Px(10)}, Y: Anchor{Align: units.End}}, scene.Placement{Node: n, X: 150, Y: 30, Zoom: 1}},
		{"zoomed", Position{X: Anchor{Align: units.End}, Zoom: 2}, scene.Placement{Node: n, X: 120, Y: 0, Zoom: 2}},
		{"viewport offset", Position{X: Anchor{Offset: units.Length{Value: 10, Unit: units.ViewportWidth}}}, scene.Placement{Node: n, X: 20, Y: 0, Zoom: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := New("w", tc.pos, &component.Group{})
			assert.Equal(t, tc.want, w.Placement(n, 200, 40))
		})
	}
}

func TestViewportAccountsForZoom(t *testing.T) {
	w := New("w", Position{Zoom: 2}, &component.Group{})
	vw, vh := w.Viewport(200, 40)
	assert.Equal(t, 100.0, vw)
	assert.Equal(t, 20.0, vh)
}
