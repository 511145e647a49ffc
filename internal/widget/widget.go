// Package widget wraps a component tree with the placement and lifecycle the
// host loop drives: set up once, then update and render every tick.
package widget

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/tickgrid/internal/component"
	"github.com/vk/tickgrid/internal/ctxlog"
	"github.com/vk/tickgrid/internal/registry"
	"github.com/vk/tickgrid/internal/scene"
	"github.com/vk/tickgrid/internal/setup"
	"github.com/vk/tickgrid/internal/units"
)

// ErrAlreadySetUp is returned by a second call to Setup.
var ErrAlreadySetUp = errors.New("widget is already set up")

// Anchor positions a widget along one axis of the frame: Offset away from
// the start or end edge, or centered when Align is Center.
type Anchor struct {
	Align  units.Align
	Offset units.Length
}

// Resolve returns the start coordinate of a widget of the given size.
func (a Anchor) Resolve(frame, size, viewportWidth, viewportHeight float64) float64 {
	off := a.Offset.Pixels(viewportWidth, viewportHeight)
	switch a.Align {
	case units.Center:
		return (frame - size) / 2
	case units.End:
		return frame - size - off
	default:
		return off
	}
}

// Position places a widget on the frame. A zero Zoom means 1.
type Position struct {
	X, Y Anchor
	Zoom float64
}

func (p Position) zoom() float64 {
	if p.Zoom <= 0 {
		return 1
	}
	return p.Zoom
}

// Widget is a named, positioned component tree.
type Widget struct {
	Name     string
	Position Position
	Root     component.Component

	bindings []setup.Binding
	setUp    bool
}

// New returns a widget around root.
func New(name string, pos Position, root component.Component) *Widget {
	return &Widget{Name: name, Position: pos, Root: root}
}

// Setup collects the jobs of the tree and runs them with s against c. It may
// only be called once, whether or not it succeeds.
func (w *Widget) Setup(ctx context.Context, s *setup.Scheduler, c *setup.Context) error {
	if w.setUp {
		return ErrAlreadySetUp
	}
	w.setUp = true

	ctx, logger := ctxlog.With(ctx, "widget", w.Name)

	jobs := w.Root.Setup()
	logger.Debug("Widget setup jobs collected.", "jobs", len(jobs))
	before := len(c.Bindings())
	if err := s.Run(ctx, c, jobs); err != nil {
		return fmt.Errorf("setting up widget %s: %w", w.Name, err)
	}
	w.bindings = c.Bindings()[before:]
	logger.Info("Widget set up.", "bindings", len(w.bindings))
	return nil
}

// Bindings returns the data bindings declared by this widget.
func (w *Widget) Bindings() []setup.Binding {
	return w.bindings
}

// Release releases the data bindings of the widget. The widget reads no
// variables afterwards.
func (w *Widget) Release() {
	for _, b := range w.bindings {
		registry.Release(b.Handle)
	}
	w.bindings = nil
}

// Update feeds the tree the variables of the current tick.
func (w *Widget) Update(env *component.UpdateEnv) error {
	return w.Root.Update(env)
}

// Render renders the tree in widget coordinates.
func (w *Widget) Render(rc *component.RenderContext) (scene.Node, error) {
	return w.Root.Render(rc)
}

// Viewport returns the size that viewport-relative lengths inside the tree
// resolve against: the frame scaled down by the zoom.
func (w *Widget) Viewport(frameWidth, frameHeight float64) (width, height float64) {
	z := w.Position.zoom()
	return frameWidth / z, frameHeight / z
}

// Placement positions a rendered tree on the frame using its bounds.
func (w *Widget) Placement(n scene.Node, frameWidth, frameHeight float64) scene.Placement {
	z := w.Position.zoom()
	b := n.Bounds()
	return scene.Placement{
		Node: n,
		X:    w.Position.X.Resolve(frameWidth, b.W*z, frameWidth, frameHeight),
		Y:    w.Position.Y.Resolve(frameHeight, b.H*z, frameWidth, frameHeight),
		Zoom: z,
	}
}
