package component

import (
	"math"

	"github.com/vk/tickgrid/internal/scene"
	"github.com/vk/tickgrid/internal/setup"
	"github.com/vk/tickgrid/internal/units"
)

// HBox lays children out left to right. YAlign positions each child within
// the height of the tallest one.
type HBox struct {
	base
	YAlign   units.Align
	Children []Component
}

// VBox lays children out top to bottom. XAlign positions each child within
// the width of the widest one.
type VBox struct {
	base
	XAlign   units.Align
	Children []Component
}

func (b *HBox) Setup() []setup.Job { return setupAll(b.Children) }

func (b *HBox) Update(env *UpdateEnv) error { return updateAll(b.Children, env) }

func (b *HBox) Render(rc *RenderContext) (scene.Node, error) {
	return layout(rc, horizontal, b.YAlign, b.Children)
}

func (b *VBox) Setup() []setup.Job { return setupAll(b.Children) }

func (b *VBox) Update(env *UpdateEnv) error { return updateAll(b.Children, env) }

func (b *VBox) Render(rc *RenderContext) (scene.Node, error) {
	return layout(rc, vertical, b.XAlign, b.Children)
}

type axis int

const (
	horizontal axis = iota
	vertical
)

// far is the main-axis extent of a child: the far edge of its bounds.
func (a axis) far(r scene.Rect) float64 {
	if a == horizontal {
		return r.Right()
	}
	return r.Bottom()
}

// size is the main-axis size of a child.
func (a axis) size(r scene.Rect) float64 {
	if a == horizontal {
		return r.W
	}
	return r.H
}

// cross is the cross-axis size of a child.
func (a axis) cross(r scene.Rect) float64 {
	if a == horizontal {
		return r.H
	}
	return r.W
}

func (a axis) translate(main, cross float64) (x, y float64) {
	if a == horizontal {
		return main, cross
	}
	return cross, main
}

type placed struct {
	at   float64
	node scene.Node
}

// layout places children along a cursor on the main axis.
//
// Margin advances the cursor, SetPosition moves it, Overlap pulls its child
// back by the previous advance, and any other child is placed at the cursor
// and advances it by its extent. The result is a backdrop covering the
// occupied area followed by each child translated into place.
func layout(rc *RenderContext, a axis, align units.Align, children []Component) (scene.Node, error) {
	var (
		cursor      float64
		lastAdvance float64
		crossMax    float64
		items       = make([]placed, 0, len(children))
	)

	for _, child := range children {
		switch c := child.(type) {
		case *Margin:
			size := rc.px(c.Size)
			cursor += size
			lastAdvance = size
		case *SetPosition:
			cursor = rc.px(c.To)
			lastAdvance = 0
		case *Overlap:
			n, err := c.Render(rc)
			if err != nil {
				return nil, err
			}
			bounds := n.Bounds()
			extent := a.size(bounds)
			items = append(items, placed{at: cursor - lastAdvance, node: n})
			cursor += math.Max(extent-lastAdvance, 0)
			lastAdvance = math.Max(extent, lastAdvance)
			crossMax = math.Max(crossMax, a.cross(bounds))
		default:
			n, err := child.Render(rc)
			if err != nil {
				return nil, err
			}
			bounds := n.Bounds()
			extent := a.far(bounds)
			items = append(items, placed{at: cursor, node: n})
			cursor += extent
			lastAdvance = extent
			crossMax = math.Max(crossMax, a.cross(bounds))
		}
	}

	w, h := a.translate(cursor, crossMax)
	out := scene.NewGroup(&scene.Box{Rect: scene.Rect{W: w, H: h}})
	for _, it := range items {
		x, y := a.translate(it.at, align.Offset(crossMax, a.cross(it.node.Bounds())))
		out.Append(&scene.Group{X: x, Y: y, Children: []scene.Node{it.node}})
	}
	return out, nil
}

// Margin inserts space between box children.
type Margin struct {
	base
	Size units.Length
}

// SetPosition moves the box cursor to an absolute offset.
type SetPosition struct {
	base
	To units.Length
}

// Overlap places its child over the previous box child. A nil Child renders
// nothing.
type Overlap struct {
	base
	Child Component
}

func (o *Overlap) Setup() []setup.Job { return orEmpty(o.Child).Setup() }

func (o *Overlap) Update(env *UpdateEnv) error { return orEmpty(o.Child).Update(env) }

func (o *Overlap) Render(rc *RenderContext) (scene.Node, error) {
	return orEmpty(o.Child).Render(rc)
}
