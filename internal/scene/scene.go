package scene

import (
	"math"

	"github.com/vk/tickgrid/internal/units"
)

// Node is an element of the scene graph.
type Node interface {
	// Bounds is the bounding box in the parent's coordinate space.
	Bounds() Rect
	node()
}

// Group translates its children by (X, Y).
type Group struct {
	X, Y     float64
	Children []Node
}

// Fill paints the inside of a shape.
type Fill struct {
	Color units.Color
}

// Stroke paints the outline of a shape.
type Stroke struct {
	Color units.Color
	Width float64
}

// Box is a rectangle. A Box without a Fill is a backdrop: it takes space and
// is used for hit-testing and measurement but draws nothing.
type Box struct {
	Rect Rect
	Fill *Fill
}

// Text is a single line of text whose line box starts at (X, Y).
type Text struct {
	X, Y    float64
	Content string
	Family  string
	Weight  string
	Size    float64
	Color   units.Color
	Width   float64
	Height  float64
	Ascent  float64
}

// Path is a polyline, optionally closed and filled.
type Path struct {
	Points []Point
	Closed bool
	Stroke *Stroke
	Fill   *Fill
}

// NewGroup returns a group at the origin holding children.
func NewGroup(children ...Node) *Group {
	return &Group{Children: children}
}

// Append adds children to g.
func (g *Group) Append(children ...Node) {
	g.Children = append(g.Children, children...)
}

func (g *Group) Bounds() Rect {
	var r Rect
	for _, c := range g.Children {
		r = r.Union(c.Bounds())
	}
	return r.Translate(g.X, g.Y)
}

func (b *Box) Bounds() Rect { return b.Rect }

func (t *Text) Bounds() Rect {
	return Rect{X: t.X, Y: t.Y, W: t.Width, H: t.Height}
}

func (p *Path) Bounds() Rect {
	if len(p.Points) == 0 {
		return Rect{}
	}
	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	for _, pt := range p.Points {
		x0, y0 = math.Min(x0, pt.X), math.Min(y0, pt.Y)
		x1, y1 = math.Max(x1, pt.X), math.Max(y1, pt.Y)
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (*Group) node() {}
func (*Box) node()   {}
func (*Text) node()  {}
func (*Path) node()  {}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	if g, ok := n.(*Group); ok {
		for _, c := range g.Children {
			Walk(c, fn)
		}
	}
}

// Leaves returns the non-group nodes under n in traversal order.
func Leaves(n Node) []Node {
	var out []Node
	Walk(n, func(c Node) bool {
		if _, ok := c.(*Group); !ok {
			out = append(out, c)
		}
		return true
	})
	return out
}
