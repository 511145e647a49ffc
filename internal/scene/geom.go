package scene

import "math"

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. A rectangle with no extent on either
// axis is empty and is ignored when computing unions. A rectangle with extent
// on one axis only, such as an empty line of text, still counts.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether r has no extent on either axis.
func (r Rect) Empty() bool { return r.W <= 0 && r.H <= 0 }

// HasArea reports whether r covers any pixels.
func (r Rect) HasArea() bool { return r.W > 0 && r.H > 0 }

// Right is the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom is the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Translate moves r by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	if r.Empty() {
		return r
	}
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	switch {
	case o.Empty():
		return r
	case r.Empty():
		return o
	}
	x0 := math.Min(r.X, o.X)
	y0 := math.Min(r.Y, o.Y)
	x1 := math.Max(r.Right(), o.Right())
	y1 := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
