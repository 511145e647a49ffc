package scene

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/vk/tickgrid/internal/units"
)

// FaceResolver supplies font faces for text nodes during rasterization.
type FaceResolver interface {
	TextFace(family, weight string, size float64) (text.Face, bool)
}

// Rasterize draws n onto dc in dc's current coordinate space. Text whose
// family cannot be resolved is skipped.
func Rasterize(dc *gg.Context, n Node, faces FaceResolver) error {
	switch n := n.(type) {
	case *Group:
		dc.Push()
		defer dc.Pop()
		dc.Translate(n.X, n.Y)
		for _, c := range n.Children {
			if err := Rasterize(dc, c, faces); err != nil {
				return err
			}
		}
		return nil
	case *Box:
		if n.Fill == nil || !n.Rect.HasArea() {
			return nil
		}
		dc.SetColor(n.Fill.Color.RGBA.Color())
		dc.DrawRectangle(n.Rect.X, n.Rect.Y, n.Rect.W, n.Rect.H)
		return dc.Fill()
	case *Text:
		if n.Content == "" || faces == nil {
			return nil
		}
		face, ok := faces.TextFace(n.Family, n.Weight, n.Size)
		if !ok {
			return nil
		}
		dc.SetFont(face)
		dc.SetColor(n.Color.RGBA.Color())
		dc.DrawString(n.Content, n.X, n.Y+n.Ascent)
		return nil
	case *Path:
		if len(n.Points) < 2 {
			return nil
		}
		if n.Fill != nil {
			tracePath(dc, n.Points, true)
			dc.SetColor(n.Fill.Color.RGBA.Color())
			if err := dc.Fill(); err != nil {
				return err
			}
		}
		if n.Stroke != nil {
			tracePath(dc, n.Points, n.Closed)
			dc.SetColor(n.Stroke.Color.RGBA.Color())
			dc.SetLineWidth(n.Stroke.Width)
			if err := dc.Stroke(); err != nil {
				return err
			}
		}
		return nil
	case nil:
		return nil
	default:
		return fmt.Errorf("scene: unsupported node %T", n)
	}
}

func tracePath(dc *gg.Context, pts []Point, closed bool) {
	dc.ClearPath()
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		dc.LineTo(p.X, p.Y)
	}
	if closed {
		dc.ClosePath()
	}
}

// Placement is where a scene is drawn on a frame.
type Placement struct {
	Node Node
	X, Y float64
	Zoom float64
}

// EncodePNG rasterizes the placed scenes onto a width x height frame filled
// with background and writes it to w as PNG.
func EncodePNG(w io.Writer, width, height int, background units.Color, faces FaceResolver, placements ...Placement) error {
	dc := gg.NewContext(width, height)
	defer dc.Close()

	dc.ClearWithColor(background.RGBA)
	for _, p := range placements {
		zoom := p.Zoom
		if zoom == 0 {
			zoom = 1
		}
		dc.Push()
		dc.Translate(p.X, p.Y)
		dc.Scale(zoom, zoom)
		err := Rasterize(dc, p.Node, faces)
		dc.Pop()
		if err != nil {
			return err
		}
	}
	return dc.EncodePNG(w)
}
