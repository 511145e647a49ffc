package units

import (
	"fmt"
	"strings"
)

// Align positions an item along an axis inside a container.
type Align uint8

const (
	Start Align = iota
	Center
	End
)

// ParseAlign accepts start/center/end and the directional aliases
// left/right and top/bottom.
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "start", "left", "top":
		return Start, nil
	case "center", "middle":
		return Center, nil
	case "end", "right", "bottom":
		return End, nil
	default:
		return Start, fmt.Errorf("unknown alignment %q", s)
	}
}

// Offset returns where an item of the given size starts inside a container.
func (a Align) Offset(container, size float64) float64 {
	switch a {
	case Center:
		return (container - size) / 2
	case End:
		return container - size
	default:
		return 0
	}
}

func (a Align) String() string {
	switch a {
	case Center:
		return "center"
	case End:
		return "end"
	default:
		return "start"
	}
}
