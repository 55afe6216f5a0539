// Package layout implements the proportional split-tree behind the column and
// window tiling: per-level percentage sequences, the split/remove/resize/move
// algorithms over them, and the drag gesture that drives those algorithms.
package layout

// Axis selects one dimension of the surface.
type Axis int

const (
	// Horizontal is the axis columns are laid out along (left/width).
	Horizontal Axis = iota
	// Vertical is the axis windows are laid out along (top/height).
	Vertical
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Point is a pointer coordinate relative to the top-level surface.
type Point struct {
	X, Y float64
}

// Along returns the coordinate of p on axis a.
func (p Point) Along(a Axis) float64 {
	if a == Horizontal {
		return p.X
	}
	return p.Y
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Handle is the host's opaque reference to a rendered node.
type Handle any

// Probe reports on-screen geometry of rendered nodes, relative to the
// top-level surface. It is a pure query.
//
// For a container handle the extent is the area columns share; for a column
// handle queried on the Vertical axis it is the area its windows share.
type Probe interface {
	Position(h Handle, a Axis) float64
	Extent(h Handle, a Axis) float64
}

// origin returns the top-left corner of h.
func origin(p Probe, h Handle) Point {
	return Point{X: p.Position(h, Horizontal), Y: p.Position(h, Vertical)}
}

func clamp(lo, x, hi float64) (float64, bool) {
	if lo > hi {
		return 0, false
	}
	if x < lo {
		return lo, true
	}
	if x > hi {
		return hi, true
	}
	return x, true
}
