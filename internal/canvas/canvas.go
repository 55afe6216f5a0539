// Package canvas renders the split-tree onto a grid of terminal cells. It is
// the layout engine's host: it keeps the node tree the engine describes,
// turns committed percentages into cell rectangles, answers geometry queries
// and owns the pointer listeners of the top-level surface.
//
// Geometry is reported in virtual pixels, config.CellWidth by
// config.CellHeight per cell, so minimum sizes mean the same on both axes.
package canvas

import (
	"math"

	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/tilecols/internal/config"
	"github.com/Gaurav-Gosain/tilecols/internal/layout"
)

// Rows taken by the app header above the columns and the status bar below.
const (
	appHeaderRows = 1
	statusRows    = 1
)

// Rect is a rectangle in cells.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

type nodeKind int

const (
	kindContainer nodeKind = iota
	kindColumn
	kindWindow
)

// Node is a rendered element. The engine holds it as an opaque handle.
type Node struct {
	kind      nodeKind
	parent    *Node
	children  []*Node
	sizes     []float64
	destroyed bool

	rect  Rect
	inner Rect // area shared by the children

	title string
	menu  []string
}

// Rect returns the cells the node covers.
func (n *Node) Rect() Rect { return n.rect }

// Inner returns the cells the node's children share.
func (n *Node) Inner() Rect { return n.inner }

// Title returns the header title.
func (n *Node) Title() string { return n.title }

// Menu returns the header menu titles.
func (n *Node) Menu() []string { return append([]string(nil), n.menu...) }

// Empty reports whether the node has no children.
func (n *Node) Empty() bool { return len(n.children) == 0 }

// Destroyed reports whether the engine has released the node.
func (n *Node) Destroyed() bool { return n.destroyed }

// Canvas is a cell grid hosting one layout.Engine.
type Canvas struct {
	width, height int
	statusBar     bool
	root          *Node

	busy    bool
	nextID  int
	upFns   map[int]func(layout.Point)
	leaveFn map[int]func()
	order   []int
}

// New creates a canvas of width by height cells.
func New(width, height int, statusBar bool) *Canvas {
	c := &Canvas{
		statusBar: statusBar,
		root:      &Node{kind: kindContainer},
		upFns:     make(map[int]func(layout.Point)),
		leaveFn:   make(map[int]func()),
	}
	c.Resize(width, height)
	return c
}

// Root returns the container node, the engine's root handle.
func (c *Canvas) Root() *Node { return c.root }

// Size returns the canvas size in cells.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

// Resize changes the canvas size and lays everything out again.
func (c *Canvas) Resize(width, height int) {
	c.width = max(width, 0)
	c.height = max(height, 0)
	c.layout()
}

// SetStatusBar toggles the bottom status row.
func (c *Canvas) SetStatusBar(on bool) {
	c.statusBar = on
	c.layout()
}

// StatusRow returns the row of the status bar, or -1 when it is hidden.
func (c *Canvas) StatusRow() int {
	if !c.statusBar || c.height == 0 {
		return -1
	}
	return c.height - 1
}

// SetLabels sets the header title and menu titles shown for h.
func (c *Canvas) SetLabels(h layout.Handle, title string, menu []string) {
	n := h.(*Node)
	n.title = title
	n.menu = append([]string(nil), menu...)
}

// CreateChild implements layout.Host.
func (c *Canvas) CreateChild(parent layout.Handle, kind layout.Kind) layout.Handle {
	k := kindColumn
	if kind == layout.KindWindow {
		k = kindWindow
	}
	return &Node{kind: k, parent: parent.(*Node)}
}

// DestroyChild implements layout.Host.
func (c *Canvas) DestroyChild(h layout.Handle) {
	n := h.(*Node)
	n.destroyed = true
	if p := n.parent; p != nil {
		for i, ch := range p.children {
			if ch == n {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}
	c.layout()
}

// ReorderChildren implements layout.Host.
func (c *Canvas) ReorderChildren(parent layout.Handle, order []layout.Handle) {
	p := parent.(*Node)
	children := make([]*Node, len(order))
	for i, h := range order {
		n := h.(*Node)
		n.parent = p
		children[i] = n
	}
	p.children = children
}

// ApplySizes implements layout.Host.
func (c *Canvas) ApplySizes(parent layout.Handle, sizes []float64) {
	parent.(*Node).sizes = append([]float64(nil), sizes...)
	c.layout()
}

// Position implements layout.Probe.
func (c *Canvas) Position(h layout.Handle, a layout.Axis) float64 {
	n := h.(*Node)
	if a == layout.Horizontal {
		return float64(n.rect.X) * config.CellWidth
	}
	if n.kind == kindWindow {
		return float64(n.rect.Y) * config.CellHeight
	}
	return float64(n.inner.Y) * config.CellHeight
}

// Extent implements layout.Probe.
func (c *Canvas) Extent(h layout.Handle, a layout.Axis) float64 {
	n := h.(*Node)
	if a == layout.Horizontal {
		return float64(n.rect.W) * config.CellWidth
	}
	if n.kind == kindWindow {
		return float64(n.rect.H) * config.CellHeight
	}
	return float64(n.inner.H) * config.CellHeight
}

// PointAt converts a cell to surface coordinates, at the cell's centre.
func PointAt(x, y int) layout.Point {
	return layout.Point{
		X: (float64(x) + 0.5) * config.CellWidth,
		Y: (float64(y) + 0.5) * config.CellHeight,
	}
}

func (c *Canvas) layout() {
	bottom := c.height
	if c.statusBar {
		bottom -= statusRows
	}
	top := min(appHeaderRows, c.height)
	c.root.rect = Rect{X: 0, Y: 0, W: c.width, H: c.height}
	c.root.inner = Rect{X: 0, Y: top, W: c.width, H: max(bottom-top, 0)}

	area := c.root.inner
	for i, col := range c.root.children {
		x0, x1 := span(c.root.sizes, i, area.W)
		col.rect = Rect{X: area.X + x0, Y: area.Y, W: x1 - x0, H: area.H}
		// The first row of a column is its header.
		col.inner = Rect{X: col.rect.X, Y: col.rect.Y + 1, W: col.rect.W, H: max(col.rect.H-1, 0)}
		if col.rect.H == 0 {
			col.inner.Y = col.rect.Y
		}

		for j, w := range col.children {
			y0, y1 := span(col.sizes, j, col.inner.H)
			w.rect = Rect{X: col.inner.X, Y: col.inner.Y + y0, W: col.inner.W, H: y1 - y0}
			w.inner = Rect{X: w.rect.X, Y: w.rect.Y + 1, W: w.rect.W, H: max(w.rect.H-1, 0)}
		}
	}
}

// span returns the cell range of sibling i out of total cells, rounding the
// cumulative percentages so neighbours always tile without gaps.
func span(sizes []float64, i, total int) (int, int) {
	if i >= len(sizes) {
		return total, total
	}
	var before float64
	for _, s := range sizes[:i] {
		before += s
	}
	start := int(math.Round(before * float64(total) / 100))
	end := int(math.Round((before + sizes[i]) * float64(total) / 100))
	if i == len(sizes)-1 {
		end = total
	}
	start = min(max(start, 0), total)
	end = min(max(end, start), total)
	return start, end
}

// Span is the cell range of one header menu entry. End is exclusive.
type Span struct {
	Index      int
	Start, End int
	Row        int
}

// MenuSpans returns where the menu entries of n are drawn. Entries that do
// not fit inside the node are left out.
func (c *Canvas) MenuSpans(n *Node) []Span {
	var x, row, right int
	switch n.kind {
	case kindContainer:
		x, row, right = 1, 0, c.width
	default:
		x, row, right = n.rect.X+2, n.rect.Y, n.rect.X+n.rect.W
		if n.title != "" {
			x += ansi.StringWidth(n.title) + 1
		}
	}
	if n.kind != kindContainer && n.rect.H == 0 {
		return nil
	}
	spans := make([]Span, 0, len(n.menu))
	for i, entry := range n.menu {
		w := ansi.StringWidth(entry)
		if x+w > right {
			break
		}
		spans = append(spans, Span{Index: i, Start: x, End: x + w, Row: row})
		x += w + 1
	}
	return spans
}
