package layout

import (
	"github.com/google/uuid"
)

// Kind identifies what a host node represents.
type Kind int

const (
	KindColumn Kind = iota
	KindWindow
)

func (k Kind) String() string {
	if k == KindColumn {
		return "column"
	}
	return "window"
}

// Host mirrors the split-tree onto the rendering layer. The engine calls it
// after every committed change; it never reads layout state back from it
// except through a Probe.
type Host interface {
	// CreateChild creates the backing node for a new child of parent.
	CreateChild(parent Handle, kind Kind) Handle
	// DestroyChild releases a removed child.
	DestroyChild(h Handle)
	// ReorderChildren sets the complete, ordered child list of parent. A
	// handle that previously belonged to another parent moves here.
	ReorderChildren(parent Handle, order []Handle)
	// ApplySizes renders the committed percentages of parent's children.
	ApplySizes(parent Handle, sizes []float64)
}

// Container is the root of the tree. It owns the columns and their widths.
type Container struct {
	handle  Handle
	columns []*Column
	sizes   Sequence
}

// Handle returns the host node of the container.
func (c *Container) Handle() Handle { return c.handle }

// Len returns the number of columns.
func (c *Container) Len() int { return len(c.columns) }

// Column owns an ordered run of windows and their heights.
type Column struct {
	ID string

	handle    Handle
	container *Container
	index     int
	windows   []*Window
	sizes     Sequence
}

// Handle returns the host node of the column.
func (c *Column) Handle() Handle { return c.handle }

// Index returns the position of the column in its container, or -1 once the
// column has been removed.
func (c *Column) Index() int {
	if c.container == nil {
		return -1
	}
	return c.index
}

// Attached reports whether the column is still part of the tree.
func (c *Column) Attached() bool { return c.container != nil }

// Len returns the number of windows in the column.
func (c *Column) Len() int { return len(c.windows) }

// Windows returns a snapshot of the column's windows in order.
func (c *Column) Windows() []*Window {
	return append([]*Window(nil), c.windows...)
}

// Window is a leaf holding opaque content and a title.
type Window struct {
	ID      string
	Title   string
	Content any

	handle Handle
	column *Column
	index  int
}

// Handle returns the host node of the window.
func (w *Window) Handle() Handle { return w.handle }

// Column returns the owning column, or nil once the window is removed.
func (w *Window) Column() *Column { return w.column }

// Index returns the position of the window in its column, or -1 once the
// window has been removed.
func (w *Window) Index() int {
	if w.column == nil {
		return -1
	}
	return w.index
}

// Attached reports whether the window is still part of the tree.
func (w *Window) Attached() bool { return w.column != nil && w.column.container != nil }

// level is one run of siblings sharing a Sequence, abstracted over axis so
// the same algorithms serve columns and windows.
type level interface {
	name() string
	owner() Handle
	axis() Axis
	seq() *Sequence
	count() int
	handleAt(i int) Handle
	handles() []Handle
	// relocate moves child i so it lands before child j and reindexes.
	relocate(i, j int)
}

func (c *Container) name() string { return "columns" }
func (c *Container) owner() Handle { return c.handle }
func (c *Container) axis() Axis { return Horizontal }
func (c *Container) seq() *Sequence { return &c.sizes }
func (c *Container) count() int { return len(c.columns) }
func (c *Container) handleAt(i int) Handle { return c.columns[i].handle }

func (c *Container) handles() []Handle {
	hs := make([]Handle, len(c.columns))
	for i, col := range c.columns {
		hs[i] = col.handle
	}
	return hs
}

func (c *Container) relocate(i, j int) {
	moveElement(c.columns, i, j)
	c.reindex()
}

func (c *Container) reindex() {
	for i, col := range c.columns {
		col.index = i
	}
}

func (c *Column) name() string { return "windows of column " + c.ID }
func (c *Column) owner() Handle { return c.handle }
func (c *Column) axis() Axis { return Vertical }
func (c *Column) seq() *Sequence { return &c.sizes }
func (c *Column) count() int { return len(c.windows) }
func (c *Column) handleAt(i int) Handle { return c.windows[i].handle }

func (c *Column) handles() []Handle {
	hs := make([]Handle, len(c.windows))
	for i, w := range c.windows {
		hs[i] = w.handle
	}
	return hs
}

func (c *Column) relocate(i, j int) {
	moveElement(c.windows, i, j)
	c.reindex()
}

func (c *Column) reindex() {
	for i, w := range c.windows {
		w.index = i
	}
}

func (c *Column) insertWindow(i int, w *Window) {
	c.windows = append(c.windows, nil)
	copy(c.windows[i+1:], c.windows[i:])
	c.windows[i] = w
	w.column = c
	c.reindex()
}

func (c *Column) detachWindow(i int) *Window {
	w := c.windows[i]
	c.windows = append(c.windows[:i], c.windows[i+1:]...)
	c.reindex()
	return w
}

func newID() string {
	return uuid.New().String()
}
