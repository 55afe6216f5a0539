package canvas

import "github.com/Gaurav-Gosain/tilecols/internal/layout"

// SetBusy implements layout.Surface.
func (c *Canvas) SetBusy(busy bool) { c.busy = busy }

// Busy reports whether a drag is armed.
func (c *Canvas) Busy() bool { return c.busy }

// OnPointerUp implements layout.Surface.
func (c *Canvas) OnPointerUp(fn func(layout.Point)) (remove func()) {
	id := c.register()
	c.upFns[id] = fn
	return func() { c.unregister(id) }
}

// OnPointerLeave implements layout.Surface.
func (c *Canvas) OnPointerLeave(fn func()) (remove func()) {
	id := c.register()
	c.leaveFn[id] = fn
	return func() { c.unregister(id) }
}

// Listeners returns how many pointer listeners are registered.
func (c *Canvas) Listeners() int { return len(c.order) }

// PointerUp delivers a button release at cell (x, y) to every listener
// registered when the release arrived.
func (c *Canvas) PointerUp(x, y int) {
	p := PointAt(x, y)
	for _, id := range append([]int(nil), c.order...) {
		if fn, ok := c.upFns[id]; ok {
			fn(p)
		}
	}
}

// PointerLeave tells the listeners the pointer left the surface.
func (c *Canvas) PointerLeave() {
	for _, id := range append([]int(nil), c.order...) {
		if fn, ok := c.leaveFn[id]; ok {
			fn()
		}
	}
}

func (c *Canvas) register() int {
	c.nextID++
	c.order = append(c.order, c.nextID)
	return c.nextID
}

func (c *Canvas) unregister(id int) {
	delete(c.upFns, id)
	delete(c.leaveFn, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Target says what a cell belongs to.
type Target int

const (
	TargetNone Target = iota
	TargetAppMenu
	TargetColumnHeader
	TargetColumnHandle
	TargetColumnMenu
	TargetWindowHeader
	TargetWindowHandle
	TargetWindowMenu
	TargetWindowBody
	TargetStatus
)

func (t Target) String() string {
	switch t {
	case TargetAppMenu:
		return "app-menu"
	case TargetColumnHeader:
		return "column-header"
	case TargetColumnHandle:
		return "column-handle"
	case TargetColumnMenu:
		return "column-menu"
	case TargetWindowHeader:
		return "window-header"
	case TargetWindowHandle:
		return "window-handle"
	case TargetWindowMenu:
		return "window-menu"
	case TargetWindowBody:
		return "window-body"
	case TargetStatus:
		return "status"
	default:
		return "none"
	}
}

// Hit is the result of a hit test. Node is the container, column or window
// hit, and Entry the menu entry index for the menu targets.
type Hit struct {
	Target Target
	Node   *Node
	Entry  int
}

// HitTest reports what lies under cell (x, y).
func (c *Canvas) HitTest(x, y int) Hit {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return Hit{}
	}
	if y == c.StatusRow() {
		return Hit{Target: TargetStatus, Node: c.root}
	}
	if y < c.root.inner.Y {
		if i, ok := c.entryAt(c.root, x, y); ok {
			return Hit{Target: TargetAppMenu, Node: c.root, Entry: i}
		}
		return Hit{Node: c.root}
	}

	for _, col := range c.root.children {
		if !col.rect.Contains(x, y) {
			continue
		}
		if y == col.rect.Y {
			return c.headerHit(col, x, y, TargetColumnHandle, TargetColumnMenu, TargetColumnHeader)
		}
		for _, w := range col.children {
			if !w.rect.Contains(x, y) {
				continue
			}
			if y == w.rect.Y {
				return c.headerHit(w, x, y, TargetWindowHandle, TargetWindowMenu, TargetWindowHeader)
			}
			return Hit{Target: TargetWindowBody, Node: w}
		}
		return Hit{Target: TargetNone, Node: col}
	}
	return Hit{Node: c.root}
}

func (c *Canvas) headerHit(n *Node, x, y int, handle, menu, header Target) Hit {
	if x == n.rect.X {
		return Hit{Target: handle, Node: n}
	}
	if i, ok := c.entryAt(n, x, y); ok {
		return Hit{Target: menu, Node: n, Entry: i}
	}
	return Hit{Target: header, Node: n}
}

func (c *Canvas) entryAt(n *Node, x, y int) (int, bool) {
	for _, s := range c.MenuSpans(n) {
		if y == s.Row && x >= s.Start && x < s.End {
			return s.Index, true
		}
	}
	return 0, false
}
