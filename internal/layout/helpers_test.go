package layout

import (
	"math"
	"testing"
)

const (
	testWidth  = 1000.0
	testHeight = 1000.0
)

// node is a host element in the fake render tree.
type node struct {
	kind      string
	parent    *node
	children  []*node
	sizes     []float64
	destroyed bool
}

func (n *node) indexInParent() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// fakeHost keeps a node tree driven only by Host calls, and measures it the
// way a proportional renderer would.
type fakeHost struct {
	root     *node
	created  int
	reorders int
	applies  int
}

func newFakeHost() *fakeHost {
	return &fakeHost{root: &node{kind: "container"}}
}

func (h *fakeHost) CreateChild(parent Handle, kind Kind) Handle {
	h.created++
	return &node{kind: kind.String(), parent: parent.(*node)}
}

func (h *fakeHost) DestroyChild(hd Handle) {
	n := hd.(*node)
	n.destroyed = true
	if p := n.parent; p != nil {
		for i, c := range p.children {
			if c == n {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
	}
}

func (h *fakeHost) ReorderChildren(parent Handle, order []Handle) {
	h.reorders++
	p := parent.(*node)
	p.children = p.children[:0]
	for _, hd := range order {
		c := hd.(*node)
		c.parent = p
		p.children = append(p.children, c)
	}
}

func (h *fakeHost) ApplySizes(parent Handle, sizes []float64) {
	h.applies++
	parent.(*node).sizes = append([]float64(nil), sizes...)
}

func (h *fakeHost) Position(hd Handle, a Axis) float64 {
	n := hd.(*node)
	switch n.kind {
	case "column":
		if a == Vertical {
			return 0
		}
		return h.offset(n, testWidth)
	case "window":
		if a == Horizontal {
			return h.Position(n.parent, Horizontal)
		}
		return h.offset(n, testHeight)
	}
	return 0
}

func (h *fakeHost) Extent(hd Handle, a Axis) float64 {
	n := hd.(*node)
	switch n.kind {
	case "column":
		if a == Vertical {
			return testHeight
		}
		return h.share(n) * testWidth / 100
	case "window":
		if a == Horizontal {
			return h.Extent(n.parent, Horizontal)
		}
		return h.share(n) * testHeight / 100
	}
	if a == Horizontal {
		return testWidth
	}
	return testHeight
}

func (h *fakeHost) share(n *node) float64 {
	i := n.indexInParent()
	if i < 0 || i >= len(n.parent.sizes) {
		return 0
	}
	return n.parent.sizes[i]
}

func (h *fakeHost) offset(n *node, total float64) float64 {
	i := n.indexInParent()
	var sum float64
	for j := 0; j < i && j < len(n.parent.sizes); j++ {
		sum += n.parent.sizes[j]
	}
	return sum * total / 100
}

// fakeSurface records listener registration and lets tests fire pointer
// events.
type fakeSurface struct {
	busy      bool
	busyCalls int
	nextID    int
	up        map[int]func(Point)
	leave     map[int]func()
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{up: map[int]func(Point){}, leave: map[int]func(){}}
}

func (s *fakeSurface) SetBusy(b bool) {
	s.busy = b
	s.busyCalls++
}

func (s *fakeSurface) OnPointerUp(fn func(Point)) func() {
	s.nextID++
	id := s.nextID
	s.up[id] = fn
	return func() { delete(s.up, id) }
}

func (s *fakeSurface) OnPointerLeave(fn func()) func() {
	s.nextID++
	id := s.nextID
	s.leave[id] = fn
	return func() { delete(s.leave, id) }
}

func (s *fakeSurface) release(p Point) {
	fns := make([]func(Point), 0, len(s.up))
	for _, fn := range s.up {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn(p)
	}
}

func (s *fakeSurface) exit() {
	fns := make([]func(), 0, len(s.leave))
	for _, fn := range s.leave {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn()
	}
}

func (s *fakeSurface) listeners() int { return len(s.up) + len(s.leave) }

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *fakeHost) {
	t.Helper()
	h := newFakeHost()
	opts = append([]Option{WithStrictInvariants(true)}, opts...)
	return New(h, h, h.root, opts...), h
}

// withColumns builds an engine with one column per width and overwrites the
// widths with the given percentages.
func withColumns(t *testing.T, widths ...float64) (*Engine, *fakeHost) {
	t.Helper()
	e, h := newTestEngine(t, WithMinSize(0))
	for range widths {
		if _, err := e.SplitColumn(); err != nil {
			t.Fatalf("SplitColumn: %v", err)
		}
	}
	e.root.sizes = NewSequence(widths...)
	e.commit(e.root)
	e.SetMinSize(DefaultMinSize)
	return e, h
}

// withWindows fills col with one window per height and overwrites the
// heights with the given percentages.
func withWindows(t *testing.T, e *Engine, col *Column, heights ...float64) []*Window {
	t.Helper()
	prev := e.minSize
	e.SetMinSize(0)
	defer e.SetMinSize(prev)
	ws := make([]*Window, len(heights))
	for i := range heights {
		w, err := e.SplitWindow(col)
		if err != nil {
			t.Fatalf("SplitWindow: %v", err)
		}
		ws[i] = w
	}
	col.sizes = NewSequence(heights...)
	e.commit(col)
	return ws
}

func assertPercents(t *testing.T, what string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s = %v, want %v", what, got, want)
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("%s = %v, want %v", what, got, want)
		}
	}
}

// assertTree checks every level of the engine and that the host mirrors it.
func assertTree(t *testing.T, e *Engine, h *fakeHost) {
	t.Helper()
	checkLevel := func(lv level, n *node) {
		t.Helper()
		s := lv.seq()
		if s.Len() != lv.count() || !s.Valid() {
			t.Fatalf("%s: %d children, sizes %s", lv.name(), lv.count(), s.String())
		}
		if len(n.children) != lv.count() {
			t.Fatalf("%s: host has %d children, engine %d", lv.name(), len(n.children), lv.count())
		}
		for i, hd := range lv.handles() {
			if n.children[i] != hd.(*node) {
				t.Fatalf("%s: host child %d out of order", lv.name(), i)
			}
		}
		assertPercents(t, lv.name()+" host sizes", n.sizes, s.Percentages())
	}
	checkLevel(e.root, h.root)
	for i, col := range e.root.columns {
		if col.index != i || col.container != e.root {
			t.Fatalf("column %d has index %d", i, col.index)
		}
		checkLevel(col, col.handle.(*node))
		for j, w := range col.windows {
			if w.index != j || w.column != col {
				t.Fatalf("window %d of column %d has index %d", j, i, w.index)
			}
		}
	}
}
