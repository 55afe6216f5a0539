package layout

// Outcome says what a gesture did to the tree.
type Outcome int

const (
	// Unchanged means the gesture resolved to a no-op, usually because the
	// clamp range was empty.
	Unchanged Outcome = iota
	Resized
	Reordered
	Moved
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Resized:
		return "resized"
	case Reordered:
		return "reordered"
	case Moved:
		return "moved"
	case Cancelled:
		return "cancelled"
	default:
		return "unchanged"
	}
}

// total returns the extent the siblings of lv share.
func (e *Engine) total(lv level) float64 {
	return e.probe.Extent(lv.owner(), lv.axis())
}

// locate returns the index of the sibling of lv covering pos: the scan adds
// extents from the start of the level until it reaches pos. A point before
// the level maps to the first sibling, one past the end to the last. An empty
// level yields -1.
func (e *Engine) locate(lv level, pos float64) int {
	n := lv.count()
	if n == 0 {
		return -1
	}
	a := lv.axis()
	idx := 0
	reach := e.probe.Position(lv.owner(), a)
	for i := 0; i < n && reach < pos; i++ {
		idx = i
		reach += e.probe.Extent(lv.handleAt(i), a)
	}
	return idx
}

// resize moves the leading edge of sibling src to target, trading size with
// src-1. The edge is clamped so that neither sibling drops under the minimum
// size. It reports whether anything changed.
func (e *Engine) resize(lv level, src int, target float64) bool {
	if src <= 0 || src >= lv.count() {
		return false
	}
	a := lv.axis()
	prev := src - 1
	srcH, prevH := lv.handleAt(src), lv.handleAt(prev)

	lo := e.probe.Position(prevH, a) + e.minSize
	hi := e.probe.Position(srcH, a) + e.probe.Extent(srcH, a) - e.minSize
	edge, ok := clamp(lo, target, hi)
	if !ok {
		return false
	}
	total := e.total(lv)
	if total <= 0 {
		return false
	}
	old := e.probe.Position(srcH, a)
	delta := ShareOf((edge - old) * 100 / total)

	// A forward edge shrinks src and grows its predecessor.
	shrink, grow := src, prev
	if delta < 0 {
		shrink, grow = prev, src
		delta = -delta
	}
	s := lv.seq()
	if delta > s.At(shrink) {
		delta = s.At(shrink)
	}
	if delta == 0 {
		return false
	}
	s.AdjustPair(shrink, grow, delta)
	s.Settle(grow)
	e.commit(lv)
	return true
}

// exchange carves room for sibling src out of sibling dst and places src
// right after it. target is where src's leading edge should land inside dst;
// src receives the part of dst from there to dst's trailing edge. The
// neighbour of src's old slot (previous if any, else next) absorbs src's old
// size.
func (e *Engine) exchange(lv level, src, dst int, target float64) bool {
	n := lv.count()
	if src < 0 || src >= n || dst < 0 || dst >= n || src == dst {
		return false
	}
	a := lv.axis()
	dstH := lv.handleAt(dst)
	start := e.probe.Position(dstH, a)
	end := start + e.probe.Extent(dstH, a)
	mid, ok := clamp(start+e.minSize, target, end-e.minSize)
	if !ok {
		return false
	}
	total := e.total(lv)
	if total <= 0 {
		return false
	}

	s := lv.seq()
	carved := ShareOf((end - mid) * 100 / total)
	if carved <= 0 || carved >= s.At(dst) {
		return false
	}

	neighbour := -1
	switch {
	case src > 0:
		neighbour = src - 1
	case src+1 < n:
		neighbour = src + 1
	}

	freed := s.At(src)
	s.Set(src, carved)
	s.Set(dst, s.At(dst)-carved)
	if neighbour >= 0 {
		s.Set(neighbour, s.At(neighbour)+freed)
	}

	s.Move(src, dst+1)
	lv.relocate(src, dst+1)
	newDst := dst
	if src < dst {
		newDst = dst - 1
	}
	s.Settle(newDst)
	e.commit(lv)
	return true
}

// moveWindow relocates w from its column into dst. An empty destination
// takes w at full height. Otherwise w is carved out of window at of dst the
// same way exchange does, with target as w's new top edge. The clamp is
// checked before w leaves its old column, so a rejected move changes
// nothing.
func (e *Engine) moveWindow(w *Window, dst *Column, at int, target float64) bool {
	src := w.column
	if src == nil || dst == nil || src == dst {
		return false
	}

	var carved Share
	if at >= 0 {
		atH := dst.handleAt(at)
		start := e.probe.Position(atH, Vertical)
		end := start + e.probe.Extent(atH, Vertical)
		mid, ok := clamp(start+e.minSize, target, end-e.minSize)
		if !ok {
			return false
		}
		total := e.total(dst)
		if total <= 0 {
			return false
		}
		carved = ShareOf((end - mid) * 100 / total)
		if carved <= 0 || carved >= dst.sizes.At(at) {
			return false
		}
	}

	e.detach(src, w.index)

	if at < 0 {
		dst.insertWindow(len(dst.windows), w)
		dst.sizes.Split(e.ratio)
	} else {
		dst.sizes.Set(at, dst.sizes.At(at)-carved)
		dst.sizes.Insert(at+1, carved)
		dst.insertWindow(at+1, w)
		dst.sizes.Settle(at)
	}

	e.commit(src)
	e.commit(dst)
	return true
}
