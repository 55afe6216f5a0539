package layout

// Surface is the top-level element a drag runs on. Registration returns a
// function that removes the listener again.
type Surface interface {
	// SetBusy toggles the drag cursor feedback.
	SetBusy(busy bool)
	OnPointerUp(fn func(Point)) (remove func())
	OnPointerLeave(fn func()) (remove func())
}

// Result describes how a gesture ended.
type Result struct {
	Kind    Kind
	ID      string
	Outcome Outcome
}

// Session is one armed drag, from pointer-down on a handle until the
// pointer is released or leaves the surface. It resolves exactly once.
type Session struct {
	engine  *Engine
	surface Surface

	kind   Kind
	column *Column
	window *Window

	down   Point
	offset Point

	removeUp    func()
	removeLeave func()
	result      *Result
}

// BeginColumnDrag arms a drag of col's handle with the pointer at p.
func (e *Engine) BeginColumnDrag(s Surface, col *Column, p Point) (*Session, error) {
	if !col.Attached() {
		return nil, ErrStaleHandle
	}
	return e.arm(s, &Session{kind: KindColumn, column: col}, col.handle, p)
}

// BeginWindowDrag arms a drag of w's handle with the pointer at p.
func (e *Engine) BeginWindowDrag(s Surface, w *Window, p Point) (*Session, error) {
	if !w.Attached() {
		return nil, ErrStaleHandle
	}
	return e.arm(s, &Session{kind: KindWindow, window: w}, w.handle, p)
}

func (e *Engine) arm(s Surface, sess *Session, h Handle, p Point) (*Session, error) {
	if e.active != nil {
		return nil, ErrGestureActive
	}
	sess.engine = e
	sess.surface = s
	sess.down = p
	sess.offset = p.Sub(origin(e.probe, h))

	e.active = sess
	s.SetBusy(true)
	sess.removeUp = s.OnPointerUp(sess.release)
	sess.removeLeave = s.OnPointerLeave(sess.cancel)
	e.logger.Debug("drag armed", "kind", sess.kind, "at", p, "offset", sess.offset)
	return sess, nil
}

// Kind reports whether a column or a window is being dragged.
func (s *Session) Kind() Kind { return s.kind }

// Done reports whether the session has resolved.
func (s *Session) Done() bool { return s.result != nil }

// Result returns how the session ended. ok is false while it is still armed.
func (s *Session) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Abort cancels an armed session without touching the tree.
func (s *Session) Abort() error {
	if s.result != nil {
		return ErrSessionClosed
	}
	s.cancel()
	return nil
}

func (s *Session) id() string {
	if s.kind == KindColumn {
		return s.column.ID
	}
	return s.window.ID
}

func (s *Session) release(p Point) {
	if s.result != nil {
		return
	}
	e := s.engine
	e.active = nil
	outcome := Unchanged
	if s.attached() {
		dest := p.Sub(s.offset)
		if s.kind == KindColumn {
			outcome = e.dropColumn(s.column, dest)
		} else {
			outcome = e.dropWindow(s.window, dest)
		}
	}
	s.finish(outcome)
}

func (s *Session) cancel() {
	if s.result != nil {
		return
	}
	s.engine.active = nil
	s.finish(Cancelled)
}

func (s *Session) attached() bool {
	if s.kind == KindColumn {
		return s.column.Attached()
	}
	return s.window.Attached()
}

func (s *Session) finish(o Outcome) {
	s.removeUp()
	s.removeLeave()
	s.surface.SetBusy(false)
	r := Result{Kind: s.kind, ID: s.id(), Outcome: o}
	s.result = &r
	s.engine.logger.Debug("drag resolved", "kind", s.kind, "outcome", o)
	if s.engine.onDone != nil {
		s.engine.onDone(r)
	}
}

// dropColumn resolves a column drag whose handle ended at dest. Landing on
// the column itself or on its left neighbour resizes; anywhere else
// exchanges.
func (e *Engine) dropColumn(col *Column, dest Point) Outcome {
	src := col.index
	dst := e.locate(e.root, dest.X)
	if dst == src || dst == src-1 {
		if e.resize(e.root, src, dest.X) {
			return Resized
		}
		return Unchanged
	}
	if e.exchange(e.root, src, dst, dest.X) {
		return Reordered
	}
	return Unchanged
}

// dropWindow resolves a window drag whose handle ended at dest. A different
// column means a cross-move; within the column the rules of dropColumn
// apply on the vertical axis.
func (e *Engine) dropWindow(w *Window, dest Point) Outcome {
	if dest.X < 0 {
		dest.X = 0
	}
	src := w.column
	dstCol := src
	if i := e.locate(e.root, dest.X); i >= 0 {
		dstCol = e.root.columns[i]
	}
	at := e.locate(dstCol, dest.Y)

	if dstCol != src {
		if e.moveWindow(w, dstCol, at, dest.Y) {
			return Moved
		}
		return Unchanged
	}
	i := w.index
	if at == i || at == i-1 {
		if e.resize(src, i, dest.Y) {
			return Resized
		}
		return Unchanged
	}
	if e.exchange(src, i, at, dest.Y) {
		return Reordered
	}
	return Unchanged
}
