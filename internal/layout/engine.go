package layout

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// DefaultMinSize is the smallest extent a sibling may shrink to, in the
// probe's units.
const DefaultMinSize = 100

// Engine owns the split-tree and is the only thing that mutates it. It is
// not safe for concurrent use; all calls belong on one event loop.
type Engine struct {
	root  *Container
	host  Host
	probe Probe

	minSize float64
	ratio   float64
	strict  bool
	logger  *log.Logger
	onDone  func(Result)

	active *Session
}

// Option configures an Engine.
type Option func(*Engine)

// WithMinSize sets the minimum sibling extent on both axes.
func WithMinSize(size float64) Option {
	return func(e *Engine) {
		if size >= 0 {
			e.minSize = size
		}
	}
}

// WithSplitRatio sets the fraction of the last sibling a new sibling takes.
func WithSplitRatio(ratio float64) Option {
	return func(e *Engine) {
		if ratio > 0 && ratio < 1 {
			e.ratio = ratio
		}
	}
}

// WithLogger sets the logger used for committed sizes and invariant reports.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithStrictInvariants makes invariant violations panic instead of being
// logged.
func WithStrictInvariants(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// WithGestureHook registers fn to be told how each drag gesture ended.
func WithGestureHook(fn func(Result)) Option {
	return func(e *Engine) {
		e.onDone = fn
	}
}

// New creates an engine over an empty container whose host node is root.
func New(host Host, probe Probe, root Handle, opts ...Option) *Engine {
	e := &Engine{
		root:    &Container{handle: root},
		host:    host,
		probe:   probe,
		minSize: DefaultMinSize,
		ratio:   DefaultSplitRatio,
		logger:  log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Root returns the container.
func (e *Engine) Root() *Container { return e.root }

// MinSize returns the minimum sibling extent.
func (e *Engine) MinSize() float64 { return e.minSize }

// SetMinSize changes the minimum sibling extent for later operations.
func (e *Engine) SetMinSize(size float64) {
	if size >= 0 {
		e.minSize = size
	}
}

// SetSplitRatio changes the split ratio for later splits.
func (e *Engine) SetSplitRatio(ratio float64) {
	if ratio > 0 && ratio < 1 {
		e.ratio = ratio
	}
}

// Active returns the armed drag session, if any.
func (e *Engine) Active() *Session { return e.active }

// Columns returns a snapshot of the columns in order.
func (e *Engine) Columns() []*Column {
	return append([]*Column(nil), e.root.columns...)
}

// Column returns the column at i.
func (e *Engine) Column(i int) (*Column, error) {
	if i < 0 || i >= len(e.root.columns) {
		return nil, fmt.Errorf("column %d: %w", i, ErrOutOfRange)
	}
	return e.root.columns[i], nil
}

// ColumnWidths returns the committed column percentages.
func (e *Engine) ColumnWidths() []float64 {
	return e.root.sizes.Percentages()
}

// WindowHeights returns the committed window percentages of col.
func (e *Engine) WindowHeights(col *Column) ([]float64, error) {
	if !col.Attached() {
		return nil, ErrStaleHandle
	}
	return col.sizes.Percentages(), nil
}

// SplitColumn appends a new column, carving its width out of the last one.
func (e *Engine) SplitColumn() (*Column, error) {
	if e.active != nil {
		return nil, ErrGestureActive
	}
	if !e.roomFor(e.root) {
		return nil, ErrInsufficientSpace
	}
	col := &Column{
		ID:        newID(),
		container: e.root,
		index:     len(e.root.columns),
	}
	col.handle = e.host.CreateChild(e.root.handle, KindColumn)
	e.root.columns = append(e.root.columns, col)
	e.root.sizes.Split(e.ratio)
	e.commit(e.root)
	e.host.ApplySizes(col.handle, nil)
	return col, nil
}

// SplitWindow appends a new window to col, carving its height out of the
// last window.
func (e *Engine) SplitWindow(col *Column) (*Window, error) {
	if e.active != nil {
		return nil, ErrGestureActive
	}
	if !col.Attached() {
		return nil, ErrStaleHandle
	}
	if !e.roomFor(col) {
		return nil, ErrInsufficientSpace
	}
	w := &Window{ID: newID()}
	w.handle = e.host.CreateChild(col.handle, KindWindow)
	col.insertWindow(len(col.windows), w)
	col.sizes.Split(e.ratio)
	e.commit(col)
	return w, nil
}

// RemoveColumnAt removes the column at i together with its windows.
func (e *Engine) RemoveColumnAt(i int) error {
	if e.active != nil {
		return ErrGestureActive
	}
	if i < 0 || i >= len(e.root.columns) {
		return fmt.Errorf("column %d: %w", i, ErrOutOfRange)
	}
	col := e.root.columns[i]
	e.root.columns = append(e.root.columns[:i], e.root.columns[i+1:]...)
	e.root.reindex()
	if into := e.root.sizes.MergeAt(i); into >= 0 {
		e.root.sizes.Settle(into)
	}
	for _, w := range col.windows {
		e.host.DestroyChild(w.handle)
		w.column = nil
	}
	col.windows = nil
	col.sizes = Sequence{}
	col.container = nil
	e.host.DestroyChild(col.handle)
	e.commit(e.root)
	return nil
}

// RemoveColumn removes col from the container.
func (e *Engine) RemoveColumn(col *Column) error {
	if !col.Attached() {
		return ErrStaleHandle
	}
	return e.RemoveColumnAt(col.index)
}

// RemoveWindowAt removes the window at i from col.
func (e *Engine) RemoveWindowAt(col *Column, i int) error {
	if e.active != nil {
		return ErrGestureActive
	}
	if !col.Attached() {
		return ErrStaleHandle
	}
	if i < 0 || i >= len(col.windows) {
		return fmt.Errorf("window %d of column %d: %w", i, col.index, ErrOutOfRange)
	}
	w := e.detach(col, i)
	e.host.DestroyChild(w.handle)
	e.commit(col)
	return nil
}

// RemoveWindow removes w from its column.
func (e *Engine) RemoveWindow(w *Window) error {
	if !w.Attached() {
		return ErrStaleHandle
	}
	return e.RemoveWindowAt(w.column, w.index)
}

// SetTitle renames w.
func (e *Engine) SetTitle(w *Window, title string) error {
	if !w.Attached() {
		return ErrStaleHandle
	}
	w.Title = title
	return nil
}

// detach unlinks window i from col and merges its share into a neighbour.
func (e *Engine) detach(col *Column, i int) *Window {
	w := col.detachWindow(i)
	if into := col.sizes.MergeAt(i); into >= 0 {
		col.sizes.Settle(into)
	}
	w.column = nil
	return w
}

// roomFor reports whether the last sibling of lv can give up room for a new
// one without either dropping to the minimum size. An empty level always
// has room.
func (e *Engine) roomFor(lv level) bool {
	n := lv.count()
	if n == 0 {
		return true
	}
	total := e.probe.Extent(lv.owner(), lv.axis())
	last := lv.seq().At(n-1).Percent() * total / 100
	return last > 2*e.minSize
}

// commit pushes the order and sizes of lv to the host after checking the
// level invariant.
func (e *Engine) commit(lv level) {
	e.check(lv)
	e.host.ReorderChildren(lv.owner(), lv.handles())
	sizes := lv.seq().Percentages()
	e.host.ApplySizes(lv.owner(), sizes)
	e.logger.Debug("sizes committed", "level", lv.name(), "sizes", sizes, "sum", lv.seq().Sum())
}

func (e *Engine) check(lv level) {
	s := lv.seq()
	if s.Len() == lv.count() && s.Valid() {
		return
	}
	err := &InvariantError{
		Level:    lv.name(),
		Children: lv.count(),
		Sizes:    s.String(),
		Sum:      s.Sum(),
	}
	if e.strict {
		panic(err)
	}
	e.logger.Error("layout invariant violated", "err", err)
}
