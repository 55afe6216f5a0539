// Package app provides the tilecols bubbletea model: it hosts the layout
// engine on a terminal canvas, dispatches keyboard actions and header menu
// entries, and renders columns and windows.
package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"github.com/Gaurav-Gosain/tilecols/internal/canvas"
	"github.com/Gaurav-Gosain/tilecols/internal/config"
	"github.com/Gaurav-Gosain/tilecols/internal/layout"
	"github.com/Gaurav-Gosain/tilecols/internal/menu"
	"github.com/Gaurav-Gosain/tilecols/internal/theme"
)

// TitlePrefix names new windows, followed by a running number.
const TitlePrefix = "Title"

// Options configures a new App.
type Options struct {
	Config   *config.UserConfig
	Width    int
	Height   int
	Logger   *log.Logger
	Debug    bool
	Session  ssh.Session // set when serving over SSH
	Launcher func(url string) error
}

// App is the application state. It is driven by a single bubbletea event
// loop and is not safe for concurrent use.
type App struct {
	Width, Height int

	Config          *config.UserConfig
	KeybindRegistry *config.KeybindRegistry
	Engine          *layout.Engine
	Canvas          *canvas.Canvas
	Logger          *log.Logger

	// Session is the armed drag, nil when idle.
	Session *layout.Session

	FocusedColumn int
	FocusedWindow int
	ShowHelp      bool

	SSHSession ssh.Session
	IsSSHMode  bool

	Status      string
	StatusError bool
	statusUntil time.Time

	Now     time.Time
	SysInfo SysInfo

	appMenu    *menu.Menu
	colMenus   map[string]*menu.Menu
	winMenus   map[string]*menu.Menu
	nwindows   int
	pending    []tea.Cmd
	launcher   func(url string) error
	quitting   bool
	lastResult *layout.Result
}

// New creates the application and builds the startup layout: the configured
// number of columns with the configured number of windows in the first.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	launcher := opts.Launcher
	if launcher == nil {
		launcher = OpenURL
	}

	a := &App{
		Width:           opts.Width,
		Height:          opts.Height,
		Config:          cfg,
		KeybindRegistry: config.NewKeybindRegistry(cfg),
		Logger:          logger,
		SSHSession:      opts.Session,
		IsSSHMode:       opts.Session != nil,
		colMenus:        make(map[string]*menu.Menu),
		winMenus:        make(map[string]*menu.Menu),
		launcher:        launcher,
		Now:             time.Now(),
	}
	a.Canvas = canvas.New(opts.Width, opts.Height, cfg.Appearance.ShowStatusBar)
	a.Engine = layout.New(a.Canvas, a.Canvas, a.Canvas.Root(),
		layout.WithMinSize(cfg.Layout.MinSize),
		layout.WithSplitRatio(cfg.Layout.SplitRatio),
		layout.WithLogger(logger),
		layout.WithStrictInvariants(opts.Debug),
		layout.WithGestureHook(a.onGesture),
	)
	theme.Initialize(cfg.Appearance.Theme)

	m, err := a.buildMenu(cfg.Menu.App, target{})
	if err != nil {
		return nil, fmt.Errorf("app menu: %w", err)
	}
	a.appMenu = m

	for i := range cfg.Layout.InitialColumns {
		col, err := a.addColumn()
		if err != nil {
			// A narrow terminal cannot fit every requested column.
			logger.Warn("startup column skipped", "index", i, "err", err)
			break
		}
		if i > 0 {
			continue
		}
		for range cfg.Layout.InitialWindows {
			if _, err := a.addWindow(col); err != nil {
				logger.Warn("startup window skipped", "err", err)
				break
			}
		}
	}
	a.FocusedColumn, a.FocusedWindow = 0, 0
	a.sync()
	return a, nil
}

// target is what a menu entry or key action applies to.
type target struct {
	column *layout.Column
	window *layout.Window
}

// addColumn splits off a new column and gives it a column menu.
func (a *App) addColumn() (*layout.Column, error) {
	col, err := a.Engine.SplitColumn()
	if err != nil {
		return nil, err
	}
	m, err := a.buildMenu(a.Config.Menu.Column, target{column: col})
	if err != nil {
		return nil, err
	}
	a.colMenus[col.ID] = m
	return col, nil
}

// addWindow splits off a new numbered window in col.
func (a *App) addWindow(col *layout.Column) (*layout.Window, error) {
	w, err := a.Engine.SplitWindow(col)
	if err != nil {
		return nil, err
	}
	a.nwindows++
	if err := a.Engine.SetTitle(w, fmt.Sprintf("%s %d", TitlePrefix, a.nwindows)); err != nil {
		return nil, err
	}
	w.Content = ContentKind(a.Config.Layout.WindowContent)
	m, err := a.buildMenu(a.Config.Menu.Window, target{window: w})
	if err != nil {
		return nil, err
	}
	a.winMenus[w.ID] = m
	return w, nil
}

// buildMenu turns configured entries into menu items bound to t.
func (a *App) buildMenu(entries []config.MenuEntry, t target) (*menu.Menu, error) {
	items := make([]menu.Item, 0, len(entries))
	for _, e := range entries {
		var link menu.Link
		switch {
		case e.URL != "":
			link = menu.Navigate{URL: e.URL}
		case e.Action != "":
			action := e.Action
			link = menu.Invoke{Name: action, Action: func() { a.run(action, t) }}
		}
		items = append(items, menu.Item{Title: e.Title, Link: link})
	}
	return menu.New(items...)
}

// AppMenu returns the container menu.
func (a *App) AppMenu() *menu.Menu { return a.appMenu }

// ColumnMenu returns the menu of col.
func (a *App) ColumnMenu(col *layout.Column) *menu.Menu { return a.colMenus[col.ID] }

// WindowMenu returns the menu of w.
func (a *App) WindowMenu(w *layout.Window) *menu.Menu { return a.winMenus[w.ID] }

// SetColumnMenu replaces the menu of col. The menu is copied.
func (a *App) SetColumnMenu(col *layout.Column, items []menu.Item) error {
	if !col.Attached() {
		return layout.ErrStaleHandle
	}
	m, ok := a.colMenus[col.ID]
	if !ok {
		m = &menu.Menu{}
		a.colMenus[col.ID] = m
	}
	if err := m.Set(items); err != nil {
		return err
	}
	a.sync()
	return nil
}

// FocusedColumnHandle returns the focused column, or nil if there is none.
func (a *App) FocusedColumnHandle() *layout.Column {
	cols := a.Engine.Columns()
	if a.FocusedColumn < 0 || a.FocusedColumn >= len(cols) {
		return nil
	}
	return cols[a.FocusedColumn]
}

// FocusedWindowHandle returns the focused window, or nil if there is none.
func (a *App) FocusedWindowHandle() *layout.Window {
	col := a.FocusedColumnHandle()
	if col == nil {
		return nil
	}
	ws := col.Windows()
	if a.FocusedWindow < 0 || a.FocusedWindow >= len(ws) {
		return nil
	}
	return ws[a.FocusedWindow]
}

// Focus moves the focus to w.
func (a *App) Focus(w *layout.Window) {
	if w == nil || !w.Attached() {
		return
	}
	a.FocusedColumn = w.Column().Index()
	a.FocusedWindow = w.Index()
}

// FocusColumn moves the focus to the first window of col.
func (a *App) FocusColumn(col *layout.Column) {
	if col == nil || !col.Attached() {
		return
	}
	a.FocusedColumn = col.Index()
	a.FocusedWindow = 0
}

// ColumnFor returns the column rendered by n.
func (a *App) ColumnFor(n *canvas.Node) *layout.Column {
	for _, col := range a.Engine.Columns() {
		if col.Handle() == n {
			return col
		}
	}
	return nil
}

// WindowFor returns the window rendered by n.
func (a *App) WindowFor(n *canvas.Node) *layout.Window {
	for _, col := range a.Engine.Columns() {
		for _, w := range col.Windows() {
			if w.Handle() == n {
				return w
			}
		}
	}
	return nil
}

func (a *App) windowByID(id string) *layout.Window {
	for _, col := range a.Engine.Columns() {
		for _, w := range col.Windows() {
			if w.ID == id {
				return w
			}
		}
	}
	return nil
}

// ShowStatus puts msg on the status bar for a few seconds.
func (a *App) ShowStatus(msg string, isError bool) {
	a.Status = msg
	a.StatusError = isError
	a.statusUntil = a.Now.Add(statusDuration)
	if isError {
		a.Logger.Warn(msg)
	} else {
		a.Logger.Debug(msg)
	}
}

const statusDuration = 3 * time.Second

// reportError turns an engine error into a status message.
func (a *App) reportError(what string, err error) {
	switch {
	case errors.Is(err, layout.ErrInsufficientSpace):
		a.ShowStatus(fmt.Sprintf("%s: not enough space", what), true)
	case errors.Is(err, layout.ErrGestureActive):
		a.ShowStatus(fmt.Sprintf("%s: finish the drag first", what), true)
	default:
		a.ShowStatus(fmt.Sprintf("%s: %v", what, err), true)
	}
}

// onGesture is called by the engine when a drag resolves.
func (a *App) onGesture(r layout.Result) {
	a.Session = nil
	a.lastResult = &r
	switch r.Outcome {
	case layout.Cancelled:
		a.ShowStatus("drag cancelled", false)
	case layout.Moved:
		if a.Config.Layout.CloseEmptyColumns {
			a.closeEmptyColumns()
		}
		if w := a.windowByID(r.ID); w != nil {
			a.Focus(w)
		}
		a.ShowStatus("window moved", false)
	case layout.Reordered:
		a.ShowStatus(r.Kind.String()+" moved", false)
	}
	a.sync()
}

// LastGesture returns how the most recent drag ended.
func (a *App) LastGesture() (layout.Result, bool) {
	if a.lastResult == nil {
		return layout.Result{}, false
	}
	return *a.lastResult, true
}

// closeEmptyColumns removes every column without windows.
func (a *App) closeEmptyColumns() {
	for _, col := range a.Engine.Columns() {
		if col.Len() > 0 {
			continue
		}
		if err := a.Engine.RemoveColumn(col); err != nil {
			a.Logger.Warn("empty column not removed", "column", col.ID, "err", err)
			continue
		}
		delete(a.colMenus, col.ID)
	}
}

// sync clamps the focus to the tree and refreshes the canvas labels.
func (a *App) sync() {
	cols := a.Engine.Columns()
	a.FocusedColumn = min(max(a.FocusedColumn, 0), max(len(cols)-1, 0))
	if len(cols) > 0 {
		n := cols[a.FocusedColumn].Len()
		a.FocusedWindow = min(max(a.FocusedWindow, 0), max(n-1, 0))
	} else {
		a.FocusedWindow = 0
	}

	a.Canvas.SetLabels(a.Canvas.Root(), "", a.appMenu.Titles())
	for _, col := range cols {
		a.Canvas.SetLabels(col.Handle(), "", a.colMenus[col.ID].Titles())
		for _, w := range col.Windows() {
			a.Canvas.SetLabels(w.Handle(), w.Title, a.winMenus[w.ID].Titles())
		}
	}
}

// ApplyConfig switches a running session to cfg.
func (a *App) ApplyConfig(cfg *config.UserConfig) error {
	appMenu, err := a.buildMenu(cfg.Menu.App, target{})
	if err != nil {
		return err
	}
	old := a.Config
	a.Config = cfg
	colMenus := make(map[string]*menu.Menu)
	winMenus := make(map[string]*menu.Menu)
	for _, col := range a.Engine.Columns() {
		m, err := a.buildMenu(cfg.Menu.Column, target{column: col})
		if err != nil {
			a.Config = old
			return err
		}
		colMenus[col.ID] = m
		for _, w := range col.Windows() {
			m, err := a.buildMenu(cfg.Menu.Window, target{window: w})
			if err != nil {
				a.Config = old
				return err
			}
			winMenus[w.ID] = m
		}
	}

	a.appMenu, a.colMenus, a.winMenus = appMenu, colMenus, winMenus
	a.KeybindRegistry = config.NewKeybindRegistry(cfg)
	a.Engine.SetMinSize(cfg.Layout.MinSize)
	a.Engine.SetSplitRatio(cfg.Layout.SplitRatio)
	a.Canvas.SetStatusBar(cfg.Appearance.ShowStatusBar)
	if !theme.Initialize(cfg.Appearance.Theme) {
		a.ShowStatus(fmt.Sprintf("unknown theme %q", cfg.Appearance.Theme), true)
	}
	a.sync()
	return nil
}

// Queue schedules cmd to run after the current message is handled.
func (a *App) Queue(cmd tea.Cmd) {
	if cmd != nil {
		a.pending = append(a.pending, cmd)
	}
}

// Flush returns the queued commands and clears the queue.
func (a *App) Flush() tea.Cmd {
	if a.quitting {
		a.pending = nil
		return tea.Quit
	}
	cmds := a.pending
	a.pending = nil
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// Quitting reports whether the quit action ran.
func (a *App) Quitting() bool { return a.quitting }
