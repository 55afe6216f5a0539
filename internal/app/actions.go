package app

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tilecols/internal/canvas"
	"github.com/Gaurav-Gosain/tilecols/internal/layout"
	"github.com/Gaurav-Gosain/tilecols/internal/menu"
)

// ExecuteAction runs a bound action on the focused column or window and
// returns the commands it queued.
func (a *App) ExecuteAction(action string) tea.Cmd {
	col := a.FocusedColumnHandle()
	a.run(action, target{column: col, window: a.FocusedWindowHandle()})
	a.sync()
	return a.Flush()
}

// run performs action on t. Menu entries call it with the column or window
// that owns the menu; keys call it with the focus.
func (a *App) run(action string, t target) {
	col := t.column
	if col == nil && t.window != nil {
		col = t.window.Column()
	}

	switch action {
	case "new_column":
		c, err := a.addColumn()
		if err != nil {
			a.reportError("new column", err)
			return
		}
		a.FocusColumn(c)

	case "new_window":
		if col == nil {
			a.ShowStatus("new window: no column", true)
			return
		}
		w, err := a.addWindow(col)
		if err != nil {
			a.reportError("new window", err)
			return
		}
		a.Focus(w)

	case "close_window":
		w := t.window
		if w == nil && col != nil && col.Len() > 0 && col.Index() == a.FocusedColumn {
			w = a.FocusedWindowHandle()
		}
		if w == nil {
			return
		}
		a.closeWindow(w)

	case "close_column":
		if col == nil {
			return
		}
		id := col.ID
		windows := col.Windows()
		if err := a.Engine.RemoveColumn(col); err != nil {
			a.reportError("close column", err)
			return
		}
		delete(a.colMenus, id)
		for _, w := range windows {
			delete(a.winMenus, w.ID)
		}

	case "cycle_content":
		if t.window != nil {
			t.window.Content = nextContent(contentOf(t.window))
		}

	case "focus_next_column":
		a.moveColumnFocus(1)
	case "focus_prev_column":
		a.moveColumnFocus(-1)
	case "focus_next_window":
		a.FocusedWindow++
	case "focus_prev_window":
		a.FocusedWindow--

	case "cancel_drag":
		if a.Session != nil {
			if err := a.Session.Abort(); err != nil && !errors.Is(err, layout.ErrSessionClosed) {
				a.Logger.Warn("abort failed", "err", err)
			}
		}

	case "toggle_help":
		a.ShowHelp = !a.ShowHelp

	case "quit":
		if a.Session != nil {
			_ = a.Session.Abort()
		}
		a.quitting = true

	default:
		a.ShowStatus(fmt.Sprintf("unknown action %q", action), true)
	}
}

func (a *App) closeWindow(w *layout.Window) {
	col := w.Column()
	id := w.ID
	if err := a.Engine.RemoveWindow(w); err != nil {
		a.reportError("close window", err)
		return
	}
	delete(a.winMenus, id)
	if a.Config.Layout.CloseEmptyColumns && col.Len() == 0 {
		colID := col.ID
		if err := a.Engine.RemoveColumn(col); err != nil {
			a.reportError("close column", err)
			return
		}
		delete(a.colMenus, colID)
	}
}

func (a *App) moveColumnFocus(delta int) {
	n := a.Engine.Root().Len()
	if n == 0 {
		return
	}
	a.FocusedColumn = (a.FocusedColumn + delta + n) % n
	a.FocusedWindow = 0
}

// ActivateMenu follows the menu entry under hit. It returns false when hit
// is not a menu entry.
func (a *App) ActivateMenu(hit canvas.Hit) (tea.Cmd, bool) {
	var m *menu.Menu
	switch hit.Target {
	case canvas.TargetAppMenu:
		m = a.appMenu
	case canvas.TargetColumnMenu:
		if col := a.ColumnFor(hit.Node); col != nil {
			m = a.colMenus[col.ID]
			a.FocusColumn(col)
		}
	case canvas.TargetWindowMenu:
		if w := a.WindowFor(hit.Node); w != nil {
			m = a.winMenus[w.ID]
			a.Focus(w)
		}
	default:
		return nil, false
	}

	item, ok := m.At(hit.Entry)
	if !ok {
		return nil, false
	}
	switch l := item.Link.(type) {
	case menu.Navigate:
		a.Queue(a.navigate(l.URL))
	case menu.Invoke:
		l.Action()
	}
	a.sync()
	return a.Flush(), true
}

// URLOpenedMsg reports the outcome of following a Navigate entry.
type URLOpenedMsg struct {
	URL string
	Err error
}

func (a *App) navigate(url string) tea.Cmd {
	if a.IsSSHMode {
		// The browser would open on the server, not for the SSH client.
		a.ShowStatus("open "+url, false)
		return nil
	}
	launch := a.launcher
	return func() tea.Msg {
		return URLOpenedMsg{URL: url, Err: launch(url)}
	}
}

// OpenURL opens url with the platform's default handler.
func OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// ErrNotHandle is returned by BeginDrag for a cell that is not a handle.
var ErrNotHandle = errors.New("not a drag handle")

// BeginDrag arms a drag of the handle under hit with the pointer at cell
// (x, y). The drag resolves through the canvas pointer events.
func (a *App) BeginDrag(hit canvas.Hit, x, y int) error {
	p := canvas.PointAt(x, y)
	var (
		sess *layout.Session
		err  error
	)
	switch hit.Target {
	case canvas.TargetColumnHandle:
		col := a.ColumnFor(hit.Node)
		if col == nil {
			return layout.ErrStaleHandle
		}
		sess, err = a.Engine.BeginColumnDrag(a.Canvas, col, p)
		if err == nil {
			a.FocusColumn(col)
		}
	case canvas.TargetWindowHandle:
		w := a.WindowFor(hit.Node)
		if w == nil {
			return layout.ErrStaleHandle
		}
		sess, err = a.Engine.BeginWindowDrag(a.Canvas, w, p)
		if err == nil {
			a.Focus(w)
		}
	default:
		return ErrNotHandle
	}
	if err != nil {
		return err
	}
	a.Session = sess
	return nil
}
