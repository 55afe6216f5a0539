package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tilecols/internal/app"
	"github.com/Gaurav-Gosain/tilecols/internal/config"
	"github.com/Gaurav-Gosain/tilecols/internal/layout"
)

// newTestApp builds a 100x30 app from the default config: two columns at
// 63/37 with one window in the first.
func newTestApp(t *testing.T, edit func(*config.UserConfig)) *app.App {
	t.Helper()
	cfg := config.DefaultConfig()
	if edit != nil {
		edit(cfg)
	}
	a, err := app.New(app.Options{
		Config:   cfg,
		Width:    100,
		Height:   30,
		Debug:    true,
		Launcher: func(string) error { return nil },
	})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	return a
}

func click(a *app.App, x, y int) tea.Cmd {
	_, cmd := HandleInput(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft}, a)
	return cmd
}

func release(a *app.App, x, y int) {
	HandleInput(tea.MouseReleaseMsg{X: x, Y: y, Button: tea.MouseLeft}, a)
}

func assertWidths(t *testing.T, a *app.App, want ...float64) {
	t.Helper()
	got := a.Engine.ColumnWidths()
	if len(got) != len(want) {
		t.Fatalf("widths = %v, want %v", got, want)
	}
	for i := range want {
		if d := got[i] - want[i]; d > 1e-9 || d < -1e-9 {
			t.Fatalf("widths = %v, want %v", got, want)
		}
	}
}

func TestColumnHandleDragResizes(t *testing.T) {
	a := newTestApp(t, nil)
	assertWidths(t, a, 63, 37)

	click(a, 63, 1)
	if a.Session == nil || !a.Canvas.Busy() {
		t.Fatal("clicking the column handle should arm a drag")
	}
	release(a, 70, 1)

	if a.Session != nil || a.Canvas.Busy() || a.Canvas.Listeners() != 0 {
		t.Error("release should resolve the drag")
	}
	assertWidths(t, a, 70, 30)
	r, ok := a.LastGesture()
	if !ok || r.Outcome != layout.Resized {
		t.Errorf("gesture = %+v, want resized", r)
	}
}

func TestWindowDragAcrossColumns(t *testing.T) {
	tests := []struct {
		name       string
		closeEmpty bool
		columns    int
	}{
		{"keeps empty column", false, 2},
		{"closes empty column", true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, func(c *config.UserConfig) {
				c.Layout.CloseEmptyColumns = tt.closeEmpty
			})
			w := a.Engine.Columns()[0].Windows()[0]

			click(a, 0, 2)
			if a.Session == nil || a.Session.Kind() != layout.KindWindow {
				t.Fatal("clicking the window handle should arm a window drag")
			}
			release(a, 70, 10)

			if r, _ := a.LastGesture(); r.Outcome != layout.Moved {
				t.Fatalf("outcome = %v, want moved", r.Outcome)
			}
			if got := a.Engine.Root().Len(); got != tt.columns {
				t.Fatalf("columns = %d, want %d", got, tt.columns)
			}
			dst := w.Column()
			heights, err := a.Engine.WindowHeights(dst)
			if err != nil || len(heights) != 1 || heights[0] != 100 {
				t.Errorf("destination heights = %v (%v), want [100]", heights, err)
			}
			if a.FocusedWindowHandle() == nil {
				t.Error("focus should stay on a window after the move")
			}
		})
	}
}

func TestBlurCancelsDrag(t *testing.T) {
	a := newTestApp(t, nil)
	click(a, 63, 1)
	HandleInput(tea.BlurMsg{}, a)

	if a.Session != nil {
		t.Fatal("blur should cancel the drag")
	}
	if r, _ := a.LastGesture(); r.Outcome != layout.Cancelled {
		t.Errorf("outcome = %v, want cancelled", r.Outcome)
	}
	release(a, 70, 1)
	assertWidths(t, a, 63, 37)
}

func TestMotionOutsideCancelsDrag(t *testing.T) {
	a := newTestApp(t, nil)
	click(a, 63, 1)

	HandleInput(tea.MouseMotionMsg{X: 50, Y: 10}, a)
	if a.Session == nil {
		t.Fatal("motion inside the screen should keep the drag")
	}
	HandleInput(tea.MouseMotionMsg{X: 120, Y: 10}, a)
	if a.Session != nil {
		t.Fatal("motion outside the screen should cancel the drag")
	}
}

func TestSecondHandleClickRejected(t *testing.T) {
	a := newTestApp(t, nil)
	click(a, 63, 1)
	first := a.Session
	click(a, 0, 2)
	if a.Session != first {
		t.Error("a second pointer-down must not replace the armed drag")
	}
	if !a.StatusError {
		t.Error("rejected drag should be reported")
	}
}

func TestMenuClicks(t *testing.T) {
	t.Run("app menu adds a column", func(t *testing.T) {
		a := newTestApp(t, nil)
		click(a, 1, 0)
		assertWidths(t, a, 63, 23.31, 13.69)
		if a.FocusedColumn != 2 {
			t.Errorf("focused column = %d, want 2", a.FocusedColumn)
		}
	})

	t.Run("column menu adds a window", func(t *testing.T) {
		a := newTestApp(t, nil)
		col := a.Engine.Columns()[1]
		click(a, 66, 1)
		if col.Len() != 1 {
			t.Fatalf("column 1 has %d windows, want 1", col.Len())
		}
		if got := col.Windows()[0].Title; got != "Title 2" {
			t.Errorf("title = %q, want %q", got, "Title 2")
		}
	})

	t.Run("column menu deletes its column", func(t *testing.T) {
		a := newTestApp(t, nil)
		click(a, 10, 1)
		assertWidths(t, a, 100)
	})

	t.Run("window menu deletes its window", func(t *testing.T) {
		a := newTestApp(t, nil)
		col := a.Engine.Columns()[0]
		click(a, 12, 2)
		if col.Len() != 0 {
			t.Errorf("column 0 has %d windows, want 0", col.Len())
		}
		if a.Engine.Root().Len() != 2 {
			t.Error("empty column should be kept by default")
		}
	})

	t.Run("navigate entry runs the launcher", func(t *testing.T) {
		a := newTestApp(t, nil)
		cmd := click(a, 8, 0)
		if cmd == nil {
			t.Fatal("Help entry should return a command")
		}
		msg, ok := cmd().(app.URLOpenedMsg)
		if !ok || msg.URL != config.DefaultHelpURL || msg.Err != nil {
			t.Errorf("msg = %#v, want URLOpenedMsg for %s", msg, config.DefaultHelpURL)
		}
	})

	t.Run("ignored while dragging", func(t *testing.T) {
		a := newTestApp(t, nil)
		click(a, 63, 1)
		click(a, 1, 0)
		if a.Engine.Root().Len() != 2 {
			t.Error("menu must not run while a drag is armed")
		}
	})
}

func TestFilterMouseMotion(t *testing.T) {
	a := newTestApp(t, nil)
	motion := tea.MouseMotionMsg{X: 5, Y: 5}

	if FilterMouseMotion(a, motion) != nil {
		t.Error("motion without a drag should be dropped")
	}
	click(a, 63, 1)
	if FilterMouseMotion(a, motion) == nil {
		t.Error("motion during a drag should pass")
	}
	if FilterMouseMotion(a, tea.KeyPressMsg{Code: 'n', Text: "n"}) == nil {
		t.Error("other messages should pass")
	}
}
