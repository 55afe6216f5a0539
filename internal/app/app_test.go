package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/tilecols/internal/canvas"
	"github.com/Gaurav-Gosain/tilecols/internal/config"
	"github.com/Gaurav-Gosain/tilecols/internal/layout"
)

func newTestApp(t *testing.T, width, height int, edit func(*config.UserConfig)) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	if edit != nil {
		edit(cfg)
	}
	a, err := New(Options{
		Config:   cfg,
		Width:    width,
		Height:   height,
		Debug:    true,
		Launcher: func(string) error { return nil },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestNewStartupLayout(t *testing.T) {
	a := newTestApp(t, 100, 30, nil)

	widths := a.Engine.ColumnWidths()
	if len(widths) != 2 || widths[0] != 63 || widths[1] != 37 {
		t.Fatalf("widths = %v, want [63 37]", widths)
	}
	cols := a.Engine.Columns()
	if cols[0].Len() != 1 || cols[1].Len() != 0 {
		t.Fatalf("windows = %d/%d, want 1/0", cols[0].Len(), cols[1].Len())
	}
	w := cols[0].Windows()[0]
	if w.Title != "Title 1" {
		t.Errorf("title = %q, want %q", w.Title, "Title 1")
	}
	if contentOf(w) != ContentText {
		t.Errorf("content = %q, want text", contentOf(w))
	}

	n := cols[0].Handle().(*canvas.Node)
	if got := strings.Join(n.Menu(), ","); got != "Newwin,Delcol" {
		t.Errorf("column menu labels = %q", got)
	}
	if got := strings.Join(a.AppMenu().Titles(), ","); got != "Newcol,Help" {
		t.Errorf("app menu = %q", got)
	}
	if a.FocusedWindowHandle() != w {
		t.Error("the first window should have focus")
	}
}

func TestStartupNarrowTerminal(t *testing.T) {
	// 10 cells are 80 virtual pixels, too few to split at min size 48.
	a := newTestApp(t, 10, 30, nil)
	if got := a.Engine.Root().Len(); got != 1 {
		t.Fatalf("columns = %d, want 1", got)
	}
	if a.Engine.Columns()[0].Len() != 1 {
		t.Error("the first column should still get its window")
	}
}

func TestExecuteAction(t *testing.T) {
	t.Run("new window without columns", func(t *testing.T) {
		a := newTestApp(t, 100, 30, func(c *config.UserConfig) {
			c.Layout.InitialColumns = 0
		})
		a.ExecuteAction("new_window")
		if !a.StatusError || !strings.Contains(a.Status, "no column") {
			t.Errorf("status = %q (error %v)", a.Status, a.StatusError)
		}
	})

	t.Run("insufficient space", func(t *testing.T) {
		a := newTestApp(t, 100, 30, func(c *config.UserConfig) {
			c.Layout.MinSize = 200
		})
		a.ExecuteAction("new_column")
		if a.Engine.Root().Len() != 2 {
			t.Errorf("columns = %d, want 2", a.Engine.Root().Len())
		}
		if !strings.Contains(a.Status, "not enough space") {
			t.Errorf("status = %q", a.Status)
		}
	})

	t.Run("close empty column policy", func(t *testing.T) {
		a := newTestApp(t, 100, 30, func(c *config.UserConfig) {
			c.Layout.CloseEmptyColumns = true
		})
		a.ExecuteAction("close_window")
		widths := a.Engine.ColumnWidths()
		if len(widths) != 1 || widths[0] != 100 {
			t.Errorf("widths = %v, want [100]", widths)
		}
	})

	t.Run("focus wraps", func(t *testing.T) {
		a := newTestApp(t, 100, 30, nil)
		a.ExecuteAction("focus_prev_column")
		if a.FocusedColumn != 1 {
			t.Errorf("focused column = %d, want 1", a.FocusedColumn)
		}
		a.ExecuteAction("focus_next_column")
		if a.FocusedColumn != 0 {
			t.Errorf("focused column = %d, want 0", a.FocusedColumn)
		}
	})

	t.Run("window focus is clamped", func(t *testing.T) {
		a := newTestApp(t, 100, 30, nil)
		a.ExecuteAction("focus_next_window")
		a.ExecuteAction("focus_next_window")
		if a.FocusedWindow != 0 {
			t.Errorf("focused window = %d, want 0", a.FocusedWindow)
		}
	})

	t.Run("unknown action", func(t *testing.T) {
		a := newTestApp(t, 100, 30, nil)
		a.ExecuteAction("snap_left")
		if !a.StatusError {
			t.Error("unknown action should be reported")
		}
	})
}

func TestCycleContent(t *testing.T) {
	a := newTestApp(t, 100, 30, nil)
	w := a.FocusedWindowHandle()
	want := []ContentKind{ContentClock, ContentSysInfo, ContentText}
	for _, k := range want {
		a.ExecuteAction("cycle_content")
		if got := contentOf(w); got != k {
			t.Fatalf("content = %q, want %q", got, k)
		}
	}
}

func TestRenderSize(t *testing.T) {
	tests := []struct {
		name string
		edit func(*config.UserConfig)
		help bool
	}{
		{"default", nil, false},
		{"ascii", func(c *config.UserConfig) { c.Appearance.ASCIIOnly = true }, false},
		{"no status bar", func(c *config.UserConfig) { c.Appearance.ShowStatusBar = false }, false},
		{"help", nil, true},
		{"no columns", func(c *config.UserConfig) { c.Layout.InitialColumns = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, 100, 30, tt.edit)
			a.ShowHelp = tt.help
			lines := strings.Split(a.Render(), "\n")
			if len(lines) != 30 {
				t.Fatalf("rendered %d lines, want 30", len(lines))
			}
			for i, l := range lines {
				if w := ansi.StringWidth(l); w != 100 {
					t.Errorf("line %d is %d cells wide, want 100", i, w)
				}
			}
		})
	}
}

func TestRenderShowsLabels(t *testing.T) {
	a := newTestApp(t, 100, 30, nil)
	lines := strings.Split(ansi.Strip(a.Render()), "\n")

	if !strings.HasPrefix(lines[0], " Newcol Help") {
		t.Errorf("app header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "▌ Newwin Delcol") {
		t.Errorf("column header = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "▌ Title 1 Delwin") {
		t.Errorf("window header = %q", lines[2])
	}
	if !strings.Contains(lines[29], "63/37") {
		t.Errorf("status = %q", lines[29])
	}
}

func TestApplyConfig(t *testing.T) {
	a := newTestApp(t, 100, 30, nil)

	cfg := config.DefaultConfig()
	cfg.Layout.MinSize = 64
	cfg.Appearance.ShowStatusBar = false
	cfg.Menu.Window = append(cfg.Menu.Window, config.MenuEntry{Title: "Docs", URL: "https://example.com"})
	if err := a.ApplyConfig(cfg); err != nil {
		t.Fatal(err)
	}

	if a.Engine.MinSize() != 64 {
		t.Errorf("min size = %v, want 64", a.Engine.MinSize())
	}
	if a.Canvas.StatusRow() != -1 {
		t.Error("status bar should be hidden")
	}
	w := a.FocusedWindowHandle()
	if got := a.WindowMenu(w).Len(); got != 2 {
		t.Errorf("window menu has %d entries, want 2", got)
	}

	bad := config.DefaultConfig()
	bad.Menu.App = []config.MenuEntry{{Title: "Broken"}}
	if err := a.ApplyConfig(bad); err == nil {
		t.Fatal("expected an error for a menu entry without a link")
	}
	if a.Config != cfg {
		t.Error("a rejected config must not replace the running one")
	}
}

func TestUpdateMessages(t *testing.T) {
	t.Run("reload error", func(t *testing.T) {
		a := newTestApp(t, 100, 30, nil)
		a.Update(ConfigReloadedMsg{Err: errors.New("bad toml")})
		if !a.StatusError || !strings.Contains(a.Status, "bad toml") {
			t.Errorf("status = %q", a.Status)
		}
	})

	t.Run("status expires", func(t *testing.T) {
		a := newTestApp(t, 100, 30, nil)
		a.ShowStatus("hello", false)
		a.Update(TickerMsg(a.Now.Add(time.Second)))
		if a.Status != "hello" {
			t.Fatal("status cleared too early")
		}
		a.Update(TickerMsg(a.Now.Add(statusDuration)))
		if a.Status != "" {
			t.Errorf("status = %q, want cleared", a.Status)
		}
	})

	t.Run("resize cancels drag", func(t *testing.T) {
		a := newTestApp(t, 100, 30, nil)
		if err := a.BeginDrag(a.Canvas.HitTest(63, 1), 63, 1); err != nil {
			t.Fatal(err)
		}
		a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
		if a.Session != nil {
			t.Error("resize should cancel the drag")
		}
		if w, h := a.Canvas.Size(); w != 120 || h != 40 {
			t.Errorf("canvas = %dx%d, want 120x40", w, h)
		}
		if r, _ := a.LastGesture(); r.Outcome != layout.Cancelled {
			t.Errorf("outcome = %v, want cancelled", r.Outcome)
		}
	})

	t.Run("sysinfo sample", func(t *testing.T) {
		a := newTestApp(t, 100, 30, nil)
		a.Update(SysInfoMsg(SysInfo{CPUPercent: 50, MemUsed: 1 << 30, MemTotal: 4 << 30, initialized: true}))
		if len(a.SysInfo.CPUHistory) != 1 || a.SysInfo.CPUHistory[0] != 50 {
			t.Errorf("history = %v", a.SysInfo.CPUHistory)
		}
	})
}

func TestBeginDragNotHandle(t *testing.T) {
	a := newTestApp(t, 100, 30, nil)
	if err := a.BeginDrag(a.Canvas.HitTest(5, 10), 5, 10); !errors.Is(err, ErrNotHandle) {
		t.Errorf("err = %v, want ErrNotHandle", err)
	}
}

func TestNavigateOverSSH(t *testing.T) {
	a := newTestApp(t, 100, 30, nil)
	a.IsSSHMode = true
	cmd, ok := a.ActivateMenu(a.Canvas.HitTest(8, 0))
	if !ok {
		t.Fatal("Help should be a menu entry")
	}
	if cmd != nil {
		t.Error("no browser should be launched for an SSH client")
	}
	if !strings.Contains(a.Status, config.DefaultHelpURL) {
		t.Errorf("status = %q, want the URL", a.Status)
	}
}

func TestRecordSysInfoHistory(t *testing.T) {
	a := newTestApp(t, 100, 30, nil)
	for i := range cpuHistoryLen + 3 {
		a.recordSysInfo(SysInfo{CPUPercent: float64(i), initialized: true})
	}
	h := a.SysInfo.CPUHistory
	if len(h) != cpuHistoryLen || h[0] != 3 {
		t.Errorf("history = %v, want the last %d samples", h, cpuHistoryLen)
	}

	a.recordSysInfo(SysInfo{Err: errors.New("boom"), initialized: true})
	if len(a.SysInfo.CPUHistory) != cpuHistoryLen {
		t.Error("a failed sample must not change the history")
	}
	if lines := a.sysInfoLines(); lines[0] != "sysinfo unavailable" {
		t.Errorf("lines = %v", lines)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512B"},
		{1024, "1.0KiB"},
		{1536, "1.5KiB"},
		{1 << 30, "1.0GiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCPUGraph(t *testing.T) {
	if got := cpuGraph([]float64{0, 100}, true); got != strings.Repeat(" ", 8)+".#" {
		t.Errorf("graph = %q", got)
	}
	if got := ansi.StringWidth(cpuGraph([]float64{50, 60, 70}, false)); got != cpuHistoryLen {
		t.Errorf("graph width = %d, want %d", got, cpuHistoryLen)
	}
}
