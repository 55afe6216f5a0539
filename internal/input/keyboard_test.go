package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tilecols/internal/layout"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestKeyActions(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		check func(t *testing.T, cols []int)
	}{
		{
			name: "new window in focused column",
			keys: []string{"n"},
			check: func(t *testing.T, cols []int) {
				if cols[0] != 2 || cols[1] != 0 {
					t.Errorf("windows per column = %v, want [2 0]", cols)
				}
			},
		},
		{
			name: "focus moves right before new window",
			keys: []string{"l", "n"},
			check: func(t *testing.T, cols []int) {
				if cols[0] != 1 || cols[1] != 1 {
					t.Errorf("windows per column = %v, want [1 1]", cols)
				}
			},
		},
		{
			name: "arrow key alias",
			keys: []string{"right", "n", "n"},
			check: func(t *testing.T, cols []int) {
				if cols[1] != 2 {
					t.Errorf("windows per column = %v, want 2 in column 1", cols)
				}
			},
		},
		{
			name: "close window keeps column",
			keys: []string{"x"},
			check: func(t *testing.T, cols []int) {
				if len(cols) != 2 || cols[0] != 0 {
					t.Errorf("windows per column = %v, want [0 0]", cols)
				}
			},
		},
		{
			name: "new and closed column",
			keys: []string{"C", "X"},
			check: func(t *testing.T, cols []int) {
				if len(cols) != 2 {
					t.Errorf("columns = %d, want 2", len(cols))
				}
			},
		},
		{
			name: "unbound key is ignored",
			keys: []string{"z"},
			check: func(t *testing.T, cols []int) {
				if len(cols) != 2 || cols[0] != 1 {
					t.Errorf("windows per column = %v, want [1 0]", cols)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, nil)
			for _, k := range tt.keys {
				HandleInput(key(k), a)
			}
			var cols []int
			for _, col := range a.Engine.Columns() {
				cols = append(cols, col.Len())
			}
			tt.check(t, cols)
		})
	}
}

func TestEscCancelsDrag(t *testing.T) {
	a := newTestApp(t, nil)
	click(a, 63, 1)
	HandleInput(key("esc"), a)

	if a.Session != nil {
		t.Fatal("esc should cancel the drag")
	}
	if r, _ := a.LastGesture(); r.Outcome != layout.Cancelled {
		t.Errorf("outcome = %v, want cancelled", r.Outcome)
	}
}

func TestHelpToggle(t *testing.T) {
	a := newTestApp(t, nil)

	HandleInput(key("?"), a)
	if !a.ShowHelp {
		t.Fatal("? should open help")
	}
	HandleInput(key("n"), a)
	if a.Engine.Columns()[0].Len() != 1 {
		t.Error("layout keys must be ignored while help is shown")
	}
	HandleInput(key("esc"), a)
	if a.ShowHelp {
		t.Error("esc should close help")
	}

	click(a, 63, 1)
	HandleInput(key("?"), a)
	if a.ShowHelp {
		t.Error("help must not open during a drag")
	}
}

func TestQuitKey(t *testing.T) {
	a := newTestApp(t, nil)
	_, cmd := HandleInput(key("q"), a)
	if !a.Quitting() || cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
}

func TestDispatcherActions(t *testing.T) {
	d := GetDispatcher()
	for _, action := range []string{"new_column", "close_window", "cancel_drag", "toggle_help", "quit"} {
		if !d.HasAction(action) {
			t.Errorf("action %q not registered", action)
		}
	}
	if d.HasAction("snap_left") {
		t.Error("unexpected action snap_left")
	}
}
