// Package input translates bubbletea keyboard, mouse and focus messages into
// tilecols actions and drag gesture events.
package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tilecols/internal/app"
)

// HandleInput is the app.InputHandler for tilecols.
func HandleInput(msg tea.Msg, a *app.App) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return handleKeyPress(msg, a)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, a)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, a)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, a)
	case tea.BlurMsg:
		// Losing terminal focus means the pointer left the surface.
		if a.Session != nil {
			a.Canvas.PointerLeave()
		}
		return a, nil
	}
	return a, nil
}

// FilterMouseMotion drops motion events unless a drag is armed, since
// nothing else reacts to them. It is meant for tea.WithFilter.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	a, ok := model.(*app.App)
	if !ok || a.Session != nil {
		return msg
	}
	return nil
}
