package input

import (
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tilecols/internal/app"
	"github.com/Gaurav-Gosain/tilecols/internal/canvas"
)

// handleMouseClick arms a drag on a handle, follows a menu entry or moves
// the focus, depending on what lies under the pointer.
func handleMouseClick(msg tea.MouseClickMsg, a *app.App) (*app.App, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft || a.ShowHelp {
		return a, nil
	}

	hit := a.Canvas.HitTest(mouse.X, mouse.Y)
	switch hit.Target {
	case canvas.TargetColumnHandle, canvas.TargetWindowHandle:
		if err := a.BeginDrag(hit, mouse.X, mouse.Y); err != nil && !errors.Is(err, app.ErrNotHandle) {
			a.ShowStatus("drag: "+err.Error(), true)
		}
		return a, nil

	case canvas.TargetAppMenu, canvas.TargetColumnMenu, canvas.TargetWindowMenu:
		if a.Session != nil {
			return a, nil
		}
		cmd, _ := a.ActivateMenu(hit)
		return a, cmd

	case canvas.TargetWindowHeader, canvas.TargetWindowBody:
		a.Focus(a.WindowFor(hit.Node))

	case canvas.TargetColumnHeader:
		a.FocusColumn(a.ColumnFor(hit.Node))

	case canvas.TargetNone:
		if col := a.ColumnFor(hit.Node); col != nil {
			a.FocusColumn(col)
		}
	}
	return a, nil
}

// handleMouseRelease delivers the release to the armed drag, if any.
func handleMouseRelease(msg tea.MouseReleaseMsg, a *app.App) (*app.App, tea.Cmd) {
	if a.Session == nil {
		return a, nil
	}
	mouse := msg.Mouse()
	a.Canvas.PointerUp(mouse.X, mouse.Y)
	return a, nil
}

// handleMouseMotion cancels the drag once the pointer leaves the screen.
// Terminals report such motion with coordinates outside the window.
func handleMouseMotion(msg tea.MouseMotionMsg, a *app.App) (*app.App, tea.Cmd) {
	if a.Session == nil {
		return a, nil
	}
	mouse := msg.Mouse()
	if !inside(mouse.X, mouse.Y, a.Canvas) {
		a.Canvas.PointerLeave()
	}
	return a, nil
}

func inside(x, y int, c *canvas.Canvas) bool {
	w, h := c.Size()
	return x >= 0 && y >= 0 && x < w && y < h
}
