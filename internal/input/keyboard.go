package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tilecols/internal/app"
)

// handleKeyPress resolves a key through the keybind registry and
// dispatches the bound action.
func handleKeyPress(msg tea.KeyPressMsg, a *app.App) (*app.App, tea.Cmd) {
	key := msg.String()

	// While help is shown, esc closes it before anything else sees the key.
	if a.ShowHelp && key == "esc" {
		a.ShowHelp = false
		return a, nil
	}

	action := a.KeybindRegistry.GetAction(key)
	if action == "" {
		return a, nil
	}
	if a.ShowHelp && action != "toggle_help" && action != "quit" {
		return a, nil
	}
	return GetDispatcher().Dispatch(action, msg, a)
}
