package input

import (
	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tilecols/internal/app"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(msg tea.KeyPressMsg, a *app.App) (*app.App, tea.Cmd)

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

func (d *ActionDispatcher) registerHandlers() {
	for _, action := range []string{
		"new_column", "new_window", "close_window", "close_column", "cycle_content",
		"focus_next_column", "focus_prev_column", "focus_next_window", "focus_prev_window",
		"cancel_drag", "quit",
	} {
		d.Register(action, runAction(action))
	}
	d.Register("toggle_help", handleToggleHelp)
}

// Register adds an action handler
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (d *ActionDispatcher) Dispatch(action string, msg tea.KeyPressMsg, a *app.App) (*app.App, tea.Cmd) {
	if handler, ok := d.handlers[action]; ok {
		return handler(msg, a)
	}
	return a, nil
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

// runAction hands action to the app, which applies it to the focus.
func runAction(action string) ActionHandler {
	return func(_ tea.KeyPressMsg, a *app.App) (*app.App, tea.Cmd) {
		return a, a.ExecuteAction(action)
	}
}

func handleToggleHelp(_ tea.KeyPressMsg, a *app.App) (*app.App, tea.Cmd) {
	if a.Session != nil {
		// The overlay would hide the drop target.
		return a, nil
	}
	return a, a.ExecuteAction("toggle_help")
}
