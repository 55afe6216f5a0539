package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/Gaurav-Gosain/tilecols/internal/config"
)

// TickerMsg drives the clock and status timeouts.
type TickerMsg time.Time

// ConfigReloadedMsg carries a configuration reloaded from disk. Err is set
// when the file could not be read or failed validation.
type ConfigReloadedMsg struct {
	Config *config.UserConfig
	Err    error
}

// InputHandler handles keyboard, mouse and focus messages. It lives in the
// input package, which imports this one.
type InputHandler func(msg tea.Msg, a *App) (tea.Model, tea.Cmd)

var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the clock tick and the system sampler.
func (a *App) Init() tea.Cmd {
	return tea.Batch(TickCmd(), SampleSysInfoCmd())
}

// TickCmd ticks once a second; nothing on screen changes faster.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Update handles all incoming messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		a.Now = time.Time(msg)
		if a.Status != "" && a.Now.After(a.statusUntil) {
			a.Status, a.StatusError = "", false
		}
		return a, TickCmd()

	case SysInfoMsg:
		a.recordSysInfo(SysInfo(msg))
		return a, SampleSysInfoCmd()

	case tea.KeyPressMsg, tea.MouseClickMsg, tea.MouseMotionMsg,
		tea.MouseReleaseMsg, tea.FocusMsg, tea.BlurMsg:
		if inputHandler != nil {
			return inputHandler(msg, a)
		}
		return a, nil

	case tea.WindowSizeMsg:
		a.Resize(msg.Width, msg.Height)
		return a, nil

	case ConfigReloadedMsg:
		if msg.Err != nil {
			a.ShowStatus(fmt.Sprintf("config not reloaded: %v", msg.Err), true)
			return a, nil
		}
		if err := a.ApplyConfig(msg.Config); err != nil {
			a.ShowStatus(fmt.Sprintf("config not applied: %v", err), true)
			return a, nil
		}
		a.ShowStatus("config reloaded", false)
		return a, nil

	case URLOpenedMsg:
		if msg.Err != nil {
			a.ShowStatus(msg.Err.Error(), true)
		} else {
			a.ShowStatus("opened "+msg.URL, false)
		}
		return a, nil

	case tea.MouseMsg:
		// Wheel and other mouse events have no meaning here.
		return a, nil
	}

	return a, nil
}

// Resize changes the screen size. An armed drag is cancelled first since
// its offsets refer to the old geometry.
func (a *App) Resize(width, height int) {
	if a.Session != nil {
		_ = a.Session.Abort()
	}
	a.Width, a.Height = width, height
	a.Canvas.Resize(width, height)
	a.sync()
}
