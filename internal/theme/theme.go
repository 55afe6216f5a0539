// Package theme provides the colours used to draw columns, windows and their
// headers.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var enabled bool

// Initialize sets up the theme registry with the specified theme name.
// Call this once at application startup, and again after a config reload.
// If themeName is empty, theming is disabled and standard terminal colors are used.
// It reports whether the named theme was found.
func Initialize(themeName string) bool {
	if themeName == "" {
		enabled = false
		return true
	}

	enabled = true
	tint.NewDefaultRegistry()

	if ok := tint.SetTintID(themeName); !ok {
		// Theme not found, set to default
		tint.SetTintID("default")
		return false
	}
	return true
}

// IsEnabled returns true if theming is enabled
func IsEnabled() bool {
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !enabled {
		return nil
	}
	return tint.Current()
}

// Name returns the display name of the active theme.
func Name() string {
	t := Current()
	if t == nil {
		return "terminal"
	}
	return t.DisplayName
}

// Background is the fill of a level with no children.
func Background() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#1c1c1c")
	}
	return t.Bg
}

// Foreground is the colour of window content.
func Foreground() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#e5e5e5")
	}
	return t.Fg
}

// Border separates neighbouring columns and windows.
func Border() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#7f7f7f")
	}
	return t.BrightBlack
}

// BorderFocused outlines the focused window.
func BorderFocused() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#AFFFFF")
	}
	return t.BrightCyan
}

// Header colors
func HeaderBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#2a2a3e")
	}
	return t.Black
}

func HeaderFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#a0a0a8")
	}
	return t.White
}

func AppHeaderBg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#0000ee")
	}
	return t.Blue
}

func AppHeaderFg() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ffffff")
	}
	return t.BrightWhite
}

// Drag handle colors
func Handle() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#5c5cff")
	}
	return t.BrightBlue
}

// HandleBusy colours every handle while a drag is armed.
func HandleBusy() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#ffff00")
	}
	return t.Yellow
}

// MenuEntry colours a clickable header entry.
func MenuEntry() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00cdcd")
	}
	return t.Cyan
}

// Status bar colors
func StatusBg() color.Color {
	return lipgloss.Color("#1a1a2e")
}

func StatusFg() color.Color {
	return lipgloss.Color("#a0a0b0")
}

func StatusError() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#cd0000")
	}
	return t.Red
}

func StatusAccent() color.Color {
	t := Current()
	if t == nil {
		return lipgloss.Color("#00cd00")
	}
	return t.Green
}

// Help overlay colors
func HelpTitle() color.Color {
	return lipgloss.Color("14")
}

func HelpKey() color.Color {
	return lipgloss.Color("11")
}

func HelpText() color.Color {
	return lipgloss.Color("7")
}
