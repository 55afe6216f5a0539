package app

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/Gaurav-Gosain/tilecols/internal/config"
	"github.com/Gaurav-Gosain/tilecols/internal/theme"
)

// HelpBinding represents a single keybinding for the help overlay
type HelpBinding struct {
	Action      string // Action name (e.g., "new_window")
	Keys        string // Keys for display (e.g., "n, Ctrl+n")
	Description string // Human-readable description
}

// HelpCategory represents a category of keybindings
type HelpCategory struct {
	Name     string
	Bindings []HelpBinding
}

// GetHelpCategories lists the bound actions of registry per section.
// Unbound actions are left out, and so are sections left empty.
func GetHelpCategories(registry *config.KeybindRegistry) []HelpCategory {
	var categories []HelpCategory
	for _, section := range config.SectionActions {
		cat := HelpCategory{Name: section.Title}
		for _, action := range section.Actions {
			if len(registry.GetKeys(action)) == 0 {
				continue
			}
			desc := config.ActionDescriptions[action]
			if desc == "" {
				desc = formatActionName(action)
			}
			cat.Bindings = append(cat.Bindings, HelpBinding{
				Action:      action,
				Keys:        registry.GetKeysForDisplay(action),
				Description: desc,
			})
		}
		if len(cat.Bindings) > 0 {
			categories = append(categories, cat)
		}
	}
	return categories
}

// formatActionName formats an action name for display
func formatActionName(action string) string {
	parts := strings.Split(action, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// renderHelp draws the keybinding table centred in width by height cells.
func (a *App) renderHelp(width, height int) []string {
	headerStyle := lipgloss.NewStyle().Foreground(theme.HelpTitle()).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(theme.HelpKey()).Padding(0, 1)
	textStyle := lipgloss.NewStyle().Foreground(theme.HelpText()).Padding(0, 1)

	var rows [][]string
	for _, cat := range GetHelpCategories(a.KeybindRegistry) {
		rows = append(rows, []string{cat.Name, ""})
		for _, b := range cat.Bindings {
			rows = append(rows, []string{b.Keys, b.Description})
		}
	}
	rows = append(rows,
		[]string{"MOUSE", ""},
		[]string{"drag handle", "Resize, reorder or move"},
		[]string{"click menu", "Run the entry"},
	)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border())).
		Headers("Keys", "Action").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if rows[row][1] == "" {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return keyStyle
			}
			return textStyle
		})

	placed := lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, t.Render())
	lines := strings.Split(placed, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, l := range lines {
		lines[i] = fit(l, width, lipgloss.NewStyle())
	}
	return lines
}
