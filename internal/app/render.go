package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/tilecols/internal/canvas"
	"github.com/Gaurav-Gosain/tilecols/internal/layout"
	"github.com/Gaurav-Gosain/tilecols/internal/pool"
	"github.com/Gaurav-Gosain/tilecols/internal/theme"
)

// View returns the rendered view.
func (a *App) View() tea.View {
	var view tea.View
	view.SetContent(a.Render())
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	return view
}

// Render draws the whole screen, one line per canvas row.
func (a *App) Render() string {
	width, height := a.Canvas.Size()
	if width == 0 || height == 0 {
		return ""
	}

	lines := pool.GetLineSlice()
	defer pool.PutLineSlice(lines)

	*lines = append(*lines, a.renderAppHeader(width))
	area := a.Canvas.Root().Inner()
	if a.ShowHelp {
		*lines = append(*lines, a.renderHelp(area.W, area.H)...)
	} else {
		*lines = append(*lines, a.renderColumns(area)...)
	}
	if row := a.Canvas.StatusRow(); row > 0 {
		*lines = append(*lines, a.renderStatus(width))
	}

	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)
	for i, l := range *lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(l)
	}
	return sb.String()
}

// fit truncates or pads s to exactly width cells, padding with style.
func fit(s string, width int, pad lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += pad.Render(strings.Repeat(" ", width-w))
	}
	return s
}

func (a *App) glyphs() (handle, border string) {
	if a.Config.Appearance.ASCIIOnly {
		return "#", "|"
	}
	return "▌", "│"
}

func (a *App) handleStyle(bg lipgloss.Style) lipgloss.Style {
	fg := theme.Handle()
	if a.Canvas.Busy() {
		fg = theme.HandleBusy()
	}
	return bg.Foreground(fg)
}

func (a *App) renderAppHeader(width int) string {
	bg := lipgloss.NewStyle().Background(theme.AppHeaderBg()).Foreground(theme.AppHeaderFg())
	entry := bg.Foreground(theme.MenuEntry()).Bold(true)

	var sb strings.Builder
	x := 0
	root := a.Canvas.Root()
	titles := root.Menu()
	for _, s := range a.Canvas.MenuSpans(root) {
		sb.WriteString(bg.Render(strings.Repeat(" ", s.Start-x)))
		sb.WriteString(entry.Render(titles[s.Index]))
		x = s.End
	}

	name := " tilecols "
	if rest := width - x; rest > len(name) {
		sb.WriteString(bg.Render(strings.Repeat(" ", rest-len(name))))
		sb.WriteString(bg.Bold(true).Render(name))
	}
	return fit(sb.String(), width, bg)
}

func (a *App) renderColumns(area canvas.Rect) []string {
	if area.H == 0 {
		return nil
	}
	cols := a.Engine.Columns()
	if len(cols) == 0 {
		return backgroundBlock(area.W, area.H)
	}

	blocks := make([][]string, len(cols))
	for i, col := range cols {
		blocks[i] = a.renderColumn(col, i == a.FocusedColumn)
	}

	out := make([]string, area.H)
	for row := range out {
		var sb strings.Builder
		for _, b := range blocks {
			if row < len(b) {
				sb.WriteString(b[row])
			}
		}
		out[row] = sb.String()
	}
	return out
}

// backgroundBlock fills an empty level with the background colour.
func backgroundBlock(width, height int) []string {
	line := lipgloss.NewStyle().Background(theme.Background()).Render(strings.Repeat(" ", width))
	out := make([]string, height)
	for i := range out {
		out[i] = line
	}
	return out
}

func (a *App) renderColumn(col *layout.Column, focused bool) []string {
	n := col.Handle().(*canvas.Node)
	r := n.Rect()
	if r.W == 0 || r.H == 0 {
		return nil
	}

	bg := lipgloss.NewStyle().Background(theme.HeaderBg()).Foreground(theme.HeaderFg())
	if focused {
		bg = bg.Bold(true)
	}
	lines := []string{a.renderHeader(n, bg)}

	if col.Len() == 0 {
		return append(lines, backgroundBlock(r.W, n.Inner().H)...)
	}
	for j, w := range col.Windows() {
		lines = append(lines, a.renderWindow(w, focused && j == a.FocusedWindow)...)
	}
	return lines
}

func (a *App) renderWindow(w *layout.Window, focused bool) []string {
	n := w.Handle().(*canvas.Node)
	r := n.Rect()
	if r.H == 0 {
		return nil
	}

	bg := lipgloss.NewStyle().Background(theme.HeaderBg()).Foreground(theme.HeaderFg())
	if focused {
		bg = lipgloss.NewStyle().Background(theme.BorderFocused()).Foreground(theme.Background()).Bold(true)
	}
	lines := make([]string, 0, r.H)
	lines = append(lines, a.renderHeader(n, bg))

	_, border := a.glyphs()
	borderStyle := lipgloss.NewStyle().Foreground(theme.Border())
	if focused {
		borderStyle = borderStyle.Foreground(theme.BorderFocused())
	}
	body := lipgloss.NewStyle().Foreground(theme.Foreground())
	content := a.contentLines(w, r.H-1)
	for i := 1; i < r.H; i++ {
		text := ""
		if i-1 < len(content) {
			text = content[i-1]
		}
		line := borderStyle.Render(border) + body.Render(" "+ansi.Truncate(text, max(r.W-2, 0), ""))
		lines = append(lines, fit(line, r.W, lipgloss.NewStyle()))
	}
	return lines
}

// renderHeader draws the handle, the title and the menu entries of a
// column or window, at the cells the canvas hit-tests them.
func (a *App) renderHeader(n *canvas.Node, bg lipgloss.Style) string {
	r := n.Rect()
	handle, _ := a.glyphs()
	entry := bg.Foreground(theme.MenuEntry())

	var sb strings.Builder
	sb.WriteString(a.handleStyle(bg).Render(handle))
	x := r.X + 1
	if title := n.Title(); title != "" && r.W > 2 {
		sb.WriteString(bg.Render(" " + ansi.Truncate(title, r.W-2, "")))
		x = min(r.X+2+ansi.StringWidth(title), r.X+r.W)
	}
	titles := n.Menu()
	for _, s := range a.Canvas.MenuSpans(n) {
		sb.WriteString(bg.Render(strings.Repeat(" ", s.Start-x)))
		sb.WriteString(entry.Render(titles[s.Index]))
		x = s.End
	}
	return fit(sb.String(), r.W, bg)
}

func (a *App) renderStatus(width int) string {
	bg := lipgloss.NewStyle().Background(theme.StatusBg()).Foreground(theme.StatusFg())

	left := bg.Render(" ? help")
	switch {
	case a.Session != nil:
		left = bg.Foreground(theme.StatusAccent()).Render(" dragging " + a.Session.Kind().String() + ", esc to cancel")
	case a.Status != "" && a.StatusError:
		left = bg.Foreground(theme.StatusError()).Render(" " + a.Status)
	case a.Status != "":
		left = bg.Foreground(theme.StatusAccent()).Render(" " + a.Status)
	}

	right := bg.Render(fmt.Sprintf("%s | %s | min %gpx ", a.widthSummary(), theme.Name(), a.Engine.MinSize()))
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		return fit(left, width, bg)
	}
	return left + bg.Render(strings.Repeat(" ", gap)) + right
}

// widthSummary lists the column widths, e.g. "63/37".
func (a *App) widthSummary() string {
	widths := a.Engine.ColumnWidths()
	if len(widths) == 0 {
		return "no columns"
	}
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = fmt.Sprintf("%.4g", w)
	}
	return strings.Join(parts, "/")
}
