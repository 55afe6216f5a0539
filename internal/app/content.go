package app

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/Gaurav-Gosain/tilecols/internal/config"
	"github.com/Gaurav-Gosain/tilecols/internal/layout"
)

// ContentKind selects what a window shows. It is stored in Window.Content.
type ContentKind string

const (
	ContentText    ContentKind = "text"
	ContentClock   ContentKind = "clock"
	ContentSysInfo ContentKind = "sysinfo"
)

func contentOf(w *layout.Window) ContentKind {
	if k, ok := w.Content.(ContentKind); ok {
		return k
	}
	return ContentText
}

func nextContent(k ContentKind) ContentKind {
	for i, name := range config.ContentKinds {
		if ContentKind(name) == k {
			return ContentKind(config.ContentKinds[(i+1)%len(config.ContentKinds)])
		}
	}
	return ContentText
}

// SysInfo is the latest system sample shown by sysinfo windows.
type SysInfo struct {
	CPUPercent  float64
	CPUHistory  []float64
	MemUsed     uint64
	MemTotal    uint64
	MemPercent  float64
	SampledAt   time.Time
	Err         error
	initialized bool
}

// SysInfoMsg carries a fresh sample into the event loop.
type SysInfoMsg SysInfo

const (
	sysInfoInterval = 2 * time.Second
	cpuHistoryLen   = 10
)

// SampleSysInfoCmd reads CPU and memory usage off the event loop.
func SampleSysInfoCmd() tea.Cmd {
	return tea.Tick(sysInfoInterval, func(t time.Time) tea.Msg {
		return SysInfoMsg(sampleSysInfo(t))
	})
}

func sampleSysInfo(now time.Time) SysInfo {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	s := SysInfo{SampledAt: now, initialized: true}
	pcts, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		s.Err = fmt.Errorf("cpu: %w", err)
		return s
	}
	if len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		s.Err = fmt.Errorf("memory: %w", err)
		return s
	}
	s.MemUsed, s.MemTotal, s.MemPercent = vm.Used, vm.Total, vm.UsedPercent
	return s
}

// recordSysInfo stores a sample, keeping a short CPU history for the graph.
func (a *App) recordSysInfo(s SysInfo) {
	history := append(a.SysInfo.CPUHistory, s.CPUPercent)
	if len(history) > cpuHistoryLen {
		history = history[len(history)-cpuHistoryLen:]
	}
	if s.Err != nil {
		history = a.SysInfo.CPUHistory
	}
	s.CPUHistory = history
	a.SysInfo = s
}

// contentLines renders the body of w, at most height lines. Lines are not
// padded; the renderer fits them to the window width.
func (a *App) contentLines(w *layout.Window, height int) []string {
	if height <= 0 {
		return nil
	}
	var lines []string
	switch contentOf(w) {
	case ContentClock:
		lines = []string{
			a.Now.Format("15:04:05"),
			a.Now.Format("Monday, 02 January 2006"),
		}
	case ContentSysInfo:
		lines = a.sysInfoLines()
	default:
		lines = a.textLines(w)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	return lines
}

func (a *App) textLines(w *layout.Window) []string {
	col := w.Column()
	heights, _ := a.Engine.WindowHeights(col)
	share := 0.0
	if i := w.Index(); i >= 0 && i < len(heights) {
		share = heights[i]
	}
	widths := a.Engine.ColumnWidths()
	colShare := 0.0
	if i := col.Index(); i >= 0 && i < len(widths) {
		colShare = widths[i]
	}
	return []string{
		w.Title,
		"",
		fmt.Sprintf("column %d, window %d", col.Index()+1, w.Index()+1),
		fmt.Sprintf("width  %.4g%%", colShare),
		fmt.Sprintf("height %.4g%%", share),
		"",
		"Drag a handle to resize or move,",
		"click a menu entry to run it.",
	}
}

func (a *App) sysInfoLines() []string {
	s := a.SysInfo
	if !s.initialized {
		return []string{"sampling..."}
	}
	if s.Err != nil {
		return []string{"sysinfo unavailable", s.Err.Error()}
	}
	return []string{
		fmt.Sprintf("CPU %s %3.0f%%", cpuGraph(s.CPUHistory, a.Config.Appearance.ASCIIOnly), s.CPUPercent),
		fmt.Sprintf("MEM %s / %s (%.0f%%)", formatBytes(s.MemUsed), formatBytes(s.MemTotal), s.MemPercent),
		fmt.Sprintf("%s/%s, %d CPUs", runtime.GOOS, runtime.GOARCH, runtime.NumCPU()),
		"sampled " + s.SampledAt.Format("15:04:05"),
	}
}

var (
	graphBars      = []string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}
	graphBarsASCII = []string{".", ".", ":", ":", "|", "|", "#", "#"}
)

// cpuGraph draws the history as a fixed-width bar graph.
func cpuGraph(history []float64, ascii bool) string {
	bars := graphBars
	if ascii {
		bars = graphBarsASCII
	}
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", max(cpuHistoryLen-len(history), 0)))
	for _, usage := range history {
		level := min(max(int(usage/12.5), 0), len(bars)-1)
		sb.WriteString(bars[level])
	}
	return sb.String()
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%dB", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
