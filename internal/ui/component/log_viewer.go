package component

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rovshanmuradov/token-monitor/internal/logger"
	"github.com/rovshanmuradov/token-monitor/internal/ui/style"
)

// LogFilter defines what log levels to show
type LogFilter struct {
	ShowError   bool
	ShowWarning bool
	ShowInfo    bool
	ShowDebug   bool
}

// LogSource is the part of logger.LogBuffer the viewer reads.
type LogSource interface {
	GetRecentLogs(limit int) []logger.LogEntry
}

// logTotals is implemented by logger.LogBuffer.
type logTotals interface {
	GetStats() (total, spilled uint64)
}

// LogViewer shows the tail of the in-memory log buffer in a scrollable
// viewport. It follows new entries until the user scrolls up.
type LogViewer struct {
	source   LogSource
	viewport viewport.Model
	filter   LogFilter
	styles   style.LogStyles
	limit    int
	follow   bool
	shown    int
}

// NewLogViewer creates a log viewer over source
func NewLogViewer(source LogSource, limit int) *LogViewer {
	if limit <= 0 {
		limit = 500
	}
	return &LogViewer{
		source: source,
		filter: LogFilter{
			ShowError:   true,
			ShowWarning: true,
			ShowInfo:    true,
		},
		styles:   style.NewLogStyles(style.DefaultPalette()),
		limit:    limit,
		follow:   true,
		viewport: viewport.New(60, 10),
	}
}

// SetSize sets the component dimensions
func (lv *LogViewer) SetSize(width, height int) {
	// Border and horizontal padding
	lv.viewport.Width = max(width-4, 20)
	lv.viewport.Height = max(height-2, 3)
	lv.Refresh()
}

// ToggleLogLevel toggles a specific log level
func (lv *LogViewer) ToggleLogLevel(level string) {
	switch level {
	case "error":
		lv.filter.ShowError = !lv.filter.ShowError
	case "warn":
		lv.filter.ShowWarning = !lv.filter.ShowWarning
	case "info":
		lv.filter.ShowInfo = !lv.filter.ShowInfo
	case "debug":
		lv.filter.ShowDebug = !lv.filter.ShowDebug
	}
	lv.Refresh()
}

// Shown is the number of entries that passed the filter on the last refresh.
func (lv *LogViewer) Shown() int {
	return lv.shown
}

// Update forwards scrolling keys to the viewport.
func (lv *LogViewer) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	lv.viewport, cmd = lv.viewport.Update(msg)
	lv.follow = lv.viewport.AtBottom()
	return cmd
}

// Refresh re-reads the buffer.
func (lv *LogViewer) Refresh() {
	if lv.source == nil {
		lv.viewport.SetContent("No log buffer available")
		return
	}

	var lines []string
	for _, entry := range lv.source.GetRecentLogs(lv.limit) {
		if lv.shouldShowEntry(entry) {
			lines = append(lines, lv.formatLogEntry(entry))
		}
	}
	lv.shown = len(lines)

	if len(lines) == 0 {
		lv.viewport.SetContent("No logs match current filter")
		return
	}
	lv.viewport.SetContent(strings.Join(lines, "\n"))
	if lv.follow {
		lv.viewport.GotoBottom()
	}
}

// View renders the log viewer
func (lv *LogViewer) View() string {
	return lv.styles.Container.Render(lv.viewport.View())
}

func (lv *LogViewer) shouldShowEntry(entry logger.LogEntry) bool {
	switch strings.ToLower(entry.Level) {
	case "error", "dpanic", "panic", "fatal":
		return lv.filter.ShowError
	case "warn", "warning":
		return lv.filter.ShowWarning
	case "debug":
		return lv.filter.ShowDebug
	default:
		return lv.filter.ShowInfo
	}
}

func (lv *LogViewer) formatLogEntry(entry logger.LogEntry) string {
	level := strings.ToLower(entry.Level)
	line := fmt.Sprintf("%s %s %s",
		lv.styles.Timestamp.Render(entry.Timestamp.Format("15:04:05")),
		lv.styles.Level(level).Render(fmt.Sprintf("%-5s", strings.ToUpper(level))),
		lv.styles.Entry.Render(entry.Message),
	)
	if fields := formatFields(entry.Fields); fields != "" {
		line += " " + lv.styles.Timestamp.Render(fields)
	}
	return line
}

func formatFields(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, fields[k])
	}
	return strings.Join(parts, " ")
}

// GetFilterStatus returns current filter status as string
func (lv *LogViewer) GetFilterStatus() string {
	var active []string
	if lv.filter.ShowError {
		active = append(active, "error")
	}
	if lv.filter.ShowWarning {
		active = append(active, "warn")
	}
	if lv.filter.ShowInfo {
		active = append(active, "info")
	}
	if lv.filter.ShowDebug {
		active = append(active, "debug")
	}
	if len(active) == 0 {
		return "all levels hidden"
	}
	return "showing " + strings.Join(active, ", ")
}

// Totals describes how much has been logged and how much of it was moved
// out of memory into the log file. Empty when the source keeps no counts.
func (lv *LogViewer) Totals() string {
	counts, ok := lv.source.(logTotals)
	if !ok {
		return ""
	}
	total, spilled := counts.GetStats()
	if spilled == 0 {
		return fmt.Sprintf("%d logged", total)
	}
	return fmt.Sprintf("%d logged, %d older in the log file", total, spilled)
}
