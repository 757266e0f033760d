package style

import (
	"github.com/charmbracelet/lipgloss"
)

// HeaderStyles provides styling for the status header
type HeaderStyles struct {
	Container lipgloss.Style
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	FetchOK   lipgloss.Style
	FetchBad  lipgloss.Style
	Fetching  lipgloss.Style
}

// NewHeaderStyles creates header styles with the given palette
func NewHeaderStyles(palette Palette) HeaderStyles {
	return HeaderStyles{
		Container: lipgloss.NewStyle().
			Foreground(palette.Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Primary).
			Padding(0, 2),

		Title: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		Value: lipgloss.NewStyle().
			Foreground(palette.TextSecondary),

		FetchOK: lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true),

		FetchBad: lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true),

		Fetching: lipgloss.NewStyle().
			Foreground(palette.Warning),
	}
}

// LogStyles provides styling for the log viewer
type LogStyles struct {
	Container lipgloss.Style
	Entry     lipgloss.Style
	Timestamp lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Debug     lipgloss.Style
}

// NewLogStyles creates log viewer styles
func NewLogStyles(palette Palette) LogStyles {
	return LogStyles{
		Container: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Info).
			Padding(0, 1),

		Entry: lipgloss.NewStyle().
			Foreground(palette.Text),

		Timestamp: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		Error: lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(palette.Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(palette.Info),

		Debug: lipgloss.NewStyle().
			Foreground(palette.TextMuted),
	}
}

// Level returns the style for a zap level name.
func (ls LogStyles) Level(level string) lipgloss.Style {
	switch level {
	case "error", "dpanic", "panic", "fatal":
		return ls.Error
	case "warn":
		return ls.Warning
	case "debug":
		return ls.Debug
	default:
		return ls.Info
	}
}
