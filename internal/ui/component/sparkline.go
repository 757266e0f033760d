package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/token-monitor/internal/ui/style"
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline draws the most recent width data points as block characters
type Sparkline struct {
	data  []float64
	width int
	color lipgloss.Color
}

// NewSparkline creates a new sparkline component
func NewSparkline(width int) *Sparkline {
	return &Sparkline{
		width: width,
		color: style.DefaultPalette().Primary,
	}
}

// SetData sets the data points for the sparkline
func (s *Sparkline) SetData(data []float64) *Sparkline {
	if len(data) > s.width {
		data = data[len(data)-s.width:]
	}
	s.data = append(s.data[:0], data...)
	return s
}

// Len is the number of points held.
func (s *Sparkline) Len() int {
	return len(s.data)
}

// View renders the sparkline followed by the direction of the last move.
func (s *Sparkline) View() string {
	palette := style.DefaultPalette()
	if len(s.data) == 0 {
		return lipgloss.NewStyle().Foreground(palette.TextMuted).Render(strings.Repeat("▁", s.width))
	}

	blocks := lipgloss.NewStyle().Foreground(s.color).Render(s.blocks())

	trend, color := s.Trend(), palette.TextMuted
	switch trend {
	case "↗":
		color = palette.Up
	case "↘":
		color = palette.Down
	}
	return blocks + " " + lipgloss.NewStyle().Foreground(color).Render(trend)
}

func (s *Sparkline) blocks() string {
	lo, hi := s.data[0], s.data[0]
	for _, v := range s.data {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	var b strings.Builder
	for _, v := range s.data {
		idx := len(sparkChars) / 2
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkChars)-1))
		}
		b.WriteRune(sparkChars[idx])
	}
	if pad := s.width - len(s.data); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	return b.String()
}

// Trend compares the last two points.
func (s *Sparkline) Trend() string {
	if len(s.data) < 2 {
		return "→"
	}
	prev, last := s.data[len(s.data)-2], s.data[len(s.data)-1]
	switch {
	case last > prev:
		return "↗"
	case last < prev:
		return "↘"
	default:
		return "→"
	}
}
