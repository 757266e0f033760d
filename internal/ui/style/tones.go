package style

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/token-monitor/internal/format"
)

// ToneStyles maps a formatted cell tone to its rendering.
type ToneStyles map[format.Tone]lipgloss.Style

// NewToneStyles builds tone styles from the palette. RSI bands use a dark
// foreground so the value stays readable on the light background.
func NewToneStyles(p Palette) ToneStyles {
	return ToneStyles{
		format.ToneNone:     lipgloss.NewStyle(),
		format.ToneRSIHigh:  lipgloss.NewStyle().Background(p.RSIHigh).Foreground(p.Background),
		format.ToneRSIMid:   lipgloss.NewStyle().Background(p.RSIMid).Foreground(p.Background),
		format.TonePositive: lipgloss.NewStyle().Foreground(p.Up),
		format.ToneNegative: lipgloss.NewStyle().Foreground(p.Down),
		format.ToneMuted:    lipgloss.NewStyle().Foreground(p.TextMuted),
	}
}

// For returns the style of tone, or an empty style for unknown tones.
func (ts ToneStyles) For(tone format.Tone) lipgloss.Style {
	if s, ok := ts[tone]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
