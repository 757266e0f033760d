package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/token-monitor/internal/format"
	"github.com/rovshanmuradov/token-monitor/internal/token"
	"github.com/rovshanmuradov/token-monitor/internal/ui/style"
)

// TokenDetails shows every column of one token plus its in-session price
// trend.
type TokenDetails struct {
	token     *token.Token
	columns   []format.Column
	formatter format.Formatter
	tones     style.ToneStyles
	sparkline *Sparkline
	width     int

	container lipgloss.Style
	title     lipgloss.Style
	label     lipgloss.Style
}

// NewTokenDetails creates an empty details pane
func NewTokenDetails(formatter format.Formatter) *TokenDetails {
	palette := style.DefaultPalette()
	formatter.ShortAddress = false
	return &TokenDetails{
		formatter: formatter,
		tones:     style.NewToneStyles(palette),
		sparkline: NewSparkline(30),
		container: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.Secondary).
			Padding(0, 2),
		title: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true),
		label: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Width(14),
	}
}

// SetToken selects the token to show; nil clears the pane.
func (td *TokenDetails) SetToken(t *token.Token, columns []format.Column, prices []float64) {
	td.token = t
	td.columns = columns
	td.sparkline.SetData(prices)
}

// SetWidth sets the component width
func (td *TokenDetails) SetWidth(width int) {
	td.width = width
}

// View renders the details pane
func (td *TokenDetails) View() string {
	if td.token == nil {
		return td.container.Render(style.MutedStyle.Render("No token selected"))
	}

	lines := []string{td.title.Render(td.token.Name)}
	for _, col := range td.columns {
		if col.Key == format.ColName {
			continue
		}
		cell := td.formatter.Cell(*td.token, col.Key)
		lines = append(lines, td.label.Render(col.Header)+td.tones.For(cell.Tone).Render(cell.Text))
	}
	trend := td.sparkline.View()
	if td.sparkline.Len() < 2 {
		trend += style.MutedStyle.Render("  (builds up with each refresh)")
	}
	lines = append(lines, td.label.Render("Trend")+trend)

	container := td.container
	if td.width > 4 {
		container = container.Width(td.width - 2)
	}
	return container.Render(strings.Join(lines, "\n"))
}
