package component

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rovshanmuradov/token-monitor/internal/format"
	"github.com/rovshanmuradov/token-monitor/internal/token"
	"github.com/rovshanmuradov/token-monitor/internal/ui/style"
)

// TokenColumns turns formatter columns into table columns. Numbers are
// right aligned.
func TokenColumns(cols []format.Column) []TableColumn {
	out := make([]TableColumn, len(cols))
	for i, c := range cols {
		align := lipgloss.Left
		if c.Numeric {
			align = lipgloss.Right
		}
		out[i] = TableColumn{Header: c.Header, Align: align}
	}
	return out
}

// TokenRows formats tokens and colours each cell by its tone.
func TokenRows(tokens []token.Token, cols []format.Column, f format.Formatter, tones style.ToneStyles) []TableRow {
	rows := make([]TableRow, len(tokens))
	for i, t := range tokens {
		cells := f.Row(t, cols)
		row := TableRow{Cells: make([]TableCell, len(cells))}
		for j, c := range cells {
			row.Cells[j] = TableCell{Text: c.Text, Style: tones.For(c.Tone)}
		}
		rows[i] = row
	}
	return rows
}

// NewTokenTable renders a whole snapshot as a static, unselectable table.
func NewTokenTable(snap token.Snapshot, tokens []token.Token, f format.Formatter) *Table {
	cols := format.Columns(snap.Columns)
	return NewTable().
		SetColumns(TokenColumns(cols)).
		SetRows(TokenRows(tokens, cols, f, style.NewToneStyles(style.DefaultPalette()))).
		SetSelectable(false).
		SetEmptyText("No tokens")
}
