package component

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/token-monitor/internal/format"
	"github.com/rovshanmuradov/token-monitor/internal/token"
)

func TestTokenRows(t *testing.T) {
	tokens := []token.Token{
		{Name: "Bonk", Address: "AAA", CurrentPrice: token.NewNumber(2), RSI1m: token.NewNumber(75), PriceChange30m: token.NewNumber(-1)},
	}
	snap := token.NewSnapshot(tokens, time.Now())
	cols := format.Columns(snap.Columns)

	columns := TokenColumns(cols)
	require.Len(t, columns, len(cols))
	assert.Equal(t, lipgloss.Left, columns[0].Align)
	assert.Equal(t, lipgloss.Right, columns[2].Align)

	table := NewTokenTable(snap, snap.Tokens, format.NewFormatter(2, time.UTC))
	view := table.View()
	assert.Contains(t, view, "Bonk")
	assert.Contains(t, view, "$2.00")
	assert.Contains(t, view, "75.00")
	assert.Contains(t, view, "-1.00%")
	assert.NotContains(t, view, "RSI 1h")
}
