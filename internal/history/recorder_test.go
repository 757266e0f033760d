package history

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-monitor/internal/format"
	"github.com/rovshanmuradov/token-monitor/internal/token"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRecorderAppendsSnapshots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history", "prices.csv")
	rec, err := NewRecorder(path, format.NewFormatter(4, time.UTC), zap.NewNop())
	require.NoError(t, err)

	first := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	snap := token.NewSnapshot([]token.Token{
		{Name: "A", Address: "addrA", CurrentPrice: token.NewNumber(2), RSI1m: token.NewNumber(65), Active: true},
		{Name: "B", Address: "addrB", PriceChange24h: token.NewNumber(-1.5)},
	}, first)

	n, err := rec.Record(snap)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Same fetch time again is a no-op.
	n, err = rec.Record(snap)
	require.NoError(t, err)
	assert.Zero(t, n)

	snap.FetchedAt = first.Add(time.Minute)
	n, err = rec.Record(snap)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, uint64(4), rec.Rows())

	require.NoError(t, rec.Close())

	rows := readRows(t, path)
	require.Len(t, rows, 5)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"2024-01-01 12:00:00", "A", "addrA", "$2.0000", format.NotAvailable, format.NotAvailable, "65.00", format.NotAvailable, "on"}, rows[1])
	assert.Equal(t, "-1.50%", rows[2][5])
	assert.Equal(t, "2024-01-01 12:01:00", rows[3][0])
}

func TestRecorderSkipsUnfetchedSnapshot(t *testing.T) {
	rec, err := NewRecorder(filepath.Join(t.TempDir(), "h.csv"), format.NewFormatter(4, nil), nil)
	require.NoError(t, err)
	defer rec.Close()

	n, err := rec.Record(token.Snapshot{Tokens: []token.Token{{Name: "A", Address: "a"}}})
	require.NoError(t, err)
	assert.Zero(t, n)
}
