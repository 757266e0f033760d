package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-monitor/internal/format"
	"github.com/rovshanmuradov/token-monitor/internal/token"
)

var fixedNow = time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)

func newTestExporter() *SnapshotExporter {
	se := NewSnapshotExporter(format.NewFormatter(4, time.UTC), zap.NewNop())
	se.now = func() time.Time { return fixedNow }
	return se
}

func generateTestSnapshot() token.Snapshot {
	return token.NewSnapshot([]token.Token{
		{
			Name:           "Alpha",
			Address:        "AlphaAddr111",
			CurrentPrice:   token.NewNumber(1.5),
			RSI1h:          token.NewNumber(72),
			PriceChange30m: token.NewNumber(0.5),
			PriceChange24h: token.NewNumber(12.25),
			LastUpdate:     token.NewTimestamp(time.Date(2024, 3, 9, 14, 0, 0, 0, time.UTC)),
			Active:         true,
		},
		{
			Name:           "Beta",
			Address:        "BetaAddr222",
			CurrentPrice:   token.NewNumber(0.00012),
			RSI1h:          token.NewNumber(40),
			PriceChange24h: token.NewNumber(-3),
			Active:         false,
		},
	}, fixedNow)
}

func TestSnapshotExportCSV(t *testing.T) {
	se := newTestExporter()
	dir := t.TempDir()

	path, err := se.Export(generateTestSnapshot(), ExportOptions{Format: FormatCSV, OutputDir: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "tokens_all_20240309_140506.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"token_name", "token_address", "current_price", "price_change_30m",
		"price_change_24h", "rsi_1h", "last_update", "active",
	}, rows[0])
	assert.Equal(t, []string{
		"Alpha", "AlphaAddr111", "$1.5000", "+0.50%", "+12.25%", "72.00", "2024-03-09 14:00:00", "on",
	}, rows[1])
	assert.Equal(t, "$0.0001", rows[2][2])
	assert.Equal(t, format.NotAvailable, rows[2][3])
	assert.Equal(t, format.NotAvailable, rows[2][6])
}

func TestSnapshotExportJSON(t *testing.T) {
	se := newTestExporter()

	path, err := se.Export(generateTestSnapshot(), ExportOptions{Format: FormatJSON, OutputDir: t.TempDir()})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded struct {
		Columns []string            `json:"columns"`
		Tokens  []map[string]string `json:"tokens"`
		Summary ExportSummary       `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(content, &decoded))

	assert.Len(t, decoded.Tokens, 2)
	assert.Equal(t, "-3.00%", decoded.Tokens[1]["price_change_24h"])
	assert.NotContains(t, decoded.Columns, "rsi_1m")
	assert.Equal(t, ExportSummary{TokenCount: 2, ActiveCount: 1, Gainers24h: 1, Losers24h: 1, RSIHigh: 1}, decoded.Summary)
}

func TestSnapshotExportFilters(t *testing.T) {
	se := newTestExporter()
	dir := t.TempDir()
	snap := generateTestSnapshot()

	path, err := se.Export(snap, ExportOptions{Format: FormatCSV, OnlyActive: true, OutputDir: dir})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "tokens_active_"))

	var buf bytes.Buffer
	require.NoError(t, se.Write(&buf, snap, ExportOptions{Format: FormatCSV, Query: "beta"}))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Beta", rows[1][0])

	_, err = se.Export(snap, ExportOptions{Format: FormatCSV, Query: "gamma", OutputDir: dir})
	assert.ErrorIs(t, err, ErrNothingToExport)

	_, err = se.Export(token.Snapshot{}, ExportOptions{Format: FormatJSON, OutputDir: dir})
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestSnapshotExportUnsupportedFormatLeavesNoFile(t *testing.T) {
	se := newTestExporter()
	dir := t.TempDir()

	_, err := se.Export(generateTestSnapshot(), ExportOptions{Format: "xml", OutputDir: dir})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerateFilenameSanitizesQuery(t *testing.T) {
	se := newTestExporter()
	name := se.generateFilename(ExportOptions{Format: FormatJSON, Query: "so/l ana"})
	assert.Equal(t, "tokens_all_so-l-ana_20240309_140506.json", name)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" CSV ")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("yaml")
	assert.Error(t, err)
}
