package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-monitor/internal/format"
	"github.com/rovshanmuradov/token-monitor/internal/token"
)

// ExportFormat represents the export file format
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
)

// ErrNothingToExport is returned when no token matches the options.
var ErrNothingToExport = errors.New("no tokens match the export criteria")

// ParseFormat accepts "csv" or "json" in any case.
func ParseFormat(s string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %q", s)
	}
}

// ExportOptions configures the export behavior
type ExportOptions struct {
	Format     ExportFormat
	Query      string // name or address substring
	OnlyActive bool
	OutputDir  string
}

// SnapshotExporter writes the token table, formatted as displayed.
type SnapshotExporter struct {
	formatter format.Formatter
	logger    *zap.Logger
	now       func() time.Time
}

// NewSnapshotExporter creates a new snapshot exporter
func NewSnapshotExporter(formatter format.Formatter, logger *zap.Logger) *SnapshotExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotExporter{
		formatter: formatter,
		logger:    logger.Named("export"),
		now:       time.Now,
	}
}

// Export writes the filtered snapshot into OutputDir and returns the path.
func (se *SnapshotExporter) Export(snap token.Snapshot, options ExportOptions) (string, error) {
	tokens := snap.Filter(options.Query, options.OnlyActive)
	if len(tokens) == 0 {
		return "", ErrNothingToExport
	}

	if options.OutputDir == "" {
		options.OutputDir = "."
	}
	if err := os.MkdirAll(options.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(options.OutputDir, se.generateFilename(options))
	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	err = se.write(file, snap, tokens, options.Format)
	if cerr := file.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close export file: %w", cerr)
	}
	if err != nil {
		os.Remove(outputPath)
		return "", err
	}

	se.logger.Info("Tokens exported",
		zap.String("file", outputPath),
		zap.Int("count", len(tokens)),
		zap.String("format", string(options.Format)))

	return outputPath, nil
}

// Write streams the filtered snapshot to w, for example stdout.
func (se *SnapshotExporter) Write(w io.Writer, snap token.Snapshot, options ExportOptions) error {
	tokens := snap.Filter(options.Query, options.OnlyActive)
	if len(tokens) == 0 {
		return ErrNothingToExport
	}
	return se.write(w, snap, tokens, options.Format)
}

func (se *SnapshotExporter) write(w io.Writer, snap token.Snapshot, tokens []token.Token, f ExportFormat) error {
	cols := format.Columns(snap.Columns)
	switch f {
	case FormatCSV:
		return se.writeCSV(w, cols, tokens)
	case FormatJSON:
		return se.writeJSON(w, snap, cols, tokens)
	default:
		return fmt.Errorf("unsupported format: %s", f)
	}
}

func (se *SnapshotExporter) generateFilename(options ExportOptions) string {
	prefix := "tokens_all"
	if options.OnlyActive {
		prefix = "tokens_active"
	}
	if q := sanitize(options.Query); q != "" {
		prefix += "_" + q
	}
	return fmt.Sprintf("%s_%s.%s", prefix, se.now().Format("20060102_150405"), options.Format)
}

// sanitize keeps a short, filesystem-safe form of a filter query.
func sanitize(q string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(q) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
		if b.Len() >= 12 {
			break
		}
	}
	return b.String()
}

func (se *SnapshotExporter) writeCSV(w io.Writer, cols []format.Column, tokens []token.Token) error {
	writer := csv.NewWriter(w)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = string(c.Key)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, t := range tokens {
		if err := writer.Write(format.Texts(se.formatter.Row(t, cols))); err != nil {
			return fmt.Errorf("failed to write token %s: %w", t.Address, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportSummary contains summary statistics for exported tokens
type ExportSummary struct {
	TokenCount  int `json:"token_count"`
	ActiveCount int `json:"active_count"`
	Gainers24h  int `json:"gainers_24h"`
	Losers24h   int `json:"losers_24h"`
	RSIHigh     int `json:"rsi_high"`
}

func (se *SnapshotExporter) calculateSummary(tokens []token.Token) ExportSummary {
	summary := ExportSummary{TokenCount: len(tokens)}
	for _, t := range tokens {
		if t.Active {
			summary.ActiveCount++
		}
		switch t.PriceChange24h.Sign() {
		case 1:
			summary.Gainers24h++
		case -1:
			summary.Losers24h++
		}
		if format.RSI(t.RSI1m).Tone == format.ToneRSIHigh || format.RSI(t.RSI1h).Tone == format.ToneRSIHigh {
			summary.RSIHigh++
		}
	}
	return summary
}

func (se *SnapshotExporter) writeJSON(w io.Writer, snap token.Snapshot, cols []format.Column, tokens []token.Token) error {
	rows := make([]map[string]string, 0, len(tokens))
	for _, t := range tokens {
		row := make(map[string]string, len(cols))
		for _, c := range cols {
			row[string(c.Key)] = se.formatter.Cell(t, c.Key).Text
		}
		rows = append(rows, row)
	}

	columns := make([]string, len(cols))
	for i, c := range cols {
		columns[i] = string(c.Key)
	}

	exportData := struct {
		ExportTime time.Time           `json:"export_time"`
		FetchedAt  time.Time           `json:"fetched_at"`
		Columns    []string            `json:"columns"`
		Tokens     []map[string]string `json:"tokens"`
		Summary    ExportSummary       `json:"summary"`
	}{
		ExportTime: se.now().UTC(),
		FetchedAt:  snap.FetchedAt.UTC(),
		Columns:    columns,
		Tokens:     rows,
		Summary:    se.calculateSummary(tokens),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(exportData); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
