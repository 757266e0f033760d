// Package history appends every refreshed snapshot to a CSV file so price
// movement can be reviewed after the dashboard is closed.
package history

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-monitor/internal/format"
	"github.com/rovshanmuradov/token-monitor/internal/logger"
	"github.com/rovshanmuradov/token-monitor/internal/token"
)

// Header is the fixed column set of a history file. RSI columns are always
// present here; tokens without RSI record N/A.
var Header = []string{
	"fetched_at",
	"token_name",
	"token_address",
	"current_price",
	"price_change_30m",
	"price_change_24h",
	"rsi_1m",
	"rsi_1h",
	"active",
}

var recordColumns = []format.ColumnKey{
	format.ColName,
	format.ColAddress,
	format.ColPrice,
	format.ColChange30m,
	format.ColChange24h,
	format.ColRSI1m,
	format.ColRSI1h,
	format.ColActive,
}

// Recorder writes snapshots as CSV rows.
type Recorder struct {
	writer    *logger.SafeCSVWriter
	formatter format.Formatter
	logger    *zap.Logger
	last      time.Time
}

// NewRecorder opens path for appending.
func NewRecorder(path string, formatter format.Formatter, log *zap.Logger) (*Recorder, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("history")

	w, err := logger.NewSafeCSVWriter(path, Header, logger.DefaultFlushInterval, log)
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	return &Recorder{writer: w, formatter: formatter, logger: log}, nil
}

// Record appends one row per token. A snapshot whose fetch time was already
// recorded is skipped, so callers can pass every poll result.
func (r *Recorder) Record(snap token.Snapshot) (int, error) {
	if snap.FetchedAt.IsZero() || !snap.FetchedAt.After(r.last) {
		return 0, nil
	}

	fetchedAt := snap.FetchedAt.In(r.formatter.Location).Format(format.TimestampLayout)
	for i, t := range snap.Tokens {
		record := make([]string, 0, len(Header))
		record = append(record, fetchedAt)
		for _, key := range recordColumns {
			record = append(record, r.formatter.Cell(t, key).Text)
		}
		if err := r.writer.WriteRecord(record); err != nil {
			return i, fmt.Errorf("record %s: %w", t.Address, err)
		}
	}
	r.last = snap.FetchedAt

	r.logger.Debug("Snapshot recorded", zap.Int("tokens", snap.Len()))
	return snap.Len(), nil
}

// Rows returns how many token rows this recorder has written.
func (r *Recorder) Rows() uint64 {
	rows, _ := r.writer.GetStats()
	return rows
}

// Close flushes and closes the file.
func (r *Recorder) Close() error {
	return r.writer.Close()
}
