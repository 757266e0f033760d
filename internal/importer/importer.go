// Package importer bulk-adds tokens listed in a CSV file.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rovshanmuradov/token-monitor/internal/token"
)

// DefaultParallel bounds concurrent add calls when none is given.
const DefaultParallel = 4

// Entry is one token to add.
type Entry struct {
	Line    int
	Name    string
	Address string
}

// Adder is the part of tokenapi.Client the importer uses.
type Adder interface {
	AddToken(ctx context.Context, name, address string) error
}

// Failure records an entry the service rejected or that failed validation.
type Failure struct {
	Entry Entry
	Err   error
}

// Report summarises an import run.
type Report struct {
	Added    []Entry
	Failures []Failure
	Skipped  int
}

// LoadFile reads entries from a CSV file.
func LoadFile(path string, format token.AddressFormat, logger *zap.Logger) ([]Entry, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open file error: %w", err)
	}
	defer file.Close()
	return Load(file, format, logger)
}

// Load reads "token_name,token_address" rows. A header row is optional.
// Invalid rows and repeated addresses are skipped with a warning; the
// second return value counts them.
func Load(r io.Reader, format token.AddressFormat, logger *zap.Logger) ([]Entry, int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("read CSV error: %w", err)
	}

	var (
		entries []Entry
		skipped int
		seen    = make(map[string]struct{})
	)
	for i, row := range records {
		line := i + 1
		if i == 0 && isHeader(row) {
			continue
		}
		if len(row) < 2 {
			logger.Warn("Skipping row with insufficient columns",
				zap.Int("row", line),
				zap.Int("columns", len(row)))
			skipped++
			continue
		}

		entry := Entry{Line: line, Name: strings.TrimSpace(row[0]), Address: strings.TrimSpace(row[1])}
		if err := token.ValidateNew(format, entry.Name, entry.Address); err != nil {
			logger.Warn("Skipping invalid row", zap.Int("row", line), zap.Error(err))
			skipped++
			continue
		}
		if _, dup := seen[entry.Address]; dup {
			logger.Warn("Skipping duplicate address", zap.Int("row", line), zap.String("address", entry.Address))
			skipped++
			continue
		}
		seen[entry.Address] = struct{}{}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, skipped, errors.New("no tokens found in file")
	}
	logger.Info("Tokens loaded", zap.Int("count", len(entries)), zap.Int("skipped", skipped))
	return entries, skipped, nil
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "token_name")
}

// AddAll sends every entry with at most parallel calls in flight. A failed
// add does not stop the others; only context cancellation does.
func AddAll(ctx context.Context, adder Adder, entries []Entry, parallel int, logger *zap.Logger) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if parallel <= 0 {
		parallel = DefaultParallel
	}

	var (
		mu     sync.Mutex
		report Report
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for _, entry := range entries {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			err := adder.AddToken(gCtx, entry.Name, entry.Address)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if ctxErr := gCtx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Warn("Failed to add token",
					zap.String("name", entry.Name),
					zap.String("address", entry.Address),
					zap.Error(err))
				report.Failures = append(report.Failures, Failure{Entry: entry, Err: err})
				return nil
			}
			report.Added = append(report.Added, entry)
			return nil
		})
	}

	err := g.Wait()
	logger.Info("Import finished",
		zap.Int("added", len(report.Added)),
		zap.Int("failed", len(report.Failures)))
	return report, err
}
