package main

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-monitor/internal/export"
	"github.com/rovshanmuradov/token-monitor/internal/format"
	"github.com/rovshanmuradov/token-monitor/internal/history"
	"github.com/rovshanmuradov/token-monitor/internal/importer"
	"github.com/rovshanmuradov/token-monitor/internal/poller"
	"github.com/rovshanmuradov/token-monitor/internal/token"
	"github.com/rovshanmuradov/token-monitor/internal/ui/component"
)

func (e *env) fetch() (token.Snapshot, error) {
	tokens, err := e.client.ListTokens(e.ctx)
	if err != nil {
		return token.Snapshot{}, err
	}
	return token.NewSnapshot(tokens, time.Now()), nil
}

// printSnapshot writes the filtered table in the requested output format.
func (e *env) printSnapshot(snap token.Snapshot, output, query string, onlyActive bool) error {
	if output == "table" {
		tokens := snap.Filter(query, onlyActive)
		fmt.Fprintln(e.stdout, component.NewTokenTable(snap, tokens, e.formatter).View())
		fmt.Fprintf(e.stdout, "%d tokens (%d active), fetched %s\n",
			snap.Len(), snap.ActiveCount(), snap.FetchedAt.In(e.cfg.Location()).Format(format.TimestampLayout))
		return nil
	}

	f, err := export.ParseFormat(output)
	if err != nil {
		return err
	}
	exporter := export.NewSnapshotExporter(e.formatter, e.logger)
	err = exporter.Write(e.stdout, snap, export.ExportOptions{Format: f, Query: query, OnlyActive: onlyActive})
	if errors.Is(err, export.ErrNothingToExport) {
		fmt.Fprintln(e.stderr, "No tokens match")
		return nil
	}
	return err
}

func runList(e *env, args []string) error {
	fs := newFlagSet(e, "list")
	output := fs.String("format", "table", "Output format: table, csv or json")
	query := fs.String("query", "", "Only tokens whose name or address contains this text")
	onlyActive := fs.Bool("active", false, "Only active tokens")
	if err := parse(fs, args); err != nil {
		return err
	}

	snap, err := e.fetch()
	if err != nil {
		return err
	}
	return e.printSnapshot(snap, *output, *query, *onlyActive)
}

func runWatch(e *env, args []string) (err error) {
	fs := newFlagSet(e, "watch")
	interval := fs.Duration("n", e.cfg.RefreshInterval, "Refresh interval")
	record := fs.String("record", e.cfg.HistoryFile, "Append every refreshed snapshot to this CSV file")
	onlyActive := fs.Bool("active", false, "Only active tokens")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *interval <= 0 {
		fmt.Fprintln(fs.Output(), "-n must be positive")
		return errUsage
	}

	var recorder *history.Recorder
	if *record != "" {
		r, err := history.NewRecorder(*record, e.formatter, e.logger)
		if err != nil {
			return err
		}
		recorder = r
		// The last rows only reach the file on Close.
		defer func() {
			if closeErr := recorder.Close(); closeErr != nil {
				e.logger.Error("Failed to close history file", zap.Error(closeErr))
				if err == nil {
					err = fmt.Errorf("close history: %w", closeErr)
				}
				return
			}
			fmt.Fprintf(e.stderr, "Recorded %d history rows to %s\n", recorder.Rows(), *record)
		}()
	}

	p := poller.New(e.client, *interval, e.logger)
	tick := e.cfg.TickInterval
	if tick <= 0 || tick > *interval {
		tick = *interval
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		if p.Due() {
			res := p.Poll(e.ctx)
			switch {
			case res.Err != nil && e.ctx.Err() != nil:
				return nil
			case res.Err != nil:
				e.logger.Warn("Refresh failed, retrying",
					zap.Error(res.Err),
					zap.Uint64("failures", p.Failures()))
			case res.Refreshed:
				if err := e.printSnapshot(res.Snapshot, "table", "", *onlyActive); err != nil {
					return err
				}
				if recorder != nil {
					if _, err := recorder.Record(res.Snapshot); err != nil {
						e.logger.Warn("Failed to record history", zap.Error(err))
					}
				}
			}
		}

		select {
		case <-e.ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func runAdd(e *env, args []string) error {
	fs := newFlagSet(e, "add")
	name := fs.String("name", "", "Token name")
	address := fs.String("address", "", "Token address")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "name", "address"); err != nil {
		return err
	}
	if err := token.ValidateNew(e.cfg.Addresses(), *name, *address); err != nil {
		return err
	}

	if err := e.client.AddToken(e.ctx, *name, *address); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Added %s (%s)\n", *name, *address)
	return nil
}

func runDelete(e *env, args []string) error {
	fs := newFlagSet(e, "delete")
	address := fs.String("address", "", "Token address")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "address"); err != nil {
		return err
	}

	if err := e.client.DeleteToken(e.ctx, *address); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Deleted %s\n", *address)
	return nil
}

func runToggle(e *env, args []string) error {
	fs := newFlagSet(e, "toggle")
	address := fs.String("address", "", "Token address")
	active := fs.Bool("active", true, "Desired state")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "address"); err != nil {
		return err
	}

	if err := e.client.SetActive(e.ctx, *address, *active); err != nil {
		return err
	}
	state := "Deactivated"
	if *active {
		state = "Activated"
	}
	fmt.Fprintf(e.stdout, "%s %s\n", state, *address)
	return nil
}

func runImport(e *env, args []string) error {
	fs := newFlagSet(e, "import")
	file := fs.String("file", "", "CSV file with token_name,token_address rows")
	parallel := fs.Int("parallel", importer.DefaultParallel, "Concurrent add requests")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := requireFlags(fs, "file"); err != nil {
		return err
	}

	entries, skipped, err := importer.LoadFile(*file, e.cfg.Addresses(), e.logger)
	if err != nil {
		return err
	}
	report, err := importer.AddAll(e.ctx, e.client, entries, *parallel, e.logger)
	if err != nil {
		return err
	}

	for _, f := range report.Failures {
		fmt.Fprintf(e.stderr, "line %d: %s: %v\n", f.Entry.Line, f.Entry.Address, f.Err)
	}
	fmt.Fprintf(e.stdout, "Imported %d tokens, %d failed, %d skipped\n", len(report.Added), len(report.Failures), skipped)
	if len(report.Failures) > 0 {
		return fmt.Errorf("%d tokens were not added", len(report.Failures))
	}
	return nil
}

func runExport(e *env, args []string) error {
	fs := newFlagSet(e, "export")
	output := fs.String("format", "csv", "Export format: csv or json")
	out := fs.String("out", e.cfg.ExportDir, "Output directory, or - for stdout")
	query := fs.String("query", "", "Only tokens whose name or address contains this text")
	onlyActive := fs.Bool("active", false, "Only active tokens")
	if err := parse(fs, args); err != nil {
		return err
	}

	f, err := export.ParseFormat(*output)
	if err != nil {
		return err
	}
	snap, err := e.fetch()
	if err != nil {
		return err
	}

	if *out == "-" {
		return e.printSnapshot(snap, string(f), *query, *onlyActive)
	}

	exporter := export.NewSnapshotExporter(e.formatter, e.logger)
	path, err := exporter.Export(snap, export.ExportOptions{
		Format:     f,
		Query:      *query,
		OnlyActive: *onlyActive,
		OutputDir:  *out,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, path)
	return nil
}
