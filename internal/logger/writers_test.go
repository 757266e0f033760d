package logger

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestSafeFileWriterConcurrentWrites(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "nested", "spill.log")

	writer, err := NewSafeFileWriter(testFile, 50*time.Millisecond, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create safe file writer: %v", err)
	}

	var wg sync.WaitGroup
	numGoroutines := 8
	linesPerGoroutine := 50

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < linesPerGoroutine; j++ {
				if err := writer.WriteLine(fmt.Sprintf("writer %d line %d", id, j)); err != nil {
					t.Errorf("Failed to write line: %v", err)
				}
			}
		}(i)
	}
	wg.Wait()

	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close writer: %v", err)
	}

	if lines := countLines(t, testFile); lines != numGoroutines*linesPerGoroutine {
		t.Errorf("Expected %d lines, got %d", numGoroutines*linesPerGoroutine, lines)
	}
}

func countLines(t *testing.T, path string) int {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	return strings.Count(string(data), "\n")
}

func TestSafeFileWriterRejectsBadInterval(t *testing.T) {
	if _, err := NewSafeFileWriter(filepath.Join(t.TempDir(), "x.log"), 0, nil); err == nil {
		t.Error("Expected an error for a zero flush interval")
	}
}

func TestSafeFileWriterPeriodicFlush(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "periodic.log")

	writer, err := NewSafeFileWriter(testFile, 10*time.Millisecond, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create safe file writer: %v", err)
	}
	defer writer.Close()

	for i := 0; i < 5; i++ {
		if err := writer.WriteLine(fmt.Sprintf("line %d", i)); err != nil {
			t.Errorf("Failed to write line: %v", err)
		}
	}

	// Nothing calls Flush: the lines reach the file on the ticker alone.
	deadline := time.Now().Add(time.Second)
	for countLines(t, testFile) < 5 {
		if time.Now().After(deadline) {
			t.Fatalf("Expected 5 flushed lines, got %d", countLines(t, testFile))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

var historyHeader = []string{"fetched_at", "token_name", "token_address", "current_price"}

func TestSafeCSVWriterWritesHeaderOnce(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "history.csv")

	for run := 0; run < 2; run++ {
		writer, err := NewSafeCSVWriter(testFile, historyHeader, time.Second, zap.NewNop())
		if err != nil {
			t.Fatalf("Failed to create CSV writer: %v", err)
		}
		record := []string{"2024-01-02 03:04:05", fmt.Sprintf("TK%d", run), "addr", "$1.0000"}
		if err := writer.WriteRecord(record); err != nil {
			t.Fatalf("Failed to write record: %v", err)
		}
		if records, _ := writer.GetStats(); records != 1 {
			t.Errorf("Expected the header not to count as a record, got %d", records)
		}
		if err := writer.Close(); err != nil {
			t.Fatalf("Failed to close writer: %v", err)
		}
	}

	f, err := os.Open(testFile)
	if err != nil {
		t.Fatalf("Failed to open CSV: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d rows", len(rows))
	}
	if rows[0][0] != "fetched_at" || rows[1][1] != "TK0" || rows[2][1] != "TK1" {
		t.Errorf("Unexpected CSV content: %v", rows)
	}
}

func TestSafeCSVWriterConcurrentWrites(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "concurrent.csv")

	writer, err := NewSafeCSVWriter(testFile, historyHeader, 20*time.Millisecond, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create CSV writer: %v", err)
	}
	defer writer.Close()

	var wg sync.WaitGroup
	numGoroutines := 5
	recordsPerGoroutine := 40

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < recordsPerGoroutine; j++ {
				record := []string{
					time.Now().UTC().Format(time.RFC3339),
					fmt.Sprintf("token_%d", id),
					fmt.Sprintf("addr_%d_%d", id, j),
					"$0.1000",
				}
				if err := writer.WriteRecord(record); err != nil {
					t.Errorf("Failed to write record: %v", err)
				}
			}
		}(i)
	}
	wg.Wait()

	if err := writer.Flush(); err != nil {
		t.Errorf("Failed final flush: %v", err)
	}

	records, _ := writer.GetStats()
	if records != uint64(numGoroutines*recordsPerGoroutine) {
		t.Errorf("Expected %d records, got %d", numGoroutines*recordsPerGoroutine, records)
	}
}
