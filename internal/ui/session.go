package ui

import (
	"time"

	"github.com/rovshanmuradov/token-monitor/internal/poller"
	"github.com/rovshanmuradov/token-monitor/internal/token"
)

// DefaultTrendLength is how many refreshed prices are kept per token.
const DefaultTrendLength = 30

// Session is the dashboard state shared by every screen. It is changed
// only from the application model's Update, so it needs no locking.
type Session struct {
	Snapshot    token.Snapshot
	HasData     bool
	LastErr     error
	LastRefresh time.Time
	InFlight    bool
	Failures    uint64
	Restarts    int

	trends   map[string][]float64
	trendLen int
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{
		trends:   make(map[string][]float64),
		trendLen: DefaultTrendLength,
	}
}

// Apply folds one poll result into the session. A failed fetch keeps the
// previous snapshot and counts the failure.
func (s *Session) Apply(res poller.Result) {
	s.InFlight = false

	if res.HasData {
		s.Snapshot = res.Snapshot
		s.HasData = true
	}

	if res.Err != nil {
		s.LastErr = res.Err
		s.Failures++
		return
	}
	s.LastErr = nil
	s.Failures = 0

	if res.Refreshed {
		s.LastRefresh = res.Snapshot.FetchedAt
		s.recordTrends(res.Snapshot)
	}
}

func (s *Session) recordTrends(snap token.Snapshot) {
	seen := make(map[string]struct{}, snap.Len())
	for _, t := range snap.Tokens {
		seen[t.Address] = struct{}{}

		d, ok := t.CurrentPrice.Decimal()
		if !ok {
			continue
		}
		price, _ := d.Float64()
		series := append(s.trends[t.Address], price)
		if len(series) > s.trendLen {
			series = series[len(series)-s.trendLen:]
		}
		s.trends[t.Address] = series
	}

	for addr := range s.trends {
		if _, ok := seen[addr]; !ok {
			delete(s.trends, addr)
		}
	}
}

// Trend returns the recorded prices of a token, oldest first.
func (s *Session) Trend(address string) []float64 {
	series := s.trends[address]
	out := make([]float64, len(series))
	copy(out, series)
	return out
}
