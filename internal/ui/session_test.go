package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rovshanmuradov/token-monitor/internal/poller"
	"github.com/rovshanmuradov/token-monitor/internal/token"
)

func snapshotAt(at time.Time, prices map[string]float64) token.Snapshot {
	var tokens []token.Token
	for _, addr := range []string{"AAA", "BBB", "CCC"} {
		p, ok := prices[addr]
		if !ok {
			continue
		}
		tokens = append(tokens, token.Token{Name: "tok" + addr, Address: addr, CurrentPrice: token.NewNumber(p)})
	}
	return token.NewSnapshot(tokens, at)
}

func TestSessionApplyRefresh(t *testing.T) {
	s := NewSession()
	s.InFlight = true
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	s.Apply(poller.Result{Snapshot: snapshotAt(at, map[string]float64{"AAA": 1.5}), HasData: true, Refreshed: true})

	assert.False(t, s.InFlight)
	assert.True(t, s.HasData)
	assert.Equal(t, at, s.LastRefresh)
	assert.Equal(t, 1, s.Snapshot.Len())
	assert.Equal(t, []float64{1.5}, s.Trend("AAA"))
}

func TestSessionApplyFailureKeepsSnapshot(t *testing.T) {
	s := NewSession()
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	snap := snapshotAt(at, map[string]float64{"AAA": 1, "BBB": 2})
	s.Apply(poller.Result{Snapshot: snap, HasData: true, Refreshed: true})

	s.Apply(poller.Result{Snapshot: snap, HasData: true, Err: errors.New("timeout")})
	s.Apply(poller.Result{Snapshot: snap, HasData: true, Err: errors.New("timeout")})

	assert.Equal(t, uint64(2), s.Failures)
	assert.EqualError(t, s.LastErr, "timeout")
	assert.Equal(t, 2, s.Snapshot.Len())
	assert.Equal(t, at, s.LastRefresh)
	assert.Len(t, s.Trend("AAA"), 1)

	s.Apply(poller.Result{Snapshot: snap, HasData: true})
	assert.Zero(t, s.Failures)
	assert.NoError(t, s.LastErr)
}

func TestSessionFailureBeforeFirstFetch(t *testing.T) {
	s := NewSession()
	s.Apply(poller.Result{Err: errors.New("refused")})

	assert.False(t, s.HasData)
	assert.True(t, s.LastRefresh.IsZero())
	assert.Equal(t, uint64(1), s.Failures)
}

func TestSessionTrendWindow(t *testing.T) {
	s := NewSession()
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < DefaultTrendLength+5; i++ {
		snap := snapshotAt(start.Add(time.Duration(i)*time.Minute), map[string]float64{"AAA": float64(i), "BBB": 1})
		s.Apply(poller.Result{Snapshot: snap, HasData: true, Refreshed: true})
	}

	trend := s.Trend("AAA")
	assert.Len(t, trend, DefaultTrendLength)
	assert.Equal(t, float64(5), trend[0])
	assert.Equal(t, float64(DefaultTrendLength+4), trend[len(trend)-1])

	// A token that disappears loses its history.
	s.Apply(poller.Result{Snapshot: snapshotAt(start.Add(time.Hour), map[string]float64{"AAA": 1}), HasData: true, Refreshed: true})
	assert.Empty(t, s.Trend("BBB"))
}
