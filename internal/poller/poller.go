// Package poller keeps a time-bounded in-memory copy of the remote token
// list and refreshes it when it goes stale.
package poller

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/token-monitor/internal/token"
)

// Fetcher loads the current token list from the service.
type Fetcher interface {
	ListTokens(ctx context.Context) ([]token.Token, error)
}

// Result is the outcome of one poll cycle. On failure Snapshot still holds
// the previous (stale) data and Err explains what went wrong.
type Result struct {
	Snapshot  token.Snapshot
	HasData   bool
	Refreshed bool
	Err       error
}

// Poller couples a Fetcher with a Cache.
type Poller struct {
	fetcher Fetcher
	cache   *Cache
	now     func() time.Time
	logger  *zap.Logger

	failures uint64
}

// Option customizes a Poller.
type Option func(*Poller)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) { p.now = now }
}

// New creates a poller with an empty cache.
func New(fetcher Fetcher, interval time.Duration, logger *zap.Logger, opts ...Option) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Poller{
		fetcher: fetcher,
		cache:   NewCache(interval),
		now:     time.Now,
		logger:  logger.Named("poller"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Due reports whether the next Poll would hit the service.
func (p *Poller) Due() bool { return p.cache.Stale(p.now()) }

// NextRefresh returns the time left until the cache goes stale.
func (p *Poller) NextRefresh() time.Duration { return p.cache.NextRefresh(p.now()) }

// Failures returns the number of consecutive failed fetches.
func (p *Poller) Failures() uint64 { return atomic.LoadUint64(&p.failures) }

// Invalidate makes the next Poll refetch.
func (p *Poller) Invalidate() { p.cache.Invalidate() }

// Poll refetches only when the cache is stale; otherwise it returns the
// cached snapshot untouched.
func (p *Poller) Poll(ctx context.Context) Result {
	if !p.cache.Stale(p.now()) {
		snap, ok := p.cache.Snapshot()
		return Result{Snapshot: snap, HasData: ok}
	}
	return p.Refresh(ctx)
}

// Refresh fetches unconditionally. A failure keeps the previous snapshot
// and leaves the fetch time alone so the next cycle tries again. An empty
// successful list is not a failure: it replaces the snapshot, where the old
// dashboard kept showing the previous rows.
func (p *Poller) Refresh(ctx context.Context) Result {
	tokens, err := p.fetcher.ListTokens(ctx)
	if err != nil {
		n := atomic.AddUint64(&p.failures, 1)
		p.logger.Warn("Token fetch failed, keeping cached snapshot",
			zap.Error(err),
			zap.Uint64("consecutive_failures", n))
		snap, ok := p.cache.Snapshot()
		return Result{Snapshot: snap, HasData: ok, Err: err}
	}

	atomic.StoreUint64(&p.failures, 0)
	snap := token.NewSnapshot(tokens, p.now())
	p.cache.Store(snap)
	p.logger.Debug("Token snapshot refreshed", zap.Int("tokens", snap.Len()))
	return Result{Snapshot: snap.Clone(), HasData: true, Refreshed: true}
}
