package poller

import (
	"sync"
	"time"

	"github.com/rovshanmuradov/token-monitor/internal/token"
)

// DefaultInterval is how long a fetched snapshot stays fresh.
const DefaultInterval = 60 * time.Second

// Cache holds the last fetched snapshot and when it was fetched. It is a
// disposable view of remote state; nothing is persisted.
type Cache struct {
	mu        sync.RWMutex
	snapshot  token.Snapshot
	fetchedAt time.Time
	fetched   bool
	stale     bool
	interval  time.Duration
}

// NewCache creates an empty cache with the given freshness interval.
func NewCache(interval time.Duration) *Cache {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Cache{interval: interval}
}

// Stale reports whether a new fetch is due at now.
func (c *Cache) Stale(now time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.fetched || c.stale {
		return true
	}
	return now.Sub(c.fetchedAt) >= c.interval
}

// Store replaces the snapshot. The fetch time is taken from the snapshot.
func (c *Cache) Store(s token.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = s.Clone()
	c.fetchedAt = s.FetchedAt
	c.fetched = true
	c.stale = false
}

// Snapshot returns a copy of the cached snapshot and whether anything has
// been fetched yet.
func (c *Cache) Snapshot() (token.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot.Clone(), c.fetched
}

// Invalidate forces the next Stale check to report true without dropping
// the snapshot.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stale = true
}

// NextRefresh returns how long until the snapshot goes stale. Zero means a
// refresh is due.
func (c *Cache) NextRefresh(now time.Time) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.fetched || c.stale {
		return 0
	}
	left := c.interval - now.Sub(c.fetchedAt)
	if left < 0 {
		return 0
	}
	return left
}
