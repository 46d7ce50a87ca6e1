package data

import (
	"sync"
	"time"

	"electricity-cost/internal/billing"
)

// resultEntry is one stored calculation result.
type resultEntry struct {
	Result    *billing.Result
	ExpiresAt time.Time
}

// ResultCache keeps recent calculation results in memory so the peak ledger
// of a finished calculation can be fetched separately from the breakdown.
// Entries expire after the configured TTL; there is no persistent billing
// history.
type ResultCache struct {
	mu    sync.RWMutex
	store map[string]*resultEntry
	ttl   time.Duration
}

// NewResultCache creates a cache with the given TTL and starts the
// background expiry sweep.
func NewResultCache(ttl time.Duration) *ResultCache {
	c := &ResultCache{
		store: make(map[string]*resultEntry),
		ttl:   ttl,
	}
	go c.cleanup()
	return c
}

// Get retrieves a stored result if present and not expired.
func (c *ResultCache) Get(id string) (*billing.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[id]
	if !ok || time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Result, true
}

// Put stores a result under the given id.
func (c *ResultCache) Put(id string, res *billing.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[id] = &resultEntry{
		Result:    res,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// cleanup periodically removes expired entries.
func (c *ResultCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for id, entry := range c.store {
			if now.After(entry.ExpiresAt) {
				delete(c.store, id)
			}
		}
		c.mu.Unlock()
	}
}
