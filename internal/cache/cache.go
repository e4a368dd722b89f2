package cache

import (
	"sync"
	"time"

	"github.com/assapir/jobflow/internal/scraper"
)

// DefaultTTL is how long a successful search is served from memory
const DefaultTTL = 5 * time.Minute

type entry struct {
	data      scraper.SearchResult
	timestamp time.Time
}

// ResultCache keeps successful search results in memory for a fixed TTL.
// Empty results are never stored, so a blocked or empty page is retried on the next call.
// Safe for concurrent use.
type ResultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

func NewResultCache(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResultCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// WithClock swaps the time source (tests)
func (c *ResultCache) WithClock(now func() time.Time) *ResultCache {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

// Key builds the cache key "{query}:{location}"
func Key(query, location string) string {
	return query + ":" + location
}

// Get returns the cached result while it is younger than the TTL. An expired entry is evicted.
func (c *ResultCache) Get(key string) (scraper.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return scraper.SearchResult{}, false
	}
	if c.now().Sub(e.timestamp) >= c.ttl {
		delete(c.entries, key)
		return scraper.SearchResult{}, false
	}
	return e.data, true
}

// Put stores result only when it holds at least one job; reports whether it stored
func (c *ResultCache) Put(key string, result scraper.SearchResult) bool {
	if len(result.Jobs) == 0 {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{data: result, timestamp: c.now()}
	return true
}

// Sweep evicts every expired entry and returns how many were removed
func (c *ResultCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if now.Sub(e.timestamp) > c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Clear drops everything. Safe to call on an empty cache.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
