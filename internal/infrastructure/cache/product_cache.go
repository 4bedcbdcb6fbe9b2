// Package cache provides caching infrastructure.
package cache

import (
	"sync"
	"time"

	"stockbook/internal/domain/catalog"
)

// ProductCache is a thread-safe per-user cache of product listings. Entries
// expire after a TTL and are explicitly invalidated by every write path that
// touches products or stock, so the TTL only bounds staleness across
// processes.
type ProductCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry

	// now is swappable for tests.
	now func() time.Time
}

type cacheEntry struct {
	products []catalog.Product
	storedAt time.Time
}

// DefaultTTL bounds listing staleness when an invalidation is missed.
const DefaultTTL = 5 * time.Minute

// NewProductCache creates a cache with the given TTL. Zero or negative TTL
// falls back to DefaultTTL.
func NewProductCache(ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ProductCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

var _ catalog.Cache = (*ProductCache)(nil)

// Get returns the cached listing for the user, or false when absent or
// expired.
func (c *ProductCache) Get(userID string) ([]catalog.Product, bool) {
	c.mu.RLock()
	entry, ok := c.entries[userID]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.storedAt) > c.ttl {
		return nil, false
	}

	// Hand out a copy so callers cannot mutate the cached slice.
	out := make([]catalog.Product, len(entry.products))
	copy(out, entry.products)
	return out, true
}

// Put stores the listing for the user.
func (c *ProductCache) Put(userID string, products []catalog.Product) {
	stored := make([]catalog.Product, len(products))
	copy(stored, products)

	c.mu.Lock()
	c.entries[userID] = cacheEntry{products: stored, storedAt: c.now()}
	c.mu.Unlock()
}

// Invalidate drops the user's cached listing.
func (c *ProductCache) Invalidate(userID string) {
	c.mu.Lock()
	delete(c.entries, userID)
	c.mu.Unlock()
}
