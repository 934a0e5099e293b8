// Package lrucache provides the three bounded, thread-safe LRU caches
// the Processor uses for lexed placeholders, AST fragments, and
// compiled statements.
package lrucache

import (
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Stats is an atomically-readable snapshot of a Cache's hit/miss/eviction
// counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns Hits / (Hits + Misses), or 0 when the cache has never
// been probed.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache is a bounded LRU keyed by K, value V, with atomic hit/miss
// counters and double-checked-locking fills. It wraps
// hashicorp/golang-lru/v2, which provides the move-to-front-on-hit and
// evict-least-recent-on-insert policy.
type Cache[K comparable, V any] struct {
	inner *lru.Cache[K, V]

	mu sync.Mutex // guards fill path only; hits take no lock beyond inner's own

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates a Cache with the given capacity. Panics if capacity <= 0,
// matching hashicorp/golang-lru/v2's own constructor contract.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	c := &Cache[K, V]{}
	inner, err := lru.NewWithEvict[K, V](capacity, func(K, V) {
		c.evictions.Add(1)
	})
	if err != nil {
		panic(err)
	}
	c.inner = inner
	return c
}

// Get reports a hit or miss and updates counters. Readers that only
// need a hit/miss lookup (no fill) should call this directly; it takes
// no cache-wide lock beyond the inner LRU's own bookkeeping.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.inner.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Set inserts or updates an entry, evicting the least-recently-used
// entry if the cache is at capacity.
func (c *Cache[K, V]) Set(key K, value V) {
	c.inner.Add(key, value)
}

// GetOrFill is the double-checked-locking fill path: probe without a
// lock; on miss, acquire the per-cache lock, re-probe (another
// goroutine may have filled it while we waited), and only then call
// fill. fill runs under the lock — its result must be inserted before
// release to avoid duplicate work — so it must be pure and cheap
// enough (lexing, parsing) for that to be acceptable.
func (c *Cache[K, V]) GetOrFill(key K, fill func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.inner.Peek(key); ok {
		c.hits.Add(1)
		return v, nil
	}

	v, err := fill()
	if err != nil {
		var zero V
		return zero, err
	}
	c.inner.Add(key, v)
	return v, nil
}

// Clear empties the cache without resetting its statistics, matching
// the cache contract: clearing is an explicit operation; there is no
// time-based expiry.
func (c *Cache[K, V]) Clear() {
	c.inner.Purge()
}

// StatsSnapshot returns a snapshot of the cache's hit/miss/eviction counters.
func (c *Cache[K, V]) StatsSnapshot() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// Len returns the number of entries currently cached.
func (c *Cache[K, V]) Len() int {
	return c.inner.Len()
}
