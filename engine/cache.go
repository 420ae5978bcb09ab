package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
)

// =============================================================================
// COMPUTE CACHE - Memoization keyed by entry + settings fingerprints
// =============================================================================

// ComputeCache memoizes Breakdown results. Correct because the engine is
// deterministic: identical inputs always produce an identical Breakdown.
// Bounded FIFO eviction; Invalidate drops everything when settings change.
// Cached breakdowns are shared, so callers must treat them as immutable.
type ComputeCache struct {
	mu       sync.Mutex
	engine   *Engine
	capacity int
	results  map[string]*Breakdown
	order    []string // insertion order for FIFO eviction
}

const defaultCacheCapacity = 128

// NewComputeCache wraps an engine with a bounded memo cache.
func NewComputeCache(engine *Engine, capacity int) *ComputeCache {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	return &ComputeCache{
		engine:   engine,
		capacity: capacity,
		results:  make(map[string]*Breakdown, capacity),
	}
}

// Compute returns the memoized breakdown, computing and storing it on miss.
func (c *ComputeCache) Compute(entry WorkEntry, settings Settings) *Breakdown {
	key := fingerprint(entry) + ":" + fingerprint(settings)

	c.mu.Lock()
	if b, ok := c.results[key]; ok {
		c.mu.Unlock()
		return b
	}
	c.mu.Unlock()

	b := c.engine.Compute(entry, settings)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.results[key]; !ok {
		if len(c.order) >= c.capacity {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.results, oldest)
		}
		c.results[key] = b
		c.order = append(c.order, key)
	}
	return b
}

// Invalidate drops the whole cache. Must be called whenever settings change.
func (c *ComputeCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = make(map[string]*Breakdown, c.capacity)
	c.order = c.order[:0]
}

// Len reports the number of memoized results.
func (c *ComputeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results)
}

// fingerprint hashes the canonical JSON form of a value. json.Marshal sorts
// map keys, so the fingerprint is stable for equal values.
func fingerprint(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return "unhashable"
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
