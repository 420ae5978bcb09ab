package engine

import (
	"testing"
	"time"
)

func cacheEntry(day int) WorkEntry {
	return WorkEntry{
		Date:    time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC),
		DayType: DayWorkday,
		Shifts:  []Shift{{Work1Start: "08:00", Work1End: "17:00"}},
	}
}

func TestComputeCacheMemoizes(t *testing.T) {
	cache := NewComputeCache(New(nil), 8)
	s := DefaultSettings()

	first := cache.Compute(cacheEntry(10), s)
	second := cache.Compute(cacheEntry(10), s)

	// A hit returns the stored breakdown, not a recomputation.
	if first != second {
		t.Error("expected the memoized pointer on a repeat compute")
	}
	if cache.Len() != 1 {
		t.Errorf("cache size = %d, want 1", cache.Len())
	}
}

func TestComputeCacheKeyedBySettings(t *testing.T) {
	cache := NewComputeCache(New(nil), 8)

	plain := cache.Compute(cacheEntry(10), DefaultSettings())

	changed := DefaultSettings()
	changed.TravelPolicy = TravelPolicySeparate
	other := cache.Compute(cacheEntry(10), changed)

	if plain == other {
		t.Error("different settings must not share a cache slot")
	}
	if cache.Len() != 2 {
		t.Errorf("cache size = %d, want 2", cache.Len())
	}
}

func TestComputeCacheFIFOEviction(t *testing.T) {
	cache := NewComputeCache(New(nil), 2)
	s := DefaultSettings()

	first := cache.Compute(cacheEntry(1), s)
	cache.Compute(cacheEntry(2), s)
	cache.Compute(cacheEntry(3), s) // evicts day 1

	if cache.Len() != 2 {
		t.Fatalf("cache size = %d, want capacity 2", cache.Len())
	}
	if again := cache.Compute(cacheEntry(1), s); again == first {
		t.Error("oldest item should have been evicted and recomputed")
	}
}

func TestComputeCacheInvalidate(t *testing.T) {
	cache := NewComputeCache(New(nil), 8)
	s := DefaultSettings()

	before := cache.Compute(cacheEntry(10), s)
	cache.Invalidate()

	if cache.Len() != 0 {
		t.Fatalf("cache size after invalidate = %d, want 0", cache.Len())
	}
	if after := cache.Compute(cacheEntry(10), s); after == before {
		t.Error("invalidate should force a fresh computation")
	}
}

func TestComputeCacheDefaultCapacity(t *testing.T) {
	cache := NewComputeCache(New(nil), 0)
	if cache.capacity != defaultCacheCapacity {
		t.Errorf("capacity = %d, want %d", cache.capacity, defaultCacheCapacity)
	}
}
