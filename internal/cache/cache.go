// Package cache provides the instance-scoped lookup caches used by the
// matching components. Caches are plain maps with hit/miss counters:
// they are not safe for concurrent use, and callers that run validators
// in parallel must give each validator its own instances.
package cache

import (
	"strings"

	"github.com/tobias/plan-reconciler/internal/types"
)

// Stats reports cache effectiveness for one instance.
type Stats struct {
	Hits    int `json:"hits"`
	Misses  int `json:"misses"`
	Entries int `json:"entries"`
}

// ScoreCache memoizes pairwise string-similarity scores. Keys are order
// normalized, so Get(a, b) and Get(b, a) hit the same entry.
type ScoreCache struct {
	entries map[string]float64
	hits    int
	misses  int
}

// NewScoreCache returns an empty score cache.
func NewScoreCache() *ScoreCache {
	return &ScoreCache{entries: make(map[string]float64)}
}

func pairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x1f" + b
}

// Get returns the cached score for a string pair.
func (c *ScoreCache) Get(a, b string) (float64, bool) {
	score, ok := c.entries[pairKey(a, b)]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return score, ok
}

// Put stores the score for a string pair.
func (c *ScoreCache) Put(a, b string, score float64) {
	c.entries[pairKey(a, b)] = score
}

// Clear drops every entry and resets the counters.
func (c *ScoreCache) Clear() {
	c.entries = make(map[string]float64)
	c.hits = 0
	c.misses = 0
}

// Stats returns the current hit/miss counters.
func (c *ScoreCache) Stats() Stats {
	return Stats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}

// PoolCache memoizes candidate pools keyed on the full constraint tuple
// that produced them. Pools are discarded with the validator instance;
// there is no eviction.
type PoolCache struct {
	entries map[string][]types.CatalogExercise
	hits    int
	misses  int
}

// NewPoolCache returns an empty pool cache.
func NewPoolCache() *PoolCache {
	return &PoolCache{entries: make(map[string][]types.CatalogExercise)}
}

// PoolKey derives a cache key from the ordered constraint parts.
func PoolKey(parts ...string) string {
	return strings.Join(parts, "\x1f")
}

// Get returns the cached pool for a constraint key.
func (c *PoolCache) Get(key string) ([]types.CatalogExercise, bool) {
	pool, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return pool, ok
}

// Put stores a pool under a constraint key.
func (c *PoolCache) Put(key string, pool []types.CatalogExercise) {
	c.entries[key] = pool
}

// Clear drops every entry and resets the counters.
func (c *PoolCache) Clear() {
	c.entries = make(map[string][]types.CatalogExercise)
	c.hits = 0
	c.misses = 0
}

// Stats returns the current hit/miss counters.
func (c *PoolCache) Stats() Stats {
	return Stats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}
