package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobias/plan-reconciler/internal/types"
)

func TestScoreCache_OrderNormalizedKeys(t *testing.T) {
	c := NewScoreCache()
	c.Put("barbell row", "bent over row", 0.82)

	score, ok := c.Get("bent over row", "barbell row")
	require.True(t, ok, "reversed pair should hit the same entry")
	assert.InDelta(t, 0.82, score, 1e-9)
}

func TestScoreCache_Stats(t *testing.T) {
	c := NewScoreCache()
	c.Put("a", "b", 0.5)

	_, _ = c.Get("a", "b")
	_, _ = c.Get("a", "c")

	stats := c.Stats()
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestScoreCache_Clear(t *testing.T) {
	c := NewScoreCache()
	c.Put("a", "b", 0.5)
	_, _ = c.Get("a", "b")

	c.Clear()

	stats := c.Stats()
	assert.Zero(t, stats.Hits)
	assert.Zero(t, stats.Misses)
	assert.Zero(t, stats.Entries)
	_, ok := c.Get("a", "b")
	assert.False(t, ok)
}

func TestPoolCache_RoundTrip(t *testing.T) {
	c := NewPoolCache()
	key := PoolKey("Quadriceps", "intermediate", "Barbell", "10")
	pool := []types.CatalogExercise{{ID: "ex_1", Name: "Squat"}}

	c.Put(key, pool)

	got, ok := c.Get(key)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Squat", got[0].Name)

	_, ok = c.Get(PoolKey("Quadriceps", "beginner", "Barbell", "10"))
	assert.False(t, ok)
}
