package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobias/plan-reconciler/internal/types"
)

func testEntries() []types.CatalogExercise {
	return []types.CatalogExercise{
		{ID: "ex_1", Name: "Back Squat", AlternativeNames: []string{"Barbell Squat"}, Equipment: "Barbell", MainMuscles: []string{"Quadriceps", "Glutes"}, Tier: types.TierFoundational, Difficulty: types.DifficultyIntermediate, Popularity: 2},
		{ID: "ex_2", Name: "Leg Extension", Equipment: "Machine", MainMuscles: []string{"Quadriceps"}, Tier: types.TierStandard, Difficulty: types.DifficultyBeginner, Popularity: 14},
		{ID: "ex_3", Name: "Romanian Deadlift", Equipment: "Barbell", MainMuscles: []string{"Hamstrings", "Glutes"}, Tier: types.TierFoundational, Difficulty: types.DifficultyIntermediate, Popularity: 5},
		{ID: "ex_4", Name: "Sissy Squat", Equipment: "Bodyweight", MainMuscles: []string{"Quadriceps"}, Tier: types.TierVariety, Difficulty: types.DifficultyAdvanced, Popularity: 88},
	}
}

func TestFileCatalog_GetByID(t *testing.T) {
	c := NewFileCatalog(testEntries())
	ctx := context.Background()

	ex, err := c.GetByID(ctx, "ex_3")
	require.NoError(t, err)
	require.NotNil(t, ex)
	assert.Equal(t, "Romanian Deadlift", ex.Name)

	missing, err := c.GetByID(ctx, "ex_999")
	require.NoError(t, err)
	assert.Nil(t, missing, "unknown id should return nil without error")
}

func TestFileCatalog_QueryByFilters(t *testing.T) {
	c := NewFileCatalog(testEntries())
	ctx := context.Background()

	t.Run("muscle filter orders by popularity", func(t *testing.T) {
		got, err := c.QueryByFilters(ctx, Filters{Muscles: []string{"Quadriceps"}})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "Back Squat", got[0].Name)
		assert.Equal(t, "Leg Extension", got[1].Name)
		assert.Equal(t, "Sissy Squat", got[2].Name)
	})

	t.Run("equipment and tier filters combine", func(t *testing.T) {
		got, err := c.QueryByFilters(ctx, Filters{Equipment: []string{"barbell"}, Tier: types.TierFoundational})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Back Squat", got[0].Name)
	})

	t.Run("difficulty admits easier exercises", func(t *testing.T) {
		got, err := c.QueryByFilters(ctx, Filters{Muscles: []string{"Quadriceps"}, Difficulty: types.DifficultyIntermediate})
		require.NoError(t, err)
		require.Len(t, got, 2, "advanced entries are excluded for intermediate users")
		for _, e := range got {
			assert.NotEqual(t, types.DifficultyAdvanced, e.Difficulty)
		}
	})

	t.Run("popularity ceiling excludes obscure entries", func(t *testing.T) {
		got, err := c.QueryByFilters(ctx, Filters{Muscles: []string{"Quadriceps"}, PopularityCeiling: 20})
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("limit truncates after ordering", func(t *testing.T) {
		got, err := c.QueryByFilters(ctx, Filters{Limit: 2})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Back Squat", got[0].Name)
		assert.Equal(t, "Romanian Deadlift", got[1].Name)
	})

	t.Run("no match yields empty result", func(t *testing.T) {
		got, err := c.QueryByFilters(ctx, Filters{Muscles: []string{"Neck"}})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestFileCatalog_ValidateIDs(t *testing.T) {
	c := NewFileCatalog(testEntries())

	valid, invalid, err := c.ValidateIDs(context.Background(), []string{"ex_1", "ex_999", "ex_4", "bogus"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ex_1", "ex_4"}, valid)
	assert.Equal(t, []string{"ex_999", "bogus"}, invalid)
}

func TestLoadFileCatalog(t *testing.T) {
	t.Run("loads valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.json")
		data := `[{"id":"ex_1","name":"Back Squat","equipment":"Barbell","main_muscles":["Quadriceps"],"tier":"foundational","difficulty":"intermediate","popularity":2}]`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		c, err := LoadFileCatalog(path)
		require.NoError(t, err)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("missing file returns load error", func(t *testing.T) {
		_, err := LoadFileCatalog(filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
		var loadErr *LoadError
		assert.ErrorAs(t, err, &loadErr)
	})

	t.Run("malformed JSON returns load error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		_, err := LoadFileCatalog(path)
		require.Error(t, err)
		var loadErr *LoadError
		assert.ErrorAs(t, err, &loadErr)
	})
}
