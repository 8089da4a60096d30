package catalog

import (
	"context"

	"github.com/tobias/plan-reconciler/internal/db"
	"github.com/tobias/plan-reconciler/internal/types"
)

// Store serves catalog queries from PostgreSQL.
type Store struct {
	db *db.DB
}

// NewStore wraps a database handle as a catalog client.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// GetByID returns the entry with the given id, or (nil, nil) when the
// id is unknown.
func (s *Store) GetByID(ctx context.Context, id string) (*types.CatalogExercise, error) {
	ex, err := s.db.GetExerciseByID(ctx, id)
	if err != nil {
		return nil, &Error{Message: "get by id failed", Cause: err}
	}
	return ex, nil
}

// QueryByFilters translates filters to a database query. Difficulty is
// expanded here so the storage layer stays free of level semantics.
func (s *Store) QueryByFilters(ctx context.Context, f Filters) ([]types.CatalogExercise, error) {
	out, err := s.db.QueryExercises(ctx, db.ExerciseQuery{
		Muscles:           f.Muscles,
		Equipment:         f.Equipment,
		Difficulties:      admittedDifficulties(f.Difficulty),
		Tier:              f.Tier,
		PopularityCeiling: f.PopularityCeiling,
		Limit:             f.Limit,
	})
	if err != nil {
		return nil, &Error{Message: "query failed", Cause: err}
	}
	return out, nil
}

// ValidateIDs checks a batch of ids in one round trip.
func (s *Store) ValidateIDs(ctx context.Context, ids []string) ([]string, []string, error) {
	valid, invalid, err := s.db.ValidateExerciseIDs(ctx, ids)
	if err != nil {
		return nil, nil, &Error{Message: "id validation failed", Cause: err}
	}
	return valid, invalid, nil
}

// admittedDifficulties lists the levels at or below the given one.
func admittedDifficulties(level string) []string {
	max, ok := difficultyRank[level]
	if !ok {
		return nil
	}
	var out []string
	for _, l := range []string{types.DifficultyBeginner, types.DifficultyIntermediate, types.DifficultyAdvanced} {
		if difficultyRank[l] <= max {
			out = append(out, l)
		}
	}
	return out
}
