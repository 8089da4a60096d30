// Package catalog defines the read-only exercise catalog interface and
// its file-backed and database-backed implementations.
package catalog

import (
	"context"

	"github.com/tobias/plan-reconciler/internal/types"
)

// Filters narrows a catalog query. Zero values mean "no constraint".
type Filters struct {
	// Muscles matches exercises targeting any of the listed muscles.
	Muscles []string
	// Equipment matches exercises using any of the listed categories.
	Equipment []string
	// Difficulty admits exercises at or below the given level.
	Difficulty string
	// Tier restricts to one tier (foundational, standard, variety).
	Tier string
	// PopularityCeiling excludes exercises with a popularity ordinal
	// above the ceiling. Lower ordinals are more popular.
	PopularityCeiling int
	// Limit truncates the result after popularity ordering.
	Limit int
}

// Client is the catalog query interface consumed by the reconciliation
// core. The core never writes to the catalog.
type Client interface {
	// GetByID returns the exercise with the given identifier, or
	// (nil, nil) when no such entry exists.
	GetByID(ctx context.Context, id string) (*types.CatalogExercise, error)

	// QueryByFilters returns matching exercises ordered most popular
	// first.
	QueryByFilters(ctx context.Context, f Filters) ([]types.CatalogExercise, error)

	// ValidateIDs partitions ids into those the catalog knows and those
	// it does not, in one round trip, preserving input order.
	ValidateIDs(ctx context.Context, ids []string) (valid []string, invalid []string, err error)
}

var difficultyRank = map[string]int{
	types.DifficultyBeginner:     1,
	types.DifficultyIntermediate: 2,
	types.DifficultyAdvanced:     3,
}

// DifficultyAdmits reports whether an exercise at exerciseLevel is
// suitable for a user at userLevel. Unknown levels admit everything.
func DifficultyAdmits(userLevel, exerciseLevel string) bool {
	u, uok := difficultyRank[userLevel]
	e, eok := difficultyRank[exerciseLevel]
	if !uok || !eok {
		return true
	}
	return e <= u
}
