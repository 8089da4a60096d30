package matching

import (
	"context"

	"github.com/tobias/plan-reconciler/internal/cache"
	"github.com/tobias/plan-reconciler/internal/catalog"
	"github.com/tobias/plan-reconciler/internal/types"
)

// Replacer substitutes unresolvable descriptors with a same-muscle,
// same-equipment exercise maximally dissimilar to what the day already
// holds, so repaired days don't feel redundant.
type Replacer struct {
	catalog catalog.Client
	scorer  *scorer
}

// NewReplacer creates a replacer sharing the matcher's score cache.
func NewReplacer(client catalog.Client, scores *cache.ScoreCache) *Replacer {
	return &Replacer{catalog: client, scorer: newScorer(scores)}
}

// FindReplacement picks the candidate whose worst-case similarity to
// the already-scheduled names is lowest. Ties keep the more popular
// candidate. Returns nil when metadata filtering alone yields nothing;
// catalog failures count as nothing.
func (r *Replacer) FindReplacement(ctx context.Context, muscle, equipment string, scheduledNames []string, popularityCeiling int) *types.CatalogExercise {
	candidates, err := r.catalog.QueryByFilters(ctx, catalog.Filters{
		Muscles:           catalog.ExpandMuscleArea(muscle),
		Equipment:         []string{equipment},
		PopularityCeiling: popularityCeiling,
		Limit:             relaxedQueryLimit,
	})
	if err != nil || len(candidates) == 0 {
		return nil
	}

	scheduled := make([]string, 0, len(scheduledNames))
	for _, name := range scheduledNames {
		if norm := NormalizeName(name); norm != "" {
			scheduled = append(scheduled, norm)
		}
	}

	best := -1
	bestWorstCase := 2.0
	for i := range candidates {
		candName := NormalizeName(candidates[i].Name)
		worstCase := 0.0
		for _, name := range scheduled {
			if sim := r.scorer.fuzzy(candName, name); sim > worstCase {
				worstCase = sim
			}
		}
		if worstCase < bestWorstCase {
			bestWorstCase = worstCase
			best = i
		}
	}
	return &candidates[best]
}
