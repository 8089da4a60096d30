package matching

import (
	"context"

	"github.com/tobias/plan-reconciler/internal/catalog"
	"github.com/tobias/plan-reconciler/internal/types"
)

// Acceptance bars for the relaxed stages. As relevance constraints
// loosen, the risk of a spuriously similar name on an irrelevant
// exercise rises, so the bar rises with each stage.
const (
	stageTwoThreshold   = 0.85
	stageThreeThreshold = 0.80
)

// relaxedQueryLimit caps how many candidates a relaxed catalog query
// feeds into scoring.
const relaxedQueryLimit = 50

// Cascade resolves names whose primary filtered query returned zero
// candidates, by progressively dropping constraints.
type Cascade struct {
	catalog           catalog.Client
	matcher           *Matcher
	popularityCeiling int
}

// NewCascade creates a cascade over the given catalog and matcher.
func NewCascade(client catalog.Client, matcher *Matcher, popularityCeiling int) *Cascade {
	return &Cascade{catalog: client, matcher: matcher, popularityCeiling: popularityCeiling}
}

// Resolve runs the three relaxation stages in order and returns the
// first accepted match:
//
//  1. equipment plus primary muscle, any resulting status accepted
//  2. primary muscle only, accepted at score 0.85 or better
//  3. popularity ceiling only, accepted at score 0.80 or better
//
// Exhausting all three yields a no-match result. A catalog failure at
// any stage counts as that stage finding nothing.
func (c *Cascade) Resolve(ctx context.Context, aiName, muscle, equipment string) types.MatchResult {
	muscles := catalog.ExpandMuscleArea(muscle)

	stages := []struct {
		filters  catalog.Filters
		minScore float64
	}{
		{
			filters:  catalog.Filters{Muscles: muscles, Equipment: []string{equipment}, PopularityCeiling: c.popularityCeiling, Limit: relaxedQueryLimit},
			minScore: 0,
		},
		{
			filters:  catalog.Filters{Muscles: muscles, PopularityCeiling: c.popularityCeiling, Limit: relaxedQueryLimit},
			minScore: stageTwoThreshold,
		},
		{
			filters:  catalog.Filters{PopularityCeiling: c.popularityCeiling, Limit: relaxedQueryLimit},
			minScore: stageThreeThreshold,
		},
	}

	for _, stage := range stages {
		candidates, err := c.catalog.QueryByFilters(ctx, stage.filters)
		if err != nil || len(candidates) == 0 {
			continue
		}
		res := c.matcher.MatchWithStatus(aiName, candidates)
		if res.Exercise == nil || res.Score < stage.minScore {
			continue
		}
		return res
	}

	return types.MatchResult{Status: types.StatusNoMatch}
}
