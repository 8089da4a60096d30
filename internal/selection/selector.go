// Package selection builds curated, muscle-balanced candidate pools
// from the exercise catalog for the name-matching stage.
package selection

import (
	"context"
	"fmt"
	"strings"

	"github.com/tobias/plan-reconciler/internal/cache"
	"github.com/tobias/plan-reconciler/internal/catalog"
	"github.com/tobias/plan-reconciler/internal/types"
)

// Tier shares of a candidate pool. Foundational and standard split the
// bulk evenly; variety fills what remains.
const (
	foundationalShare = 0.40
	standardShare     = 0.40
)

// DefaultPoolSize is used when the caller passes a non-positive count.
const DefaultPoolSize = 15

// Selector curates candidate pools against a catalog client.
type Selector struct {
	catalog           catalog.Client
	pools             *cache.PoolCache
	popularityCeiling int
}

// NewSelector creates a selector. The pool cache may be nil to disable
// caching; the ceiling bounds how obscure queried exercises may be.
func NewSelector(client catalog.Client, pools *cache.PoolCache, popularityCeiling int) *Selector {
	return &Selector{
		catalog:           client,
		pools:             pools,
		popularityCeiling: popularityCeiling,
	}
}

// SelectCandidates returns a curated pool for the given constraints:
// coarse muscle areas expanded to specific muscles, the count split
// across tiers, each tier balanced round-robin across muscles, and
// near-identical name variants deduplicated. An empty result means the
// constraints cannot be filled and the caller should widen them.
// Catalog failures degrade to an empty contribution from the failing
// tier rather than an error.
func (s *Selector) SelectCandidates(ctx context.Context, targetMuscles []string, difficulty string, equipment []string, maxCount int) []types.CatalogExercise {
	if maxCount <= 0 {
		maxCount = DefaultPoolSize
	}

	// 1. Expand coarse areas ("Thighs") into specific catalog muscles.
	muscles := catalog.ExpandMuscleAreas(targetMuscles)
	if len(muscles) == 0 {
		return nil
	}

	key := poolCacheKey(muscles, difficulty, equipment, maxCount)
	if s.pools != nil {
		if pool, ok := s.pools.Get(key); ok {
			return pool
		}
	}

	// 2. Split the requested count across tiers.
	tierCounts := splitAcrossTiers(maxCount)

	// 3. Fill each tier independently, deduplicating by base name
	//    across the whole pool so variants never occupy two slots.
	seen := make(map[string]bool)
	var pool []types.CatalogExercise
	for _, tc := range tierCounts {
		if tc.count == 0 {
			continue
		}
		pool = append(pool, s.fillTier(ctx, tc.tier, tc.count, muscles, difficulty, equipment, seen)...)
	}

	if s.pools != nil {
		s.pools.Put(key, pool)
	}
	return pool
}

type tierCount struct {
	tier  string
	count int
}

// splitAcrossTiers divides n into foundational/standard/variety
// portions, remainder to variety. Tiny pools go entirely to
// foundational movements.
func splitAcrossTiers(n int) []tierCount {
	foundational := int(foundationalShare*float64(n) + 0.5)
	standard := int(standardShare*float64(n) + 0.5)
	if foundational == 0 {
		return []tierCount{{types.TierFoundational, n}, {types.TierStandard, 0}, {types.TierVariety, 0}}
	}
	if foundational+standard > n {
		standard = n - foundational
	}
	return []tierCount{
		{types.TierFoundational, foundational},
		{types.TierStandard, standard},
		{types.TierVariety, n - foundational - standard},
	}
}

// fillTier queries one tier and picks up to count entries, round-robin
// across the requested muscles so no single muscle dominates. Remainder
// slots go to the earliest muscles; a muscle whose bucket runs dry
// yields its turns to the rest.
func (s *Selector) fillTier(ctx context.Context, tier string, count int, muscles []string, difficulty string, equipment []string, seen map[string]bool) []types.CatalogExercise {
	results, err := s.catalog.QueryByFilters(ctx, catalog.Filters{
		Muscles:           muscles,
		Equipment:         equipment,
		Difficulty:        difficulty,
		Tier:              tier,
		PopularityCeiling: s.popularityCeiling,
	})
	if err != nil {
		return nil
	}
	results = applyEquipmentPolicy(results, difficulty)

	buckets := bucketByMuscle(results, muscles)

	var picked []types.CatalogExercise
	for len(picked) < count {
		progressed := false
		for _, muscle := range muscles {
			if len(picked) == count {
				break
			}
			bucket := buckets[strings.ToLower(muscle)]
			for len(bucket) > 0 {
				next := bucket[0]
				bucket = bucket[1:]
				base := baseName(next.Name)
				if seen[base] {
					continue
				}
				seen[base] = true
				picked = append(picked, next)
				progressed = true
				break
			}
			buckets[strings.ToLower(muscle)] = bucket
		}
		if !progressed {
			break
		}
	}
	return picked
}

// bucketByMuscle groups popularity-ordered results into per-muscle
// queues. An exercise lands in its primary muscle's bucket when that
// muscle was requested, otherwise in the first requested muscle it
// targets.
func bucketByMuscle(results []types.CatalogExercise, muscles []string) map[string][]types.CatalogExercise {
	requested := make(map[string]bool, len(muscles))
	for _, m := range muscles {
		requested[strings.ToLower(m)] = true
	}

	buckets := make(map[string][]types.CatalogExercise)
	for _, ex := range results {
		slot := ""
		if primary := strings.ToLower(ex.PrimaryMuscle()); requested[primary] {
			slot = primary
		} else {
			for _, m := range muscles {
				if ex.TargetsMuscle(m) {
					slot = strings.ToLower(m)
					break
				}
			}
		}
		if slot == "" {
			continue
		}
		buckets[slot] = append(buckets[slot], ex)
	}
	return buckets
}

// baseName reduces an exercise name to its comparison form: lower-cased
// with parenthetical and dashed variant suffixes removed, so
// "Back Squat (High Bar)" and "Back Squat - Paused" both reduce to
// "back squat".
func baseName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if i := strings.Index(n, "("); i > 0 {
		n = n[:i]
	}
	if i := strings.Index(n, " - "); i > 0 {
		n = n[:i]
	}
	return strings.TrimSpace(n)
}

func poolCacheKey(muscles []string, difficulty string, equipment []string, maxCount int) string {
	return cache.PoolKey(
		strings.ToLower(strings.Join(muscles, ",")),
		difficulty,
		strings.ToLower(strings.Join(equipment, ",")),
		fmt.Sprintf("%d", maxCount),
	)
}
