// Package validation walks a training plan and repairs its exercise
// references: stale identifiers are re-matched, unmatched names are
// replaced or removed, and prescriptions are normalized. The pass
// always prefers a degraded plan over a failed run.
package validation

import (
	"context"
	"fmt"
	"log"

	"github.com/tobias/plan-reconciler/internal/cache"
	"github.com/tobias/plan-reconciler/internal/catalog"
	"github.com/tobias/plan-reconciler/internal/matching"
	"github.com/tobias/plan-reconciler/internal/review"
	"github.com/tobias/plan-reconciler/internal/selection"
	"github.com/tobias/plan-reconciler/internal/types"
)

// Validator repairs one plan at a time. Instances own their caches and
// are not safe for concurrent use; run concurrent validations on
// separate instances.
type Validator struct {
	catalog  catalog.Client
	selector *selection.Selector
	matcher  *matching.Matcher
	cascade  *matching.Cascade
	replacer *matching.Replacer
	reviews  review.Logger
	ceiling  int
	poolSize int

	scores *cache.ScoreCache
	pools  *cache.PoolCache
}

// NewValidator wires the matching components over one catalog client
// and review sink. popularityCeiling bounds every candidate query, zero
// meaning unbounded; poolSize caps each candidate pool, zero meaning
// the selector default.
func NewValidator(client catalog.Client, reviews review.Logger, popularityCeiling, poolSize int) *Validator {
	scores := cache.NewScoreCache()
	pools := cache.NewPoolCache()
	matcher := matching.NewMatcher(scores)
	return &Validator{
		catalog:  client,
		selector: selection.NewSelector(client, pools, popularityCeiling),
		matcher:  matcher,
		cascade:  matching.NewCascade(client, matcher, popularityCeiling),
		replacer: matching.NewReplacer(client, scores),
		reviews:  reviews,
		ceiling:  popularityCeiling,
		poolSize: poolSize,
		scores:   scores,
		pools:    pools,
	}
}

// CacheStats reports the similarity and candidate pool cache counters.
func (v *Validator) CacheStats() (scores, pools cache.Stats) {
	return v.scores.Stats(), v.pools.Stats()
}

// ValidatePlan repairs the plan and reports what changed. The input is
// never mutated: the report carries a repaired copy, and when a
// component panics the report carries the input itself with a single
// message.
func (v *Validator) ValidatePlan(ctx context.Context, plan *types.TrainingPlan) (report *Report) {
	report = &Report{Plan: plan}
	defer func() {
		if r := recover(); r != nil {
			report = &Report{
				Plan:     plan,
				Messages: []string{fmt.Sprintf("Validation failed unexpectedly (%v); returning the plan unchanged", r)},
			}
		}
	}()

	// 1. Structural pre-check. A plan with nothing to walk is returned
	// untouched with an explanation.
	if plan == nil || len(plan.Weeks) == 0 {
		report.addMessage("Training plan has no weeks")
		return report
	}
	for wi, week := range plan.Weeks {
		if len(week.Days) == 0 {
			report.addMessage(fmt.Sprintf("Week %d has no days", weekLabel(week, wi)))
			return report
		}
	}

	repaired := clonePlan(plan)
	report.Plan = repaired

	for wi, week := range repaired.Weeks {
		if len(week.Days) != 7 {
			report.addMessage(fmt.Sprintf("Week %d has %d days, expected 7", weekLabel(week, wi), len(week.Days)))
		}
	}

	p := &pass{v: v, plan: repaired, report: report, items: collectItems(repaired)}

	// 2. One batched id check for everything that arrived with an
	// identifier. Stale ids re-enter matching instead of being dropped.
	p.checkExistingIDs(ctx)

	// 3. Match loop, day by day in plan order. Replacement names join
	// the day's scheduled list so later repairs steer away from them.
	dayKey := [2]int{-1, -1}
	var scheduled []string
	for _, item := range p.items {
		if k := [2]int{item.week, item.day}; k != dayKey {
			dayKey = k
			scheduled = scheduledNames(&repaired.Weeks[item.week].Days[item.day])
		}
		if item.state != stateNeedsMatch {
			continue
		}
		p.resolveItem(ctx, item, &scheduled)
	}

	// 4. Re-validate freshly attached ids in one more batched pass,
	// strictly after the loop.
	p.recheckNewIDs(ctx)

	// 5. Drop removal-marked descriptors, normalize survivors, flip the
	// rest-day flag on days left without content.
	dropRemoved(repaired, p.items, report)

	// 6. Summary.
	if !p.idCheckFailed && report.InvalidIDs == 0 && report.Matched == 0 && report.Replaced == 0 && report.Removed == 0 {
		report.addMessage("All exercise IDs are valid")
	} else if report.InvalidIDs > 0 {
		report.addMessage(fmt.Sprintf("Found %d invalid exercise IDs: %d replaced, %d removed", report.InvalidIDs, report.Replaced, report.Removed))
	}

	// 7. Flush review records. Losing them never fails the run.
	if len(p.reviews) > 0 && v.reviews != nil {
		if _, err := v.reviews.LogBulk(ctx, p.reviews); err != nil {
			log.Printf("review queue write failed: %v", err)
		}
	}

	return report
}
