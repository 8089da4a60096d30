package validation

import (
	"context"
	"fmt"

	"github.com/tobias/plan-reconciler/internal/review"
	"github.com/tobias/plan-reconciler/internal/types"
)

// pass carries the mutable state of one ValidatePlan run.
type pass struct {
	v       *Validator
	plan    *types.TrainingPlan
	report  *Report
	items   []*workItem
	reviews []review.Record

	// idCheckFailed records that existing ids could not be verified, so
	// the summary must not claim they are all valid.
	idCheckFailed bool
}

// checkExistingIDs validates every descriptor that arrived with an
// identifier in one catalog round trip. Stale identifiers send their
// descriptors back through matching. When the catalog is unreachable
// the ids stay attached unverified, which keeps the plan intact.
func (p *pass) checkExistingIDs(ctx context.Context) {
	var ids []string
	byID := make(map[string][]*workItem)
	for _, item := range p.items {
		if item.state != stateHasID {
			continue
		}
		id := item.ex.ExerciseID
		if len(byID[id]) == 0 {
			ids = append(ids, id)
		}
		byID[id] = append(byID[id], item)
	}
	if len(ids) == 0 {
		return
	}

	_, invalid, err := p.v.catalog.ValidateIDs(ctx, ids)
	if err != nil {
		p.idCheckFailed = true
		p.report.addMessage("Could not verify existing exercise IDs: catalog unavailable")
		return
	}
	for _, id := range invalid {
		for _, item := range byID[id] {
			item.state = stateNeedsMatch
			item.invalidID = id
			item.ex.ExerciseID = ""
			p.report.InvalidIDs++
		}
	}
}

// resolveItem drives one descriptor from needs_match to a terminal
// state: matched, fallback_matched, or marked_for_removal.
func (p *pass) resolveItem(ctx context.Context, item *workItem, scheduled *[]string) {
	ex := item.ex
	if !ex.HasMatchMetadata() {
		item.state = stateMarkedForRemoval
		p.report.addMessage(fmt.Sprintf("Removing exercise with incomplete metadata (name=%q, muscle=%q, equipment=%q)",
			ex.Name, ex.MainMuscle, ex.Equipment))
		return
	}

	// Primary filtered pool first. An empty pool sends the name through
	// the relaxation cascade rather than straight to removal.
	pool := p.v.selector.SelectCandidates(ctx, []string{ex.MainMuscle}, p.plan.Difficulty, []string{ex.Equipment}, p.v.poolSize)
	var res types.MatchResult
	if len(pool) > 0 {
		res = p.v.matcher.MatchWithStatus(ex.Name, pool)
	} else {
		res = p.v.cascade.Resolve(ctx, ex.Name, ex.MainMuscle, ex.Equipment)
	}

	if res.Exercise != nil && !res.Nominal {
		if res.Status != types.StatusMatched {
			p.reviews = append(p.reviews, review.Record{
				AIName:            item.aiName,
				Muscle:            ex.MainMuscle,
				Equipment:         ex.Equipment,
				SimilarityScore:   res.Score,
				MatchedExerciseID: res.Exercise.ID,
				MatchedName:       res.Exercise.Name,
				Status:            res.Status,
			})
		}
		p.attach(item, res.Exercise, scheduled)
		return
	}

	// The name carried no real match evidence anywhere: queue it for
	// curation, then try to keep the slot filled with a diversity
	// replacement.
	p.reviews = append(p.reviews, review.Record{
		AIName:    item.aiName,
		Muscle:    ex.MainMuscle,
		Equipment: ex.Equipment,
		Status:    types.StatusNoMatch,
	})
	if sub := p.v.replacer.FindReplacement(ctx, ex.MainMuscle, ex.Equipment, *scheduled, p.v.ceiling); sub != nil {
		p.attachReplacement(item, sub, scheduled)
		return
	}
	if res.Exercise != nil {
		// The replacer could not query but a nominal candidate exists.
		// A popular relevant exercise beats an empty slot.
		p.attach(item, res.Exercise, scheduled)
		return
	}

	item.state = stateMarkedForRemoval
	p.report.addMessage(fmt.Sprintf("Removing exercise %q: no suitable match or replacement found", item.aiName))
}

// attach canonicalizes a matched descriptor: verified identifier and
// catalog name in, AI-only description out.
func (p *pass) attach(item *workItem, match *types.CatalogExercise, scheduled *[]string) {
	item.ex.ExerciseID = match.ID
	item.ex.Name = match.Name
	item.ex.Description = ""
	item.state = stateMatched
	*scheduled = append(*scheduled, match.Name)

	p.report.Matched++
	if item.invalidID != "" {
		p.report.Replaced++
		p.report.addMessage(fmt.Sprintf("Replaced invalid exercise %s with %q", item.invalidID, match.Name))
	}
}

func (p *pass) attachReplacement(item *workItem, sub *types.CatalogExercise, scheduled *[]string) {
	item.ex.ExerciseID = sub.ID
	item.ex.Name = sub.Name
	item.ex.Description = ""
	item.state = stateFallbackMatched
	*scheduled = append(*scheduled, sub.Name)

	p.report.Replaced++
	if item.invalidID != "" {
		p.report.addMessage(fmt.Sprintf("Replaced invalid exercise %s with %q", item.invalidID, sub.Name))
	} else {
		p.report.addMessage(fmt.Sprintf("Could not match %q; substituted %q", item.aiName, sub.Name))
	}
}

// recheckNewIDs re-validates identifiers attached during the match loop
// in one more batched pass. An id that is already gone again loses its
// descriptor; there is no second repair attempt.
func (p *pass) recheckNewIDs(ctx context.Context) {
	var ids []string
	byID := make(map[string][]*workItem)
	for _, item := range p.items {
		if item.state != stateMatched && item.state != stateFallbackMatched {
			continue
		}
		id := item.ex.ExerciseID
		if len(byID[id]) == 0 {
			ids = append(ids, id)
		}
		byID[id] = append(byID[id], item)
	}
	if len(ids) == 0 {
		return
	}

	_, invalid, err := p.v.catalog.ValidateIDs(ctx, ids)
	if err != nil {
		p.report.addMessage("Could not re-verify attached exercise IDs: catalog unavailable")
		return
	}
	for _, id := range invalid {
		for _, item := range byID[id] {
			item.state = stateMarkedForRemoval
			item.ex.ExerciseID = ""
			p.report.addMessage(fmt.Sprintf("Removing exercise %q: attached identifier %s failed re-validation", item.aiName, id))
		}
	}
}
