package validation

import (
	"github.com/tobias/plan-reconciler/internal/prescription"
	"github.com/tobias/plan-reconciler/internal/types"
)

// collectItems builds a work item per descriptor, in plan order, and
// runs the first state transition: descriptors with an identifier wait
// for the batched check, the rest go straight to matching.
func collectItems(plan *types.TrainingPlan) []*workItem {
	var items []*workItem
	for wi := range plan.Weeks {
		for di := range plan.Weeks[wi].Days {
			day := &plan.Weeks[wi].Days[di]
			for ei := range day.Exercises {
				ex := &day.Exercises[ei]
				item := &workItem{week: wi, day: di, index: ei, ex: ex, aiName: ex.Name, state: stateUnvalidated}
				if ex.ExerciseID != "" {
					item.state = stateHasID
				} else {
					item.state = stateNeedsMatch
				}
				items = append(items, item)
			}
		}
	}
	return items
}

// scheduledNames lists the exercise names currently on a day.
func scheduledNames(day *types.TrainingDay) []string {
	out := make([]string, 0, len(day.Exercises))
	for i := range day.Exercises {
		if name := day.Exercises[i].Name; name != "" {
			out = append(out, name)
		}
	}
	return out
}

// dropRemoved rebuilds every day without removal-marked descriptors,
// normalizes the prescriptions of the survivors, and flips the
// rest-day flag on days left with no strength and no endurance work.
func dropRemoved(plan *types.TrainingPlan, items []*workItem, report *Report) {
	removed := make(map[[3]int]bool)
	for _, item := range items {
		if item.state == stateMarkedForRemoval {
			removed[[3]int{item.week, item.day, item.index}] = true
			report.Removed++
		}
	}

	for wi := range plan.Weeks {
		for di := range plan.Weeks[wi].Days {
			day := &plan.Weeks[wi].Days[di]
			kept := make([]types.ExerciseDescriptor, 0, len(day.Exercises))
			for ei := range day.Exercises {
				if removed[[3]int{wi, di, ei}] {
					continue
				}
				prescription.Normalize(&day.Exercises[ei])
				kept = append(kept, day.Exercises[ei])
			}
			if len(kept) == 0 {
				day.Exercises = nil
			} else {
				day.Exercises = kept
			}
			if len(day.Exercises) == 0 && len(day.Endurance) == 0 {
				day.IsRestDay = true
			}
		}
	}
}

// clonePlan deep-copies a plan so the pass can repair freely while the
// caller's input stays untouched.
func clonePlan(p *types.TrainingPlan) *types.TrainingPlan {
	out := *p
	out.Weeks = make([]types.TrainingWeek, len(p.Weeks))
	for wi, week := range p.Weeks {
		cw := week
		cw.Days = make([]types.TrainingDay, len(week.Days))
		for di, day := range week.Days {
			cd := day
			cd.Exercises = cloneExercises(day.Exercises)
			cd.Endurance = append([]types.EnduranceSession(nil), day.Endurance...)
			cw.Days[di] = cd
		}
		out.Weeks[wi] = cw
	}
	return &out
}

func cloneExercises(src []types.ExerciseDescriptor) []types.ExerciseDescriptor {
	if len(src) == 0 {
		return nil
	}
	out := make([]types.ExerciseDescriptor, len(src))
	for i, ex := range src {
		ex.Reps = append([]int(nil), ex.Reps...)
		ex.Weight = append([]float64(nil), ex.Weight...)
		out[i] = ex
	}
	return out
}

// weekLabel prefers the week's own number, falling back to its
// position for plans that never set one.
func weekLabel(week types.TrainingWeek, index int) int {
	if week.Number > 0 {
		return week.Number
	}
	return index + 1
}
