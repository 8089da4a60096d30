package validation

import "github.com/tobias/plan-reconciler/internal/types"

// Report is the outcome of one plan validation: the repaired plan,
// human-readable messages, and repair counters.
type Report struct {
	Plan *types.TrainingPlan `json:"plan"`
	// Messages are in emission order: structural warnings first, then
	// per-exercise repairs, then the summary line.
	Messages []string `json:"messages"`
	// InvalidIDs counts descriptors whose existing identifier failed
	// the batched catalog check.
	InvalidIDs int `json:"invalid_ids"`
	// Matched counts descriptors that had an identifier attached by
	// name matching.
	Matched int `json:"matched"`
	// Replaced counts descriptors that ended up under a different
	// identity than they arrived with: repaired stale ids plus
	// diversity substitutions.
	Replaced int `json:"replaced"`
	// Removed counts descriptors dropped from the plan.
	Removed int `json:"removed"`
}

func (r *Report) addMessage(msg string) {
	r.Messages = append(r.Messages, msg)
}
