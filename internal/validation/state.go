package validation

import "github.com/tobias/plan-reconciler/internal/types"

// exerciseState tracks one descriptor through the validation pass.
type exerciseState int

const (
	stateUnvalidated exerciseState = iota
	stateHasID
	stateNeedsMatch
	stateMatched
	stateFallbackMatched
	stateMarkedForRemoval
)

func (s exerciseState) String() string {
	switch s {
	case stateHasID:
		return "has_id"
	case stateNeedsMatch:
		return "needs_match"
	case stateMatched:
		return "matched"
	case stateFallbackMatched:
		return "fallback_matched"
	case stateMarkedForRemoval:
		return "marked_for_removal"
	default:
		return "unvalidated"
	}
}

// workItem is one descriptor's position and progress in the pass. The
// pointer stays valid for the whole pass because exercise slices are
// only rebuilt after every item reached a terminal state.
type workItem struct {
	week, day, index int
	ex               *types.ExerciseDescriptor
	state            exerciseState

	// aiName is the descriptor's name before canonicalization, kept for
	// messages and review records.
	aiName string

	// invalidID holds the stale identifier this item arrived with, when
	// it re-entered matching through the batch id check.
	invalidID string
}
