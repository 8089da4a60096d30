// Package prescription repairs the numeric sets/reps/weight arrays
// attached to an exercise descriptor so downstream consumers always see
// aligned, canonically ordered prescriptions.
package prescription

import (
	"sort"

	"github.com/tobias/plan-reconciler/internal/types"
)

const (
	defaultSets   = 3
	defaultReps   = 10
	defaultWeight = 0.0
)

// Normalize repairs a descriptor's prescription in place:
//
//  1. Non-positive sets become 3.
//  2. Missing reps default to [10], missing weight to [0.0]. Unusable
//     numeric input was already zeroed at the JSON boundary, so junk
//     arrives here as absent and picks up full neutral defaults.
//  3. Reps are padded (repeating the last value) or truncated to sets,
//     then weight to the reps length.
//  4. The (rep, weight) pairs are reordered highest rep count first,
//     keeping the original order of equal rep counts.
//
// Afterwards len(Reps) == Sets == len(Weight) and Reps is
// non-increasing.
func Normalize(ex *types.ExerciseDescriptor) {
	if ex == nil {
		return
	}
	if ex.Sets <= 0 {
		ex.Sets = defaultSets
	}

	reps := ex.Reps
	if len(reps) == 0 {
		reps = []int{defaultReps}
	}
	weight := ex.Weight
	if len(weight) == 0 {
		weight = []float64{defaultWeight}
	}

	reps = fitInts(reps, ex.Sets)
	weight = fitFloats(weight, len(reps))

	type pair struct {
		rep    int
		weight float64
	}
	pairs := make([]pair, len(reps))
	for i := range reps {
		pairs[i] = pair{rep: reps[i], weight: weight[i]}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].rep > pairs[j].rep })
	for i, p := range pairs {
		reps[i] = p.rep
		weight[i] = p.weight
	}

	ex.Reps = reps
	ex.Weight = weight
}

// fitInts returns a copy of s padded with its last element, or
// truncated, to length n. s must be non-empty.
func fitInts(s []int, n int) []int {
	out := make([]int, n)
	for i := range out {
		if i < len(s) {
			out[i] = s[i]
		} else {
			out[i] = s[len(s)-1]
		}
	}
	return out
}

func fitFloats(s []float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if i < len(s) {
			out[i] = s[i]
		} else {
			out[i] = s[len(s)-1]
		}
	}
	return out
}
