// Package types provides type definitions for structured data used throughout the plan-reconciler system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// Exercise tier classifications used to balance plan variety.
const (
	TierFoundational = "foundational"
	TierStandard     = "standard"
	TierVariety      = "variety"
)

// Difficulty levels recognized by the catalog.
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// CatalogExercise represents one authoritative catalog entry.
// Entries are immutable and owned by the catalog; the reconciliation
// core only ever reads them.
type CatalogExercise struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	AlternativeNames []string `json:"alternative_names,omitempty"`
	Equipment        string   `json:"equipment"`
	MainMuscles      []string `json:"main_muscles"`
	Tier             string   `json:"tier"`
	Difficulty       string   `json:"difficulty"`
	Popularity       int      `json:"popularity"`
}

// PrimaryMuscle returns the first entry of MainMuscles, or "" when the
// entry carries no muscle data.
func (e *CatalogExercise) PrimaryMuscle() string {
	if len(e.MainMuscles) == 0 {
		return ""
	}
	return e.MainMuscles[0]
}

// TargetsMuscle reports whether the exercise lists the given muscle,
// compared case-insensitively.
func (e *CatalogExercise) TargetsMuscle(muscle string) bool {
	for _, m := range e.MainMuscles {
		if strings.EqualFold(m, muscle) {
			return true
		}
	}
	return false
}
