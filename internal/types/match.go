// Package types provides type definitions for structured data used throughout the plan-reconciler system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// MatchRequest represents one ad-hoc lookup of an AI-supplied exercise
// name against the catalog.
type MatchRequest struct {
	Name       string `json:"name" validate:"required,min=1"`
	Muscle     string `json:"muscle" validate:"required,min=1"`
	Equipment  string `json:"equipment" validate:"required,min=1"`
	Difficulty string `json:"difficulty,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	PoolSize   int    `json:"pool_size,omitempty" validate:"min=0"`
}

// Validate validates the MatchRequest using the validator.
func (r *MatchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// MatchStatus classifies the confidence of a name-match outcome.
type MatchStatus string

const (
	// StatusMatched means the score cleared the strict acceptance bar.
	StatusMatched MatchStatus = "matched"
	// StatusLowConfidence means the match is usable but should be
	// recorded for catalog curation.
	StatusLowConfidence MatchStatus = "low_confidence"
	// StatusPendingReview means the best available candidate was a
	// guess; a curator should look at the name.
	StatusPendingReview MatchStatus = "pending_review"
	// StatusNoMatch means no candidate could be resolved at all.
	StatusNoMatch MatchStatus = "no_match"
)

// MatchResult is the transient outcome of matching one AI-supplied name
// against a candidate pool.
type MatchResult struct {
	Exercise *CatalogExercise `json:"exercise,omitempty"`
	Score    float64          `json:"score"`
	Status   MatchStatus      `json:"status"`
	// Nominal marks a candidate chosen purely because the pool was
	// relevant, with zero name evidence. Callers repairing a plan
	// prefer a diversity replacement over a nominal pick.
	Nominal bool `json:"nominal,omitempty"`
}

// Resolved reports whether the result carries a usable catalog entry.
func (r MatchResult) Resolved() bool {
	return r.Exercise != nil && r.Status != StatusNoMatch
}
