// Package types provides type definitions for structured data used throughout the plan-reconciler system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// TrainingPlan is the canonical in-memory form of a generated plan.
// The reconciliation core mutates exercise entries and rest-day flags
// in place; everything else is preserved as received.
type TrainingPlan struct {
	Name       string         `json:"name,omitempty"`
	Goal       string         `json:"goal,omitempty"`
	Difficulty string         `json:"difficulty,omitempty"`
	Weeks      []TrainingWeek `json:"weeks"`
}

// TrainingWeek holds one week of ordered days. A well-formed week has
// seven days, Monday through Sunday.
type TrainingWeek struct {
	Number int           `json:"week_number,omitempty"`
	Days   []TrainingDay `json:"days"`
}

// TrainingDay holds the strength exercises and endurance sessions
// scheduled for one day.
type TrainingDay struct {
	Weekday   string               `json:"weekday,omitempty"`
	IsRestDay bool                 `json:"is_rest_day"`
	Exercises []ExerciseDescriptor `json:"exercises"`
	Endurance []EnduranceSession   `json:"endurance,omitempty"`
}

// EnduranceSession is carried through validation untouched. Endurance
// content only matters to the core as a rest-day signal.
type EnduranceSession struct {
	Sport           string `json:"sport"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Intensity       string `json:"intensity,omitempty"`
	Description     string `json:"description,omitempty"`
}

// ExerciseDescriptor is an AI-authored exercise entry inside a plan.
// Upstream generators emit a free-text name plus coarse attributes;
// validation attaches a verified catalog identifier or removes the
// entry. Numeric prescription fields tolerate the loose shapes model
// output tends to produce (see UnmarshalJSON).
type ExerciseDescriptor struct {
	ExerciseID  string    `json:"exercise_id,omitempty"`
	Name        string    `json:"name,omitempty"`
	MainMuscle  string    `json:"main_muscle,omitempty"`
	Equipment   string    `json:"equipment,omitempty"`
	Sets        int       `json:"sets,omitempty"`
	Reps        []int     `json:"reps,omitempty"`
	Weight      []float64 `json:"weight,omitempty"`
	Description string    `json:"description,omitempty"`
}

// HasMatchMetadata reports whether the descriptor carries the fields
// name matching needs. Descriptors without them cannot be resolved and
// are removed during validation.
func (d *ExerciseDescriptor) HasMatchMetadata() bool {
	return d.Name != "" && d.MainMuscle != "" && d.Equipment != ""
}
