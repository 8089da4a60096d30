// Package ingestion is the entry boundary for AI-generated training
// plans: it validates raw documents against the plan schema and
// consolidates legacy field spellings, so downstream code only ever
// sees the canonical plan shape.
package ingestion

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/tobias/plan-reconciler/internal/schemas"
	"github.com/tobias/plan-reconciler/internal/types"
)

// rawPlan mirrors types.TrainingPlan but accepts every field spelling
// generators have used. Only the boundary sees these shapes.
type rawPlan struct {
	Name       string    `json:"name,omitempty"`
	Goal       string    `json:"goal,omitempty"`
	Difficulty string    `json:"difficulty,omitempty"`
	Weeks      []rawWeek `json:"weeks"`
}

type rawWeek struct {
	Number         int      `json:"week_number,omitempty"`
	Days           []rawDay `json:"days,omitempty"`
	DailyWorkouts  []rawDay `json:"daily_workouts,omitempty"`
	DailyTrainings []rawDay `json:"daily_trainings,omitempty"`
}

type rawDay struct {
	Weekday           string                     `json:"weekday,omitempty"`
	IsRestDay         bool                       `json:"is_rest_day,omitempty"`
	Exercises         []types.ExerciseDescriptor `json:"exercises,omitempty"`
	StrengthExercises []types.ExerciseDescriptor `json:"strength_exercises,omitempty"`
	Endurance         []types.EnduranceSession   `json:"endurance,omitempty"`
}

// LoadPlan reads and parses a training plan file.
func LoadPlan(path string) (*types.TrainingPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to read plan file %s", path), Cause: err}
	}
	return ParsePlan(data)
}

// ParsePlan turns a raw plan document into the canonical in-memory
// form. The document is checked against the plan schema when the
// schema file can be located; a missing schema file degrades to
// structural decoding alone. Week day lists arriving as days,
// daily_workouts, or daily_trainings and exercise lists arriving as
// exercises or strength_exercises are consolidated here.
func ParsePlan(data []byte) (*types.TrainingPlan, error) {
	var probe interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &Error{Message: "plan document is not valid JSON", Cause: err}
	}

	if schemaPath := schemas.ResolveSchemaPath(schemas.TrainingPlanSchema); schemaPath != "" {
		if err := validateAgainstSchema(schemaPath, data); err != nil {
			return nil, err
		}
	} else {
		log.Printf("plan schema %s not found; skipping document validation", schemas.TrainingPlanSchema)
	}

	var raw rawPlan
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &Error{Message: "failed to decode plan JSON", Cause: err}
	}

	plan := &types.TrainingPlan{
		Name:       raw.Name,
		Goal:       raw.Goal,
		Difficulty: raw.Difficulty,
		Weeks:      make([]types.TrainingWeek, len(raw.Weeks)),
	}
	for wi, week := range raw.Weeks {
		days := week.dayList()
		cw := types.TrainingWeek{
			Number: week.Number,
			Days:   make([]types.TrainingDay, len(days)),
		}
		for di, day := range days {
			cw.Days[di] = types.TrainingDay{
				Weekday:   day.Weekday,
				IsRestDay: day.IsRestDay,
				Exercises: day.exerciseList(),
				Endurance: day.Endurance,
			}
		}
		plan.Weeks[wi] = cw
	}
	return plan, nil
}

func validateAgainstSchema(schemaPath string, data []byte) error {
	schemaContent, err := os.ReadFile(schemaPath)
	if err != nil {
		return &Error{Message: "failed to read plan schema", Cause: err}
	}
	if err := schemas.ValidateBytes(schemaContent, data); err != nil {
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			return &Error{Message: "plan does not conform to schema", Fields: ve.Errors, Cause: ve}
		}
		return &Error{Message: "plan schema validation failed", Cause: err}
	}
	return nil
}

// dayList picks the week's day list from whichever spelling the
// document used. The canonical spelling wins when several appear.
func (w *rawWeek) dayList() []rawDay {
	switch {
	case w.Days != nil:
		return w.Days
	case w.DailyWorkouts != nil:
		return w.DailyWorkouts
	default:
		return w.DailyTrainings
	}
}

func (d *rawDay) exerciseList() []types.ExerciseDescriptor {
	if d.Exercises != nil {
		return d.Exercises
	}
	return d.StrengthExercises
}
