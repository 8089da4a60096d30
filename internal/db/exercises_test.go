package db

import (
	"strings"
	"testing"
)

func TestBuildExerciseQuery(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		sql, args := buildExerciseQuery(ExerciseQuery{})
		if len(args) != 0 {
			t.Errorf("args = %v, want none", args)
		}
		if strings.Contains(sql, "WHERE") {
			t.Errorf("query should have no WHERE clause: %s", sql)
		}
		if !strings.Contains(sql, "ORDER BY popularity ASC") {
			t.Errorf("query should order by popularity: %s", sql)
		}
	})

	t.Run("all filters", func(t *testing.T) {
		sql, args := buildExerciseQuery(ExerciseQuery{
			Muscles:           []string{"Quadriceps"},
			Equipment:         []string{"Barbell", "Dumbbell"},
			Difficulties:      []string{"beginner", "intermediate"},
			Tier:              "foundational",
			PopularityCeiling: 200,
			Limit:             15,
		})
		if len(args) != 6 {
			t.Fatalf("args = %d, want 6", len(args))
		}
		for _, want := range []string{
			"main_muscles && $1",
			"equipment = ANY($2)",
			"difficulty = ANY($3)",
			"tier = $4",
			"popularity <= $5",
			"LIMIT $6",
		} {
			if !strings.Contains(sql, want) {
				t.Errorf("query missing %q: %s", want, sql)
			}
		}
	})

	t.Run("ceiling only", func(t *testing.T) {
		sql, args := buildExerciseQuery(ExerciseQuery{PopularityCeiling: 100})
		if len(args) != 1 {
			t.Fatalf("args = %d, want 1", len(args))
		}
		if !strings.Contains(sql, "popularity <= $1") {
			t.Errorf("query missing ceiling condition: %s", sql)
		}
	})
}
