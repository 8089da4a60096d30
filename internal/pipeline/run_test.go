package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobias/plan-reconciler/internal/types"
)

const testPlanDoc = `{
  "name": "Strength Base",
  "goal": "strength",
  "difficulty": "intermediate",
  "weeks": [
    {
      "week_number": 1,
      "days": [
        {
          "weekday": "Monday",
          "is_rest_day": false,
          "exercises": [
            {
              "exercise_id": "sq_001",
              "name": "Back Squat",
              "main_muscle": "Quadriceps",
              "equipment": "Barbell",
              "sets": 3,
              "reps": [8],
              "weight": [100]
            }
          ]
        }
      ]
    }
  ]
}`

const testCatalogDoc = `[
  {
    "id": "sq_001",
    "name": "Back Squat",
    "equipment": "Barbell",
    "main_muscles": ["Quadriceps", "Glutes"],
    "tier": "foundational",
    "difficulty": "intermediate",
    "popularity": 1
  },
  {
    "id": "fs_002",
    "name": "Front Squat",
    "equipment": "Barbell",
    "main_muscles": ["Quadriceps"],
    "tier": "standard",
    "difficulty": "intermediate",
    "popularity": 8
  }
]`

func writeTestFiles(t *testing.T) (planPath, catalogPath string) {
	t.Helper()
	dir := t.TempDir()
	planPath = filepath.Join(dir, "plan.json")
	require.NoError(t, os.WriteFile(planPath, []byte(testPlanDoc), 0644))
	catalogPath = filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalogDoc), 0644))
	return planPath, catalogPath
}

func TestRunValidate_FileCatalog(t *testing.T) {
	planPath, catalogPath := writeTestFiles(t)
	outputPath := filepath.Join(t.TempDir(), "out", "reconciled.json")

	var events []ProgressEvent
	opts := RunOptions{
		PlanPath:    planPath,
		CatalogPath: catalogPath,
		OutputPath:  outputPath,
		OnProgress:  func(event ProgressEvent) { events = append(events, event) },
	}

	report, err := RunValidate(context.Background(), opts)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, 0, report.InvalidIDs)
	assert.Contains(t, report.Messages, "All exercise IDs are valid")

	// Output file carries the normalized plan
	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	var out types.TrainingPlan
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out.Weeks, 1)
	ex := out.Weeks[0].Days[0].Exercises[0]
	assert.Equal(t, "sq_001", ex.ExerciseID)
	assert.Equal(t, []int{8, 8, 8}, ex.Reps)
	assert.Equal(t, []float64{100, 100, 100}, ex.Weight)

	// Progress events fire in pipeline order
	require.Len(t, events, 4)
	assert.Equal(t, StepLoadPlan, events[0].Step)
	assert.Equal(t, StepCatalog, events[1].Step)
	assert.Equal(t, StepValidate, events[2].Step)
	assert.Equal(t, StepWrite, events[3].Step)
	assert.Contains(t, events[0].Message, "Strength Base")
}

func TestRunValidate_RepairsStaleID(t *testing.T) {
	dir := t.TempDir()
	planPath := filepath.Join(dir, "plan.json")
	stale := `{
  "name": "Stale Plan",
  "weeks": [
    {
      "week_number": 1,
      "days": [
        {
          "weekday": "Monday",
          "exercises": [
            {
              "exercise_id": "999999",
              "name": "Back Squat",
              "main_muscle": "Quadriceps",
              "equipment": "Barbell",
              "sets": 3,
              "reps": [8],
              "weight": [100]
            }
          ]
        }
      ]
    }
  ]
}`
	require.NoError(t, os.WriteFile(planPath, []byte(stale), 0644))
	catalogPath := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalogDoc), 0644))

	report, err := RunValidate(context.Background(), RunOptions{
		PlanPath:    planPath,
		CatalogPath: catalogPath,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.InvalidIDs)
	assert.Equal(t, 1, report.Replaced)
	assert.Equal(t, "sq_001", report.Plan.Weeks[0].Days[0].Exercises[0].ExerciseID)

	found := false
	for _, msg := range report.Messages {
		if msg == `Replaced invalid exercise 999999 with "Back Squat"` {
			found = true
		}
	}
	assert.True(t, found, "expected a replacement message, got %v", report.Messages)
}

func TestRunValidate_DifficultyOverride(t *testing.T) {
	dir := t.TempDir()
	planPath := filepath.Join(dir, "plan.json")
	require.NoError(t, os.WriteFile(planPath, []byte(`{"name": "No Difficulty", "weeks": []}`), 0644))
	catalogPath := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalogDoc), 0644))

	report, err := RunValidate(context.Background(), RunOptions{
		PlanPath:    planPath,
		CatalogPath: catalogPath,
		Difficulty:  "beginner",
	})
	require.NoError(t, err)
	assert.Equal(t, "beginner", report.Plan.Difficulty)
}

func TestRunValidate_PlanFileMissing(t *testing.T) {
	_, catalogPath := writeTestFiles(t)

	_, err := RunValidate(context.Background(), RunOptions{
		PlanPath:    filepath.Join(t.TempDir(), "absent.json"),
		CatalogPath: catalogPath,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan ingestion failed")
}

func TestRunValidate_CatalogFileMissing(t *testing.T) {
	planPath, _ := writeTestFiles(t)

	_, err := RunValidate(context.Background(), RunOptions{
		PlanPath:    planPath,
		CatalogPath: filepath.Join(t.TempDir(), "absent.json"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog load failed")
}

func TestWritePlan_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "plan.json")
	plan := &types.TrainingPlan{Name: "Nested"}

	require.NoError(t, WritePlan(path, plan))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out types.TrainingPlan
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "Nested", out.Name)
}
