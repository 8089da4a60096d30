package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobias/plan-reconciler/internal/types"
)

const cliPlanDoc = `{
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

const cliCatalogDoc = `[
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

// writeCLIFixtures writes a plan and catalog into a temp dir and returns their paths.
func writeCLIFixtures(t *testing.T) (planPath, catalogPath string) {
	t.Helper()
	tmpDir := t.TempDir()
	planPath = filepath.Join(tmpDir, "plan.json")
	catalogPath = filepath.Join(tmpDir, "catalog.json")
	require.NoError(t, os.WriteFile(planPath, []byte(cliPlanDoc), 0644))
	require.NoError(t, os.WriteFile(catalogPath, []byte(cliCatalogDoc), 0644))
	return planPath, catalogPath
}

// envWithoutDatabaseURL strips DATABASE_URL so tests control the catalog source.
func envWithoutDatabaseURL() []string {
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, "DATABASE_URL=") {
			env = append(env, e)
		}
	}
	return env
}

func TestValidateCommand_MissingPlanFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "validate")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "--plan is required")
}

func TestValidateCommand_MissingCatalogSource(t *testing.T) {
	binaryPath := getBinaryPath(t)
	planPath, _ := writeCLIFixtures(t)

	cmd := exec.Command(binaryPath, "validate", "--plan", planPath)
	cmd.Env = envWithoutDatabaseURL()
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "either --catalog or --db-url must be provided")
}

func TestValidateCommand_MutuallyExclusiveSources(t *testing.T) {
	binaryPath := getBinaryPath(t)
	planPath, catalogPath := writeCLIFixtures(t)

	cmd := exec.Command(binaryPath, "validate",
		"--plan", planPath,
		"--catalog", catalogPath,
		"--db-url", "postgres://localhost/exercises")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "mutually exclusive")
}

func TestValidateCommand_FileCatalog(t *testing.T) {
	binaryPath := getBinaryPath(t)
	planPath, catalogPath := writeCLIFixtures(t)
	outputFile := filepath.Join(t.TempDir(), "reconciled.json")

	cmd := exec.Command(binaryPath, "validate",
		"--plan", planPath,
		"--catalog", catalogPath,
		"--out", outputFile)
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "validate failed: %s", string(output))
	assert.Contains(t, string(output), "Step 1/4")
	assert.Contains(t, string(output), "Step 4/4")
	assert.Contains(t, string(output), "Done!")

	contentBytes, err := os.ReadFile(outputFile)
	require.NoError(t, err, "reconciled plan should be written")

	var plan types.TrainingPlan
	require.NoError(t, json.Unmarshal(contentBytes, &plan))
	require.Len(t, plan.Weeks, 1)
	assert.Equal(t, "sq_001", plan.Weeks[0].Days[0].Exercises[0].ExerciseID)
}

func TestValidateCommand_ConfigFile(t *testing.T) {
	binaryPath := getBinaryPath(t)
	planPath, catalogPath := writeCLIFixtures(t)
	tmpDir := t.TempDir()
	outputFile := filepath.Join(tmpDir, "reconciled.json")

	cfg := map[string]any{
		"plan":    planPath,
		"catalog": catalogPath,
		"output":  outputFile,
	}
	cfgBytes, err := json.MarshalIndent(cfg, "", "  ")
	require.NoError(t, err)
	cfgPath := filepath.Join(tmpDir, "config.json")
	require.NoError(t, os.WriteFile(cfgPath, cfgBytes, 0644))

	cmd := exec.Command(binaryPath, "validate", "--config", cfgPath)
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "validate failed: %s", string(output))
	assert.Contains(t, string(output), "Done!")

	_, err = os.Stat(outputFile)
	assert.NoError(t, err, "reconciled plan should be written")
}

func TestValidateCommand_InvalidPlanFile(t *testing.T) {
	binaryPath := getBinaryPath(t)
	_, catalogPath := writeCLIFixtures(t)

	cmd := exec.Command(binaryPath, "validate",
		"--plan", "/nonexistent/plan.json",
		"--catalog", catalogPath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "plan ingestion failed")
}
