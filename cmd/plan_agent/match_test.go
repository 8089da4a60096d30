package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobias/plan-reconciler/internal/types"
)

func TestMatchCommand_MissingNameFlag(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "match",
		"--muscle", "Chest",
		"--equipment", "Barbell")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "required flag(s) \"name\" not set")
}

func TestMatchCommand_ExactName(t *testing.T) {
	binaryPath := getBinaryPath(t)
	_, catalogPath := writeCLIFixtures(t)

	cmd := exec.Command(binaryPath, "match",
		"--name", "back squat",
		"--muscle", "Quadriceps",
		"--equipment", "Barbell",
		"--catalog", catalogPath)
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "match failed: %s", string(output))
	assert.Contains(t, string(output), "matched")
	assert.Contains(t, string(output), "\"Back Squat\"")
	assert.Contains(t, string(output), "id sq_001")
	assert.Contains(t, string(output), "score 1.00")
}

func TestMatchCommand_WritesResultFile(t *testing.T) {
	binaryPath := getBinaryPath(t)
	_, catalogPath := writeCLIFixtures(t)
	outputFile := filepath.Join(t.TempDir(), "match.json")

	cmd := exec.Command(binaryPath, "match",
		"--name", "Back Squat",
		"--muscle", "Quadriceps",
		"--equipment", "Barbell",
		"--catalog", catalogPath,
		"--out", outputFile)
	output, err := cmd.CombinedOutput()

	require.NoError(t, err, "match failed: %s", string(output))

	contentBytes, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var result types.MatchResult
	require.NoError(t, json.Unmarshal(contentBytes, &result))
	require.NotNil(t, result.Exercise)
	assert.Equal(t, "sq_001", result.Exercise.ID)
	assert.Equal(t, types.StatusMatched, result.Status)
}

func TestMatchCommand_NoMatch(t *testing.T) {
	binaryPath := getBinaryPath(t)
	_, catalogPath := writeCLIFixtures(t)

	// No catalog entry targets hamstrings and the name is pure noise, so
	// every relaxation stage rejects.
	cmd := exec.Command(binaryPath, "match",
		"--name", "Zzzzz",
		"--muscle", "Hamstrings",
		"--equipment", "Barbell",
		"--catalog", catalogPath)
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "No match found for \"Zzzzz\"")
}

func TestMatchCommand_MissingCatalogSource(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "match",
		"--name", "Back Squat",
		"--muscle", "Quadriceps",
		"--equipment", "Barbell")
	cmd.Env = envWithoutDatabaseURL()
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "either --catalog or --db-url must be provided")
}
