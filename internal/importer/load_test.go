package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validCatalogDoc = `[
	{"id": "sq_001", "name": "Back Squat", "equipment": "Barbell", "main_muscles": ["Quadriceps", "Glutes"], "tier": "foundational", "difficulty": "intermediate", "popularity": 1},
	{"id": "hc_002", "name": "Hammer Curl", "alternative_names": ["DB Hammer Curl"], "equipment": "Dumbbell", "main_muscles": ["Biceps"], "tier": "standard", "difficulty": "beginner", "popularity": 17}
]`

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadEntries_ValidFile(t *testing.T) {
	entries, err := LoadEntries(writeCatalogFile(t, validCatalogDoc))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "sq_001", entries[0].ID)
	assert.Equal(t, "Back Squat", entries[0].Name)
	assert.Equal(t, []string{"Quadriceps", "Glutes"}, entries[0].MainMuscles)
	assert.Equal(t, []string{"DB Hammer Curl"}, entries[1].AlternativeNames)
	assert.Equal(t, 17, entries[1].Popularity)
}

func TestLoadEntries_SchemaViolation(t *testing.T) {
	doc := `[{"name": "No ID", "equipment": "Barbell", "main_muscles": ["Chest"]}]`

	_, err := LoadEntries(writeCatalogFile(t, doc))
	require.Error(t, err)

	var impErr *ImportError
	require.True(t, errors.As(err, &impErr))
	assert.Contains(t, impErr.Message, "does not conform")
}

func TestLoadEntries_MalformedJSON(t *testing.T) {
	_, err := LoadEntries(writeCatalogFile(t, `[{ not json`))
	require.Error(t, err)

	var impErr *ImportError
	require.True(t, errors.As(err, &impErr))
	assert.Contains(t, impErr.Message, "not valid JSON")
}

func TestLoadEntries_FileNotFound(t *testing.T) {
	_, err := LoadEntries(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	var impErr *ImportError
	require.True(t, errors.As(err, &impErr))
	assert.Contains(t, impErr.Message, "failed to read")
}
