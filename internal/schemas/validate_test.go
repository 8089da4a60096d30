package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer"}
	}
}`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON_ValidDocument(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFixture(t, dir, "person.schema.json", personSchema)
	jsonPath := writeFixture(t, dir, "person.json", `{"name": "Ada", "age": 36}`)

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_MissingRequiredField(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFixture(t, dir, "person.schema.json", personSchema)
	jsonPath := writeFixture(t, dir, "person.json", `{"age": 36}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_WrongType(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFixture(t, dir, "person.schema.json", personSchema)
	jsonPath := writeFixture(t, dir, "person.json", `{"name": "Ada", "age": "thirty-six"}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_NonExistentSchema(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFixture(t, dir, "person.json", `{"name": "Ada"}`)

	err := ValidateJSON(filepath.Join(dir, "missing.schema.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_NonExistentDocument(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFixture(t, dir, "person.schema.json", personSchema)

	err := ValidateJSON(schemaPath, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSON_MalformedDocument(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFixture(t, dir, "person.schema.json", personSchema)
	jsonPath := writeFixture(t, dir, "person.json", `{ not json }`)

	assert.Error(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateBytes_Valid(t *testing.T) {
	assert.NoError(t, ValidateBytes([]byte(personSchema), []byte(`{"name": "Ada"}`)))
}

func TestValidateBytes_Invalid(t *testing.T) {
	err := ValidateBytes([]byte(personSchema), []byte(`{"age": 36}`))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateBytes_BrokenSchema(t *testing.T) {
	err := ValidateBytes([]byte(`{"type": 42}`), []byte(`{}`))
	require.Error(t, err)

	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok, "a broken schema must be reported as a load error, not a document error")
}

func TestValidateBytes_NestedFieldPath(t *testing.T) {
	nested := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["person"],
		"properties": {
			"person": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name": {"type": "string"}
				}
			}
		}
	}`

	err := ValidateBytes([]byte(nested), []byte(`{"person": {}}`))
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Greater(t, len(validationErr.Errors), 0)

	found := false
	for _, fieldErr := range validationErr.Errors {
		if fieldErr.Field != "" {
			found = true
			break
		}
	}
	assert.True(t, found, "should include field path in error")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "weeks", Message: "is required"},
			{Field: "difficulty", Message: "must be a string"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "weeks")
	assert.Contains(t, errorMsg, "difficulty")
}

func TestResolveSchemaPath_FindsRepoSchemas(t *testing.T) {
	// Running from internal/schemas, the shipped schemas sit two
	// levels up.
	resolved := ResolveSchemaPath(TrainingPlanSchema)
	require.NotEmpty(t, resolved)
	assert.True(t, filepath.IsAbs(resolved))

	resolved = ResolveSchemaPath(ExerciseCatalogSchema)
	assert.NotEmpty(t, resolved)
}

func TestResolveSchemaPath_MissingFile(t *testing.T) {
	assert.Empty(t, ResolveSchemaPath("schemas/nonexistent.schema.json"))
}
