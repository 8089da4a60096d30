package importer

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/tobias/plan-reconciler/internal/schemas"
	"github.com/tobias/plan-reconciler/internal/types"
)

// LoadEntries reads a catalog snapshot file: a JSON array of catalog
// entries, checked against the exercise catalog schema when the schema
// file can be located.
func LoadEntries(path string) ([]types.CatalogExercise, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ImportError{
			Message: fmt.Sprintf("failed to read catalog file %s", path),
			Cause:   err,
		}
	}

	var probe interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &ImportError{
			Message: "catalog document is not valid JSON",
			Cause:   err,
		}
	}

	if schemaPath := schemas.ResolveSchemaPath(schemas.ExerciseCatalogSchema); schemaPath != "" {
		schemaContent, err := os.ReadFile(schemaPath)
		if err != nil {
			return nil, &ImportError{Message: "failed to read catalog schema", Cause: err}
		}
		if err := schemas.ValidateBytes(schemaContent, data); err != nil {
			return nil, &ImportError{Message: "catalog does not conform to schema", Cause: err}
		}
	} else {
		log.Printf("catalog schema %s not found; skipping document validation", schemas.ExerciseCatalogSchema)
	}

	var entries []types.CatalogExercise
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &ImportError{
			Message: "failed to decode catalog JSON",
			Cause:   err,
		}
	}
	return entries, nil
}
