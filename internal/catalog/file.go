package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tobias/plan-reconciler/internal/types"
)

// FileCatalog serves catalog queries from an in-memory snapshot loaded
// from a JSON file. It backs file-mode runs and tests; production runs
// use the database-backed Store.
type FileCatalog struct {
	byID    map[string]types.CatalogExercise
	ordered []types.CatalogExercise
}

// LoadFileCatalog reads a JSON array of catalog entries from disk.
func LoadFileCatalog(path string) (*FileCatalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	var entries []types.CatalogExercise
	if err := json.Unmarshal(content, &entries); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}

	return NewFileCatalog(entries), nil
}

// NewFileCatalog builds a catalog over the given entries. Entries are
// copied and kept sorted most popular first.
func NewFileCatalog(entries []types.CatalogExercise) *FileCatalog {
	ordered := make([]types.CatalogExercise, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Popularity != ordered[j].Popularity {
			return ordered[i].Popularity < ordered[j].Popularity
		}
		return ordered[i].Name < ordered[j].Name
	})

	byID := make(map[string]types.CatalogExercise, len(ordered))
	for _, e := range ordered {
		byID[e.ID] = e
	}
	return &FileCatalog{byID: byID, ordered: ordered}
}

// Len returns the number of entries in the snapshot.
func (c *FileCatalog) Len() int {
	return len(c.ordered)
}

// GetByID returns the entry with the given id, or (nil, nil) when the
// id is unknown.
func (c *FileCatalog) GetByID(_ context.Context, id string) (*types.CatalogExercise, error) {
	if e, ok := c.byID[id]; ok {
		out := e
		return &out, nil
	}
	return nil, nil
}

// QueryByFilters filters the snapshot, returning matches most popular
// first.
func (c *FileCatalog) QueryByFilters(_ context.Context, f Filters) ([]types.CatalogExercise, error) {
	var out []types.CatalogExercise
	for _, e := range c.ordered {
		if !matchesFilters(e, f) {
			continue
		}
		out = append(out, e)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

// ValidateIDs partitions ids by catalog membership, preserving order.
func (c *FileCatalog) ValidateIDs(_ context.Context, ids []string) ([]string, []string, error) {
	var valid, invalid []string
	for _, id := range ids {
		if _, ok := c.byID[id]; ok {
			valid = append(valid, id)
		} else {
			invalid = append(invalid, id)
		}
	}
	return valid, invalid, nil
}

func matchesFilters(e types.CatalogExercise, f Filters) bool {
	if len(f.Muscles) > 0 {
		found := false
		for _, m := range f.Muscles {
			if e.TargetsMuscle(m) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(f.Equipment) > 0 {
		found := false
		for _, eq := range f.Equipment {
			if strings.EqualFold(e.Equipment, eq) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Difficulty != "" && !DifficultyAdmits(f.Difficulty, e.Difficulty) {
		return false
	}
	if f.Tier != "" && !strings.EqualFold(e.Tier, f.Tier) {
		return false
	}
	if f.PopularityCeiling > 0 && e.Popularity > f.PopularityCeiling {
		return false
	}
	return true
}
