package selection

import (
	"strings"

	"github.com/tobias/plan-reconciler/internal/types"
)

// Equipment categories never served in generated plans. Assisted and
// banded movements need setup a generator cannot verify.
var alwaysExcludedEquipment = []string{"Assisted", "Band"}

// applyEquipmentPolicy removes categories unsuitable for the chosen
// difficulty. Bodyweight-only movements are excluded above beginner;
// the caller's own equipment preference has already been applied by the
// catalog query.
func applyEquipmentPolicy(pool []types.CatalogExercise, difficulty string) []types.CatalogExercise {
	excluded := make(map[string]bool, len(alwaysExcludedEquipment)+1)
	for _, eq := range alwaysExcludedEquipment {
		excluded[strings.ToLower(eq)] = true
	}
	if difficulty != "" && difficulty != types.DifficultyBeginner {
		excluded["bodyweight"] = true
	}

	out := pool[:0:0]
	for _, ex := range pool {
		if excluded[strings.ToLower(ex.Equipment)] {
			continue
		}
		out = append(out, ex)
	}
	return out
}
