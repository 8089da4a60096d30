package catalog

import "strings"

// muscleAreas maps the coarse body areas upstream generators use to the
// specific muscles recorded on catalog entries. Keys are lower-cased;
// values keep a deliberate order so callers distributing slots across
// muscles treat the leading entries as primary.
var muscleAreas = map[string][]string{
	"thighs":    {"Quadriceps", "Hamstrings", "Glutes"},
	"legs":      {"Quadriceps", "Hamstrings", "Glutes", "Calves"},
	"lower leg": {"Calves"},
	"back":      {"Lats", "Upper Back", "Lower Back"},
	"arms":      {"Biceps", "Triceps", "Forearms"},
	"shoulders": {"Front Delts", "Side Delts", "Rear Delts"},
	"core":      {"Abs", "Obliques", "Lower Back"},
	"trunk":     {"Abs", "Obliques", "Lower Back"},
	"glutes":    {"Glutes"},
	"chest":     {"Chest"},
}

// ExpandMuscleArea returns the specific muscles behind a coarse area
// name. Names that are not a known area pass through unchanged, so
// callers can mix areas and specific muscles freely.
func ExpandMuscleArea(area string) []string {
	if muscles, ok := muscleAreas[strings.ToLower(strings.TrimSpace(area))]; ok {
		out := make([]string, len(muscles))
		copy(out, muscles)
		return out
	}
	return []string{strings.TrimSpace(area)}
}

// ExpandMuscleAreas expands every area in order, deduplicating while
// preserving first appearance.
func ExpandMuscleAreas(areas []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(areas))
	for _, area := range areas {
		for _, muscle := range ExpandMuscleArea(area) {
			key := strings.ToLower(muscle)
			if muscle == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, muscle)
		}
	}
	return out
}
