package matching

import "strings"

// nameAbbreviations maps the shorthand generators habitually emit to
// the catalog's full vocabulary. Expansion participates in scoring like
// an alternative name, never as an exact match.
var nameAbbreviations = map[string]string{
	"db":   "dumbbell",
	"bb":   "barbell",
	"kb":   "kettlebell",
	"bw":   "bodyweight",
	"ohp":  "overhead press",
	"rdl":  "romanian deadlift",
	"sldl": "stiff leg deadlift",
	"alt":  "alternating",
	"sl":   "single leg",
	"sa":   "single arm",
}

// NormalizeName lower-cases a name and collapses runs of whitespace.
// Equality of normalized names is the "case-insensitive exact equality"
// the matcher's top priority rule uses, so nothing beyond casing and
// spacing may be altered here.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// ExpandAbbreviations rewrites a normalized name with hyphens spaced
// out and known shorthand expanded ("db flat bench" becomes "dumbbell
// flat bench"). Returns the input unchanged when nothing applies.
func ExpandAbbreviations(normalized string) string {
	spaced := strings.ReplaceAll(normalized, "-", " ")
	words := strings.Fields(spaced)
	changed := spaced != normalized
	for i, w := range words {
		if full, ok := nameAbbreviations[w]; ok {
			words[i] = full
			changed = true
		}
	}
	if !changed {
		return normalized
	}
	return strings.Join(words, " ")
}
