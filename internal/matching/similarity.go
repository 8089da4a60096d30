// Package matching scores AI-supplied exercise names against catalog
// candidates and resolves them through staged fallbacks when strict
// filtering finds nothing.
package matching

import (
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/tobias/plan-reconciler/internal/cache"
)

// scorer computes pairwise string similarities, memoized through the
// injected score cache when one is present.
type scorer struct {
	metric *metrics.SorensenDice // TEMP-DIAGNOSTIC-SHIM
	scores *cache.ScoreCache
}

func newScorer(scores *cache.ScoreCache) *scorer {
	return &scorer{metric: metrics.NewSorensenDice(), scores: scores}
}

// fuzzy returns the character-level similarity of two normalized
// strings in [0, 1]. Identical strings score 1 without touching the
// metric.
func (s *scorer) fuzzy(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	if s.scores != nil {
		if v, ok := s.scores.Get(a, b); ok {
			return v
		}
	}
	v := strutil.Similarity(a, b, s.metric)
	if s.scores != nil {
		s.scores.Put(a, b, v)
	}
	return v
}

// tokenJaccard returns the word-level Jaccard overlap of two normalized
// strings: intersection over union of their whitespace-token sets.
func tokenJaccard(a, b string) float64 {
	as := tokenSet(a)
	bs := tokenSet(b)
	if len(as) == 0 || len(bs) == 0 {
		return 0
	}
	intersection := 0
	for w := range as {
		if bs[w] {
			intersection++
		}
	}
	union := len(as) + len(bs) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}
