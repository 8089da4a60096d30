package matching

import (
	"github.com/tobias/plan-reconciler/internal/cache"
	"github.com/tobias/plan-reconciler/internal/types"
)

// Score composition and acceptance thresholds for name matching.
const (
	fuzzyWeight = 0.7
	tokenWeight = 0.3

	exactScore           = 1.0
	aliasScore           = 0.95
	aliasPenalty         = 0.95
	nominalFallbackScore = 0.5

	thresholdMatched       = 0.85
	thresholdLowConfidence = 0.70
)

// StatusForScore maps a similarity score to a match status. Nothing
// below the strict bar is ever reported as matched.
func StatusForScore(score float64) types.MatchStatus {
	switch {
	case score >= thresholdMatched:
		return types.StatusMatched
	case score >= thresholdLowConfidence:
		return types.StatusLowConfidence
	default:
		return types.StatusPendingReview
	}
}

// Matcher scores AI-supplied names against candidate pools.
type Matcher struct {
	scorer *scorer
}

// NewMatcher creates a matcher. The score cache may be nil to disable
// similarity memoization.
func NewMatcher(scores *cache.ScoreCache) *Matcher {
	return &Matcher{scorer: newScorer(scores)}
}

// Match finds the best candidate for an AI-supplied name. Priority
// order, first hit wins:
//
//  1. case-insensitive equality to a candidate name scores 1.0
//  2. case-insensitive equality to an alternative name scores 0.95
//  3. best combined fuzzy and token-overlap score across candidates
//  4. if every score is 0 but the pool is non-empty, the first
//     candidate at a nominal 0.5, since metadata filtering already
//     established relevance
//
// Returns (nil, 0) for an empty name or pool.
func (m *Matcher) Match(aiName string, candidates []types.CatalogExercise) (*types.CatalogExercise, float64) {
	ex, score, _ := m.match(aiName, candidates)
	return ex, score
}

// MatchWithStatus wraps Match in a full result. Nominal fallbacks are
// flagged so callers can distinguish "the name scored against this
// candidate" from "this is merely the most popular relevant candidate".
func (m *Matcher) MatchWithStatus(aiName string, candidates []types.CatalogExercise) types.MatchResult {
	ex, score, nominal := m.match(aiName, candidates)
	if ex == nil {
		return types.MatchResult{Status: types.StatusNoMatch}
	}
	return types.MatchResult{Exercise: ex, Score: score, Status: StatusForScore(score), Nominal: nominal}
}

func (m *Matcher) match(aiName string, candidates []types.CatalogExercise) (*types.CatalogExercise, float64, bool) {
	norm := NormalizeName(aiName)
	if norm == "" || len(candidates) == 0 {
		return nil, 0, false
	}

	for i := range candidates {
		if NormalizeName(candidates[i].Name) == norm {
			return &candidates[i], exactScore, false
		}
	}

	for i := range candidates {
		for _, alt := range candidates[i].AlternativeNames {
			if NormalizeName(alt) == norm {
				return &candidates[i], aliasScore, false
			}
		}
	}

	queries := queryVariants(norm)
	best := -1
	bestScore := 0.0
	for i := range candidates {
		if score := m.combinedScore(queries, &candidates[i]); score > bestScore {
			bestScore = score
			best = i
		}
	}
	if best >= 0 {
		return &candidates[best], bestScore, false
	}

	return &candidates[0], nominalFallbackScore, true
}

// queryVariant is one rendering of the AI name entering the score. The
// abbreviation-expanded rendering carries the alias penalty so it can
// never fabricate a perfect score.
type queryVariant struct {
	text    string
	penalty float64
}

func queryVariants(norm string) []queryVariant {
	variants := []queryVariant{{text: norm, penalty: 1}}
	if expanded := ExpandAbbreviations(norm); expanded != norm {
		variants = append(variants, queryVariant{text: expanded, penalty: aliasPenalty})
	}
	return variants
}

// combinedScore computes the weighted fuzzy plus token-overlap score of
// one candidate: the fuzzy term takes the best of the primary name and
// the penalized alternatives, the token term compares against the
// primary name only.
func (m *Matcher) combinedScore(queries []queryVariant, cand *types.CatalogExercise) float64 {
	candName := NormalizeName(cand.Name)
	best := 0.0
	for _, q := range queries {
		fuzzy := m.scorer.fuzzy(q.text, candName)
		for _, alt := range cand.AlternativeNames {
			if s := m.scorer.fuzzy(q.text, NormalizeName(alt)) * aliasPenalty; s > fuzzy {
				fuzzy = s
			}
		}
		token := tokenJaccard(q.text, candName)
		if score := (fuzzyWeight*fuzzy + tokenWeight*token) * q.penalty; score > best {
			best = score
		}
	}
	return best
}
