// Package review records exercise names that matched poorly so humans
// can curate the catalog. Logging is fire and forget: callers treat a
// failed write as a lost log line, never as a validation failure.
package review

import (
	"context"

	"github.com/tobias/plan-reconciler/internal/matching"
	"github.com/tobias/plan-reconciler/internal/types"
)

// Record captures one questionable match for the curation queue.
type Record struct {
	AIName            string            `json:"ai_name"`
	Muscle            string            `json:"muscle"`
	Equipment         string            `json:"equipment"`
	SimilarityScore   float64           `json:"similarity_score"`
	MatchedExerciseID string            `json:"matched_exercise_id,omitempty"`
	MatchedName       string            `json:"matched_name,omitempty"`
	Status            types.MatchStatus `json:"status"`
}

// BulkResult reports how a batch landed in the queue.
type BulkResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
}

// Logger persists review records.
type Logger interface {
	// LogBulk writes a batch of records, deduplicating within the batch
	// and against existing queue entries by (normalized name, muscle,
	// equipment) while summing occurrence counts.
	LogBulk(ctx context.Context, records []Record) (BulkResult, error)
}

// batchEntry is one deduplicated record with its in-batch occurrence
// count.
type batchEntry struct {
	Record
	NameNormalized string
	Occurrences    int
}

// aggregateBatch collapses duplicate (name, muscle, equipment) records,
// preserving first-appearance order. The latest duplicate's score and
// match fields win, mirroring how the queue upsert overwrites them.
func aggregateBatch(records []Record) []batchEntry {
	index := make(map[string]int)
	var out []batchEntry
	for _, r := range records {
		norm := matching.NormalizeName(r.AIName)
		if norm == "" {
			continue
		}
		key := norm + "\x1f" + r.Muscle + "\x1f" + r.Equipment
		if i, ok := index[key]; ok {
			out[i].Record = r
			out[i].Occurrences++
			continue
		}
		index[key] = len(out)
		out = append(out, batchEntry{Record: r, NameNormalized: norm, Occurrences: 1})
	}
	return out
}

// NopLogger discards every record. It backs runs without a database and
// keeps tests quiet.
type NopLogger struct{}

// LogBulk reports the batch as fully absorbed without writing anything.
func (NopLogger) LogBulk(_ context.Context, _ []Record) (BulkResult, error) {
	return BulkResult{}, nil
}
