package review

import (
	"context"
	"fmt"

	"github.com/tobias/plan-reconciler/internal/db"
)

// PostgresLogger writes review records to the review_queue table.
type PostgresLogger struct {
	db *db.DB
}

// NewPostgresLogger creates a logger over an open database handle.
func NewPostgresLogger(database *db.DB) *PostgresLogger {
	return &PostgresLogger{db: database}
}

// LogBulk upserts the deduplicated batch row by row. A failing row is
// skipped so the rest of the batch still lands; the first failure is
// returned after the batch completes, alongside the counts that did
// land.
func (l *PostgresLogger) LogBulk(ctx context.Context, records []Record) (BulkResult, error) {
	var result BulkResult
	var firstErr error
	for _, entry := range aggregateBatch(records) {
		inserted, err := l.db.UpsertReviewRow(ctx, rowFromEntry(entry))
		if err != nil {
			if firstErr == nil {
				firstErr = &Error{Message: fmt.Sprintf("upsert failed for %q", entry.NameNormalized), Cause: err}
			}
			continue
		}
		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
	}
	return result, firstErr
}

func rowFromEntry(entry batchEntry) db.ReviewRow {
	row := db.ReviewRow{
		AIName:          entry.AIName,
		NameNormalized:  entry.NameNormalized,
		Muscle:          entry.Muscle,
		Equipment:       entry.Equipment,
		SimilarityScore: entry.SimilarityScore,
		Status:          string(entry.Status),
		OccurrenceCount: entry.Occurrences,
	}
	if entry.MatchedExerciseID != "" {
		row.MatchedExerciseID = &entry.MatchedExerciseID
	}
	if entry.MatchedName != "" {
		row.MatchedName = &entry.MatchedName
	}
	return row
}
