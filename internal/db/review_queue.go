package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReviewRow is one curation queue entry: an AI-supplied name that
// matched poorly or not at all, with how often it has been seen.
type ReviewRow struct {
	ID                uuid.UUID `json:"id"`
	AIName            string    `json:"ai_name"`
	NameNormalized    string    `json:"name_normalized"`
	Muscle            string    `json:"muscle"`
	Equipment         string    `json:"equipment"`
	SimilarityScore   float64   `json:"similarity_score"`
	MatchedExerciseID *string   `json:"matched_exercise_id,omitempty"`
	MatchedName       *string   `json:"matched_name,omitempty"`
	Status            string    `json:"status"`
	OccurrenceCount   int       `json:"occurrence_count"`
	CreatedAt         time.Time `json:"created_at"`
	LastSeenAt        time.Time `json:"last_seen_at"`
}

// UpsertReviewRow inserts a queue entry or, when the same
// (name, muscle, equipment) combination already exists, adds the
// occurrence count to the existing row. Returns whether a new row was
// created.
func (db *DB) UpsertReviewRow(ctx context.Context, row ReviewRow) (bool, error) {
	var inserted bool
	err := db.pool.QueryRow(ctx,
		`INSERT INTO review_queue
		   (name_normalized, ai_name, muscle, equipment, similarity_score, matched_exercise_id, matched_name, status, occurrence_count, last_seen_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		 ON CONFLICT (name_normalized, muscle, equipment) DO UPDATE SET
		   similarity_score = $5, matched_exercise_id = $6, matched_name = $7, status = $8,
		   occurrence_count = review_queue.occurrence_count + $9, last_seen_at = NOW()
		 RETURNING (xmax = 0)`,
		row.NameNormalized, row.AIName, row.Muscle, row.Equipment, row.SimilarityScore,
		row.MatchedExerciseID, row.MatchedName, row.Status, row.OccurrenceCount,
	).Scan(&inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert review row: %w", err)
	}
	return inserted, nil
}

// ListReviewQueue returns queue entries, most frequently seen first,
// optionally filtered by match status.
func (db *DB) ListReviewQueue(ctx context.Context, status string, limit int) ([]ReviewRow, error) {
	const columns = `id, ai_name, name_normalized, muscle, equipment, similarity_score,
		matched_exercise_id, matched_name, status, occurrence_count, created_at, last_seen_at`

	sql := `SELECT ` + columns + ` FROM review_queue`
	var args []any
	if status != "" {
		sql += ` WHERE status = $1`
		args = append(args, status)
	}
	sql += ` ORDER BY occurrence_count DESC, last_seen_at DESC`
	if limit > 0 {
		sql += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, limit)
	}

	rows, err := db.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list review queue: %w", err)
	}
	defer rows.Close()

	var out []ReviewRow
	for rows.Next() {
		var r ReviewRow
		if err := rows.Scan(&r.ID, &r.AIName, &r.NameNormalized, &r.Muscle, &r.Equipment, &r.SimilarityScore,
			&r.MatchedExerciseID, &r.MatchedName, &r.Status, &r.OccurrenceCount, &r.CreatedAt, &r.LastSeenAt); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read review queue: %w", err)
	}
	return out, nil
}
