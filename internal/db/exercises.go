package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tobias/plan-reconciler/internal/types"
)

// ExerciseQuery narrows a catalog query. Difficulty expansion (which
// levels a user may be served) happens in the caller; this layer only
// translates filters to SQL.
type ExerciseQuery struct {
	Muscles           []string
	Equipment         []string
	Difficulties      []string
	Tier              string
	PopularityCeiling int
	Limit             int
}

const exerciseColumns = `id, name, alternative_names, equipment, main_muscles, tier, difficulty, popularity`

// GetExerciseByID retrieves one catalog entry, or nil when the id is
// unknown.
func (db *DB) GetExerciseByID(ctx context.Context, id string) (*types.CatalogExercise, error) {
	var ex types.CatalogExercise
	err := db.pool.QueryRow(ctx,
		`SELECT `+exerciseColumns+` FROM exercises WHERE id = $1`,
		id,
	).Scan(&ex.ID, &ex.Name, &ex.AlternativeNames, &ex.Equipment, &ex.MainMuscles, &ex.Tier, &ex.Difficulty, &ex.Popularity)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get exercise: %w", err)
	}
	return &ex, nil
}

// QueryExercises returns matching catalog entries ordered most popular
// first.
func (db *DB) QueryExercises(ctx context.Context, q ExerciseQuery) ([]types.CatalogExercise, error) {
	sql, args := buildExerciseQuery(q)

	rows, err := db.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exercises: %w", err)
	}
	defer rows.Close()

	var out []types.CatalogExercise
	for rows.Next() {
		var ex types.CatalogExercise
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.AlternativeNames, &ex.Equipment, &ex.MainMuscles, &ex.Tier, &ex.Difficulty, &ex.Popularity); err != nil {
			return nil, fmt.Errorf("failed to scan exercise: %w", err)
		}
		out = append(out, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read exercises: %w", err)
	}
	return out, nil
}

// buildExerciseQuery assembles the SQL and bind arguments for a query.
func buildExerciseQuery(q ExerciseQuery) (string, []any) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(q.Muscles) > 0 {
		conds = append(conds, "main_muscles && "+arg(q.Muscles))
	}
	if len(q.Equipment) > 0 {
		conds = append(conds, "equipment = ANY("+arg(q.Equipment)+")")
	}
	if len(q.Difficulties) > 0 {
		conds = append(conds, "difficulty = ANY("+arg(q.Difficulties)+")")
	}
	if q.Tier != "" {
		conds = append(conds, "tier = "+arg(q.Tier))
	}
	if q.PopularityCeiling > 0 {
		conds = append(conds, "popularity <= "+arg(q.PopularityCeiling))
	}

	sql := `SELECT ` + exerciseColumns + ` FROM exercises`
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY popularity ASC, name ASC"
	if q.Limit > 0 {
		sql += " LIMIT " + arg(q.Limit)
	}
	return sql, args
}

// ValidateExerciseIDs partitions ids by catalog membership in a single
// round trip, preserving input order.
func (db *DB) ValidateExerciseIDs(ctx context.Context, ids []string) (valid []string, invalid []string, err error) {
	if len(ids) == 0 {
		return nil, nil, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id FROM exercises WHERE id = ANY($1)`,
		ids,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to validate exercise ids: %w", err)
	}
	defer rows.Close()

	known := make(map[string]bool, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, nil, fmt.Errorf("failed to scan exercise id: %w", err)
		}
		known[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read exercise ids: %w", err)
	}

	for _, id := range ids {
		if known[id] {
			valid = append(valid, id)
		} else {
			invalid = append(invalid, id)
		}
	}
	return valid, invalid, nil
}

// UpsertExercise inserts or refreshes one catalog entry.
func (db *DB) UpsertExercise(ctx context.Context, ex types.CatalogExercise) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO exercises (id, name, alternative_names, equipment, main_muscles, tier, difficulty, popularity)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		   name = $2, alternative_names = $3, equipment = $4, main_muscles = $5,
		   tier = $6, difficulty = $7, popularity = $8, updated_at = NOW()`,
		ex.ID, ex.Name, ex.AlternativeNames, ex.Equipment, ex.MainMuscles, ex.Tier, ex.Difficulty, ex.Popularity,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert exercise %s: %w", ex.ID, err)
	}
	return nil
}

// UpsertExercises upserts a batch of entries, returning how many were
// written before any failure.
func (db *DB) UpsertExercises(ctx context.Context, entries []types.CatalogExercise) (int, error) {
	for i, ex := range entries {
		if err := db.UpsertExercise(ctx, ex); err != nil {
			return i, err
		}
	}
	return len(entries), nil
}
