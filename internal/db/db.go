// Package db provides PostgreSQL access for the exercise catalog and
// the match review queue.
package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateImportRun creates a catalog import run record and returns its ID
func (db *DB) CreateImportRun(ctx context.Context, source string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO import_runs (source, status)
		 VALUES ($1, 'running')
		 RETURNING id`,
		source,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create import run: %w", err)
	}
	return id, nil
}

// CompleteImportRun marks an import run as finished with its totals
func (db *DB) CompleteImportRun(ctx context.Context, runID uuid.UUID, status string, pagesFetched, entriesUpserted int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE import_runs
		 SET status = $1, pages_fetched = $2, entries_upserted = $3, completed_at = NOW()
		 WHERE id = $4`,
		status, pagesFetched, entriesUpserted, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete import run: %w", err)
	}
	return nil
}
