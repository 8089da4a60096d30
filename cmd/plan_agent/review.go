package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tobias/plan-reconciler/internal/db"
)

var reviewCommand = &cobra.Command{
	Use:   "review",
	Short: "List the exercise name review queue",
	Long: `Lists catalog curation queue entries: AI-supplied exercise names that matched
poorly or not at all during validation, most frequently seen first.`,
	RunE: runReviewCmd,
}

var (
	reviewStatus      string
	reviewLimit       int
	reviewDatabaseURL string
)

func init() {
	reviewCommand.Flags().StringVarP(&reviewStatus, "status", "s", "", "Filter by match status (low_confidence|pending_review|no_match)")
	reviewCommand.Flags().IntVarP(&reviewLimit, "limit", "l", 20, "Maximum entries to list (0 = all)")
	reviewCommand.Flags().StringVar(&reviewDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(reviewCommand)
}

func runReviewCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	databaseURL := reviewDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	rows, err := database.ListReviewQueue(ctx, reviewStatus, reviewLimit)
	if err != nil {
		return fmt.Errorf("failed to list review queue: %w", err)
	}

	if len(rows) == 0 {
		_, _ = fmt.Fprintf(os.Stdout, "Review queue is empty\n")
		return nil
	}

	for _, row := range rows {
		matched := "-"
		if row.MatchedName != nil {
			matched = *row.MatchedName
		}
		_, _ = fmt.Fprintf(os.Stdout, "%3dx  %-32s  %s / %s  score %.2f  %-14s  %s\n",
			row.OccurrenceCount, row.AIName, row.Muscle, row.Equipment, row.SimilarityScore, row.Status, matched)
	}
	_, _ = fmt.Fprintf(os.Stdout, "\n%d entries\n", len(rows))

	return nil
}
