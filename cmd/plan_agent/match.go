package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tobias/plan-reconciler/internal/cache"
	"github.com/tobias/plan-reconciler/internal/catalog"
	"github.com/tobias/plan-reconciler/internal/db"
	"github.com/tobias/plan-reconciler/internal/matching"
	"github.com/tobias/plan-reconciler/internal/selection"
	"github.com/tobias/plan-reconciler/internal/types"
)

var matchCommand = &cobra.Command{
	Use:   "match",
	Short: "Match one exercise name against the catalog",
	Long: `Resolves a single AI-supplied exercise name against the catalog using the same
matching stack as validate: a filtered candidate pool first, then the relaxation
cascade when the pool comes up empty.`,
	RunE: runMatchCmd,
}

var (
	matchName        string
	matchMuscle      string
	matchEquipment   string
	matchDifficulty  string
	matchCatalog     string
	matchOutput      string
	matchPoolSize    int
	matchCeiling     int
	matchDatabaseURL string
)

func init() {
	matchCommand.Flags().StringVarP(&matchName, "name", "n", "", "Exercise name to match (required)")
	matchCommand.Flags().StringVarP(&matchMuscle, "muscle", "m", "", "Main muscle of the exercise (required)")
	matchCommand.Flags().StringVarP(&matchEquipment, "equipment", "e", "", "Equipment category of the exercise (required)")
	matchCommand.Flags().StringVar(&matchDifficulty, "difficulty", "", "Difficulty filter (beginner|intermediate|advanced)")
	matchCommand.Flags().StringVarP(&matchCatalog, "catalog", "c", "", "Path to exercise catalog JSON file (mutually exclusive with --db-url)")
	matchCommand.Flags().StringVarP(&matchOutput, "out", "o", "", "Path to output MatchResult JSON file (optional)")
	matchCommand.Flags().IntVar(&matchPoolSize, "pool-size", 0, "Candidate pool cap (0 = default)")
	matchCommand.Flags().IntVar(&matchCeiling, "popularity-ceiling", 0, "Exclude exercises ranked below this popularity (0 = unbounded)")
	matchCommand.Flags().StringVar(&matchDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	if err := matchCommand.MarkFlagRequired("name"); err != nil {
		panic(fmt.Sprintf("failed to mark name flag as required: %v", err))
	}
	if err := matchCommand.MarkFlagRequired("muscle"); err != nil {
		panic(fmt.Sprintf("failed to mark muscle flag as required: %v", err))
	}
	if err := matchCommand.MarkFlagRequired("equipment"); err != nil {
		panic(fmt.Sprintf("failed to mark equipment flag as required: %v", err))
	}

	rootCmd.AddCommand(matchCommand)
}

// openCatalogClient returns a catalog client backed by a JSON file or a
// Postgres database, plus a cleanup function.
func openCatalogClient(ctx context.Context, catalogPath, databaseURL string) (catalog.Client, func(), error) {
	if catalogPath != "" && databaseURL != "" {
		return nil, nil, fmt.Errorf("--catalog and --db-url are mutually exclusive; provide only one")
	}
	if catalogPath != "" {
		fileCatalog, err := catalog.LoadFileCatalog(catalogPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load catalog file: %w", err)
		}
		return fileCatalog, func() {}, nil
	}

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return nil, nil, fmt.Errorf("either --catalog or --db-url must be provided (via flag or DATABASE_URL env var)")
	}
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return catalog.NewStore(database), database.Close, nil
}

func runMatchCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	request := types.MatchRequest{
		Name:       matchName,
		Muscle:     matchMuscle,
		Equipment:  matchEquipment,
		Difficulty: matchDifficulty,
		PoolSize:   matchPoolSize,
	}
	if err := request.Validate(); err != nil {
		return fmt.Errorf("invalid match request: %w", err)
	}

	client, cleanup, err := openCatalogClient(ctx, matchCatalog, matchDatabaseURL)
	if err != nil {
		return err
	}
	defer cleanup()

	scores := cache.NewScoreCache()
	pools := cache.NewPoolCache()
	selector := selection.NewSelector(client, pools, matchCeiling)
	matcher := matching.NewMatcher(scores)

	// Filtered pool first; empty pools go through the relaxation cascade
	pool := selector.SelectCandidates(ctx, []string{request.Muscle}, request.Difficulty, []string{request.Equipment}, request.PoolSize)
	var result types.MatchResult
	if len(pool) > 0 {
		result = matcher.MatchWithStatus(request.Name, pool)
	} else {
		result = matching.NewCascade(client, matcher, matchCeiling).Resolve(ctx, request.Name, request.Muscle, request.Equipment)
	}

	// Output results
	if result.Exercise != nil {
		_, _ = fmt.Fprintf(os.Stdout, "%s: %q -> %q (id %s, score %.2f)\n",
			result.Status, matchName, result.Exercise.Name, result.Exercise.ID, result.Score)
	} else {
		_, _ = fmt.Fprintf(os.Stdout, "No match found for %q (%s / %s)\n", matchName, matchMuscle, matchEquipment)
	}

	if matchOutput != "" {
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal match result to JSON: %w", err)
		}
		outputDir := filepath.Dir(matchOutput)
		if outputDir != "" && outputDir != "." {
			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		if err := os.WriteFile(matchOutput, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write match result to output file: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", matchOutput)
	}

	// Exit non-zero when nothing resolved so scripts can branch on it
	if result.Exercise == nil {
		return fmt.Errorf("no match found for %q", matchName)
	}
	return nil
}
