package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tobias/plan-reconciler/internal/config"
	"github.com/tobias/plan-reconciler/internal/pipeline"
)

var validateCommand = &cobra.Command{
	Use:   "validate",
	Short: "Validate and repair a training plan against the exercise catalog",
	Long: `Loads an AI-generated training plan, checks every exercise reference against the
exercise catalog, repairs stale identifiers and unmatched names, normalizes
set/rep prescriptions, and writes the reconciled plan.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runValidateCmd,
}

var (
	validateConfigPath  string
	validatePlan        string
	validateCatalog     string
	validateOutput      string
	validateDifficulty  string
	validateCeiling     int
	validatePoolSize    int
	validateVerbose     bool
	validateDatabaseURL string
)

func init() {
	// Config file flag (processed first)
	validateCommand.Flags().StringVar(&validateConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	validateCommand.Flags().StringVarP(&validatePlan, "plan", "p", "", "Path to training plan JSON file")
	validateCommand.Flags().StringVarP(&validateCatalog, "catalog", "c", "", "Path to exercise catalog JSON file (mutually exclusive with --db-url)")
	validateCommand.Flags().StringVarP(&validateOutput, "out", "o", "", "Path to write the reconciled plan to")
	validateCommand.Flags().StringVar(&validateDifficulty, "difficulty", "", "Difficulty override when the plan omits one (beginner|intermediate|advanced)")
	validateCommand.Flags().IntVar(&validateCeiling, "popularity-ceiling", 0, "Exclude exercises ranked below this popularity (0 = unbounded)")
	validateCommand.Flags().IntVar(&validatePoolSize, "pool-size", 0, "Candidate pool cap per exercise lookup (0 = default)")
	validateCommand.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Print detailed debug information")

	// Database URL for a Postgres-backed catalog
	validateCommand.Flags().StringVar(&validateDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	// Note: --plan is not marked required; we validate after merging config

	rootCmd.AddCommand(validateCommand)
}

func runValidateCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if validateConfigPath != "" {
		loadedCfg, err := config.LoadConfig(validateConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Validate loaded config
		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if validateVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", validateConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("plan") {
		cfg.Plan = validatePlan
	}
	if cmd.Flags().Changed("catalog") {
		cfg.Catalog = validateCatalog
	}
	if cmd.Flags().Changed("out") {
		cfg.Output = validateOutput
	}
	if cmd.Flags().Changed("difficulty") {
		cfg.Difficulty = validateDifficulty
	}
	if cmd.Flags().Changed("popularity-ceiling") {
		cfg.PopularityCeiling = validateCeiling
	}
	if cmd.Flags().Changed("pool-size") {
		cfg.PoolSize = validatePoolSize
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = validateVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = validateDatabaseURL
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		Output: "reconciled_plan.json",
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate required fields
	if cfg.Plan == "" {
		return fmt.Errorf("--plan is required (via flag or config)")
	}
	if cfg.Catalog != "" && cfg.DatabaseURL != "" {
		return fmt.Errorf("--catalog and --db-url are mutually exclusive; provide only one")
	}

	// Step 5: Database URL handling (env fallback when no file catalog is set)
	if cfg.Catalog == "" && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.Catalog == "" && cfg.DatabaseURL == "" {
		return fmt.Errorf("either --catalog or --db-url must be provided (via flag, config, or DATABASE_URL env var)")
	}

	opts := pipeline.RunOptions{
		PlanPath:          cfg.Plan,
		CatalogPath:       cfg.Catalog,
		DatabaseURL:       cfg.DatabaseURL,
		OutputPath:        cfg.Output,
		Difficulty:        cfg.Difficulty,
		PopularityCeiling: cfg.PopularityCeiling,
		PoolSize:          cfg.PoolSize,
		Verbose:           cfg.Verbose,
	}

	_, err := pipeline.RunValidate(ctx, opts)
	return err
}
