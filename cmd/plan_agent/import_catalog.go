package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tobias/plan-reconciler/internal/config"
	"github.com/tobias/plan-reconciler/internal/db"
	"github.com/tobias/plan-reconciler/internal/importer"
	"github.com/tobias/plan-reconciler/internal/observability"
)

var importCatalogCommand = &cobra.Command{
	Use:   "import-catalog",
	Short: "Import an exercise directory into the catalog database",
	Long: `Ingests exercise directory data into the Postgres catalog, either from a JSON
snapshot file or by crawling an HTML directory page with bounded concurrent
pagination fetches. Individual page failures are reported and skipped.`,
	RunE: runImportCatalogCmd,
}

var (
	importConfigPath  string
	importFile        string
	importURL         string
	importWorkers     int
	importDryRun      bool
	importVerbose     bool
	importDatabaseURL string
)

func init() {
	importCatalogCommand.Flags().StringVar(&importConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	importCatalogCommand.Flags().StringVarP(&importFile, "file", "f", "", "Path to exercise catalog JSON file (mutually exclusive with --url)")
	importCatalogCommand.Flags().StringVarP(&importURL, "url", "u", "", "Exercise directory page URL (mutually exclusive with --file)")
	importCatalogCommand.Flags().IntVar(&importWorkers, "workers", importer.DefaultWorkers, "Concurrent page fetches")
	importCatalogCommand.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse without writing to the database")
	importCatalogCommand.Flags().BoolVarP(&importVerbose, "verbose", "v", false, "Print the full import report")
	importCatalogCommand.Flags().StringVar(&importDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(importCatalogCommand)
}

func runImportCatalogCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Config supplies the directory URL, worker count, and database URL;
	// explicitly set flags win
	var cfg config.Config
	if importConfigPath != "" {
		loadedCfg, err := config.LoadConfig(importConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}
	if cmd.Flags().Changed("url") {
		cfg.SourceURL = importURL
	}
	if cmd.Flags().Changed("workers") {
		cfg.Concurrency = importWorkers
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = importDatabaseURL
	}
	cfg = cfg.MergeWithDefaults(config.Config{})

	if importFile == "" && cfg.SourceURL == "" {
		return fmt.Errorf("either --file or --url must be provided")
	}
	if importFile != "" && cfg.SourceURL != "" {
		return fmt.Errorf("--file and --url are mutually exclusive; provide only one")
	}

	// Dry runs parse and report without a database
	var store importer.Store
	if !importDryRun {
		databaseURL := cfg.DatabaseURL
		if databaseURL == "" {
			databaseURL = os.Getenv("DATABASE_URL")
		}
		if databaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required (or pass --dry-run)")
		}
		database, err := db.Connect(ctx, databaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		store = database
	}

	imp := importer.New(store, cfg.Concurrency)

	var report *importer.Report
	var err error
	if importFile != "" {
		report, err = imp.ImportJSON(ctx, importFile)
	} else {
		report, err = imp.ImportHTML(ctx, cfg.SourceURL)
	}
	if err != nil {
		return fmt.Errorf("catalog import failed: %w", err)
	}

	if importVerbose {
		observability.NewPrinter(os.Stdout).PrintImportReport(report)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Parsed %d entries, upserted %d (%d pages fetched, %d failed)\n",
		report.EntriesParsed, report.Upserted, report.PagesFetched, report.PagesFailed)
	for _, warning := range report.Warnings {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	return nil
}
