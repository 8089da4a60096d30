// Package pipeline provides the high-level orchestration for plan reconciliation runs.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tobias/plan-reconciler/internal/catalog"
	"github.com/tobias/plan-reconciler/internal/db"
	"github.com/tobias/plan-reconciler/internal/ingestion"
	"github.com/tobias/plan-reconciler/internal/observability"
	"github.com/tobias/plan-reconciler/internal/review"
	"github.com/tobias/plan-reconciler/internal/types"
	"github.com/tobias/plan-reconciler/internal/validation"
)

// Step and category labels attached to progress events.
const (
	StepLoadPlan = "load_plan"
	StepCatalog  = "open_catalog"
	StepValidate = "validate_plan"
	StepWrite    = "write_output"

	CategoryIngestion  = "ingestion"
	CategoryCatalog    = "catalog"
	CategoryValidation = "validation"
	CategoryOutput     = "output"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the reconciliation pipeline
type RunOptions struct {
	PlanPath          string
	CatalogPath       string
	DatabaseURL       string
	OutputPath        string
	Difficulty        string
	PopularityCeiling int
	PoolSize          int
	Verbose           bool
	OnProgress        ProgressCallback
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

// countExercises returns the total number of strength entries in a plan
func countExercises(plan *types.TrainingPlan) int {
	count := 0
	for _, week := range plan.Weeks {
		for _, day := range week.Days {
			count += len(day.Exercises)
		}
	}
	return count
}

// RunValidate orchestrates one full reconciliation: load the plan, open
// the catalog, repair exercise references, and write the result.
func RunValidate(ctx context.Context, opts RunOptions) (*validation.Report, error) {

	// Initialize observability printer for verbose output
	printer := observability.NewPrinter(os.Stdout)

	// Step 1: Load and parse the training plan
	fmt.Printf("Step 1/4: Loading training plan from %s...\n", opts.PlanPath)
	plan, err := ingestion.LoadPlan(opts.PlanPath)
	if err != nil {
		return nil, fmt.Errorf("plan ingestion failed: %w", err)
	}
	if plan.Difficulty == "" && opts.Difficulty != "" {
		plan.Difficulty = opts.Difficulty
	}
	if opts.Verbose {
		printer.PrintPlanSummary(plan)
	}
	emitProgress(&opts, StepLoadPlan, CategoryIngestion,
		fmt.Sprintf("Loaded plan %q: %d weeks, %d exercises", plan.Name, len(plan.Weeks), countExercises(plan)), nil)

	// Step 2: Open the exercise catalog (database or file)
	var client catalog.Client
	var logger review.Logger = review.NopLogger{}
	if opts.DatabaseURL != "" {
		fmt.Printf("Step 2/4: Connecting to catalog database...\n")
		database, err := db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		client = catalog.NewStore(database)
		logger = review.NewPostgresLogger(database)
		if opts.Verbose {
			fmt.Printf("[VERBOSE] Connected to catalog database\n")
		}
	} else {
		fmt.Printf("Step 2/4: Loading exercise catalog from %s...\n", opts.CatalogPath)
		fileCatalog, err := catalog.LoadFileCatalog(opts.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("catalog load failed: %w", err)
		}
		client = fileCatalog
		if opts.Verbose {
			fmt.Printf("[VERBOSE] Catalog holds %d exercises\n", fileCatalog.Len())
		}
	}
	emitProgress(&opts, StepCatalog, CategoryCatalog, "Opened exercise catalog", nil)

	// Step 3: Validate and repair exercise references
	fmt.Printf("Step 3/4: Validating plan...\n")
	var recorder *reviewRecorder
	if opts.Verbose {
		recorder = &reviewRecorder{inner: logger}
		logger = recorder
	}
	validator := validation.NewValidator(client, logger, opts.PopularityCeiling, opts.PoolSize)
	report := validator.ValidatePlan(ctx, plan)
	if opts.Verbose {
		printer.PrintReport(report)
		printer.PrintReviewRecords(recorder.records)
		printer.PrintCacheStats(validator.CacheStats())
	}
	emitProgress(&opts, StepValidate, CategoryValidation,
		fmt.Sprintf("Validated plan: %d matched, %d replaced, %d removed", report.Matched, report.Replaced, report.Removed), report)

	// Step 4: Write the reconciled plan
	if opts.OutputPath != "" {
		fmt.Printf("Step 4/4: Writing reconciled plan to %s...\n", opts.OutputPath)
		if err := WritePlan(opts.OutputPath, report.Plan); err != nil {
			return nil, err
		}
		emitProgress(&opts, StepWrite, CategoryOutput,
			fmt.Sprintf("Wrote reconciled plan to %s", opts.OutputPath), nil)
	} else {
		fmt.Printf("Step 4/4: No output path configured, skipping write.\n")
	}

	fmt.Printf("Done! %d message(s), %d invalid id(s).\n", len(report.Messages), report.InvalidIDs)
	return report, nil
}

// WritePlan marshals a plan with indentation and writes it to path,
// creating the parent directory when needed.
func WritePlan(path string, plan *types.TrainingPlan) error {
	jsonBytes, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan to JSON: %w", err)
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write plan to output file: %w", err)
	}
	return nil
}

// reviewRecorder tees review records past the real sink so verbose mode
// can show what was queued.
type reviewRecorder struct {
	inner   review.Logger
	records []review.Record
}

func (r *reviewRecorder) LogBulk(ctx context.Context, records []review.Record) (review.BulkResult, error) {
	r.records = append(r.records, records...)
	return r.inner.LogBulk(ctx, records)
}
