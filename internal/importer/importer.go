package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tobias/plan-reconciler/internal/fetch"
	"github.com/tobias/plan-reconciler/internal/types"
)

const (
	// MaxPagesLimit is the hard maximum number of directory pages per run
	MaxPagesLimit = 25
	// DefaultWorkers bounds concurrent page fetches
	DefaultWorkers = 4
)

// Store is the destination for imported catalog entries. *db.DB
// satisfies it.
type Store interface {
	CreateImportRun(ctx context.Context, source string) (uuid.UUID, error)
	CompleteImportRun(ctx context.Context, runID uuid.UUID, status string, pagesFetched, entriesUpserted int) error
	UpsertExercises(ctx context.Context, entries []types.CatalogExercise) (int, error)
}

// Report summarizes one import run.
type Report struct {
	Source        string
	PagesFetched  int
	PagesFailed   int
	EntriesParsed int
	Upserted      int
	Warnings      []string
}

// Importer ingests exercise directories into a catalog store.
type Importer struct {
	store   Store
	options *fetch.Options
	workers int
}

// New creates an importer writing to store. A nil store turns imports
// into dry runs: sources are fetched and parsed but nothing persists.
func New(store Store, workers int) *Importer {
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Importer{
		store:   store,
		options: fetch.DefaultOptions(),
		workers: workers,
	}
}

// ImportJSON ingests a catalog snapshot file.
func (imp *Importer) ImportJSON(ctx context.Context, path string) (*Report, error) {
	entries, err := LoadEntries(path)
	if err != nil {
		return nil, err
	}

	report := &Report{Source: path, EntriesParsed: len(entries)}
	if err := imp.persist(ctx, report, entries, 0); err != nil {
		return nil, err
	}
	return report, nil
}

// ImportHTML crawls an exercise directory starting at seedURL. Further
// directory pages discovered through pagination links are fetched with
// a bounded worker group; pages that fail to fetch or parse are
// reported in the warnings and skipped.
func (imp *Importer) ImportHTML(ctx context.Context, seedURL string) (*Report, error) {
	report := &Report{Source: seedURL}

	// Step 1: the seed page must fetch and parse; without it there is
	// nothing to import
	seed, err := fetch.URL(ctx, seedURL, imp.options)
	if err != nil {
		return nil, &PageError{URL: seedURL, Message: "failed to fetch directory page", Cause: err}
	}
	entries, err := ParseDirectory(seed.HTML)
	if err != nil {
		return nil, &PageError{URL: seedURL, Message: "failed to parse directory page", Cause: err}
	}
	report.PagesFetched = 1

	// Step 2: discover further directory pages
	pageURLs, err := ExtractPageLinks(seed.HTML, seedURL)
	if err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("pagination discovery failed: %v", err))
	}
	if len(pageURLs) > MaxPagesLimit-1 {
		pageURLs = pageURLs[:MaxPagesLimit-1]
	}

	// Step 3: fetch the remaining pages concurrently. Workers record
	// per-page failures instead of returning them so one bad page does
	// not cancel the rest.
	pages := make([][]types.CatalogExercise, len(pageURLs))
	failures := make([]error, len(pageURLs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(imp.workers)
	for i, pageURL := range pageURLs {
		i, pageURL := i, pageURL
		g.Go(func() error {
			result, err := fetch.URL(gCtx, pageURL, imp.options)
			if err != nil {
				failures[i] = &PageError{URL: pageURL, Message: "failed to fetch directory page", Cause: err}
				return nil
			}
			parsed, err := ParseDirectory(result.HTML)
			if err != nil {
				failures[i] = &PageError{URL: pageURL, Message: "failed to parse directory page", Cause: err}
				return nil
			}
			pages[i] = parsed
			return nil
		})
	}
	_ = g.Wait()

	// Step 4: merge page results in link order, skipping failed pages
	for i := range pageURLs {
		if failures[i] != nil {
			report.PagesFailed++
			report.Warnings = append(report.Warnings, fmt.Sprintf("skipped page: %v", failures[i]))
			continue
		}
		report.PagesFetched++
		entries = append(entries, pages[i]...)
	}

	entries = consolidate(entries, report)
	report.EntriesParsed = len(entries)

	if err := imp.persist(ctx, report, entries, report.PagesFetched); err != nil {
		return nil, err
	}
	return report, nil
}

// consolidate drops entries without an identifier, deduplicates by id
// keeping the first occurrence, and falls back to document position for
// entries without an explicit popularity rank.
func consolidate(entries []types.CatalogExercise, report *Report) []types.CatalogExercise {
	seen := make(map[string]bool, len(entries))
	merged := make([]types.CatalogExercise, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			report.Warnings = append(report.Warnings, fmt.Sprintf("entry %q skipped: no identifier", e.Name))
			continue
		}
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		merged = append(merged, e)
	}

	for i := range merged {
		if merged[i].Popularity == 0 {
			merged[i].Popularity = i + 1
		}
	}
	return merged
}

// persist writes entries through the store, tracking the run. A nil
// store makes the import a dry run.
func (imp *Importer) persist(ctx context.Context, report *Report, entries []types.CatalogExercise, pagesFetched int) error {
	if imp.store == nil {
		return nil
	}

	runID, err := imp.store.CreateImportRun(ctx, report.Source)
	if err != nil {
		return &ImportError{Message: "failed to create import run", Cause: err}
	}

	upserted, err := imp.store.UpsertExercises(ctx, entries)
	report.Upserted = upserted
	if err != nil {
		_ = imp.store.CompleteImportRun(ctx, runID, "failed", pagesFetched, upserted)
		return &ImportError{Message: "failed to upsert catalog entries", Cause: err}
	}

	if err := imp.store.CompleteImportRun(ctx, runID, "completed", pagesFetched, upserted); err != nil {
		return &ImportError{Message: "failed to complete import run", Cause: err}
	}
	return nil
}
