// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/tobias/plan-reconciler/internal/cache"
	"github.com/tobias/plan-reconciler/internal/importer"
	"github.com/tobias/plan-reconciler/internal/review"
	"github.com/tobias/plan-reconciler/internal/types"
	"github.com/tobias/plan-reconciler/internal/validation"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintPlanSummary outputs the shape of a loaded training plan.
func (p *Printer) PrintPlanSummary(plan *types.TrainingPlan) {
	if plan == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:        %s\n", plan.Name))
	sb.WriteString(fmt.Sprintf("Goal:        %s\n", plan.Goal))
	sb.WriteString(fmt.Sprintf("Difficulty:  %s\n", plan.Difficulty))
	sb.WriteString("\n")

	count := min(len(plan.Weeks), maxItemsToShow)
	for i := 0; i < count; i++ {
		week := plan.Weeks[i]
		exercises := 0
		restDays := 0
		for _, day := range week.Days {
			exercises += len(day.Exercises)
			if day.IsRestDay {
				restDays++
			}
		}
		sb.WriteString(fmt.Sprintf("Week %d: %d days, %d exercises, %d rest days\n",
			week.Number, len(week.Days), exercises, restDays))
	}
	if len(plan.Weeks) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more weeks\n", len(plan.Weeks)-maxItemsToShow))
	}

	p.printBox("TRAINING PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReport outputs the reconciliation counters and messages.
func (p *Printer) PrintReport(report *validation.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Matched:     %d\n", report.Matched))
	sb.WriteString(fmt.Sprintf("Replaced:    %d\n", report.Replaced))
	sb.WriteString(fmt.Sprintf("Removed:     %d\n", report.Removed))
	sb.WriteString(fmt.Sprintf("Invalid IDs: %d\n", report.InvalidIDs))

	if len(report.Messages) > 0 {
		sb.WriteString("\n")
		count := min(len(report.Messages), maxItemsToShow)
		for i := 0; i < count; i++ {
			msg := report.Messages[i]
			if len(msg) > 50 {
				msg = msg[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("• %s\n", msg))
		}
		if len(report.Messages) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more messages\n", len(report.Messages)-maxItemsToShow))
		}
	}

	p.printBox("RECONCILIATION REPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReviewRecords outputs the entries queued for human review.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintReviewRecords(records []review.Record) {
	if len(records) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NOTHING QUEUED FOR REVIEW")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Queued %d entries:\n\n", len(records)))

	count := min(len(records), maxItemsToShow)
	for i := 0; i < count; i++ {
		rec := records[i]
		sb.WriteString(fmt.Sprintf("#%d  %s (%s / %s)\n", i+1, rec.AIName, rec.Muscle, rec.Equipment))
		sb.WriteString(fmt.Sprintf("    Status: %s  Score: %.2f\n", rec.Status, rec.SimilarityScore))
		if rec.MatchedName != "" {
			name := rec.MatchedName
			if len(name) > 40 {
				name = name[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Candidate: %s\n", name))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(records) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more entries", len(records)-maxItemsToShow))
	}

	p.printBox("REVIEW QUEUE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCacheStats outputs the validator cache counters.
func (p *Printer) PrintCacheStats(scores, pools cache.Stats) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Scores:  %d hits, %d misses, %d entries\n",
		scores.Hits, scores.Misses, scores.Entries))
	sb.WriteString(fmt.Sprintf("Pools:   %d hits, %d misses, %d entries",
		pools.Hits, pools.Misses, pools.Entries))

	p.printBox("CACHE COUNTERS", sb.String())
}

// PrintImportReport outputs a catalog import summary.
func (p *Printer) PrintImportReport(report *importer.Report) {
	if report == nil {
		return
	}

	var sb strings.Builder
	source := report.Source
	if len(source) > 43 {
		source = source[:40] + "..."
	}
	sb.WriteString(fmt.Sprintf("Source:   %s\n", source))
	sb.WriteString(fmt.Sprintf("Pages:    %d fetched, %d failed\n", report.PagesFetched, report.PagesFailed))
	sb.WriteString(fmt.Sprintf("Entries:  %d parsed, %d upserted\n", report.EntriesParsed, report.Upserted))

	if len(report.Warnings) > 0 {
		sb.WriteString("\n")
		count := min(len(report.Warnings), maxItemsToShow)
		for i := 0; i < count; i++ {
			warning := report.Warnings[i]
			if len(warning) > 45 {
				warning = warning[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("⚠ %s\n", warning))
		}
		if len(report.Warnings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more warnings\n", len(report.Warnings)-maxItemsToShow))
		}
	}

	p.printBox("CATALOG IMPORT", strings.TrimSuffix(sb.String(), "\n"))
}
