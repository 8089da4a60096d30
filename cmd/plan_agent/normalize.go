package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tobias/plan-reconciler/internal/ingestion"
	"github.com/tobias/plan-reconciler/internal/pipeline"
	"github.com/tobias/plan-reconciler/internal/prescription"
)

var normalizeCommand = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize set/rep prescriptions in a training plan",
	Long: `Loads a training plan JSON file, normalizes every exercise prescription
(sets defaulted, reps and weights padded or truncated to the set count, pairs
sorted heaviest-last), and writes the normalized plan to a file. No catalog
lookups are performed.`,
	RunE: runNormalizeCmd,
}

var (
	normalizeInput  string
	normalizeOutput string
)

func init() {
	normalizeCommand.Flags().StringVarP(&normalizeInput, "in", "i", "", "Path to input training plan JSON file (required)")
	normalizeCommand.Flags().StringVarP(&normalizeOutput, "out", "o", "", "Path to output normalized plan JSON file (required)")

	if err := normalizeCommand.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}
	if err := normalizeCommand.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(normalizeCommand)
}

func runNormalizeCmd(_ *cobra.Command, _ []string) error {
	// Load training plan
	plan, err := ingestion.LoadPlan(normalizeInput)
	if err != nil {
		return fmt.Errorf("failed to load training plan: %w", err)
	}

	// Normalize every prescription
	count := 0
	for wi := range plan.Weeks {
		for di := range plan.Weeks[wi].Days {
			day := &plan.Weeks[wi].Days[di]
			for ei := range day.Exercises {
				prescription.Normalize(&day.Exercises[ei])
				count++
			}
		}
	}

	// Write to output file
	if err := pipeline.WritePlan(normalizeOutput, plan); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Normalized %d exercise prescription(s)\n", count)
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", normalizeOutput)

	return nil
}
