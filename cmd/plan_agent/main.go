// Package main provides the entry point for the plan reconciliation CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "plan_agent",
	Short: "Training plan reconciliation CLI",
	Long: "plan_agent validates AI-generated training plans against an exercise catalog, " +
		"repairing stale or misspelled exercise references and normalizing set/rep prescriptions.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
