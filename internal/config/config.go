// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Plan    string `json:"plan,omitempty"`    // Path to the training plan JSON file
	Catalog string `json:"catalog,omitempty"` // Path to an exercise catalog JSON file
	Output  string `json:"output,omitempty"`  // Path to write the reconciled plan to

	// Catalog import
	SourceURL   string `json:"source_url,omitempty" validate:"omitempty,url"` // Exercise directory base URL
	Concurrency int    `json:"concurrency,omitempty" validate:"min=0"`        // Parallel page fetches during import

	// Matching
	Difficulty        string `json:"difficulty,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"` // Difficulty override when the plan omits one
	PoolSize          int    `json:"pool_size,omitempty" validate:"min=0"`                                           // Candidate pool cap per exercise lookup
	PopularityCeiling int    `json:"popularity_ceiling,omitempty" validate:"min=0"`                                  // Exclude exercises ranked below this popularity (0 = unbounded)

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	if c.Catalog != "" && c.DatabaseURL != "" {
		return fmt.Errorf("config error: 'catalog' and 'database_url' are mutually exclusive")
	}

	// Validate tagged constraints (URL shape, numeric ranges, enums)
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// Validate file paths exist (if specified)
	if c.Plan != "" {
		if _, err := os.Stat(c.Plan); os.IsNotExist(err) {
			return fmt.Errorf("config error: plan file not found: %s", c.Plan)
		}
	}

	if c.Catalog != "" {
		if _, err := os.Stat(c.Catalog); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.Catalog)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Plan == "" {
		result.Plan = defaults.Plan
	}
	if result.Catalog == "" {
		result.Catalog = defaults.Catalog
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.SourceURL == "" {
		result.SourceURL = defaults.SourceURL
	}
	if result.Difficulty == "" {
		result.Difficulty = defaults.Difficulty
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.PoolSize == 0 {
		result.PoolSize = defaults.PoolSize
	}
	if result.PopularityCeiling == 0 {
		result.PopularityCeiling = defaults.PopularityCeiling
	}

	if result.Concurrency == 0 {
		if defaults.Concurrency > 0 {
			result.Concurrency = defaults.Concurrency
		} else {
			result.Concurrency = 4 // Default to four parallel fetches
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
