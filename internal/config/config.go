// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/formfill-agent/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// ProfilePath is the JSON file holding the profile and settings.
	ProfilePath string `json:"profile,omitempty"`
	// APIKey is the Gemini API key. Generative calls are disabled without it.
	APIKey string `json:"api_key,omitempty"`
	// Model overrides the default generative model.
	Model string `json:"model,omitempty"`
	// UsageMode overrides the stored generative-call policy for this run.
	UsageMode string `json:"usage_mode,omitempty"`
	// DatabaseURL switches the settings store to PostgreSQL.
	DatabaseURL string `json:"database_url,omitempty"`
	// UseBrowser renders pages in a headless browser before detection.
	UseBrowser bool `json:"use_browser,omitempty"`
	// Verbose prints boxed summaries and debug logging.
	Verbose bool `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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
func (c *Config) Validate() error {
	if c.UsageMode != "" {
		if _, err := types.ParseUsageMode(c.UsageMode); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if c.ProfilePath != "" && c.DatabaseURL != "" {
		return fmt.Errorf("config error: 'profile' and 'database_url' are mutually exclusive")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// CLI flags always win for booleans, so those are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ProfilePath == "" {
		result.ProfilePath = defaults.ProfilePath
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.UsageMode == "" {
		result.UsageMode = defaults.UsageMode
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	return result
}
