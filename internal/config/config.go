// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or the environment.
type Config struct {
	// Paths
	Thresholds   string `json:"thresholds,omitempty"`    // Path to threshold table JSON (empty uses the embedded default)
	BenchmarkDir string `json:"benchmark_dir,omitempty"` // Directory of benchmark documents for calibration

	// Matching
	APIKey         string `json:"api_key,omitempty"`         // Gemini API key for semantic matching
	EmbeddingModel string `json:"embedding_model,omitempty"` // Embedding model name
	ExactOnly      bool   `json:"exact_only,omitempty"`      // Skip the semantic backend entirely

	// Persistence
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL URL for calibration run history

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
	JSONLog bool `json:"json_log,omitempty"`
}

// envAPIKey and envDatabaseURL are the environment fallbacks applied by
// ApplyEnv, matching the .env keys the CLI loads.
const (
	envAPIKey      = "GEMINI_API_KEY"
	envDatabaseURL = "DATABASE_URL"
)

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

// ApplyEnv fills unset secrets from the environment.
func (c *Config) ApplyEnv() {
	if c.APIKey == "" {
		c.APIKey = os.Getenv(envAPIKey)
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv(envDatabaseURL)
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Thresholds != "" {
		if _, err := os.Stat(c.Thresholds); os.IsNotExist(err) {
			return fmt.Errorf("config error: threshold table not found: %s", c.Thresholds)
		}
	}
	if c.BenchmarkDir != "" {
		info, err := os.Stat(c.BenchmarkDir)
		if os.IsNotExist(err) {
			return fmt.Errorf("config error: benchmark directory not found: %s", c.BenchmarkDir)
		}
		if err == nil && !info.IsDir() {
			return fmt.Errorf("config error: benchmark path is not a directory: %s", c.BenchmarkDir)
		}
	}
	if c.ExactOnly && c.APIKey != "" {
		return fmt.Errorf("config error: 'exact_only' and 'api_key' are mutually exclusive")
	}
	return nil
}
