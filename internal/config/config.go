// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Backends
	ToolboxURL string `json:"toolbox_url,omitempty"` // MCP Toolbox base URL for listing searches
	AuthToken  string `json:"auth_token,omitempty"`  // Bearer token for the toolbox server
	ScrapeURL  string `json:"scrape_url,omitempty"`  // Listing index URL for the scraping backend ({query} placeholder)
	WebhookURL string `json:"webhook_url,omitempty"` // Notification webhook endpoint

	// Search defaults
	Criteria string `json:"criteria,omitempty"` // Path to a criteria JSON file
	Query    string `json:"query,omitempty"`    // Free-text search query
	Limit    int    `json:"limit,omitempty"`    // Number of top listings to deliver

	// Behavior
	APIKey         string `json:"api_key,omitempty"`          // Gemini API key (chat and serve)
	DatabaseURL    string `json:"database_url,omitempty"`     // PostgreSQL connection URL
	FallbackToMock bool   `json:"fallback_to_mock,omitempty"` // Fall back to mock data when the backend is down
	UseBrowser     bool   `json:"use_browser,omitempty"`      // Use headless browser for SPA listing sites
	Verbose        bool   `json:"verbose,omitempty"`          // Print detailed debug information
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
	if c.ToolboxURL != "" && c.ScrapeURL != "" {
		return fmt.Errorf("config error: 'toolbox_url' and 'scrape_url' are mutually exclusive")
	}

	// Validate numeric ranges
	if c.Limit < 0 {
		return fmt.Errorf("config error: 'limit' must be non-negative")
	}

	// Validate file paths exist (if specified)
	if c.Criteria != "" {
		if _, err := os.Stat(c.Criteria); os.IsNotExist(err) {
			return fmt.Errorf("config error: criteria file not found: %s", c.Criteria)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.ToolboxURL == "" {
		result.ToolboxURL = defaults.ToolboxURL
	}
	if result.AuthToken == "" {
		result.AuthToken = defaults.AuthToken
	}
	if result.ScrapeURL == "" {
		result.ScrapeURL = defaults.ScrapeURL
	}
	if result.WebhookURL == "" {
		result.WebhookURL = defaults.WebhookURL
	}
	if result.Criteria == "" {
		result.Criteria = defaults.Criteria
	}
	if result.Query == "" {
		result.Query = defaults.Query
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.Limit == 0 {
		result.Limit = defaults.Limit
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
