// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"construction-cost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing contains pricing source configuration
	Pricing PricingConfig `json:"pricing"`

	// Display contains currency display configuration
	Display DisplayConfig `json:"display"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig contains pricing-source settings
type PricingConfig struct {
	// SourceURL is the URL of the pricing data file
	SourceURL string `json:"source_url"`

	// SourcePath optionally points at a local pricing file instead
	SourcePath string `json:"source_path,omitempty"`

	// TimeoutSeconds bounds the pricing fetch
	TimeoutSeconds int `json:"timeout_seconds"`
}

// DisplayConfig controls currency rendering.
// Decimals is the number of fraction digits shown on rates and totals.
type DisplayConfig struct {
	// Locale is a BCP 47 language tag
	Locale string `json:"locale"`

	// Currency is an ISO 4217 currency code
	Currency string `json:"currency"`

	// Decimals is the number of fraction digits
	Decimals int `json:"decimals"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Address to listen on
	Address string `json:"address"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			SourceURL:      "https://static.buildrange.nz/pricing.json",
			TimeoutSeconds: 30,
		},
		Display: DisplayConfig{
			Locale:   "en-NZ",
			Currency: "NZD",
			Decimals: 0,
		},
		Server: ServerConfig{
			Address: ":8080",
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
