// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"logiquant/core/quote"
	"logiquant/internal/errors"
	"logiquant/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version"`

	// Rates selects the rate table
	Rates RatesConfig `json:"rates" yaml:"rates"`

	// Limits are the accepted input bounds
	Limits quote.Limits `json:"limits" yaml:"limits"`

	// Domestic holds the domestic-leg trigger thresholds
	Domestic quote.Thresholds `json:"domestic" yaml:"domestic"`

	// Output contains output configuration
	Output OutputConfig `json:"output" yaml:"output"`

	// Server contains HTTP server configuration
	Server ServerConfig `json:"server" yaml:"server"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`
}

// RatesConfig contains rate table settings
type RatesConfig struct {
	// File is an HCL rate table; empty uses the compiled-in table
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json, text)
	DefaultFormat string `json:"default_format" yaml:"default_format"`

	// ShowDetails prints the calculation trace
	ShowDetails bool `json:"show_details" yaml:"show_details"`

	// NoColor disables terminal styling
	NoColor bool `json:"no_color" yaml:"no_color"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" yaml:"addr"`

	// CacheMaxAgeSeconds is the shared-cache lifetime of quote responses
	CacheMaxAgeSeconds int `json:"cache_max_age_seconds" yaml:"cache_max_age_seconds"`

	// StaleWhileRevalidateSeconds lets shared caches serve stale quotes
	StaleWhileRevalidateSeconds int `json:"stale_while_revalidate_seconds" yaml:"stale_while_revalidate_seconds"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version:  "1.0",
		Limits:   quote.DefaultLimits(),
		Domestic: quote.DefaultThresholds(),
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowDetails:   false,
			NoColor:       false,
		},
		Server: ServerConfig{
			Addr:                        ":8080",
			CacheMaxAgeSeconds:          86400,  // 1 day
			StaleWhileRevalidateSeconds: 604800, // 7 days
		},
		Logging: logging.DefaultConfig(),
	}
}

// DefaultPath returns ~/.logiquant/config.json
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "logiquant.json"
	}
	return filepath.Join(homeDir, ".logiquant", "config.json")
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Wrap(errors.TypeConfig, "failed to read config", err).WithContext("path", path)
	}

	config := Default()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, errors.Wrap(errors.TypeParsing, "failed to parse config", err).WithContext("path", path)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := c.Marshal(path)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Marshal encodes the configuration in the format implied by path
func (c *Config) Marshal(path string) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(c)
	}
	return json.MarshalIndent(c, "", "  ")
}

// Validate rejects settings the calculator cannot work with
func (c *Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"limits.max_dimension_cm", c.Limits.MaxDimensionCm},
		{"limits.max_volume_cm3", c.Limits.MaxVolumeCm3},
		{"limits.max_weight_kg", c.Limits.MaxWeightKg},
		{"domestic.weight_kg", c.Domestic.WeightKg},
		{"domestic.sum_of_sides_cm", c.Domestic.SumOfSidesCm},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return errors.Newf(errors.TypeConfig, "%s must be positive", p.name)
		}
	}

	if c.Limits.MaxDimensionCm < quote.MinDimensionCm {
		return errors.Newf(errors.TypeConfig, "limits.max_dimension_cm must be at least %g", quote.MinDimensionCm)
	}
	if c.Limits.MaxWeightKg < quote.MinWeightKg {
		return errors.Newf(errors.TypeConfig, "limits.max_weight_kg must be at least %g", quote.MinWeightKg)
	}

	switch c.Output.DefaultFormat {
	case "cli", "json", "text":
	default:
		return errors.Newf(errors.TypeConfig, "unknown output format: %s", c.Output.DefaultFormat)
	}

	if c.Server.CacheMaxAgeSeconds < 0 || c.Server.StaleWhileRevalidateSeconds < 0 {
		return errors.New(errors.TypeConfig, "server cache lifetimes must not be negative")
	}
	return nil
}

// CalculatorConfig maps the configuration to calculator settings
func (c *Config) CalculatorConfig() quote.CalculatorConfig {
	return quote.CalculatorConfig{
		Limits:     c.Limits,
		Thresholds: c.Domestic,
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
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
