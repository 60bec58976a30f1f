// Package config loads and validates the YAML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	AgeThresholds  AgeThresholds `yaml:"age_thresholds"`
	Apps           AppLimits     `yaml:"apps"`
	MinFileAge     int           `yaml:"min_file_age"` // hours
	DryRun         bool          `yaml:"dry_run"`
	Verbose        bool          `yaml:"verbose"`
	ProtectedPaths []string      `yaml:"protected_paths"`
	History        HistoryConfig `yaml:"history"`
}

// AgeThresholds defines how old files must be before each category
// flags them (in days).
type AgeThresholds struct {
	Logs      int `yaml:"logs"`
	Downloads int `yaml:"downloads"`
	Temp      int `yaml:"temp"`
}

// AppLimits tunes the application scan.
type AppLimits struct {
	UnusedAfterDays int   `yaml:"unused_after_days"`
	LargeAppBytes   int64 `yaml:"large_app_bytes"`
}

// HistoryConfig controls scan-result persistence.
type HistoryConfig struct {
	Keep int `yaml:"keep"` // number of past results retained
}

// Load loads configuration from a file, falling back to defaults when
// the file does not exist.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Save saves configuration to a file.
func Save(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.AgeThresholds.Logs < 0 {
		return fmt.Errorf("logs age threshold must be >= 0")
	}
	if c.AgeThresholds.Downloads < 0 {
		return fmt.Errorf("downloads age threshold must be >= 0")
	}
	if c.AgeThresholds.Temp < 0 {
		return fmt.Errorf("temp age threshold must be >= 0")
	}
	if c.MinFileAge < 0 {
		return fmt.Errorf("min file age must be >= 0")
	}
	if c.Apps.UnusedAfterDays < 0 {
		return fmt.Errorf("unused_after_days must be >= 0")
	}
	if c.Apps.LargeAppBytes < 0 {
		return fmt.Errorf("large_app_bytes must be >= 0")
	}
	if c.History.Keep < 0 {
		return fmt.Errorf("history keep must be >= 0")
	}

	for _, path := range c.ProtectedPaths {
		if !filepath.IsAbs(path) {
			return fmt.Errorf("protected path must be absolute: %s", path)
		}
	}

	return nil
}

// GetConfigPath returns the default config path.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tonic", "config.yaml"), nil
}
