// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format           string   `yaml:"format"`
		Verbose          bool     `yaml:"verbose"`
		Debug            bool     `yaml:"debug"`
		NoColor          bool     `yaml:"no_color"`
		EntityTypes      []string `yaml:"entity_types"`
		ResolveConflicts bool     `yaml:"resolve_conflicts"`
		CompareForm      string   `yaml:"compare_form"`
		MinConfidence    float64  `yaml:"min_confidence"`
	} `yaml:"defaults"`

	// Preprocessor configuration
	Preprocessor struct {
		Enabled            bool `yaml:"enabled"`
		CollapseWhitespace bool `yaml:"collapse_whitespace"`
		Trim               bool `yaml:"trim"`
	} `yaml:"preprocessor"`

	// Recognizer configuration
	Recognizer struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"recognizer"`

	// Profiles for different annotation scenarios
	Profiles map[string]Profile `yaml:"profiles"`
}

// Profile represents an annotation profile with specific settings
type Profile struct {
	Format           string   `yaml:"format"`
	Verbose          bool     `yaml:"verbose"`
	Debug            bool     `yaml:"debug"`
	NoColor          bool     `yaml:"no_color"`
	EntityTypes      []string `yaml:"entity_types"`
	ResolveConflicts bool     `yaml:"resolve_conflicts"`
	CompareForm      string   `yaml:"compare_form"`
	MinConfidence    float64  `yaml:"min_confidence"`
	Description      string   `yaml:"description"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{
		Profiles: make(map[string]Profile),
	}

	// Set default values
	config.Defaults.Format = "text"
	config.Defaults.Verbose = false
	config.Defaults.Debug = false
	config.Defaults.NoColor = false
	config.Defaults.ResolveConflicts = true
	config.Defaults.CompareForm = "raw"
	config.Defaults.MinConfidence = 0

	// Preprocessing and recognition are on unless a config turns them off
	config.Preprocessor.Enabled = true
	config.Preprocessor.CollapseWhitespace = true
	config.Preprocessor.Trim = true
	config.Recognizer.Enabled = true

	// Add a default pipeline-friendly profile
	config.Profiles["pipeline"] = Profile{
		Format:           "json",
		Verbose:          false,
		Debug:            false,
		NoColor:          true,
		ResolveConflicts: true,
		CompareForm:      "raw",
		Description:      "Machine-readable output for downstream pipelines",
	}

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Store default values before unmarshaling
	defaultResolveConflicts := config.Defaults.ResolveConflicts
	defaultPreprocessorEnabled := config.Preprocessor.Enabled
	defaultRecognizerEnabled := config.Recognizer.Enabled

	// Parse YAML
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Restore defaults if not explicitly set in config file
	// This handles the case where YAML unmarshaling sets bool fields to false
	// when they're not present in the config file
	if !containsField(data, "defaults", "resolve_conflicts") {
		config.Defaults.ResolveConflicts = defaultResolveConflicts
	}
	if !containsField(data, "preprocessor", "enabled") {
		config.Preprocessor.Enabled = defaultPreprocessorEnabled
	}
	if !containsField(data, "recognizer", "enabled") {
		config.Recognizer.Enabled = defaultRecognizerEnabled
	}

	// Validate the configuration
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// containsField checks whether a nested key path is present in the raw YAML.
func containsField(data []byte, path ...string) bool {
	var node map[string]interface{}
	if err := yaml.Unmarshal(data, &node); err != nil {
		return false
	}
	current := node
	for i, key := range path {
		value, ok := current[key]
		if !ok {
			return false
		}
		if i == len(path)-1 {
			return true
		}
		current, ok = value.(map[string]interface{})
		if !ok {
			return false
		}
	}
	return false
}

// validFormats are the output formats a config file may name.
var validFormats = map[string]bool{
	"text": true,
	"json": true,
	"yaml": true,
}

// validCompareForms are the text forms conflict resolution may compare in.
var validCompareForms = map[string]bool{
	"raw":        true,
	"processed":  true,
	"normalized": true,
}

// ValidateConfig checks a loaded configuration for values the pipeline
// cannot honor.
func ValidateConfig(config *Config) error {
	if config.Defaults.Format != "" && !validFormats[config.Defaults.Format] {
		return fmt.Errorf("invalid default format: %s", config.Defaults.Format)
	}
	if config.Defaults.CompareForm != "" && !validCompareForms[config.Defaults.CompareForm] {
		return fmt.Errorf("invalid default compare_form: %s", config.Defaults.CompareForm)
	}
	if config.Defaults.MinConfidence < 0 || config.Defaults.MinConfidence > 1 {
		return fmt.Errorf("invalid default min_confidence: %g", config.Defaults.MinConfidence)
	}
	for name, profile := range config.Profiles {
		if profile.Format != "" && !validFormats[profile.Format] {
			return fmt.Errorf("profile %s: invalid format: %s", name, profile.Format)
		}
		if profile.CompareForm != "" && !validCompareForms[profile.CompareForm] {
			return fmt.Errorf("profile %s: invalid compare_form: %s", name, profile.CompareForm)
		}
		if profile.MinConfidence < 0 || profile.MinConfidence > 1 {
			return fmt.Errorf("profile %s: invalid min_confidence: %g", name, profile.MinConfidence)
		}
	}
	return nil
}

// GetProfile retrieves a named profile from the configuration.
func (c *Config) GetProfile(name string) (Profile, bool) {
	profile, exists := c.Profiles[name]
	return profile, exists
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Check current directory first
	if fileExists("config.yaml") {
		return "config.yaml"
	}
	if fileExists("spanmark.yaml") {
		return "spanmark.yaml"
	}
	if fileExists("spanmark.yml") {
		return "spanmark.yml"
	}

	// Check for a project-specific dotfile
	if fileExists(".spanmark.yaml") {
		return ".spanmark.yaml"
	}
	if fileExists(".spanmark.yml") {
		return ".spanmark.yml"
	}

	// Check the user's home directory
	if home, err := os.UserHomeDir(); err == nil {
		homeConfig := filepath.Join(home, ".spanmark", "config.yaml")
		if fileExists(homeConfig) {
			return homeConfig
		}
		homeConfig = filepath.Join(home, ".spanmark.yaml")
		if fileExists(homeConfig) {
			return homeConfig
		}
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
