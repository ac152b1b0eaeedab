// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Defaults.Format)
	assert.Equal(t, "raw", cfg.Defaults.CompareForm)
	assert.True(t, cfg.Defaults.ResolveConflicts)
	assert.True(t, cfg.Preprocessor.Enabled)
	assert.True(t, cfg.Recognizer.Enabled)

	// The built-in pipeline profile ships with every config.
	profile, exists := cfg.GetProfile("pipeline")
	require.True(t, exists)
	assert.Equal(t, "json", profile.Format)
	assert.True(t, profile.NoColor)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
defaults:
  format: yaml
  verbose: true
  compare_form: normalized
  entity_types:
    - sys:email
    - sys:phone
profiles:
  strict:
    format: json
    min_confidence: 0.9
    description: High confidence entities only
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Defaults.Format)
	assert.True(t, cfg.Defaults.Verbose)
	assert.Equal(t, "normalized", cfg.Defaults.CompareForm)
	assert.Equal(t, []string{"sys:email", "sys:phone"}, cfg.Defaults.EntityTypes)

	profile, exists := cfg.GetProfile("strict")
	require.True(t, exists)
	assert.Equal(t, "json", profile.Format)
	assert.Equal(t, 0.9, profile.MinConfidence)
	assert.Equal(t, "High confidence entities only", profile.Description)
}

func TestLoadConfigRestoresOmittedBooleans(t *testing.T) {
	// A config that never mentions resolve_conflicts or the component
	// toggles keeps their enabled defaults.
	path := writeConfig(t, `
defaults:
  format: json
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Defaults.ResolveConflicts)
	assert.True(t, cfg.Preprocessor.Enabled)
	assert.True(t, cfg.Recognizer.Enabled)
}

func TestLoadConfigExplicitDisable(t *testing.T) {
	path := writeConfig(t, `
defaults:
  resolve_conflicts: false
preprocessor:
  enabled: false
recognizer:
  enabled: false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.False(t, cfg.Defaults.ResolveConflicts)
	assert.False(t, cfg.Preprocessor.Enabled)
	assert.False(t, cfg.Recognizer.Enabled)
}

func TestLoadConfigInvalidFormat(t *testing.T) {
	path := writeConfig(t, `
defaults:
  format: xml
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid default format")
}

func TestLoadConfigInvalidCompareForm(t *testing.T) {
	path := writeConfig(t, `
defaults:
  compare_form: canonical
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid default compare_form")
}

func TestLoadConfigInvalidProfile(t *testing.T) {
	path := writeConfig(t, `
profiles:
  broken:
    min_confidence: 1.5
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile broken")
}

func TestValidateConfigAcceptsDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.NoError(t, ValidateConfig(cfg))
}
