// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chatline.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// DEFAULT TESTS
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "llama3.2:1b", cfg.DefaultModel)
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.URL)
	assert.Equal(t, 120, cfg.Ollama.TimeoutSecs)
	assert.True(t, cfg.History.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestOllamaConfig_Timeout(t *testing.T) {
	cfg := OllamaConfig{TimeoutSecs: 30}
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
default_model = "mistral:7b"

[ollama]
url = "http://10.0.0.5:11434"
timeout_secs = 60
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "mistral:7b", cfg.DefaultModel)
	assert.Equal(t, "http://10.0.0.5:11434", cfg.Ollama.URL)
	assert.Equal(t, 60, cfg.Ollama.TimeoutSecs)
}

func TestLoadFromPath_PartialFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`default_model = "phi3"`), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "phi3", cfg.DefaultModel)
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.URL)
	assert.Equal(t, 120, cfg.Ollama.TimeoutSecs)
}

func TestLoadFromPath_MalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("default_model = [broken"), 0600))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestLoadFromPath_FixesInsecurePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`default_model = "m"`), 0644))

	_, err := LoadFromPath(path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

// =============================================================================
// SAVE TESTS
// =============================================================================

func TestSaveTOML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.DefaultModel = "gemma2:2b"
	cfg.Ollama.TimeoutSecs = 45
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "gemma2:2b", loaded.DefaultModel)
	assert.Equal(t, 45, loaded.Ollama.TimeoutSecs)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"https url", func(c *Config) { c.Ollama.URL = "https://ollama.example.com" }, false},
		{"bad scheme", func(c *Config) { c.Ollama.URL = "ftp://example.com" }, true},
		{"negative timeout", func(c *Config) { c.Ollama.TimeoutSecs = -1 }, true},
		{"negative history cap", func(c *Config) { c.History.MaxEntries = -5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDE TESTS
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("CHATLINE_MODEL", "env-model")
	t.Setenv("CHATLINE_OLLAMA_URL", "http://envhost:9999")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "env-model", cfg.DefaultModel)
	assert.Equal(t, "http://envhost:9999", cfg.Ollama.URL)
}

func TestApplyEnvOverrides_OllamaHost(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "somehost:11434")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "http://somehost:11434", cfg.Ollama.URL)
}

func TestApplyEnvOverrides_ChatlineURLWinsOverOllamaHost(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "loser:1111")
	t.Setenv("CHATLINE_OLLAMA_URL", "http://winner:2222")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "http://winner:2222", cfg.Ollama.URL)
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"localhost:11434", "http://localhost:11434"},
		{"http://localhost:11434", "http://localhost:11434"},
		{"http://localhost:11434/", "http://localhost:11434"},
		{"https://remote.example.com", "https://remote.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeHost(tt.input))
		})
	}
}
