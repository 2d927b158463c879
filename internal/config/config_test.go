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
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))
	return configFile
}

func TestNewConfiguration_Defaults(t *testing.T) {
	// Act
	cfg := NewConfiguration()

	// Assert
	assert.False(t, cfg.GetFlushTrailing(), "trailing captions should be dropped by default")
	assert.Equal(t, FormatText, cfg.GetOutputFormat())
	assert.False(t, cfg.GetEncode())
	assert.Equal(t, 4, cfg.GetWorkers())
	assert.Equal(t, "info", cfg.GetLogLevel())
	assert.False(t, cfg.GetDebugMode())
	assert.NoError(t, cfg.Validate())
}

func TestNewConfigurationFromFile(t *testing.T) {
	t.Run("should load settings from config file", func(t *testing.T) {
		// Arrange
		configFile := writeConfig(t, `parser:
  flush_trailing: true
output:
  format: "JSON"
app:
  workers: 2
log:
  level: "debug"
  debug: true`)

		// Act
		cfg, err := NewConfigurationFromFile(configFile)

		// Assert
		require.NoError(t, err)
		assert.True(t, cfg.GetFlushTrailing())
		assert.Equal(t, FormatJSON, cfg.GetOutputFormat())
		assert.Equal(t, 2, cfg.GetWorkers())
		assert.Equal(t, "debug", cfg.GetLogLevel())
		assert.True(t, cfg.GetDebugMode())
	})

	t.Run("should fall back to defaults for missing sections", func(t *testing.T) {
		configFile := writeConfig(t, `other:
  setting: "value"`)

		cfg, err := NewConfigurationFromFile(configFile)

		require.NoError(t, err)
		assert.Equal(t, FormatText, cfg.GetOutputFormat())
		assert.Equal(t, 4, cfg.GetWorkers())
	})

	t.Run("should return error for non-existent config file", func(t *testing.T) {
		cfg, err := NewConfigurationFromFile(filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("should return error for invalid config file format", func(t *testing.T) {
		configFile := writeConfig(t, `output:
  format: "json"
invalid_yaml: [unclosed_bracket`)

		cfg, err := NewConfigurationFromFile(configFile)

		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("should reject unsupported output format", func(t *testing.T) {
		configFile := writeConfig(t, `output:
  format: "xml"`)

		cfg, err := NewConfigurationFromFile(configFile)

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "unsupported output format")
	})
}

func TestNewConfigurationFromEnv(t *testing.T) {
	t.Run("should load settings from environment variables", func(t *testing.T) {
		// Arrange
		t.Setenv("SRTRATE_OUTPUT_FORMAT", "yaml")
		t.Setenv("SRTRATE_PARSER_FLUSH_TRAILING", "true")
		t.Setenv("SRTRATE_APP_WORKERS", "8")

		// Act
		cfg, err := NewConfigurationFromEnv()

		// Assert
		require.NoError(t, err)
		assert.Equal(t, FormatYAML, cfg.GetOutputFormat())
		assert.True(t, cfg.GetFlushTrailing())
		assert.Equal(t, 8, cfg.GetWorkers())
	})

	t.Run("should fall back to defaults when variables are not set", func(t *testing.T) {
		cfg, err := NewConfigurationFromEnv()

		require.NoError(t, err)
		assert.Equal(t, FormatText, cfg.GetOutputFormat())
		assert.False(t, cfg.GetFlushTrailing())
	})

	t.Run("should reject a non-positive worker count", func(t *testing.T) {
		t.Setenv("SRTRATE_APP_WORKERS", "0")

		cfg, err := NewConfigurationFromEnv()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "workers must be at least 1")
	})
}

func TestConfiguration_Setters(t *testing.T) {
	// Arrange
	cfg := NewConfiguration()

	// Act
	cfg.SetFlushTrailing(true)
	cfg.SetOutputFormat("yaml")
	cfg.SetEncode(true)
	cfg.SetWorkers(1)
	cfg.SetDebugMode(true)

	// Assert
	assert.True(t, cfg.GetFlushTrailing())
	assert.Equal(t, FormatYAML, cfg.GetOutputFormat())
	assert.True(t, cfg.GetEncode())
	assert.Equal(t, 1, cfg.GetWorkers())
	assert.True(t, cfg.GetDebugMode())
	assert.NoError(t, cfg.Validate())
}
