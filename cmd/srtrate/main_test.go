package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexflint/go-arg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"srtrate/internal/app"
	"srtrate/internal/config"
	"srtrate/internal/srt"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestArgsParsing(t *testing.T) {
	t.Run("should parse flags and positional files", func(t *testing.T) {
		// Arrange
		var cli args
		parser, err := arg.NewParser(arg.Config{Program: "srtrate"}, &cli)
		require.NoError(t, err)

		// Act
		err = parser.Parse([]string{"-f", "json", "--flush-trailing", "-w", "2", "a.srt", "b.srt"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"a.srt", "b.srt"}, cli.Paths)
		assert.Equal(t, "json", cli.Format)
		assert.True(t, cli.FlushTrailing)
		assert.Equal(t, 2, cli.Workers)
	})

	t.Run("should report help and version requests", func(t *testing.T) {
		var cli args
		parser, err := arg.NewParser(arg.Config{Program: "srtrate"}, &cli)
		require.NoError(t, err)

		assert.ErrorIs(t, parser.Parse([]string{"--help"}), arg.ErrHelp)
		assert.ErrorIs(t, parser.Parse([]string{"--version"}), arg.ErrVersion)
	})
}

func TestApplyFlags(t *testing.T) {
	t.Run("should leave configuration alone for zero flags", func(t *testing.T) {
		cfg := config.NewConfiguration()

		require.NoError(t, applyFlags(cfg, args{}))

		assert.Equal(t, config.FormatText, cfg.GetOutputFormat())
		assert.Equal(t, 4, cfg.GetWorkers())
		assert.False(t, cfg.GetFlushTrailing())
	})

	t.Run("should override configuration", func(t *testing.T) {
		cfg := config.NewConfiguration()

		err := applyFlags(cfg, args{Format: "yaml", FlushTrailing: true, Encode: true, Workers: 1, Debug: true})

		require.NoError(t, err)
		assert.Equal(t, config.FormatYAML, cfg.GetOutputFormat())
		assert.True(t, cfg.GetFlushTrailing())
		assert.True(t, cfg.GetEncode())
		assert.Equal(t, 1, cfg.GetWorkers())
		assert.True(t, cfg.GetDebugMode())
	})

	t.Run("should reject invalid overrides", func(t *testing.T) {
		err := applyFlags(config.NewConfiguration(), args{Format: "csv"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported output format")
	})
}

func TestRunApplication(t *testing.T) {
	t.Run("should fail without input files", func(t *testing.T) {
		err := runApplication(context.Background(), args{}, &bytes.Buffer{})

		assert.ErrorIs(t, err, app.ErrNoInput)
	})

	t.Run("should print a text report", func(t *testing.T) {
		// Arrange
		t.Setenv("CONFIG_PATH", "")
		path := writeFile(t, "a.srt", "1\n00:00:00,000 --> 00:00:02,000\nHello\nWorld\n\n")
		var stdout bytes.Buffer

		// Act
		err := runApplication(context.Background(), args{Paths: []string{path}}, &stdout)

		// Assert
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "caption 1: duration 2s, word_count 2, words_per_second 1.000")
	})

	t.Run("should return parse errors", func(t *testing.T) {
		t.Setenv("CONFIG_PATH", "")
		path := writeFile(t, "a.srt", "1\n00:01,000 --> 00:00:02,000\nHello\n\n")

		err := runApplication(context.Background(), args{Paths: []string{path}}, &bytes.Buffer{})

		assert.ErrorIs(t, err, srt.ErrTimestampParsing)
	})

	t.Run("should fail on a missing config file", func(t *testing.T) {
		err := runApplication(context.Background(), args{
			Paths:  []string{"a.srt"},
			Config: filepath.Join(t.TempDir(), "missing.yaml"),
		}, &bytes.Buffer{})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load config")
	})
}
