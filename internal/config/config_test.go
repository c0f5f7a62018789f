package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gclog/gclog-go/internal/config"
	"github.com/gclog/gclog-go/pkg/gclog/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Valid(t *testing.T) {
	cfg, err := config.Load("testdata/valid.yaml")
	require.NoError(t, err)
	assert.Equal(t, "pretty", cfg.Format)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.IncludeRaw)
	assert.Equal(t, []event.Type{event.Pause, event.GarbageCollection}, cfg.Types)
	require.NotNil(t, cfg.TimeRange)
	assert.Equal(t, 1.5, cfg.TimeRange.Min)
	require.NotNil(t, cfg.TimeRange.Max)
	assert.Equal(t, 600.0, *cfg.TimeRange.Max)
	assert.Equal(t, []string{"*.log", "gc-*.txt"}, cfg.Patterns)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	cfg, err := config.Load("testdata/partial.yaml")
	require.NoError(t, err)
	assert.Equal(t, "jsonl", cfg.Format)
	assert.Equal(t, 2, cfg.Workers)
	assert.Nil(t, cfg.TimeRange)
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	_, err := config.Load("testdata/unsupported_version.yaml")
	var valErr *config.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "version", valErr.Field)
}

func TestLoad_UnknownEventType(t *testing.T) {
	_, err := config.Load("testdata/bad_type.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoad_InvertedRange(t *testing.T) {
	_, err := config.Load("testdata/inverted_range.yaml")
	var valErr *config.ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "time_range", valErr.Field)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := config.Load("testdata/nonexistent.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.NotContains(t, err.Error(), "testdata")
}

func TestLoad_TooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.yaml")
	data := "version: 1\n# " + strings.Repeat("x", config.MaxConfigFileSize) + "\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestLoadBytes_InvalidYAML(t *testing.T) {
	_, err := config.LoadBytes([]byte("version: [1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadBytes_Empty(t *testing.T) {
	cfg, err := config.LoadBytes(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestValidate(t *testing.T) {
	max := 10.0
	tests := []struct {
		name  string
		mod   func(*config.Config)
		field string
	}{
		{"unknown format", func(c *config.Config) { c.Format = "xml" }, "format"},
		{"zero workers", func(c *config.Config) { c.Workers = 0 }, "workers"},
		{"missing max", func(c *config.Config) { c.TimeRange = &config.TimeRange{Min: 1} }, "time_range.max"},
		{"bad glob", func(c *config.Config) { c.Patterns = []string{"[gc"} }, "patterns[0]"},
		{"valid range", func(c *config.Config) { c.TimeRange = &config.TimeRange{Max: &max} }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mod(cfg)
			err := cfg.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var valErr *config.ValidationError
			require.True(t, errors.As(err, &valErr))
			assert.Equal(t, tt.field, valErr.Field)
		})
	}
}

func TestValidFormat(t *testing.T) {
	for _, f := range config.Formats {
		assert.True(t, config.ValidFormat(f))
	}
	assert.False(t, config.ValidFormat("xml"))
	assert.False(t, config.ValidFormat(""))
}
