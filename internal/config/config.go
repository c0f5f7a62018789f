// Package config loads the optional gclog YAML configuration file.
//
// Example file:
//
//	version: 1
//	format: pretty
//	workers: 4
//	include_raw: false
//	types: [Pause]
//	time_range:
//	  min: 0
//	  max: 600
//	patterns: ["*.log", "*.log.[0-9]*"]
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gclog/gclog-go/internal/safefile"
	"github.com/gclog/gclog-go/pkg/gclog/event"
)

const (
	// MaxConfigFileSize is the maximum allowed size for a config file (64KB).
	MaxConfigFileSize = 64 * 1024

	// SupportedVersion is the currently supported config file format version.
	SupportedVersion = 1
)

// Formats lists the output formats understood by the gclog command.
var Formats = []string{"jsonl", "json", "yaml", "csv", "msgpack", "pretty"}

// Config holds defaults for the gclog command. Command line flags win over it.
type Config struct {
	Version    int          `yaml:"version"`
	Format     string       `yaml:"format"`
	Workers    int          `yaml:"workers"`
	IncludeRaw bool         `yaml:"include_raw"`
	Types      []event.Type `yaml:"types"`
	TimeRange  *TimeRange   `yaml:"time_range"`
	Patterns   []string     `yaml:"patterns"`
}

// TimeRange is an uptime window in seconds. A missing min means 0.
type TimeRange struct {
	Min float64  `yaml:"min"`
	Max *float64 `yaml:"max"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Version: SupportedVersion,
		Format:  "jsonl",
		Workers: 1,
	}
}

// ValidationError reports an invalid config value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// sanitizePathError removes the path from os.PathError so messages stay short
// when the caller already reports the path.
func sanitizePathError(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Errorf("%s: %w", pathErr.Op, pathErr.Err)
	}
	return err
}

// Load reads and validates a config file. Values missing from the file keep
// their Default values.
func Load(path string) (*Config, error) {
	f, info, err := safefile.OpenRegular(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", sanitizePathError(err))
	}
	defer f.Close()

	if info.Size() > MaxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), MaxConfigFileSize)
	}

	// Read one extra byte to detect a file that grew after Stat.
	data, err := io.ReadAll(io.LimitReader(f, MaxConfigFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", sanitizePathError(err))
	}

	return LoadBytes(data)
}

// LoadBytes parses and validates config data.
func LoadBytes(data []byte) (*Config, error) {
	if len(data) > MaxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", len(data), MaxConfigFileSize)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field of the config.
func (c *Config) Validate() error {
	if c.Version != SupportedVersion {
		return &ValidationError{
			Field:   "version",
			Message: fmt.Sprintf("unsupported version %d (only version %d is supported)", c.Version, SupportedVersion),
		}
	}

	if !ValidFormat(c.Format) {
		return &ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unknown format %q", c.Format),
		}
	}

	if c.Workers < 1 {
		return &ValidationError{
			Field:   "workers",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Workers),
		}
	}

	if c.TimeRange != nil {
		if c.TimeRange.Max == nil {
			return &ValidationError{Field: "time_range.max", Message: "max is required"}
		}
		if c.TimeRange.Min > *c.TimeRange.Max {
			return &ValidationError{
				Field:   "time_range",
				Message: fmt.Sprintf("min (%v) exceeds max (%v)", c.TimeRange.Min, *c.TimeRange.Max),
			}
		}
	}

	for i, p := range c.Patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return &ValidationError{
				Field:   fmt.Sprintf("patterns[%d]", i),
				Message: fmt.Sprintf("invalid glob %q: %v", p, err),
			}
		}
	}

	return nil
}

// ValidFormat reports whether format is one of Formats.
func ValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}
