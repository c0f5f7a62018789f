package gclog

import (
	"fmt"
	"io"
	"log/slog"
)

// ParseOption configures ParseFile/ParseReader behavior.
type ParseOption func(*parseConfig)

// parseConfig holds internal configuration for parsing.
type parseConfig struct {
	timeRange      *TimeRange
	includeRawLine bool
	workers        int
	maxLineBytes   int
	logger         *slog.Logger
}

// discardLogger returns a logger that discards all output.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// defaultParseConfig returns a parseConfig with sensible defaults.
func defaultParseConfig() *parseConfig {
	return &parseConfig{
		workers: 1,
		logger:  discardLogger,
	}
}

// applyParseOptions applies functional options to a parseConfig.
func applyParseOptions(opts []ParseOption) *parseConfig {
	cfg := defaultParseConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// validate checks for invalid option values.
func (c *parseConfig) validate() error {
	if c.timeRange != nil {
		if err := c.timeRange.Validate(); err != nil {
			return err
		}
	}

	if c.workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.workers)
	}

	if c.maxLineBytes < 0 {
		return fmt.Errorf("maxLineBytes must be non-negative, got %d", c.maxLineBytes)
	}

	return nil
}

// WithTimeRange keeps only events whose TimeFromStart lies in r (inclusive).
// Use UpTo for a single upper bound or Between for an explicit pair.
func WithTimeRange(r TimeRange) ParseOption {
	return func(c *parseConfig) {
		c.timeRange = &r
	}
}

// WithIncludeRawLine includes the original log line in Event.RawLine.
// Default: false.
func WithIncludeRawLine(include bool) ParseOption {
	return func(c *parseConfig) {
		c.includeRawLine = include
	}
}

// WithWorkers matches lines on n goroutines. Event order is unaffected.
// Default: 1 (sequential scan).
func WithWorkers(n int) ParseOption {
	return func(c *parseConfig) {
		c.workers = n
	}
}

// WithMaxLineBytes sets the maximum bytes per line.
// Default is 1MB. A longer line fails the parse with bufio.ErrTooLong.
func WithMaxLineBytes(max int) ParseOption {
	return func(c *parseConfig) {
		c.maxLineBytes = max
	}
}

// WithLogger sets a custom logger for diagnostics.
// If logger is nil, logging is disabled (default behavior).
func WithLogger(logger *slog.Logger) ParseOption {
	return func(c *parseConfig) {
		if logger == nil {
			logger = discardLogger
		}
		c.logger = logger
	}
}
