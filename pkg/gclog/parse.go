package gclog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gclog/gclog-go/internal/parser"
	"github.com/gclog/gclog-go/internal/safefile"
)

// ParseLine parses a single GC log line into an Event.
//
// Return values:
//   - (*Event, nil): Successfully parsed event
//   - (nil, nil): Line is not a GC event (not an error)
//   - (nil, error): Line matched but could not be converted
//
// Example:
//
//	line := "[0.123s][info][gc] GC(1) Pause Young (Allocation Failure) 10M->5M(20M) 2.345ms"
//	ev, err := gclog.ParseLine(line)
//	if err != nil {
//	    log.Printf("parse error: %v", err)
//	} else if ev != nil {
//	    fmt.Printf("%s took %.3fms\n", ev.Type, ev.Duration)
//	}
func ParseLine(line string) (*Event, error) {
	return parser.Parse(line)
}

// ParseFile parses every GC event in the file at path.
//
// Results:
//   - a Table with one event per matching line, in file order
//   - an empty Table and nil error for a file with zero lines
//   - ErrEmptyPath for a blank path
//   - a *ParseError wrapping fs.ErrNotExist (or ErrNotRegularFile) when the file cannot be opened
//   - a *ParseError wrapping ErrNoMatchingLines when no line is a GC event
//
// No Table is returned alongside an error.
func ParseFile(ctx context.Context, path string, opts ...ParseOption) (*Table, error) {
	cfg := applyParseOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	if strings.TrimSpace(path) == "" {
		cfg.logger.Warn("no log file provided")
		return nil, ErrEmptyPath
	}

	f, info, err := safefile.OpenRegular(path)
	if err != nil {
		return nil, &ParseError{Op: ParseOpOpen, Path: path, Err: err}
	}
	defer f.Close()

	cfg.logger.Debug("parsing gc log", "path", path, "size", info.Size(), "workers", cfg.workers)
	return parse(ctx, f, path, cfg)
}

// ParseReader parses every GC event read from r. It behaves like ParseFile
// without the path handling.
func ParseReader(ctx context.Context, r io.Reader, opts ...ParseOption) (*Table, error) {
	cfg := applyParseOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return parse(ctx, r, "", cfg)
}

func parse(ctx context.Context, r io.Reader, path string, cfg *parseConfig) (*Table, error) {
	cols, err := parser.Match(ctx, r, parser.DefaultGrammar(), parser.MatchOptions{
		Workers:      cfg.workers,
		MaxLineBytes: cfg.maxLineBytes,
		KeepRawLines: cfg.includeRawLine,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ParseError{Op: ParseOpRead, Path: path, Err: err}
	}

	if cols.LinesRead() > 0 && cols.Len() == 0 {
		cfg.logger.Warn("unable to parse gc log", "path", path, "lines", cols.LinesRead())
		return nil, &ParseError{Op: ParseOpMatch, Path: path, Err: ErrNoMatchingLines}
	}

	events, err := parser.BuildTable(cols)
	if err != nil {
		return nil, &ParseError{Op: ParseOpBuild, Path: path, Err: err}
	}
	table := &Table{events: events}

	cfg.logger.Debug("matched gc events", "path", path, "lines", cols.LinesRead(), "events", table.Len())

	if cfg.timeRange != nil {
		table = table.Filter(*cfg.timeRange)
		cfg.logger.Debug("applied time range", "range", cfg.timeRange.String(), "events", table.Len())
	}
	return table, nil
}
