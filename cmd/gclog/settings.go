package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gclog/gclog-go/internal/config"
	"github.com/gclog/gclog-go/internal/logfinder"
	"github.com/gclog/gclog-go/pkg/gclog"
	"github.com/gclog/gclog-go/pkg/gclog/event"
)

var (
	// input and filter flags, shared by parse, summary and metrics
	logDir       string
	maxUptime    float64
	uptimeRange  string
	workers      int
	eventTypes   []string
	excludeTypes []string
)

// addInputFlags registers the flags every reading command accepts.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&logDir, "dir", "d", "",
		"Directory to search for GC logs (default $"+logfinder.EnvLogDir+")")
	cmd.Flags().Float64Var(&maxUptime, "max", 0,
		"Keep events up to this many seconds of JVM uptime")
	cmd.Flags().StringVar(&uptimeRange, "range", "",
		"Keep events inside an uptime window in seconds, e.g. 60,300")
	cmd.Flags().IntVarP(&workers, "workers", "w", 1,
		"Goroutines used to match lines")
	cmd.Flags().StringSliceVarP(&eventTypes, "types", "t", nil,
		"Event types to keep (comma-separated: "+strings.Join(ValidEventTypeNames(), ",")+")")
	cmd.Flags().StringSliceVar(&excludeTypes, "exclude-types", nil,
		"Event types to drop")

	_ = cmd.RegisterFlagCompletionFunc("types", completeEventTypes)
	_ = cmd.RegisterFlagCompletionFunc("exclude-types", completeEventTypes)
}

// settings is the merged view of the config file and command line flags.
type settings struct {
	format     string
	workers    int
	includeRaw bool
	timeRange  *gclog.TimeRange
	types      []event.Type
	exclude    []event.Type
	patterns   []string
}

func resolveSettings(cmd *cobra.Command) (*settings, error) {
	s := &settings{
		format:     cfg.Format,
		workers:    cfg.Workers,
		includeRaw: cfg.IncludeRaw,
		types:      slices.Clone(cfg.Types),
		patterns:   cfg.Patterns,
	}
	if cfg.TimeRange != nil {
		r := gclog.Between(cfg.TimeRange.Min, *cfg.TimeRange.Max)
		s.timeRange = &r
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		s.format = format
	}
	if flags.Changed("workers") {
		s.workers = workers
	}
	if flags.Changed("raw") {
		s.includeRaw = includeRaw
	}

	if flags.Changed("max") && flags.Changed("range") {
		return nil, errors.New("--max and --range cannot be used together")
	}
	if flags.Changed("max") {
		r := gclog.UpTo(maxUptime)
		s.timeRange = &r
	}
	if flags.Changed("range") {
		r, err := parseRange(uptimeRange)
		if err != nil {
			return nil, err
		}
		s.timeRange = &r
	}

	if flags.Changed("types") {
		types, err := NormalizeEventTypes(eventTypes)
		if err != nil {
			return nil, fmt.Errorf("--types: %w", err)
		}
		s.types = types
	}
	if flags.Changed("exclude-types") {
		types, err := NormalizeEventTypes(excludeTypes)
		if err != nil {
			return nil, fmt.Errorf("--exclude-types: %w", err)
		}
		s.exclude = types
	}
	if err := RejectOverlap(s.types, s.exclude); err != nil {
		return nil, err
	}

	if !config.ValidFormat(s.format) {
		return nil, fmt.Errorf("unknown format %q (valid: %s)", s.format, strings.Join(config.Formats, ", "))
	}
	if s.workers < 1 {
		return nil, fmt.Errorf("--workers must be at least 1, got %d", s.workers)
	}
	return s, nil
}

// parseRange parses "min,max" in seconds.
func parseRange(s string) (gclog.TimeRange, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return gclog.TimeRange{}, fmt.Errorf("invalid --range %q: want min,max", s)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return gclog.TimeRange{}, fmt.Errorf("invalid --range minimum: %w", err)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return gclog.TimeRange{}, fmt.Errorf("invalid --range maximum: %w", err)
	}
	r := gclog.Between(lo, hi)
	if err := r.Validate(); err != nil {
		return gclog.TimeRange{}, fmt.Errorf("invalid --range: %w", err)
	}
	return r, nil
}

// resolveInputs returns the files to read: the arguments if any, otherwise
// the GC logs found in --dir (or $GCLOG_DIR).
func resolveInputs(args []string, dir string, patterns []string) ([]string, error) {
	if len(args) > 0 {
		if dir != "" {
			return nil, errors.New("file arguments and --dir cannot be used together")
		}
		return args, nil
	}

	resolved, err := logfinder.FindLogDir(dir)
	if err != nil {
		if errors.Is(err, logfinder.ErrLogDirNotFound) && dir == "" {
			return nil, fmt.Errorf("no input: pass log files, --dir, or set %s", logfinder.EnvLogDir)
		}
		return nil, err
	}
	return logfinder.FindLogFiles(resolved, patterns...)
}

// loadTable parses files in order and concatenates their events. When more
// than one file is read, files without GC events are skipped with a warning.
func loadTable(ctx context.Context, files []string, s *settings, logger *slog.Logger) (*gclog.Table, error) {
	opts := []gclog.ParseOption{
		gclog.WithWorkers(s.workers),
		gclog.WithIncludeRawLine(s.includeRaw),
		gclog.WithLogger(logger),
	}
	if s.timeRange != nil {
		opts = append(opts, gclog.WithTimeRange(*s.timeRange))
	}

	var events []gclog.Event
	for _, path := range files {
		table, err := gclog.ParseFile(ctx, path, opts...)
		if err != nil {
			if len(files) > 1 && errors.Is(err, gclog.ErrNoMatchingLines) {
				logger.Warn("skipping file without gc events", "path", path)
				continue
			}
			return nil, err
		}
		events = append(events, table.Events()...)
	}

	table := gclog.NewTable(events)
	if len(s.types) > 0 {
		table = table.FilterTypes(s.types...)
	}
	if len(s.exclude) > 0 {
		table = table.Select(func(ev gclog.Event) bool {
			return !slices.Contains(s.exclude, ev.Type)
		})
	}
	logger.Debug("loaded gc events", "files", len(files), "events", table.Len())
	return table, nil
}

// readTable is the common front half of every reading command.
func readTable(cmd *cobra.Command, args []string) (*gclog.Table, *settings, error) {
	s, err := resolveSettings(cmd)
	if err != nil {
		return nil, nil, err
	}
	files, err := resolveInputs(args, logDir, s.patterns)
	if err != nil {
		return nil, nil, err
	}
	table, err := loadTable(commandContext(cmd), files, s, newLogger(cmd.ErrOrStderr()))
	if err != nil {
		return nil, nil, err
	}
	return table, s, nil
}
