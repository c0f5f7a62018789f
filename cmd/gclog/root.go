package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gclog/gclog-go/internal/config"
)

var (
	verbose    bool
	configPath string

	// cfg holds defaults from --config; command line flags override it.
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "gclog",
	Short: "Parse JVM unified GC logs",
	Long: `gclog turns JVM unified GC logs (-Xlog:gc) into structured events.

Every line of the form

  [2021-07-01T23:23:22.001+0000][243.45s][info][gc] GC(25) Pause Young (Normal) 24M->4M(256M) 3.513ms

becomes one event. Lines that are not GC events are skipped.

Examples:
  # Print events of a single log as JSON Lines
  gclog parse gc.log

  # Pause events in the first ten minutes, as a table
  gclog parse gc.log --types pause --max 600 --format pretty

  # Summarize every GC log in a directory
  gclog summary --dir /var/log/app

  # Export metrics for the node_exporter textfile collector
  gclog metrics gc.log --out /var/lib/node_exporter/gc.prom`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath == "" {
			return nil
		}
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"YAML file with default settings")
}

// newLogger returns the stderr logger for a command run.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// commandContext returns the context of cmd, or a background context when the
// command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
