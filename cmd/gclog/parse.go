package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gclog/gclog-go/internal/config"
	"github.com/gclog/gclog-go/internal/safefile"
)

var (
	// parse flags
	format     string
	includeRaw bool
	outPath    string
)

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Parse GC logs and output events",
	Long: `Parse GC log files and output one record per GC event.

Events are output as JSON Lines by default (one JSON object per line),
which makes it easy to process with tools like jq.

Files given as arguments are read in order. Without arguments, every GC log
in --dir (or $GCLOG_DIR) is read, oldest first.

Examples:
  # JSON Lines on stdout
  gclog parse gc.log

  # Rotated logs in a directory, as CSV
  gclog parse --dir /var/log/app --format csv --out gc.csv

  # Pause events between one and five minutes of uptime
  gclog parse gc.log --types pause --range 60,300

  # Pipe to jq for filtering
  gclog parse gc.log | jq 'select(.duration_milliseconds > 10)'`,
	RunE: runParse,
}

func init() {
	addInputFlags(parseCmd)
	parseCmd.Flags().StringVarP(&format, "format", "f", "jsonl",
		"Output format: "+strings.Join(config.Formats, ", "))
	parseCmd.Flags().BoolVar(&includeRaw, "raw", false,
		"Include raw log lines in output")
	parseCmd.Flags().StringVarP(&outPath, "out", "o", "",
		"Write output to a file instead of stdout")
	_ = parseCmd.RegisterFlagCompletionFunc("format",
		cobra.FixedCompletions(config.Formats, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) (err error) {
	table, s, err := readTable(cmd, args)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, createErr := safefile.CreateRegular(outPath)
		if createErr != nil {
			return fmt.Errorf("output file: %w", createErr)
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		out = f
	}

	if err := OutputEvents(s.format, table.Events(), out); err != nil {
		return fmt.Errorf("output error: %w", err)
	}
	return nil
}
