package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/gclog/gclog-go/pkg/gclog"
	"github.com/gclog/gclog-go/pkg/gclog/event"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [files...]",
	Short: "Summarize GC activity per event type",
	Long: `Print event counts and durations per event type.

For each type the total, mean and maximum duration are shown. Heap figures
(peak heap after collection and bytes reclaimed) come from pause events that
carry a memory change.`,
	RunE: runSummary,
}

func init() {
	addInputFlags(summaryCmd)
	rootCmd.AddCommand(summaryCmd)
}

// TypeSummary aggregates the events of one type.
type TypeSummary struct {
	Type    event.Type
	Count   int
	TotalMs float64
	MaxMs   float64

	// PeakHeapAfter and Reclaimed are in bytes.
	PeakHeapAfter uint64
	Reclaimed     uint64
}

// MeanMs returns the mean duration, or 0 for an empty summary.
func (s TypeSummary) MeanMs() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.TotalMs / float64(s.Count)
}

// Summary aggregates a whole table.
type Summary struct {
	Events int
	First  float64
	Last   float64
	Types  []TypeSummary
}

// Summarize aggregates t. Types without events are left out.
func Summarize(t *gclog.Table) (Summary, error) {
	byType := make(map[event.Type]*TypeSummary)
	for i, ev := range t.All() {
		ts, ok := byType[ev.Type]
		if !ok {
			ts = &TypeSummary{Type: ev.Type}
			byType[ev.Type] = ts
		}
		ts.Count++
		ts.TotalMs += ev.Duration
		ts.MaxMs = max(ts.MaxMs, ev.Duration)

		if ev.Type != event.Pause {
			continue
		}
		mc, ok, err := ev.Memory()
		if err != nil {
			return Summary{}, fmt.Errorf("event %d (line %d): %w", i, ev.Line, err)
		}
		if ok {
			ts.PeakHeapAfter = max(ts.PeakHeapAfter, mc.After)
			ts.Reclaimed += mc.Freed()
		}
	}

	s := Summary{Events: t.Len()}
	s.First, s.Last, _ = t.Span()
	for _, typ := range event.Types() {
		if ts, ok := byType[typ]; ok {
			s.Types = append(s.Types, *ts)
		}
	}
	return s, nil
}

// OutputSummary writes s as an aligned, styled report.
func OutputSummary(s Summary, out io.Writer) error {
	r := lipgloss.NewRenderer(out)
	title := r.NewStyle().Bold(true).Foreground(colorCyan)
	label := r.NewStyle().Foreground(colorGray).Width(20)
	value := r.NewStyle().Foreground(colorWhite)

	row := func(k, v string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, label.Render(k), value.Render(v))
	}

	lines := []string{
		title.Render("GC summary"),
		row("events", fmt.Sprint(s.Events)),
	}
	if s.Events > 0 {
		lines = append(lines, row("uptime", fmt.Sprintf("%ss - %ss", formatFloat(s.First), formatFloat(s.Last))))
	}
	for _, ts := range s.Types {
		lines = append(lines,
			"",
			title.Render(ts.Type.String()),
			row("count", fmt.Sprint(ts.Count)),
			row("total", fmt.Sprintf("%.3fms", ts.TotalMs)),
			row("mean", fmt.Sprintf("%.3fms", ts.MeanMs())),
			row("max", fmt.Sprintf("%.3fms", ts.MaxMs)),
		)
		if ts.PeakHeapAfter > 0 {
			lines = append(lines,
				row("peak heap after", humanize.IBytes(ts.PeakHeapAfter)),
				row("reclaimed", humanize.IBytes(ts.Reclaimed)),
			)
		}
	}

	_, err := fmt.Fprintln(out, lipgloss.JoinVertical(lipgloss.Left, lines...))
	return err
}

func runSummary(cmd *cobra.Command, args []string) error {
	table, _, err := readTable(cmd, args)
	if err != nil {
		return err
	}
	s, err := Summarize(table)
	if err != nil {
		return err
	}
	return OutputSummary(s, cmd.OutOrStdout())
}
