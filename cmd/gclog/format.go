package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/gclog/gclog-go/pkg/gclog/event"
)

// csvHeader is the column order of csv output.
var csvHeader = []string{
	"line",
	"datetime",
	"time_from_start_seconds",
	"event_type",
	"event_name",
	"additional_info",
	"memory_change",
	"duration_milliseconds",
}

// OutputEvents writes events in the specified format to the writer.
func OutputEvents(format string, events []event.Event, out io.Writer) error {
	if events == nil {
		events = []event.Event{}
	}

	switch format {
	case "jsonl":
		for _, ev := range events {
			if err := OutputJSON(ev, out); err != nil {
				return err
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(events); err != nil {
			return err
		}
		return enc.Close()
	case "csv":
		return OutputCSV(events, out)
	case "msgpack":
		return msgpack.NewEncoder(out).Encode(events)
	case "pretty":
		p := newPrettyPrinter(out)
		for _, ev := range events {
			if err := p.print(ev); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// OutputJSON writes an event as one JSON Lines record.
func OutputJSON(ev event.Event, out io.Writer) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// OutputCSV writes events as CSV with a header row. Absent fields are empty
// cells and annotations are joined with a space.
func OutputCSV(events []event.Event, out io.Writer) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, ev := range events {
		record := []string{
			strconv.Itoa(ev.Line),
			deref(ev.DateTime),
			formatFloat(ev.TimeFromStart),
			ev.Type.String(),
			deref(ev.Name),
			strings.Join(ev.AdditionalInfo, " "),
			deref(ev.MemoryChange),
			formatFloat(ev.Duration),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

var (
	colorRed    = lipgloss.Color("#FF5555")
	colorYellow = lipgloss.Color("#F1FA8C")
	colorGreen  = lipgloss.Color("#50FA7B")
	colorCyan   = lipgloss.Color("#8BE9FD")
	colorWhite  = lipgloss.Color("#F8F8F2")
	colorGray   = lipgloss.Color("#6272A4")
)

// prettyPrinter writes one styled line per event. Colors are dropped when out
// is not a terminal.
type prettyPrinter struct {
	out      io.Writer
	uptime   lipgloss.Style
	types    map[event.Type]lipgloss.Style
	label    lipgloss.Style
	info     lipgloss.Style
	memory   lipgloss.Style
	duration lipgloss.Style
}

func newPrettyPrinter(out io.Writer) *prettyPrinter {
	r := lipgloss.NewRenderer(out)
	return &prettyPrinter{
		out:    out,
		uptime: r.NewStyle().Foreground(colorGray),
		types: map[event.Type]lipgloss.Style{
			event.Pause:             r.NewStyle().Bold(true).Foreground(colorRed),
			event.Concurrent:        r.NewStyle().Bold(true).Foreground(colorGreen),
			event.GarbageCollection: r.NewStyle().Bold(true).Foreground(colorYellow),
		},
		label:    r.NewStyle().Foreground(colorWhite),
		info:     r.NewStyle().Foreground(colorGray),
		memory:   r.NewStyle().Foreground(colorCyan),
		duration: r.NewStyle().Bold(true),
	}
}

func (p *prettyPrinter) print(ev event.Event) error {
	parts := []string{
		p.uptime.Render(fmt.Sprintf("[%10.3fs]", ev.TimeFromStart)),
		p.types[ev.Type].Render(ev.Type.String()),
	}
	if ev.Name != nil {
		parts = append(parts, p.label.Render(*ev.Name))
	}
	if len(ev.AdditionalInfo) > 0 {
		parts = append(parts, p.info.Render(strings.Join(ev.AdditionalInfo, " ")))
	}
	if ev.MemoryChange != nil {
		parts = append(parts, p.memory.Render(*ev.MemoryChange))
	}
	parts = append(parts, p.duration.Render(formatFloat(ev.Duration)+"ms"))

	_, err := fmt.Fprintln(p.out, strings.Join(parts, " "))
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
