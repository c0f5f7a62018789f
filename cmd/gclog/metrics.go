package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/gclog/gclog-go/pkg/gclog"
	"github.com/gclog/gclog-go/pkg/gclog/event"
)

var metricsOut string

var metricsCmd = &cobra.Command{
	Use:   "metrics [files...]",
	Short: "Export GC events as Prometheus metrics",
	Long: `Write Prometheus text exposition for the node_exporter textfile collector.

Exported metrics:
  gclog_events_total{type}           events per type
  gclog_pause_duration_seconds       histogram of pause durations
  gclog_reclaimed_bytes_total        heap reclaimed by pauses
  gclog_last_event_uptime_seconds    JVM uptime of the last event

The file is written atomically.`,
	RunE: runMetrics,
}

func init() {
	addInputFlags(metricsCmd)
	metricsCmd.Flags().StringVarP(&metricsOut, "out", "o", "",
		"Textfile to write (required)")
	_ = metricsCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(metricsCmd)
}

// gcCollectors holds the metrics derived from a table.
type gcCollectors struct {
	events    *prometheus.CounterVec
	pauses    prometheus.Histogram
	reclaimed prometheus.Counter
	uptime    prometheus.Gauge
}

func newGCCollectors(reg prometheus.Registerer) *gcCollectors {
	c := &gcCollectors{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gclog",
			Name:      "events_total",
			Help:      "GC events parsed from the log, by type",
		}, []string{"type"}),
		pauses: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gclog",
			Name:      "pause_duration_seconds",
			Help:      "Duration of stop-the-world pauses",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
		reclaimed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "gclog",
			Name:      "reclaimed_bytes_total",
			Help:      "Heap bytes reclaimed by pauses",
		}),
		uptime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "gclog",
			Name:      "last_event_uptime_seconds",
			Help:      "JVM uptime of the last parsed event",
		}),
	}
	reg.MustRegister(c.events, c.pauses, c.reclaimed, c.uptime)

	// Export zero counts for types that never occurred.
	for _, t := range event.Types() {
		c.events.WithLabelValues(typeName(t))
	}
	return c
}

func (c *gcCollectors) observe(t *gclog.Table) error {
	for _, ev := range t.All() {
		c.events.WithLabelValues(typeName(ev.Type)).Inc()
		c.uptime.Set(ev.TimeFromStart)

		if ev.Type != event.Pause {
			continue
		}
		c.pauses.Observe(ev.Duration / 1000)
		mc, ok, err := ev.Memory()
		if err != nil {
			return fmt.Errorf("line %d: %w", ev.Line, err)
		}
		if ok {
			c.reclaimed.Add(float64(mc.Freed()))
		}
	}
	return nil
}

// WriteMetrics writes the metrics of t to path in text exposition format.
func WriteMetrics(path string, t *gclog.Table) error {
	reg := prometheus.NewRegistry()
	if err := newGCCollectors(reg).observe(t); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, reg)
}

func runMetrics(cmd *cobra.Command, args []string) error {
	table, _, err := readTable(cmd, args)
	if err != nil {
		return err
	}
	if err := WriteMetrics(metricsOut, table); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
