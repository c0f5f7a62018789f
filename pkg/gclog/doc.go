// Package gclog parses JVM unified GC log files into typed event records.
//
// This package allows you to:
//   - Parse GC log lines into structured events
//   - Build an ordered, immutable table of every event in a log file
//   - Narrow a table to an uptime window or to specific event types
//   - Decode heap transitions such as "254M->12M(1200M)"
//
// # Basic Usage
//
// To parse a whole log file:
//
//	table, err := gclog.ParseFile(ctx, "gc.log",
//	    gclog.WithTimeRange(gclog.Between(10, 60)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, ev := range table.All() {
//	    fmt.Printf("%8.3fs %s %.3fms\n", ev.TimeFromStart, ev.Type, ev.Duration)
//	}
//
// Lines that are not GC events (banners, phase breakdowns, heap summaries)
// are skipped. A file that has lines but no events fails with
// ErrNoMatchingLines; an empty file yields an empty Table.
//
// To parse a single log line:
//
//	ev, err := gclog.ParseLine(line)
//	if err != nil {
//	    log.Printf("parse error: %v", err)
//	} else if ev != nil {
//	    // process event
//	}
//
// # Line Format
//
// Lines follow the JDK 9+ unified logging layout with the uptime decoration:
//
//	[2021-07-01T23:23:22.001+0000][243.45s][info][gc] GC(25) Pause Young (Normal) (G1 Evacuation Pause) 254M->12M(1200M) 24.321ms
//
// The wall clock decoration, event name, annotations, and memory change are
// optional. The uptime and the trailing duration are required.
package gclog
