// Package parser implements the JVM unified GC log line grammar and the
// extraction engine that turns matched lines into events.
package parser

import (
	"github.com/gclog/gclog-go/pkg/gclog/event"
)

// Parse parses a single GC log line into an Event.
//
// Returns:
//   - (*Event, nil): Successfully parsed
//   - (nil, nil): Not a GC event line
//   - (nil, error): Matched but could not be converted (grammar defect)
func Parse(line string) (*event.Event, error) {
	line = trimLine(line)

	caps, ok := DefaultGrammar().Match(line)
	if !ok {
		return nil, nil
	}

	cols := &Columns{linesRead: 1}
	cols.add(caps, 0, line, false)
	events, err := BuildTable(cols)
	if err != nil {
		return nil, err
	}
	return &events[0], nil
}
