package parser

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Field identifies a captured segment of a GC log line.
type Field int

// Captured fields, in capture order.
const (
	FieldDateTime Field = iota
	FieldTimeFromStart
	FieldEventType
	FieldEventName
	FieldAdditionalInfo
	FieldMemoryChange
	FieldDuration

	numFields
)

var fieldNames = [numFields]string{
	FieldDateTime:       "datetime",
	FieldTimeFromStart:  "time_from_start_seconds",
	FieldEventType:      "event_type",
	FieldEventName:      "event_name",
	FieldAdditionalInfo: "additional_info",
	FieldMemoryChange:   "memory_change",
	FieldDuration:       "duration_milliseconds",
}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// Fields returns all captured fields in capture order.
func Fields() []Field {
	fields := make([]Field, numFields)
	for i := range fields {
		fields[i] = Field(i)
	}
	return fields
}

// noField marks a segment that is matched but not captured.
const noField Field = -1

// segment is one positional piece of the line grammar.
// A captured segment renders as prefix(?P<field>capture)suffix.
// An uncaptured segment renders as prefix only.
type segment struct {
	prefix   string
	capture  string
	suffix   string
	field    Field
	optional bool
}

func (s segment) render() string {
	var b strings.Builder
	b.WriteString(s.prefix)
	if s.field != noField {
		fmt.Fprintf(&b, "(?P<%s>%s)", s.field, s.capture)
		b.WriteString(s.suffix)
	}
	if s.optional {
		return "(?:" + b.String() + ")?"
	}
	return b.String()
}

// lineSegments is the unified JVM GC logging line, e.g.
//
//	[2021-07-01T23:23:22.001+0000][243.45s][info ][gc,start ] GC(25) Pause Young (Normal) (G1 Evacuation Pause) 254M->12M(1200M) 24.321ms
//
// The event type carries no look-ahead: the duration segment is mandatory
// and comes last, so every accepted type is followed by a duration.
var lineSegments = []segment{
	// [2021-07-01T23:23:22.001+0000]
	{prefix: `\[`, capture: `\d{4}-\d\d-\d\dT\d\d:\d\d:\d\d\.\d{3}[+-]\d{4}`, suffix: `\]`, field: FieldDateTime, optional: true},
	// [243.45s]
	{prefix: `\[`, capture: `\d+\.\d+`, suffix: `s\]`, field: FieldTimeFromStart},
	// [info ]
	{prefix: `\[\w+ *\]`, field: noField},
	// [gc] or [gc,phases ]
	{prefix: `\[gc(?:,\w+)?\s*\] `, field: noField},
	// GC(25)
	{prefix: `GC\(\d+\) `, field: noField},
	// Pause
	{capture: `Pause|Concurrent|Garbage Collection`, suffix: ` `, field: FieldEventType},
	// Young
	{capture: `(?:\w+ ?){1,3}`, suffix: ` `, field: FieldEventName, optional: true},
	// (Normal) (G1 Evacuation Pause)
	{capture: `(?:\((?:\w+ ?){1,3}\) ){1,3}`, field: FieldAdditionalInfo, optional: true},
	// 254M->12M(1200M) or 25M(4%)->12M(3%)
	{capture: `\d+\w->\d+\w\(\d+\w\)|\d+\w\(\d+%\)->\d+\w\(\d+%\)`, suffix: ` `, field: FieldMemoryChange, optional: true},
	// 24.321ms
	{capture: `\d+\.\d+`, suffix: `ms`, field: FieldDuration},
}

// Grammar is a compiled line pattern together with the capture index of each field.
// A Grammar is immutable and safe for concurrent use.
type Grammar struct {
	re     *regexp.Regexp
	groups [numFields]int
}

// Captures holds the text captured for each field of one line.
// A nil entry means the segment did not participate in the match.
type Captures [numFields]*string

// Get returns the capture for f.
func (c *Captures) Get(f Field) *string {
	return c[f]
}

func compileGrammar(segments []segment) (*Grammar, error) {
	var b strings.Builder
	b.WriteString("^")
	for _, s := range segments {
		b.WriteString(s.render())
	}

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("compiling line grammar: %w", err)
	}

	g := &Grammar{re: re}
	for i := range g.groups {
		g.groups[i] = -1
	}
	for i, name := range re.SubexpNames() {
		for f := Field(0); f < numFields; f++ {
			if name == f.String() {
				g.groups[f] = i
			}
		}
	}
	for f, idx := range g.groups {
		if idx < 0 {
			return nil, fmt.Errorf("line grammar has no capture for %s", Field(f))
		}
	}
	return g, nil
}

var defaultGrammar = sync.OnceValue(func() *Grammar {
	g, err := compileGrammar(lineSegments)
	if err != nil {
		panic(err)
	}
	return g
})

// DefaultGrammar returns the process-wide GC line grammar, compiled on first use.
func DefaultGrammar() *Grammar {
	return defaultGrammar()
}

// String returns the composed regular expression.
func (g *Grammar) String() string {
	return g.re.String()
}

// Match applies the grammar to a single line.
func (g *Grammar) Match(line string) (Captures, bool) {
	var caps Captures
	loc := g.re.FindStringSubmatchIndex(line)
	if loc == nil {
		return caps, false
	}
	for f, idx := range g.groups {
		start, end := loc[2*idx], loc[2*idx+1]
		if start < 0 {
			continue
		}
		text := line[start:end]
		caps[f] = &text
	}
	return caps, true
}
