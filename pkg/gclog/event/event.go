// Package event defines the GC event record produced by the gclog parser.
package event

import "fmt"

// Type represents the kind of a GC event.
type Type int

// Event types. The zero value is not a valid event type.
const (
	// Pause is a stop-the-world pause.
	Pause Type = iota + 1
	// Concurrent is a phase running alongside application threads.
	Concurrent
	// GarbageCollection is a generic collection cycle (as reported by ZGC and Shenandoah).
	GarbageCollection
)

var typeNames = map[Type]string{
	Pause:             "Pause",
	Concurrent:        "Concurrent",
	GarbageCollection: "Garbage Collection",
}

// String returns the event type as it appears in the log.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps log text to a Type.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown event type %q", s)
}

// Types returns all valid event types in declaration order.
func Types() []Type {
	return []Type{Pause, Concurrent, GarbageCollection}
}

// MarshalText implements encoding.TextMarshaler.
// JSON and YAML encoders use it, so the type is written as its log text.
func (t Type) MarshalText() ([]byte, error) {
	name, ok := typeNames[t]
	if !ok {
		return nil, fmt.Errorf("invalid event type %d", int(t))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Event is a single GC event, parsed from one log line.
//
// Optional fields are pointers: nil means the segment was absent from the line.
type Event struct {
	// DateTime is the wall clock decoration, e.g. "2021-07-01T23:23:22.001+0000".
	DateTime *string `json:"datetime" yaml:"datetime" msgpack:"datetime"`

	// TimeFromStart is the uptime decoration in seconds.
	TimeFromStart float64 `json:"time_from_start_seconds" yaml:"time_from_start_seconds" msgpack:"time_from_start_seconds"`

	Type Type `json:"event_type" yaml:"event_type" msgpack:"event_type"`

	// Name is the 1-3 word label following the type, e.g. "Young" or "Remark".
	Name *string `json:"event_name" yaml:"event_name" msgpack:"event_name"`

	// AdditionalInfo holds the parenthesized annotations including their
	// parentheses, e.g. "(Allocation Failure)". Never nil.
	AdditionalInfo []string `json:"additional_info" yaml:"additional_info" msgpack:"additional_info"`

	// MemoryChange is the raw heap transition text, either "10M->5M(20M)"
	// or "25M(4%)->12M(3%)". Use ParseMemoryChange to decode it.
	MemoryChange *string `json:"memory_change" yaml:"memory_change" msgpack:"memory_change"`

	// Duration is the event duration in milliseconds.
	Duration float64 `json:"duration_milliseconds" yaml:"duration_milliseconds" msgpack:"duration_milliseconds"`

	// Line is the 1-based line number in the source.
	Line int `json:"line" yaml:"line" msgpack:"line"`

	// RawLine is the original line. Only set when requested.
	RawLine string `json:"raw_line,omitempty" yaml:"raw_line,omitempty" msgpack:"raw_line,omitempty"`
}

// Memory decodes MemoryChange. ok is false when the event carries no memory change.
func (e Event) Memory() (mc MemoryChange, ok bool, err error) {
	if e.MemoryChange == nil {
		return MemoryChange{}, false, nil
	}
	mc, err = ParseMemoryChange(*e.MemoryChange)
	if err != nil {
		return MemoryChange{}, false, err
	}
	return mc, true, nil
}
