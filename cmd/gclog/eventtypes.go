package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gclog/gclog-go/pkg/gclog/event"
)

// ValidEventTypes maps command line names to event types.
var ValidEventTypes = map[string]event.Type{
	"pause":              event.Pause,
	"concurrent":         event.Concurrent,
	"garbage_collection": event.GarbageCollection,
}

// ValidEventTypeNames returns the sorted command line names of all event types.
func ValidEventTypeNames() []string {
	names := make([]string, 0, len(ValidEventTypes))
	for name := range ValidEventTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// typeName returns the command line name of t, used for metric labels.
func typeName(t event.Type) string {
	for name, v := range ValidEventTypes {
		if v == t {
			return name
		}
	}
	return strings.ToLower(t.String())
}

// NormalizeEventTypes converts command line names into event types.
// Names are case-insensitive and trimmed; duplicates are dropped.
func NormalizeEventTypes(input []string) ([]event.Type, error) {
	if len(input) == 0 {
		return nil, nil
	}

	seen := make(map[event.Type]bool)
	var result []event.Type
	for _, raw := range input {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			return nil, fmt.Errorf("empty event type (valid: %s)", strings.Join(ValidEventTypeNames(), ", "))
		}
		t, ok := ValidEventTypes[name]
		if !ok {
			return nil, fmt.Errorf("unknown event type %q (valid: %s)", raw, strings.Join(ValidEventTypeNames(), ", "))
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		result = append(result, t)
	}
	return result, nil
}

// RejectOverlap returns an error if a type is both included and excluded.
func RejectOverlap(includes, excludes []event.Type) error {
	included := make(map[event.Type]bool, len(includes))
	for _, t := range includes {
		included[t] = true
	}
	for _, t := range excludes {
		if included[t] {
			return fmt.Errorf("event type %q is both included and excluded", typeName(t))
		}
	}
	return nil
}
