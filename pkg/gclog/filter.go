package gclog

import (
	"fmt"
	"math"
)

// TimeRange is an inclusive window over Event.TimeFromStart, in seconds.
type TimeRange struct {
	Min float64
	Max float64
}

// UpTo returns the range [0, max].
func UpTo(max float64) TimeRange {
	return TimeRange{Min: 0, Max: max}
}

// Between returns the range [min, max].
func Between(min, max float64) TimeRange {
	return TimeRange{Min: min, Max: max}
}

// Contains reports whether min <= seconds <= max.
func (r TimeRange) Contains(seconds float64) bool {
	return r.Min <= seconds && seconds <= r.Max
}

// Validate rejects NaN bounds and ranges with Min greater than Max.
func (r TimeRange) Validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) {
		return fmt.Errorf("time range bounds must be numbers, got [%v, %v]", r.Min, r.Max)
	}
	if r.Min > r.Max {
		return fmt.Errorf("time range min (%v) exceeds max (%v)", r.Min, r.Max)
	}
	return nil
}

func (r TimeRange) String() string {
	return fmt.Sprintf("[%gs, %gs]", r.Min, r.Max)
}

// Filter returns a new Table holding the events inside r, in their original order.
// The receiver is not modified.
func (t *Table) Filter(r TimeRange) *Table {
	return t.Select(func(ev Event) bool {
		return r.Contains(ev.TimeFromStart)
	})
}

// FilterTypes returns a new Table holding only events of the given types.
// With no types, the result holds every event.
func (t *Table) FilterTypes(types ...EventType) *Table {
	if len(types) == 0 {
		return t.Select(func(Event) bool { return true })
	}
	allowed := make(map[EventType]struct{}, len(types))
	for _, typ := range types {
		allowed[typ] = struct{}{}
	}
	return t.Select(func(ev Event) bool {
		_, ok := allowed[ev.Type]
		return ok
	})
}
