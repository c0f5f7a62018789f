package gclog

import (
	"iter"
	"slices"
)

// Table is an ordered, immutable sequence of events in source line order.
// Methods that narrow a Table return a new Table.
type Table struct {
	events []Event
}

// NewTable returns a Table holding a copy of events.
func NewTable(events []Event) *Table {
	return &Table{events: slices.Clone(events)}
}

// Len returns the number of events.
func (t *Table) Len() int {
	return len(t.events)
}

// At returns the i-th event.
func (t *Table) At(i int) Event {
	return t.events[i]
}

// Events returns a copy of the events.
func (t *Table) Events() []Event {
	return slices.Clone(t.events)
}

// All iterates over the events in order.
func (t *Table) All() iter.Seq2[int, Event] {
	return func(yield func(int, Event) bool) {
		for i, ev := range t.events {
			if !yield(i, ev) {
				return
			}
		}
	}
}

// Select returns a new Table with the events for which keep returns true.
func (t *Table) Select(keep func(Event) bool) *Table {
	out := make([]Event, 0, len(t.events))
	for _, ev := range t.events {
		if keep(ev) {
			out = append(out, ev)
		}
	}
	return &Table{events: out}
}

// Span returns the first and last TimeFromStart values. ok is false for an empty Table.
func (t *Table) Span() (first, last float64, ok bool) {
	if len(t.events) == 0 {
		return 0, 0, false
	}
	return t.events[0].TimeFromStart, t.events[len(t.events)-1].TimeFromStart, true
}
