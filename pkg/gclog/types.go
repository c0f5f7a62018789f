package gclog

import "github.com/gclog/gclog-go/pkg/gclog/event"

// Event is a single parsed GC event.
type Event = event.Event

// EventType is the kind of a GC event.
type EventType = event.Type

// Event types.
const (
	EventPause             = event.Pause
	EventConcurrent        = event.Concurrent
	EventGarbageCollection = event.GarbageCollection
)
