package event_test

import (
	"encoding/json"
	"testing"

	"github.com/gclog/gclog-go/pkg/gclog/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestType_String(t *testing.T) {
	assert.Equal(t, "Pause", event.Pause.String())
	assert.Equal(t, "Concurrent", event.Concurrent.String())
	assert.Equal(t, "Garbage Collection", event.GarbageCollection.String())
	assert.Equal(t, "Type(0)", event.Type(0).String())
}

func TestParseType(t *testing.T) {
	for _, typ := range event.Types() {
		got, err := event.ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	_, err := event.ParseType("Young")
	assert.Error(t, err)
}

func TestType_MarshalText(t *testing.T) {
	_, err := event.Type(0).MarshalText()
	assert.Error(t, err)

	var typ event.Type
	require.NoError(t, typ.UnmarshalText([]byte("Concurrent")))
	assert.Equal(t, event.Concurrent, typ)
	assert.Error(t, typ.UnmarshalText([]byte("Bogus")))
}

func TestEvent_JSON(t *testing.T) {
	name := "Young"
	ev := event.Event{
		TimeFromStart:  0.123,
		Type:           event.Pause,
		Name:           &name,
		AdditionalInfo: []string{"(Allocation Failure)"},
		Duration:       2.345,
		Line:           3,
	}

	data, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"datetime": null,
		"time_from_start_seconds": 0.123,
		"event_type": "Pause",
		"event_name": "Young",
		"additional_info": ["(Allocation Failure)"],
		"memory_change": null,
		"duration_milliseconds": 2.345,
		"line": 3
	}`, string(data))

	var decoded event.Event
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ev, decoded)
}

func TestEvent_YAML(t *testing.T) {
	ev := event.Event{TimeFromStart: 12, Type: event.GarbageCollection, AdditionalInfo: []string{}, Duration: 5.001}

	data, err := yaml.Marshal(ev)
	require.NoError(t, err)
	assert.Contains(t, string(data), "event_type: Garbage Collection")
	assert.Contains(t, string(data), "memory_change: null")
}

func TestEvent_Memory(t *testing.T) {
	ev := event.Event{}
	_, ok, err := ev.Memory()
	require.NoError(t, err)
	assert.False(t, ok)

	mem := "10M->5M(20M)"
	ev.MemoryChange = &mem
	mc, ok, err := ev.Memory()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, event.MemoryAbsolute, mc.Shape)
	assert.Equal(t, uint64(5*1024*1024), mc.Freed())
}
