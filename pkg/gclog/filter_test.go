package gclog_test

import (
	"math"
	"testing"

	"github.com/gclog/gclog-go/pkg/gclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(uptimes ...float64) *gclog.Table {
	events := make([]gclog.Event, len(uptimes))
	for i, u := range uptimes {
		events[i] = gclog.Event{
			TimeFromStart:  u,
			Type:           gclog.EventPause,
			AdditionalInfo: []string{},
			Duration:       float64(i),
			Line:           i + 1,
		}
	}
	return gclog.NewTable(events)
}

func TestTable_Filter(t *testing.T) {
	table := newTestTable(0, 0.5, 1, 1.5, 2, 2.5, 3)

	tests := []struct {
		name  string
		r     gclog.TimeRange
		lines []int
	}{
		{"inclusive both ends", gclog.Between(1, 2), []int{3, 4, 5}},
		{"up to", gclog.UpTo(1), []int{1, 2, 3}},
		{"point range", gclog.Between(2.5, 2.5), []int{6}},
		{"nothing", gclog.Between(10, 20), []int{}},
		{"everything", gclog.Between(-1, 100), []int{1, 2, 3, 4, 5, 6, 7}},
		{"inverted range keeps nothing", gclog.Between(2, 1), []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Filter(tt.r)
			lines := []int{}
			for _, ev := range got.All() {
				lines = append(lines, ev.Line)
			}
			assert.Equal(t, tt.lines, lines)
		})
	}
}

func TestTable_FilterProperties(t *testing.T) {
	table := newTestTable(0.1, 0.7, 0.7, 1.9, 3.3, 4.0, 8.25, 9.5, 12)
	ranges := []gclog.TimeRange{
		gclog.Between(0.7, 4.0),
		gclog.Between(0, 0),
		gclog.Between(5, 9.5),
		gclog.UpTo(3.3),
	}

	for _, r := range ranges {
		t.Run(r.String(), func(t *testing.T) {
			got := table.Filter(r)

			// Sub-sequence in original order, every kept event inside r.
			j := 0
			for _, ev := range got.All() {
				assert.True(t, r.Contains(ev.TimeFromStart))
				for j < table.Len() && table.At(j).Line != ev.Line {
					j++
				}
				require.Less(t, j, table.Len(), "event %d out of order", ev.Line)
				j++
			}

			// Every dropped event is outside r.
			kept := map[int]bool{}
			for _, ev := range got.All() {
				kept[ev.Line] = true
			}
			for _, ev := range table.All() {
				if !kept[ev.Line] {
					assert.False(t, ev.TimeFromStart >= r.Min && ev.TimeFromStart <= r.Max)
				}
			}
		})
	}
}

func TestTable_FilterUpToEqualsBetweenZero(t *testing.T) {
	table := newTestTable(0, 1, 2, 3, 4, 5)
	for _, bound := range []float64{0, 0.5, 2, 5, 100} {
		assert.Equal(t, table.Filter(gclog.Between(0, bound)).Events(), table.Filter(gclog.UpTo(bound)).Events())
	}
}

func TestTable_FilterDoesNotMutate(t *testing.T) {
	table := newTestTable(0, 1, 2, 3)
	before := table.Events()

	filtered := table.Filter(gclog.Between(1, 2))
	require.Equal(t, 2, filtered.Len())

	assert.Equal(t, before, table.Events())
	assert.Equal(t, 4, table.Len())
}

func TestTable_FilterTypes(t *testing.T) {
	table := gclog.NewTable([]gclog.Event{
		{Type: gclog.EventPause, Line: 1},
		{Type: gclog.EventConcurrent, Line: 2},
		{Type: gclog.EventGarbageCollection, Line: 3},
		{Type: gclog.EventPause, Line: 4},
	})

	pauses := table.FilterTypes(gclog.EventPause)
	require.Equal(t, 2, pauses.Len())
	assert.Equal(t, 1, pauses.At(0).Line)
	assert.Equal(t, 4, pauses.At(1).Line)

	assert.Equal(t, 4, table.FilterTypes().Len())
}

func TestTable_Span(t *testing.T) {
	_, _, ok := newTestTable().Span()
	assert.False(t, ok)

	first, last, ok := newTestTable(0.5, 1, 7.25).Span()
	require.True(t, ok)
	assert.Equal(t, 0.5, first)
	assert.Equal(t, 7.25, last)
}

func TestTimeRange_Validate(t *testing.T) {
	assert.NoError(t, gclog.UpTo(10).Validate())
	assert.NoError(t, gclog.Between(3, 3).Validate())
	assert.Error(t, gclog.Between(4, 3).Validate())
	assert.Error(t, gclog.Between(math.NaN(), 3).Validate())
	assert.Error(t, gclog.UpTo(math.NaN()).Validate())
}

func TestNewTable_Copies(t *testing.T) {
	events := []gclog.Event{{Line: 1}, {Line: 2}}
	table := gclog.NewTable(events)
	events[0].Line = 99
	assert.Equal(t, 1, table.At(0).Line)
}
