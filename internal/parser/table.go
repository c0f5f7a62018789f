package parser

import (
	"fmt"
	"regexp"

	"github.com/gclog/gclog-go/pkg/gclog/event"
)

// annotationPattern splits the combined additional info capture into its groups.
var annotationPattern = regexp.MustCompile(`\([^)]*\)`)

// BuildTable converts matched columns into events, one per row, in row order.
func BuildTable(cols *Columns) ([]event.Event, error) {
	rows := cols.Len()
	for f := range cols.cols {
		if n := len(cols.cols[f]); n != rows {
			return nil, fmt.Errorf("column %s has %d rows, want %d", Field(f), n, rows)
		}
	}
	if cols.raw != nil && len(cols.raw) != rows {
		return nil, fmt.Errorf("raw lines has %d rows, want %d", len(cols.raw), rows)
	}

	floats := make(map[Field][]*float64, len(numericFields))
	for _, f := range numericFields {
		converted, err := coerceFloats(f, cols.Column(f))
		if err != nil {
			return nil, err
		}
		floats[f] = converted
	}

	events := make([]event.Event, 0, rows)
	for i := 0; i < rows; i++ {
		uptime := floats[FieldTimeFromStart][i]
		duration := floats[FieldDuration][i]
		if uptime == nil || duration == nil {
			return nil, fmt.Errorf("row %d: mandatory numeric field missing", i)
		}

		typeText := cols.Column(FieldEventType)[i]
		if typeText == nil {
			return nil, fmt.Errorf("row %d: event type missing", i)
		}
		typ, err := event.ParseType(*typeText)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		ev := event.Event{
			DateTime:       cols.Column(FieldDateTime)[i],
			TimeFromStart:  *uptime,
			Type:           typ,
			Name:           cols.Column(FieldEventName)[i],
			AdditionalInfo: splitAnnotations(cols.Column(FieldAdditionalInfo)[i]),
			MemoryChange:   cols.Column(FieldMemoryChange)[i],
			Duration:       *duration,
			Line:           cols.lineNos[i],
		}
		if cols.raw != nil {
			ev.RawLine = cols.raw[i]
		}
		events = append(events, ev)
	}
	return events, nil
}

func splitAnnotations(info *string) []string {
	if info == nil {
		return []string{}
	}
	groups := annotationPattern.FindAllString(*info, -1)
	if groups == nil {
		return []string{}
	}
	return groups
}
