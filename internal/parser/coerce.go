package parser

import (
	"fmt"
	"strconv"
)

// CoercionError reports captured text that could not be converted.
// The grammar only captures digits and a decimal point for numeric fields,
// so this indicates a defect in the grammar rather than bad input.
type CoercionError struct {
	Field Field
	Row   int
	Value string
	Err   error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("coercing %s at row %d (%q): %v", e.Field, e.Row, e.Value, e.Err)
}

func (e *CoercionError) Unwrap() error {
	return e.Err
}

// numericFields are the columns converted to float64.
var numericFields = []Field{FieldTimeFromStart, FieldDuration}

// coerceFloats converts a text column to float64. nil entries stay nil.
func coerceFloats(f Field, col []*string) ([]*float64, error) {
	out := make([]*float64, len(col))
	for i, s := range col {
		if s == nil {
			continue
		}
		v, err := strconv.ParseFloat(*s, 64)
		if err != nil {
			return nil, &CoercionError{Field: f, Row: i, Value: *s, Err: err}
		}
		out[i] = &v
	}
	return out, nil
}
