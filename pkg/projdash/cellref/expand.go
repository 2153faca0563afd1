package cellref

import (
	"errors"
	"fmt"
)

// ErrInvalidColumnRange indicates a range whose start column sorts after its end column.
var ErrInvalidColumnRange = errors.New("invalid column range")

// ReadResult is the value read back for one Range.
type ReadResult interface {
	isReadResult()
}

// SingleValue is the read result of a single-cell range.
type SingleValue struct {
	Value interface{}
}

func (SingleValue) isReadResult() {}

// RowOfValues is the read result of a span, left to right.
type RowOfValues []interface{}

func (RowOfValues) isReadResult() {}

// Cells steps from the start column to the end column of a single-row range,
// returning every cell in order.
func (r Range) Cells() ([]Cell, error) {
	if !IsColumnRangeValid(r.Start.Col, r.End.Col) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidColumnRange, r)
	}
	cells := []Cell{r.Start}
	for col := r.Start.Col; col != r.End.Col; {
		col = NextColumn(col)
		cells = append(cells, Cell{Col: col, Row: r.Start.Row})
	}
	return cells, nil
}

// Expand maps each cell covered by ranges to its value in results, which must
// hold one entry per range. A row shorter than its range yields nil for the
// trailing cells.
func Expand(ranges []Range, results []ReadResult) (map[string]interface{}, error) {
	if len(ranges) != len(results) {
		return nil, fmt.Errorf("expand: %d ranges but %d read results", len(ranges), len(results))
	}

	out := make(map[string]interface{})
	for i, r := range ranges {
		switch res := results[i].(type) {
		case SingleValue:
			if !r.IsSingle() {
				return nil, fmt.Errorf("expand: single value read for span %s", r)
			}
			out[r.Start.String()] = res.Value
		case RowOfValues:
			cells, err := r.Cells()
			if err != nil {
				return nil, err
			}
			for j, c := range cells {
				if j < len(res) {
					out[c.String()] = res[j]
				} else {
					out[c.String()] = nil
				}
			}
		default:
			return nil, fmt.Errorf("expand: unsupported read result %T for %s", results[i], r)
		}
	}
	return out, nil
}
