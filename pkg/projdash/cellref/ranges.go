package cellref

import (
	"fmt"
	"strings"
)

// Range is a rectangular span of cells. A single cell has Start == End.
type Range struct {
	Start Cell
	End   Cell
}

// Single returns the range covering exactly one cell.
func Single(c Cell) Range {
	return Range{Start: c, End: c}
}

// IsSingle reports whether the range covers one cell.
func (r Range) IsSingle() bool {
	return r.Start == r.End
}

// String returns "G3" for a single cell and "G3:I3" for a span.
func (r Range) String() string {
	if r.IsSingle() {
		return r.Start.String()
	}
	return r.Start.String() + ":" + r.End.String()
}

// Bounds returns the 1-based column and row bounds of the range.
func (r Range) Bounds() (c1, r1, c2, r2 int) {
	return r.Start.ColNum(), r.Start.Row, r.End.ColNum(), r.End.Row
}

// ExpandToRow keeps the start cell and moves the end cell down (or up) to row,
// preserving the end column.
func (r Range) ExpandToRow(row int) Range {
	return Range{
		Start: r.Start,
		End:   Cell{Col: r.End.Col, Row: row},
	}
}

// ParseRange parses "G3" or "G3:I3" (absolute markers allowed).
func ParseRange(s string) (Range, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	switch len(parts) {
	case 1:
		c, err := ParseCellRef(parts[0])
		if err != nil {
			return Range{}, err
		}
		return Single(c), nil
	case 2:
		start, err := ParseCellRef(parts[0])
		if err != nil {
			return Range{}, err
		}
		end, err := ParseCellRef(parts[1])
		if err != nil {
			return Range{}, err
		}
		return Range{Start: start, End: end}, nil
	default:
		return Range{}, fmt.Errorf("%w: %q", ErrMalformedRef, s)
	}
}

// NewRange builds a range from 1-based column/row bounds.
func NewRange(c1, r1, c2, r2 int) (Range, error) {
	startCol, err := NumberToColumn(c1 - 1)
	if err != nil {
		return Range{}, err
	}
	endCol, err := NumberToColumn(c2 - 1)
	if err != nil {
		return Range{}, err
	}
	return Range{
		Start: Cell{Col: startCol, Row: r1},
		End:   Cell{Col: endCol, Row: r2},
	}, nil
}

// IsCellInRange compares decoded coordinates, so "G3" is inside "G3" and
// inside "F3:H3" alike.
func IsCellInRange(cell Cell, r Range) bool {
	col := cell.ColNum()
	c1, r1, c2, r2 := r.Bounds()
	return cell.Row >= r1 && cell.Row <= r2 &&
		col >= c1 && col <= c2
}
