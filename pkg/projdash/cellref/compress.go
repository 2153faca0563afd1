package cellref

import "sort"

// Compress merges single-cell references into the fewest single-row ranges.
// Cells on the same row whose columns are consecutive always end up in the
// same range. The result is ordered by start cell (column, then row) and does
// not depend on the order of refs.
func Compress(refs []string) ([]Range, error) {
	cells := make([]Cell, 0, len(refs))
	for _, ref := range refs {
		c, err := ParseCellRef(ref)
		if err != nil {
			return nil, err
		}
		cells = append(cells, c)
	}
	return CompressCells(cells), nil
}

// CompressCells is Compress over already decoded cells.
func CompressCells(cells []Cell) []Range {
	sorted := make([]Cell, len(cells))
	copy(sorted, cells)
	sort.Slice(sorted, func(i, j int) bool {
		ci, cj := sorted[i].ColNum(), sorted[j].ColNum()
		if ci != cj {
			return ci < cj
		}
		return sorted[i].Row < sorted[j].Row
	})

	var ranges []Range
	open := make(map[int]int) // row -> index of that row's open window in ranges
	for _, c := range sorted {
		if idx, ok := open[c.Row]; ok {
			end := ranges[idx].End
			if end == c {
				continue
			}
			if IsColumnAdjacent(end.Col, c.Col) {
				ranges[idx].End = c
				continue
			}
		}
		ranges = append(ranges, Single(c))
		open[c.Row] = len(ranges) - 1
	}
	return ranges
}
