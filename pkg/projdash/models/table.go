package models

import "github.com/ukaji3/projdash-go/pkg/projdash/cellref"

// DashboardTable is the header row plus one record per project sheet.
type DashboardTable struct {
	Headers []string
	Records []*ProjectRecord
}

// Grid returns the table as rows of cells ready for a batched write.
func (t *DashboardTable) Grid(schema Schema) [][]interface{} {
	grid := make([][]interface{}, 0, len(t.Records)+1)
	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	grid = append(grid, header)
	for _, r := range t.Records {
		grid = append(grid, r.Row(schema))
	}
	return grid
}

// MissingSheets names the sheets that were written as null rows, in order.
func (t *DashboardTable) MissingSheets() []string {
	var names []string
	for _, r := range t.Records {
		if r.Missing {
			names = append(names, r.SheetName)
		}
	}
	return names
}

// FormatAssignment lists, per format class, the dashboard ranges that receive
// its number format.
type FormatAssignment map[FormatClass][]cellref.Range
