package projdash

import (
	"fmt"
	"strings"

	"github.com/ukaji3/projdash-go/pkg/projdash/cellref"
	"github.com/ukaji3/projdash-go/pkg/projdash/models"
	"github.com/ukaji3/projdash-go/pkg/projdash/store"
)

// Reader reads project sheets through the schema. The schema's cells are
// compressed once, so every sheet costs one read per contiguous range.
type Reader struct {
	schema models.Schema

	dataCells    map[string]string // field ID -> canonical data cell
	dataRanges   []cellref.Range
	headerCells  map[string]string // field ID -> canonical header cell
	headerRanges []cellref.Range
}

// NewReader validates the schema and precomputes its read ranges.
func NewReader(schema models.Schema) (*Reader, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	r := &Reader{
		schema:      schema,
		dataCells:   make(map[string]string, len(schema)),
		headerCells: make(map[string]string),
	}

	var data, headers []cellref.Cell
	for _, f := range schema {
		c, err := cellref.ParseCellRef(f.Cell)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.ID, err)
		}
		r.dataCells[f.ID] = c.String()
		data = append(data, c)

		if f.HeaderFromSheet {
			h, err := f.HeaderCell()
			if err != nil {
				return nil, err
			}
			r.headerCells[f.ID] = h.String()
			headers = append(headers, h)
		}
	}

	r.dataRanges = cellref.CompressCells(data)
	r.headerRanges = cellref.CompressCells(headers)
	return r, nil
}

// Ranges returns the compressed data ranges read from each project sheet.
func (r *Reader) Ranges() []cellref.Range {
	return r.dataRanges
}

// ReadProject reads one project sheet into a fully populated record. A blank
// project id cell falls back to projectID, the id from the sheet name.
func (r *Reader) ReadProject(sheet store.Sheet, projectID string) (*models.ProjectRecord, error) {
	raw, err := readCells(sheet, r.dataRanges)
	if err != nil {
		return nil, err
	}

	rec := &models.ProjectRecord{
		SheetName: sheet.Name(),
		ProjectID: projectID,
		Values:    make(map[string]interface{}, len(r.schema)),
	}
	for _, f := range r.schema {
		v := raw[r.dataCells[f.ID]]
		switch f.Type {
		case models.ValueNumber:
			rec.Values[f.ID] = ToNumberOrZero(v)
		default:
			text := ToTextOrEmpty(v)
			if f.ID == models.FieldProjectID && strings.TrimSpace(text) == "" {
				text = projectID
			}
			rec.Values[f.ID] = text
		}
	}
	return rec, nil
}

// ReadHeaders returns the column labels in schema order, taking each label
// from the sheet where the field says so and falling back to the literal label
// when that cell is blank.
func (r *Reader) ReadHeaders(sheet store.Sheet) ([]string, error) {
	raw, err := readCells(sheet, r.headerRanges)
	if err != nil {
		return nil, err
	}

	headers := make([]string, len(r.schema))
	for i, f := range r.schema {
		headers[i] = f.Header
		if cell, ok := r.headerCells[f.ID]; ok {
			if text := strings.TrimSpace(ToTextOrEmpty(raw[cell])); text != "" {
				headers[i] = text
			}
		}
	}
	return headers, nil
}

// readCells performs one read per range and maps every covered cell to its value.
func readCells(sheet store.Sheet, ranges []cellref.Range) (map[string]interface{}, error) {
	results := make([]cellref.ReadResult, len(ranges))
	for i, rg := range ranges {
		grid, err := sheet.ReadRange(rg)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", rg, err)
		}

		var row []interface{}
		if len(grid) > 0 {
			row = grid[0]
		}
		if rg.IsSingle() {
			var v interface{}
			if len(row) > 0 {
				v = row[0]
			}
			results[i] = cellref.SingleValue{Value: v}
		} else {
			results[i] = cellref.RowOfValues(row)
		}
	}
	return cellref.Expand(ranges, results)
}
