package store

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/ukaji3/projdash-go/pkg/projdash/cellref"
	"github.com/xuri/excelize/v2"
)

const (
	minColumnWidth = 8.43
	maxColumnWidth = 255
)

// styleKey identifies a derived style: the cell's original style plus one change.
type styleKey struct {
	base   int
	change string
}

// XLSX is a Store backed by a local .xlsx workbook.
type XLSX struct {
	f      *excelize.File
	path   string
	styles map[styleKey]int
}

// OpenXLSX opens a workbook from disk.
func OpenXLSX(path string) (*XLSX, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	x := NewXLSX(f)
	x.path = path
	return x, nil
}

// NewXLSX wraps an already open workbook.
func NewXLSX(f *excelize.File) *XLSX {
	return &XLSX{
		f:      f,
		styles: make(map[styleKey]int),
	}
}

// File returns the underlying workbook.
func (x *XLSX) File() *excelize.File {
	return x.f
}

// Save writes the workbook back to the path it was opened from.
func (x *XLSX) Save() error {
	if x.path == "" {
		return errors.New("workbook has no path, use SaveAs")
	}
	return x.f.SaveAs(x.path)
}

// SaveAs writes the workbook to path.
func (x *XLSX) SaveAs(path string) error {
	return x.f.SaveAs(path)
}

// Close releases the workbook.
func (x *XLSX) Close() error {
	return x.f.Close()
}

// ListSheets returns the sheet names in tab order.
func (x *XLSX) ListSheets() ([]string, error) {
	return x.f.GetSheetList(), nil
}

// Sheet returns the named sheet.
func (x *XLSX) Sheet(name string) (Sheet, error) {
	idx, err := x.f.GetSheetIndex(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSheetNotFound, name, err)
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return &xlsxSheet{wb: x, name: name}, nil
}

type xlsxSheet struct {
	wb   *XLSX
	name string
}

func (s *xlsxSheet) Name() string {
	return s.name
}

func (s *xlsxSheet) ReadRange(r cellref.Range) ([][]interface{}, error) {
	c1, r1, c2, r2 := r.Bounds()
	grid := make([][]interface{}, 0, r2-r1+1)
	for row := r1; row <= r2; row++ {
		values := make([]interface{}, 0, c2-c1+1)
		for col := c1; col <= c2; col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return nil, err
			}
			v, err := s.cellValue(cell)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		}
		grid = append(grid, values)
	}
	return grid, nil
}

// cellValue reads one cell as a scalar. Only cells stored as numbers are
// parsed, so text such as "0042" or "1E3" comes back unchanged.
func (s *xlsxSheet) cellValue(cell string) (interface{}, error) {
	raw, err := s.wb.f.GetCellValue(s.name, cell, excelize.Options{RawCellValue: true})
	if err != nil || raw == "" {
		return nil, err
	}
	typ, err := s.wb.f.GetCellType(s.name, cell)
	if err != nil {
		return nil, err
	}
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		return parseValue(raw), nil
	case excelize.CellTypeBool:
		return raw == "1" || raw == "TRUE", nil
	default:
		return raw, nil
	}
}

func (s *xlsxSheet) WriteRange(r cellref.Range, grid [][]interface{}) error {
	c1, r1, _, _ := r.Bounds()
	for i, values := range grid {
		start, err := excelize.CoordinatesToCellName(c1, r1+i)
		if err != nil {
			return err
		}
		row := values
		if err := s.wb.f.SetSheetRow(s.name, start, &row); err != nil {
			return fmt.Errorf("write row %d: %w", r1+i, err)
		}
	}
	return nil
}

func (s *xlsxSheet) ClearRange(r cellref.Range) error {
	return s.eachCell(r, func(cell string) error {
		return s.wb.f.SetCellValue(s.name, cell, nil)
	})
}

func (s *xlsxSheet) ClearFormat(r cellref.Range) error {
	return s.wb.f.SetCellStyle(s.name, r.Start.String(), r.End.String(), 0)
}

func (s *xlsxSheet) SetNumberFormat(r cellref.Range, format string) error {
	return s.updateStyle(r, "numfmt:"+format, func(st *excelize.Style) {
		numFmt := format
		st.NumFmt = 0
		st.CustomNumFmt = &numFmt
	})
}

func (s *xlsxSheet) SetFontFamily(r cellref.Range, family string) error {
	return s.updateStyle(r, "font:"+family, func(st *excelize.Style) {
		if st.Font == nil {
			st.Font = &excelize.Font{}
		}
		st.Font.Family = family
	})
}

func (s *xlsxSheet) SetFontWeight(r cellref.Range, bold bool) error {
	return s.updateStyle(r, fmt.Sprintf("bold:%t", bold), func(st *excelize.Style) {
		if st.Font == nil {
			st.Font = &excelize.Font{}
		}
		st.Font.Bold = bold
	})
}

func (s *xlsxSheet) SetAlignment(r cellref.Range, horizontal, vertical string) error {
	// excelize names the vertical middle "center"
	if vertical == "middle" {
		vertical = "center"
	}
	return s.updateStyle(r, "align:"+horizontal+"/"+vertical, func(st *excelize.Style) {
		if st.Alignment == nil {
			st.Alignment = &excelize.Alignment{}
		}
		st.Alignment.Horizontal = horizontal
		st.Alignment.Vertical = vertical
	})
}

func (s *xlsxSheet) SetFrozenColumns(n int) error {
	if n <= 0 {
		return s.wb.f.SetPanes(s.name, &excelize.Panes{Freeze: false})
	}
	topLeft, err := excelize.CoordinatesToCellName(n+1, 1)
	if err != nil {
		return err
	}
	return s.wb.f.SetPanes(s.name, &excelize.Panes{
		Freeze:      true,
		XSplit:      n,
		TopLeftCell: topLeft,
		ActivePane:  "topRight",
		Selection: []excelize.Selection{
			{SQRef: topLeft, ActiveCell: topLeft, Pane: "topRight"},
		},
	})
}

func (s *xlsxSheet) SetRowHeight(row int, height float64) error {
	return s.wb.f.SetRowHeight(s.name, row, height)
}

func (s *xlsxSheet) AutoResizeColumns(first, last int) error {
	lastRow, err := s.LastRow()
	if err != nil {
		return err
	}
	for col := first; col <= last; col++ {
		widest := 0
		for row := 1; row <= lastRow; row++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			// formatted value, so "$1,200.00" is measured rather than "1200"
			text, err := s.wb.f.GetCellValue(s.name, cell)
			if err != nil {
				return err
			}
			if n := utf8.RuneCountInString(text); n > widest {
				widest = n
			}
		}

		width := float64(widest)*1.1 + 2
		if width < minColumnWidth {
			width = minColumnWidth
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := s.wb.f.SetColWidth(s.name, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

func (s *xlsxSheet) LastRow() (int, error) {
	maxRow, _, err := s.bounds()
	return maxRow + 1, err
}

func (s *xlsxSheet) LastColumn() (int, error) {
	_, maxCol, err := s.bounds()
	return maxCol + 1, err
}

func (s *xlsxSheet) bounds() (int, int, error) {
	rows, err := s.wb.f.GetRows(s.name, excelize.Options{RawCellValue: true})
	if err != nil {
		return -1, -1, err
	}
	maxRow, maxCol := dataBounds(rows)
	return maxRow, maxCol, nil
}

func (s *xlsxSheet) eachCell(r cellref.Range, fn func(cell string) error) error {
	c1, r1, c2, r2 := r.Bounds()
	for row := r1; row <= r2; row++ {
		for col := c1; col <= c2; col++ {
			cell, err := excelize.CoordinatesToCellName(col, row)
			if err != nil {
				return err
			}
			if err := fn(cell); err != nil {
				return err
			}
		}
	}
	return nil
}

// updateStyle applies one change on top of each cell's current style. Derived
// styles are cached per (original style, change) so a column of identically
// styled cells registers a single new style.
func (s *xlsxSheet) updateStyle(r cellref.Range, change string, mutate func(*excelize.Style)) error {
	return s.eachCell(r, func(cell string) error {
		base, err := s.wb.f.GetCellStyle(s.name, cell)
		if err != nil {
			return err
		}
		key := styleKey{base: base, change: change}
		id, ok := s.wb.styles[key]
		if !ok {
			st, err := s.wb.f.GetStyle(base)
			if err != nil {
				return err
			}
			mutate(st)
			if id, err = s.wb.f.NewStyle(st); err != nil {
				return err
			}
			s.wb.styles[key] = id
		}
		return s.wb.f.SetCellStyle(s.name, cell, cell, id)
	})
}
