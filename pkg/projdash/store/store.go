// Package store provides the sheet stores a dashboard build reads from and
// writes to.
package store

import (
	"errors"

	"github.com/ukaji3/projdash-go/pkg/projdash/cellref"
)

// ErrSheetNotFound indicates a sheet name that is not in the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// Store is a workbook: an ordered set of named sheets.
type Store interface {
	// ListSheets returns sheet names in the workbook's native order.
	ListSheets() ([]string, error)
	// Sheet returns the named sheet or ErrSheetNotFound.
	Sheet(name string) (Sheet, error)
}

// Sheet is a single tab. Reads return rows of scalars (string, float64,
// int64, bool or nil for blank); rows may be shorter than the range when
// trailing cells are blank.
type Sheet interface {
	Name() string

	ReadRange(r cellref.Range) ([][]interface{}, error)
	WriteRange(r cellref.Range, grid [][]interface{}) error
	ClearRange(r cellref.Range) error
	ClearFormat(r cellref.Range) error
	SetNumberFormat(r cellref.Range, format string) error

	// LastRow and LastColumn return the 1-based bounds of populated cells,
	// or 0 for an empty sheet.
	LastRow() (int, error)
	LastColumn() (int, error)

	SetFontFamily(r cellref.Range, family string) error
	SetFontWeight(r cellref.Range, bold bool) error
	// SetAlignment takes "left", "center" or "right" and "top", "middle" or
	// "bottom".
	SetAlignment(r cellref.Range, horizontal, vertical string) error
	SetFrozenColumns(n int) error
	SetRowHeight(row int, height float64) error
	// AutoResizeColumns fits columns first..last (1-based) to their rendered
	// contents, so number formats must already be applied.
	AutoResizeColumns(first, last int) error
}
