// Package models defines the schema and the records a dashboard build produces.
package models

import (
	"errors"
	"fmt"

	"github.com/ukaji3/projdash-go/pkg/projdash/cellref"
)

// ValueType is the semantic type a field's raw cell value is coerced to.
type ValueType string

const (
	// ValueText coerces to a string; blank becomes "".
	ValueText ValueType = "text"
	// ValueNumber coerces to a float64; blank or unparseable becomes 0.
	ValueNumber ValueType = "number"
)

// FormatClass is the presentational category of a dashboard column.
type FormatClass string

const (
	// FormatNone leaves the column's number format untouched.
	FormatNone FormatClass = ""
	// FormatCurrency renders accounting-style dollars.
	FormatCurrency FormatClass = "currency"
	// FormatPercentage renders fractions as percentages.
	FormatPercentage FormatClass = "percentage"
)

// NumberFormats maps each format class to its number-format string.
var NumberFormats = map[FormatClass]string{
	FormatCurrency:   "$#,##0.00;($#,##0.00)",
	FormatPercentage: "0.00%",
}

// ErrInvalidSchema indicates a schema that cannot drive a build.
var ErrInvalidSchema = errors.New("invalid schema")

// Field maps one logical value to its location on a project sheet.
type Field struct {
	// ID is the unique logical name (e.g. "totalFee").
	ID string `json:"id"`
	// Header is the literal column label, also the fallback when the sheet's
	// own header cell is blank.
	Header string `json:"header"`
	// Cell is the A1 reference of the value on a project sheet.
	Cell string `json:"cell"`
	// Type is the semantic type of the value.
	Type ValueType `json:"type"`
	// Format is the column's format class, if any.
	Format FormatClass `json:"format,omitempty"`
	// HeaderFromSheet takes the column label from the cell one row above Cell.
	HeaderFromSheet bool `json:"header_from_sheet,omitempty"`
}

// HeaderCell returns the reference of the cell holding this field's label on a
// project sheet.
func (f Field) HeaderCell() (cellref.Cell, error) {
	c, err := cellref.ParseCellRef(f.Cell)
	if err != nil {
		return cellref.Cell{}, err
	}
	if c.Row < 2 {
		return cellref.Cell{}, fmt.Errorf("%w: field %q has no row above %s", ErrInvalidSchema, f.ID, f.Cell)
	}
	return cellref.Cell{Col: c.Col, Row: c.Row - 1}, nil
}
