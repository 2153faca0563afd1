// Package cellref provides A1-style cell reference arithmetic and the
// range compression used to batch sheet reads and writes.
package cellref

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedRef indicates a string that is not an A1 cell reference.
var ErrMalformedRef = errors.New("malformed cell reference")

// ErrNegativeIndex indicates a negative 0-based column index.
var ErrNegativeIndex = errors.New("column index must be non-negative")

// MaxColumns is the widest sheet supported, column XFD.
const MaxColumns = 16384

var cellRefPattern = regexp.MustCompile(`^([A-Z]{1,3})([0-9]+)$`)

// Cell is a decoded A1 cell reference.
type Cell struct {
	// Col is the column letters (e.g. "G").
	Col string
	// Row is the row number (1-based).
	Row int
}

// String returns the A1 notation of the cell.
func (c Cell) String() string {
	return c.Col + strconv.Itoa(c.Row)
}

// ColNum returns the 1-based column number of the cell.
func (c Cell) ColNum() int {
	return ColumnToNumber(c.Col)
}

// ColumnToNumber decodes column letters into a 1-based column number ("A" = 1).
func ColumnToNumber(letters string) int {
	num := 0
	for i := 0; i < len(letters); i++ {
		num = num*26 + int(letters[i]-'A'+1)
	}
	return num
}

// NumberToColumn encodes a 0-based column index into column letters (0 = "A").
func NumberToColumn(index int) (string, error) {
	if index < 0 {
		return "", fmt.Errorf("%w: %d", ErrNegativeIndex, index)
	}

	var letters []byte
	for index >= 0 {
		letters = append([]byte{byte('A' + index%26)}, letters...)
		index = index/26 - 1
	}
	return string(letters), nil
}

// ParseCellRef splits an A1 reference into its column letters and row.
// Absolute markers ($G$3) are accepted and dropped.
func ParseCellRef(ref string) (Cell, error) {
	m := cellRefPattern.FindStringSubmatch(strings.ReplaceAll(ref, "$", ""))
	if m == nil {
		return Cell{}, fmt.Errorf("%w: %q", ErrMalformedRef, ref)
	}
	if ColumnToNumber(m[1]) > MaxColumns {
		return Cell{}, fmt.Errorf("%w: %q is past column XFD", ErrMalformedRef, ref)
	}
	row, err := strconv.Atoi(m[2])
	if err != nil || row < 1 {
		return Cell{}, fmt.Errorf("%w: %q", ErrMalformedRef, ref)
	}
	return Cell{Col: m[1], Row: row}, nil
}

// IsColumnAdjacent reports whether column b immediately follows column a.
func IsColumnAdjacent(a, b string) bool {
	return ColumnToNumber(b) == ColumnToNumber(a)+1
}

// IsColumnRangeValid reports whether start does not sort after end.
func IsColumnRangeValid(start, end string) bool {
	return ColumnToNumber(start) <= ColumnToNumber(end)
}

// NextColumn returns the column letters following col.
func NextColumn(col string) string {
	// ColumnToNumber is 1-based, so the 1-based successor is the 0-based index of
	// the next column.
	next, _ := NumberToColumn(ColumnToNumber(col))
	return next
}
