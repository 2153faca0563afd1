package projdash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/projdash-go/pkg/projdash/models"
	"github.com/ukaji3/projdash-go/pkg/projdash/store"
)

func TestApplyColumnFormatsFollowsHeaderText(t *testing.T) {
	f := newWorkbook(t)
	wb := store.NewXLSX(f)
	dash, err := wb.Sheet("Dashboard")
	require.NoError(t, err)
	require.NoError(t, dash.WriteRange(mustRange(t, "A1:C3"), [][]interface{}{
		{"Project ID", "Total Fee", "% Billed"},
		{"1001", 1000.0, 0.1},
		{"1002", -250.0, 0.25},
	}))

	b, err := NewBuilder(wb, DefaultOptions())
	require.NoError(t, err)

	assignment, err := b.ApplyColumnFormats()
	require.NoError(t, err)
	assert.Equal(t, []string{"B1:B3"}, rangeStrings(assignment[models.FormatCurrency]))
	assert.Equal(t, []string{"C1:C3"}, rangeStrings(assignment[models.FormatPercentage]))

	pct, err := f.GetCellValue("Dashboard", "C3")
	require.NoError(t, err)
	assert.Equal(t, "25.00%", pct)

	// more data arrives, a format-only run reaches the new last row
	require.NoError(t, dash.WriteRange(mustRange(t, "A4:C5"), [][]interface{}{
		{"1003", 5.0, 0.5},
		{"1004", 6.0, 0.75},
	}))
	assignment, err = b.ApplyColumnFormats()
	require.NoError(t, err)
	assert.Equal(t, []string{"B1:B5"}, rangeStrings(assignment[models.FormatCurrency]))
	assert.Equal(t, []string{"C1:C5"}, rangeStrings(assignment[models.FormatPercentage]))

	again, err := b.ApplyColumnFormats()
	require.NoError(t, err)
	assert.Equal(t, assignment, again)
}

func TestApplyColumnFormatsReorderedColumns(t *testing.T) {
	f := newWorkbook(t)
	wb := store.NewXLSX(f)
	dash, err := wb.Sheet("Dashboard")
	require.NoError(t, err)
	require.NoError(t, dash.WriteRange(mustRange(t, "A1:F2"), [][]interface{}{
		{"% Billed", "Total Fee", "Architectural", "Notes", "Fee Spent (%)", "Consultants"},
		{0.1, 1.0, 2.0, "x", 0.3, 4.0},
	}))

	b, err := NewBuilder(wb, DefaultOptions())
	require.NoError(t, err)
	assignment, err := b.ApplyColumnFormats()
	require.NoError(t, err)
	assert.Equal(t, []string{"B1:C2", "F1:F2"}, rangeStrings(assignment[models.FormatCurrency]))
	assert.Equal(t, []string{"A1:A2", "E1:E2"}, rangeStrings(assignment[models.FormatPercentage]))
}

func TestFormatOnlyUsesProjectSheetHeaders(t *testing.T) {
	f := newWorkbook(t)
	p := alpha()
	p.headers = map[string]string{models.FieldTotalBilled: "Invoiced"}
	addProject(t, f, p)
	wb := store.NewXLSX(f)

	b, err := NewBuilder(wb, DefaultOptions())
	require.NoError(t, err)
	_, err = b.Build()
	require.NoError(t, err)

	// a fresh builder has not seen the project headers yet
	fresh, err := NewBuilder(wb, DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, fresh.ClearFormat())

	style, err := f.GetCellStyle("Dashboard", "L2")
	require.NoError(t, err)
	assert.Equal(t, 0, style)

	require.NoError(t, fresh.Format())
	assignment, err := fresh.ApplyColumnFormats()
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"D1:G2", "J1:J2", "L1:M2", "O1:P2"},
		rangeStrings(assignment[models.FormatCurrency]))

	rows, err := f.GetRows("Dashboard")
	require.NoError(t, err)
	assert.Equal(t, "Invoiced", rows[0][11])
}

func TestFormatPresentation(t *testing.T) {
	f := newWorkbook(t)
	addProject(t, f, alpha())

	b, err := NewBuilder(store.NewXLSX(f), DefaultOptions())
	require.NoError(t, err)
	_, err = b.Build()
	require.NoError(t, err)

	panes, err := f.GetPanes("Dashboard")
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 2, panes.XSplit)

	height, err := f.GetRowHeight("Dashboard", 1)
	require.NoError(t, err)
	assert.Equal(t, 60.0, height)

	id, err := f.GetCellStyle("Dashboard", "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(id)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
	assert.Equal(t, "Roboto Mono", style.Font.Family)

	id, err = f.GetCellStyle("Dashboard", "B2")
	require.NoError(t, err)
	style, err = f.GetStyle(id)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.False(t, style.Font.Bold)
	assert.Equal(t, "Roboto Mono", style.Font.Family)
}
