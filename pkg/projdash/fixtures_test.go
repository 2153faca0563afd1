package projdash

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ukaji3/projdash-go/pkg/projdash/cellref"
	"github.com/ukaji3/projdash-go/pkg/projdash/models"
	"github.com/ukaji3/projdash-go/pkg/projdash/store"
	"github.com/xuri/excelize/v2"
)

type projectFixture struct {
	sheet   string
	code    interface{}
	name    string
	kind    string
	numbers map[string]interface{}
	// headers overrides the label written above a field's data cell.
	headers map[string]string
}

// newWorkbook returns a workbook whose first sheet is the dashboard.
func newWorkbook(t *testing.T) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { f.Close() })
	require.NoError(t, f.SetSheetName("Sheet1", "Dashboard"))
	return f
}

// addProject lays out a project sheet the way the default schema expects it.
func addProject(t *testing.T, f *excelize.File, p projectFixture) {
	t.Helper()
	_, err := f.NewSheet(p.sheet)
	require.NoError(t, err)

	for _, field := range models.DefaultSchema() {
		if field.HeaderFromSheet {
			hc, err := field.HeaderCell()
			require.NoError(t, err)
			label := field.Header
			if custom, ok := p.headers[field.ID]; ok {
				label = custom
			}
			require.NoError(t, f.SetCellValue(p.sheet, hc.String(), label))
		}

		var v interface{}
		switch field.ID {
		case models.FieldProjectID:
			v = p.code
		case models.FieldProjectName:
			v = p.name
		case models.FieldProjectType:
			v = p.kind
		default:
			v = p.numbers[field.ID]
		}
		if v != nil {
			require.NoError(t, f.SetCellValue(p.sheet, field.Cell, v))
		}
	}
}

func alpha() projectFixture {
	return projectFixture{
		sheet: "Proj 1001 Alpha",
		code:  "1001",
		name:  "Alpha",
		kind:  "Residential",
		numbers: map[string]interface{}{
			models.FieldTotalFee:           250000,
			models.FieldArchitectural:      200000,
			models.FieldConsultants:        50000,
			models.FieldUnallocated:        -1500.5,
			models.FieldAllocatedPct:       0.75,
			models.FieldAssignedPct:        0.5,
			models.FieldFeeSpent:           100000,
			models.FieldFeeSpentPct:        0.4,
			models.FieldTotalBilled:        25000,
			models.FieldRemainingToBill:    225000,
			models.FieldBilledPct:          0.1,
			models.FieldTotalReceived:      20000,
			models.FieldRemainingToReceive: 5000,
		},
	}
}

func beta() projectFixture {
	return projectFixture{
		sheet: "Proj 1002 Beta",
		code:  "1002",
		name:  "Beta",
		kind:  "Commercial",
		numbers: map[string]interface{}{
			models.FieldTotalFee:    "not a number",
			models.FieldBilledPct:   0.5,
			models.FieldTotalBilled: 12.5,
		},
	}
}

func mustRange(t *testing.T, s string) cellref.Range {
	t.Helper()
	r, err := cellref.ParseRange(s)
	require.NoError(t, err)
	return r
}

func rangeStrings(ranges []cellref.Range) []string {
	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = r.String()
	}
	return out
}

// vanishingStore lists a sheet that can no longer be opened.
type vanishingStore struct {
	store.Store
	gone string
}

func (s *vanishingStore) ListSheets() ([]string, error) {
	names, err := s.Store.ListSheets()
	return append(names, s.gone), err
}

func (s *vanishingStore) Sheet(name string) (store.Sheet, error) {
	if name == s.gone {
		return nil, store.ErrSheetNotFound
	}
	return s.Store.Sheet(name)
}

// countingSheet counts store round trips.
type countingSheet struct {
	store.Sheet
	reads []string
}

func (s *countingSheet) ReadRange(r cellref.Range) ([][]interface{}, error) {
	s.reads = append(s.reads, r.String())
	return s.Sheet.ReadRange(r)
}

var excelizeRaw = excelize.Options{RawCellValue: true}

// projectCells lays out p the way addProject does, keyed by A1 reference.
func projectCells(t *testing.T, p projectFixture) map[string]interface{} {
	t.Helper()
	cells := make(map[string]interface{})
	for _, field := range models.DefaultSchema() {
		if field.HeaderFromSheet {
			hc, err := field.HeaderCell()
			require.NoError(t, err)
			cells[hc.String()] = field.Header
		}
		switch field.ID {
		case models.FieldProjectID:
			cells[field.Cell] = p.code
		case models.FieldProjectName:
			cells[field.Cell] = p.name
		case models.FieldProjectType:
			cells[field.Cell] = p.kind
		default:
			if v, ok := p.numbers[field.ID]; ok {
				cells[field.Cell] = v
			}
		}
	}
	return cells
}

// goneOnReadStore hands out a sheet whose tab disappears before the first read.
type goneOnReadStore struct {
	store.Store
	gone string
}

func (s *goneOnReadStore) Sheet(name string) (store.Sheet, error) {
	sh, err := s.Store.Sheet(name)
	if err != nil || name != s.gone {
		return sh, err
	}
	return goneSheet{sh}, nil
}

type goneSheet struct {
	store.Sheet
}

func (s goneSheet) ReadRange(cellref.Range) ([][]interface{}, error) {
	return nil, store.ErrSheetNotFound
}
