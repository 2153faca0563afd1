package models

import (
	"errors"
	"testing"

	"github.com/ukaji3/projdash-go/pkg/projdash/cellref"
)

func TestDefaultSchemaIsValid(t *testing.T) {
	s := DefaultSchema()
	if err := s.Validate(); err != nil {
		t.Fatalf("DefaultSchema().Validate() failed: %v", err)
	}
	if len(s) != 16 {
		t.Errorf("expected 16 fields, got %d", len(s))
	}
	if s[0].ID != FieldProjectID || s[1].ID != FieldProjectName {
		t.Errorf("expected code and name first, got %q, %q", s[0].ID, s[1].ID)
	}
}

func TestSchemaValidate(t *testing.T) {
	tests := []struct {
		name    string
		schema  Schema
		wantErr error
	}{
		{"empty", Schema{}, ErrInvalidSchema},
		{
			"duplicate id",
			Schema{{ID: "a", Cell: "A1", Type: ValueText}, {ID: "a", Cell: "B1", Type: ValueText}},
			ErrInvalidSchema,
		},
		{
			"shared cell",
			Schema{{ID: "a", Cell: "A1", Type: ValueText}, {ID: "b", Cell: "$A$1", Type: ValueText}},
			ErrInvalidSchema,
		},
		{"bad cell", Schema{{ID: "a", Cell: "1A", Type: ValueText}}, cellref.ErrMalformedRef},
		{"unknown type", Schema{{ID: "a", Cell: "A1", Type: "date"}}, ErrInvalidSchema},
		{"unknown format", Schema{{ID: "a", Cell: "A1", Type: ValueNumber, Format: "fancy"}}, ErrInvalidSchema},
		{
			"header above row 1",
			Schema{{ID: "a", Cell: "A1", Type: ValueNumber, HeaderFromSheet: true}},
			ErrInvalidSchema,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.schema.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}

func TestFieldHeaderCell(t *testing.T) {
	f, _ := DefaultSchema().Field(FieldTotalFee)
	c, err := f.HeaderCell()
	if err != nil {
		t.Fatalf("HeaderCell failed: %v", err)
	}
	if c.String() != "G2" {
		t.Errorf("HeaderCell() = %s, expected G2", c)
	}
}

func TestTableGrid(t *testing.T) {
	schema := Schema{
		{ID: "id", Header: "Code", Cell: "A1", Type: ValueText},
		{ID: "fee", Header: "Fee", Cell: "B1", Type: ValueNumber},
	}
	table := &DashboardTable{
		Headers: []string{"Code", "Fee"},
		Records: []*ProjectRecord{
			{ProjectID: "1001", Values: map[string]interface{}{"id": "1001", "fee": 10.0}},
			NullRecord(schema, "Proj 1002", "1002"),
		},
	}

	grid := table.Grid(schema)
	if len(grid) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(grid))
	}
	if grid[0][0] != "Code" || grid[1][1] != 10.0 {
		t.Errorf("unexpected grid %v", grid)
	}
	if grid[2][0] != nil || grid[2][1] != nil {
		t.Errorf("null record row = %v, expected all nil", grid[2])
	}
	if got := table.MissingSheets(); len(got) != 1 || got[0] != "Proj 1002" {
		t.Errorf("MissingSheets() = %v, expected [Proj 1002]", got)
	}
}
