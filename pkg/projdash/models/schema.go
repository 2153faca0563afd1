package models

import (
	"fmt"

	"github.com/ukaji3/projdash-go/pkg/projdash/cellref"
)

// Field IDs of the default project sheet layout.
const (
	FieldProjectID          = "projectId"
	FieldProjectName        = "projectName"
	FieldProjectType        = "projectType"
	FieldTotalFee           = "totalFee"
	FieldArchitectural      = "architectural"
	FieldConsultants        = "consultants"
	FieldUnallocated        = "unallocated"
	FieldAllocatedPct       = "allocatedPct"
	FieldAssignedPct        = "assignedPct"
	FieldFeeSpent           = "feeSpent"
	FieldFeeSpentPct        = "feeSpentPct"
	FieldTotalBilled        = "totalBilled"
	FieldRemainingToBill    = "remainingToBill"
	FieldBilledPct          = "billedPct"
	FieldTotalReceived      = "totalReceived"
	FieldRemainingToReceive = "remainingToReceive"
)

// Schema is the ordered list of fields; dashboard columns follow this order.
type Schema []Field

// DefaultSchema returns the layout of the firm's project sheets.
func DefaultSchema() Schema {
	money := func(id, header, cell string) Field {
		return Field{ID: id, Header: header, Cell: cell, Type: ValueNumber, Format: FormatCurrency, HeaderFromSheet: true}
	}
	pct := func(id, header, cell string) Field {
		return Field{ID: id, Header: header, Cell: cell, Type: ValueNumber, Format: FormatPercentage, HeaderFromSheet: true}
	}

	return Schema{
		{ID: FieldProjectID, Header: "Code", Cell: "E2", Type: ValueText},
		{ID: FieldProjectName, Header: "Project Name", Cell: "B2", Type: ValueText},
		{ID: FieldProjectType, Header: "Project Type", Cell: "Q3", Type: ValueText, HeaderFromSheet: true},
		money(FieldTotalFee, "Total Fee", "G3"),
		money(FieldArchitectural, "Architectural", "H3"),
		money(FieldConsultants, "Consultants", "I3"),
		money(FieldUnallocated, "Unallocated ($)", "K3"),
		pct(FieldAllocatedPct, "Allocated (%)", "L3"),
		pct(FieldAssignedPct, "Assigned (%)", "M3"),
		money(FieldFeeSpent, "Fee Spent ($)", "N3"),
		pct(FieldFeeSpentPct, "Fee Spent (%)", "O3"),
		money(FieldTotalBilled, "Total Billed", "S3"),
		money(FieldRemainingToBill, "Remaining to Bill", "T3"),
		pct(FieldBilledPct, "% Billed", "U3"),
		money(FieldTotalReceived, "Total Received", "V3"),
		money(FieldRemainingToReceive, "Remaining to Receive", "W3"),
	}
}

// Validate checks that field IDs are unique, cells are distinct A1 references
// and every sheet-sourced header has a row above its data cell.
func (s Schema) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: no fields", ErrInvalidSchema)
	}
	ids := make(map[string]bool, len(s))
	cells := make(map[string]string, len(s))
	for _, f := range s {
		if f.ID == "" {
			return fmt.Errorf("%w: field with empty id", ErrInvalidSchema)
		}
		if ids[f.ID] {
			return fmt.Errorf("%w: duplicate field id %q", ErrInvalidSchema, f.ID)
		}
		ids[f.ID] = true

		c, err := cellref.ParseCellRef(f.Cell)
		if err != nil {
			return fmt.Errorf("field %q: %w", f.ID, err)
		}
		if other, ok := cells[c.String()]; ok {
			return fmt.Errorf("%w: fields %q and %q share cell %s", ErrInvalidSchema, other, f.ID, c)
		}
		cells[c.String()] = f.ID

		if f.Type != ValueText && f.Type != ValueNumber {
			return fmt.Errorf("%w: field %q has unknown type %q", ErrInvalidSchema, f.ID, f.Type)
		}
		if f.Format != FormatNone {
			if _, ok := NumberFormats[f.Format]; !ok {
				return fmt.Errorf("%w: field %q has unknown format %q", ErrInvalidSchema, f.ID, f.Format)
			}
		}
		if f.HeaderFromSheet {
			if _, err := f.HeaderCell(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Headers returns the literal labels in column order.
func (s Schema) Headers() []string {
	headers := make([]string, len(s))
	for i, f := range s {
		headers[i] = f.Header
	}
	return headers
}

// Field returns the field with the given ID.
func (s Schema) Field(id string) (Field, bool) {
	for _, f := range s {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}
