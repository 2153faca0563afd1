package models

// ProjectRecord is one dashboard row. A nil entry in Values is a null cell.
type ProjectRecord struct {
	// SheetName is the tab the record was read from.
	SheetName string `json:"sheet_name"`
	// ProjectID is the id extracted from the sheet name.
	ProjectID string `json:"project_id"`
	// Values maps field ID to a coerced value (string or float64) or nil.
	Values map[string]interface{} `json:"values"`
	// Missing is set when the sheet vanished before it could be read.
	Missing bool `json:"missing,omitempty"`
}

// NullRecord returns a record with every schema field set to nil.
func NullRecord(schema Schema, sheetName, projectID string) *ProjectRecord {
	values := make(map[string]interface{}, len(schema))
	for _, f := range schema {
		values[f.ID] = nil
	}
	return &ProjectRecord{
		SheetName: sheetName,
		ProjectID: projectID,
		Values:    values,
		Missing:   true,
	}
}

// Row returns the record's values in schema order.
func (r *ProjectRecord) Row(schema Schema) []interface{} {
	row := make([]interface{}, len(schema))
	for i, f := range schema {
		row[i] = r.Values[f.ID]
	}
	return row
}
