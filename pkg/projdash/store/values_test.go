package store

import "testing"

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"0.1", 0.1},
		{"1E-2", 0.01},
		{"hello", "hello"},
		{"", nil},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}

func TestDataBounds(t *testing.T) {
	tests := []struct {
		name           string
		rows           [][]string
		maxRow, maxCol int
	}{
		{"empty", nil, -1, -1},
		{"blank cells only", [][]string{{"", ""}}, -1, -1},
		{"ragged", [][]string{{"a"}, {"", "", "c"}, {""}}, 1, 2},
	}

	for _, tt := range tests {
		maxRow, maxCol := dataBounds(tt.rows)
		if maxRow != tt.maxRow || maxCol != tt.maxCol {
			t.Errorf("%s: dataBounds = (%d, %d), expected (%d, %d)",
				tt.name, maxRow, maxCol, tt.maxRow, tt.maxCol)
		}
	}

	maxRow, maxCol := interfaceBounds([][]interface{}{{"x", nil}, {"", 2.0}})
	if maxRow != 1 || maxCol != 1 {
		t.Errorf("interfaceBounds = (%d, %d), expected (1, 1)", maxRow, maxCol)
	}
}
