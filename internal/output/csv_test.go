package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
)

func TestCSVFormatter_Format(t *testing.T) {
	tests := []struct {
		name      string
		columns   []string
		rows      []map[string]interface{}
		wantLines int
	}{
		{
			name:      "empty rows",
			columns:   []string{"id", "name"},
			rows:      []map[string]interface{}{},
			wantLines: 1, // header only
		},
		{
			name:    "single row",
			columns: []string{"id", "name", "age"},
			rows: []map[string]interface{}{
				{"id": int64(1), "name": "alice", "age": int32(30)},
			},
			wantLines: 2, // header + 1 data row
		},
		{
			name:    "multiple rows",
			columns: []string{"id", "name", "age"},
			rows: []map[string]interface{}{
				{"id": int64(1), "name": "alice", "age": int32(30)},
				{"id": int64(2), "name": "bob", "age": int32(25)},
			},
			wantLines: 3, // header + 2 data rows
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			formatter := NewCSVFormatter(&buf)

			if err := formatter.Format(tt.columns, tt.rows); err != nil {
				t.Fatalf("Format() error = %v", err)
			}

			// Parse CSV to verify format
			reader := csv.NewReader(strings.NewReader(buf.String()))
			records, err := reader.ReadAll()
			if err != nil {
				t.Fatalf("Format() produced invalid CSV: %v", err)
			}

			if len(records) != tt.wantLines {
				t.Errorf("Format() produced %d lines, want %d", len(records), tt.wantLines)
			}
		})
	}
}

func TestCSVFormatter_ColumnOrder(t *testing.T) {
	// Output columns follow the given column list, not map iteration order
	columns := []string{"z_last", "a_first", "m_middle"}
	rows := []map[string]interface{}{
		{"z_last": "value1", "a_first": "value2", "m_middle": "value3"},
	}

	var buf bytes.Buffer
	formatter := NewCSVFormatter(&buf)

	if err := formatter.Format(columns, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	reader := csv.NewReader(strings.NewReader(buf.String()))
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}

	header := records[0]
	for i, want := range columns {
		if header[i] != want {
			t.Errorf("column %d should be %q, got %q", i, want, header[i])
		}
	}
	if records[1][0] != "value1" {
		t.Errorf("first cell should be 'value1', got %q", records[1][0])
	}
}

func TestCSVFormatter_TypeFormatting(t *testing.T) {
	columns := []string{"string", "int", "float", "bool", "nil", "missing"}
	rows := []map[string]interface{}{
		{
			"string": "alice",
			"int":    int64(42),
			"float":  float64(3.14),
			"bool":   true,
			"nil":    nil,
		},
	}

	var buf bytes.Buffer
	formatter := NewCSVFormatter(&buf)

	if err := formatter.Format(columns, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	reader := csv.NewReader(strings.NewReader(buf.String()))
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}

	dataRow := records[1]
	want := []string{"alice", "42", "3.14", "true", "", ""}
	for i, w := range want {
		if dataRow[i] != w {
			t.Errorf("%s column should be %q, got %q", columns[i], w, dataRow[i])
		}
	}
}

func TestCSVFormatter_SpecialCharacters(t *testing.T) {
	columns := []string{"name", "quote", "newline"}
	rows := []map[string]interface{}{
		{"name": "Alice, Bob", "quote": `He said "hello"`, "newline": "line1\nline2"},
	}

	var buf bytes.Buffer
	formatter := NewCSVFormatter(&buf)

	if err := formatter.Format(columns, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	// CSV library should handle escaping automatically
	reader := csv.NewReader(strings.NewReader(buf.String()))
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV with special characters: %v", err)
	}

	dataRow := records[1]
	if dataRow[0] != "Alice, Bob" {
		t.Errorf("comma in value not handled correctly")
	}
	if dataRow[1] != `He said "hello"` {
		t.Errorf("quotes in value not handled correctly")
	}
}

func TestCSVFormatter_FormulaInjection(t *testing.T) {
	columns := []string{"v"}
	rows := []map[string]interface{}{
		{"v": "=SUM(A1:A2)"},
	}

	var buf bytes.Buffer
	formatter := NewCSVFormatter(&buf)

	if err := formatter.Format(columns, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	reader := csv.NewReader(strings.NewReader(buf.String()))
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV: %v", err)
	}

	if got := records[1][0]; !strings.HasPrefix(got, "'") {
		t.Errorf("formula value should be quote-prefixed, got %q", got)
	}
}

func TestCSVFormatter_SetOutput(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	formatter := NewCSVFormatter(&buf1)

	columns := []string{"id", "name"}
	rows := []map[string]interface{}{
		{"id": int64(1), "name": "alice"},
	}

	// Write to first buffer
	if err := formatter.Format(columns, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if buf1.Len() == 0 {
		t.Error("First buffer should have content")
	}

	// Change output and write again
	formatter.SetOutput(&buf2)
	if err := formatter.Format(columns, rows); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if buf2.Len() == 0 {
		t.Error("Second buffer should have content")
	}
}
