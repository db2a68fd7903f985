// Package output provides formatters for rendering rows to a terminal or
// pipeline.
//
// Supported formats:
//   - Table: aligned text table with a header row
//   - JSON Lines: one JSON object per line
//   - CSV: comma-separated values with a header row
//
// All formatters take rows as []map[string]interface{} keyed by column name,
// plus an explicit column list that fixes the output column order.
package output

import (
	"fmt"
	"io"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// Format writes rows in the formatter's specific format. Columns fixes
	// the column order; rows missing a column render as null.
	Format(columns []string, rows []map[string]interface{}) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// New returns a formatter by name: "table", "csv", or "jsonl".
func New(name string, w io.Writer) (Formatter, error) {
	switch name {
	case "table":
		return NewTableFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "jsonl":
		return NewJSONFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", name)
	}
}
