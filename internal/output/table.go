package output

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// TableFormatter outputs rows as an aligned text table
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new text table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format writes rows as a bordered table in the given column order.
func (t *TableFormatter) Format(columns []string, rows []map[string]interface{}) error {
	tbl := tablewriter.NewWriter(t.writer)
	tbl.SetHeader(columns)
	tbl.SetAutoFormatHeaders(false)
	tbl.SetAutoWrapText(false)

	for _, row := range rows {
		record := make([]string, len(columns))
		for i, col := range columns {
			record[i] = formatValue(row[col])
		}
		tbl.Append(record)
	}

	tbl.Render()
	return nil
}
