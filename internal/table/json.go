package table

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/goccy/go-json"
)

// loadJSON reads a newline-delimited JSON file. The schema is inferred from
// the data: column order is alphabetical, column types are the widest numeric
// type seen, falling back to string for mixed columns.
func loadJSON(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var rows []map[string]interface{}
	for {
		var row map[string]interface{}
		if err := dec.Decode(&row); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to decode json row %d: %w", len(rows), err)
		}
		for k, v := range row {
			if n, ok := v.(json.Number); ok {
				row[k] = normalizeNumber(n)
			}
		}
		rows = append(rows, row)
	}

	schema := inferSchema(rows)
	batches, err := buildBatches(schema, rows, opts.batchSize())
	if err != nil {
		return nil, fmt.Errorf("failed to build batches for %s: %w", path, err)
	}
	return &Table{Schema: schema, Batches: batches}, nil
}

// normalizeNumber maps a JSON number to int64 when it is integral and
// representable, float64 otherwise.
func normalizeNumber(n json.Number) interface{} {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return f
}

// inferSchema derives an Arrow schema from decoded rows. All columns are
// nullable; a column with no non-null values becomes a string column.
func inferSchema(rows []map[string]interface{}) *arrow.Schema {
	columnSet := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			columnSet[col] = true
		}
	}
	columns := make([]string, 0, len(columnSet))
	for col := range columnSet {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	fields := make([]arrow.Field, len(columns))
	for i, col := range columns {
		fields[i] = arrow.Field{Name: col, Type: inferColumnType(rows, col), Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

func inferColumnType(rows []map[string]interface{}, col string) arrow.DataType {
	var sawInt, sawFloat, sawBool, sawString bool
	for _, row := range rows {
		switch row[col].(type) {
		case nil:
		case int64:
			sawInt = true
		case float64:
			sawFloat = true
		case bool:
			sawBool = true
		case string:
			sawString = true
		default:
			// Nested objects and arrays degrade to their string rendering.
			sawString = true
		}
	}
	switch {
	case sawString, sawBool && (sawInt || sawFloat):
		return arrow.BinaryTypes.String
	case sawBool:
		return arrow.FixedWidthTypes.Boolean
	case sawFloat:
		return arrow.PrimitiveTypes.Float64
	case sawInt:
		return arrow.PrimitiveTypes.Int64
	default:
		return arrow.BinaryTypes.String
	}
}

// writeJSON writes the table as newline-delimited JSON, one object per row.
func writeJSON(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	for _, row := range t.RowMaps(0) {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("failed to encode json row: %w", err)
		}
	}
	return f.Close()
}
