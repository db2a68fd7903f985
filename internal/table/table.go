// Package table is the table-loading layer: it reads tabular data files into
// ordered sequences of column-major Arrow record batches, and writes them
// back out. Formats are detected by file extension.
package table

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"go.uber.org/zap"
)

// Format is a supported file format.
type Format int

const (
	FormatAvro Format = iota
	FormatCSV
	FormatJSON
	FormatParquet
)

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatAvro:
		return "avro"
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	case FormatParquet:
		return "parquet"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// DetectFormat determines the file format from the path's extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return 0, fmt.Errorf("could not determine file extension for %q", path)
	}
	switch ext {
	case "avro":
		return FormatAvro, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "parquet", "parq":
		return FormatParquet, nil
	default:
		return 0, fmt.Errorf("unsupported file extension %q", ext)
	}
}

// Options configures loading.
type Options struct {
	// Header indicates that delimited text input carries a header row.
	// Ignored by the other formats.
	Header bool

	// BatchSize caps the number of rows per produced batch. Zero selects a
	// default.
	BatchSize int

	// Logger receives load diagnostics. Nil means no logging.
	Logger *zap.Logger
}

const defaultBatchSize = 1024

func (o Options) batchSize() int {
	if o.BatchSize > 0 {
		return o.BatchSize
	}
	return defaultBatchSize
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

// Table is an immutable dataset: a schema plus an ordered sequence of
// column-major batches sharing that schema. Row order is the concatenation of
// the batches' rows.
type Table struct {
	Schema  *arrow.Schema
	Batches []arrow.Record
}

// NumRows returns the total row count across all batches.
func (t *Table) NumRows() int64 {
	var n int64
	for _, b := range t.Batches {
		n += b.NumRows()
	}
	return n
}

// ColumnNames returns the schema's column names in column order.
func (t *Table) ColumnNames() []string {
	if t.Schema == nil {
		return nil
	}
	names := make([]string, t.Schema.NumFields())
	for i, f := range t.Schema.Fields() {
		names[i] = f.Name
	}
	return names
}

// RowMaps materializes up to limit rows as column-name keyed maps for
// display. A limit <= 0 means all rows. Null cells map to nil.
func (t *Table) RowMaps(limit int) []map[string]interface{} {
	var rows []map[string]interface{}
	for _, b := range t.Batches {
		for i := 0; i < int(b.NumRows()); i++ {
			if limit > 0 && len(rows) >= limit {
				return rows
			}
			row := make(map[string]interface{}, b.NumCols())
			for j := 0; j < int(b.NumCols()); j++ {
				col := b.Column(j)
				if col.IsNull(i) {
					row[b.Schema().Field(j).Name] = nil
					continue
				}
				row[b.Schema().Field(j).Name] = col.GetOneForMarshal(i)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// Release frees the underlying batches. The table must not be used after.
func (t *Table) Release() {
	for _, b := range t.Batches {
		b.Release()
	}
	t.Batches = nil
}

// Load reads the file at path into a Table, dispatching on the detected
// format.
func Load(ctx context.Context, path string, opts Options) (*Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	log := opts.logger()
	log.Debug("loading table", zap.String("path", path), zap.Stringer("format", format))

	var t *Table
	switch format {
	case FormatAvro:
		t, err = loadAvro(path, opts)
	case FormatCSV:
		t, err = loadCSV(path, opts)
	case FormatJSON:
		t, err = loadJSON(path, opts)
	case FormatParquet:
		t, err = loadParquet(ctx, path, opts)
	default:
		err = fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		return nil, err
	}
	log.Debug("loaded table",
		zap.String("path", path),
		zap.Int64("rows", t.NumRows()),
		zap.Int("batches", len(t.Batches)))
	return t, nil
}

// Write writes the table to path in the format implied by the extension.
// Avro output is not supported.
func Write(ctx context.Context, t *Table, path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	switch format {
	case FormatCSV:
		return writeCSV(t, path)
	case FormatJSON:
		return writeJSON(t, path)
	case FormatParquet:
		return writeParquet(t, path)
	case FormatAvro:
		return fmt.Errorf("writing %s files is not supported", format)
	default:
		return fmt.Errorf("unsupported format %s", format)
	}
}
