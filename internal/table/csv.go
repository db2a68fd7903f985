package table

import (
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/csv"
)

// loadCSV reads a delimited text file, inferring the schema from the data.
// Empty strings are read as nulls.
func loadCSV(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rdr := csv.NewInferringReader(f,
		csv.WithChunk(opts.batchSize()),
		csv.WithHeader(opts.Header),
		csv.WithNullReader(true, ""),
	)
	defer rdr.Release()

	var batches []arrow.Record
	for rdr.Next() {
		rec := rdr.Record()
		rec.Retain()
		batches = append(batches, rec)
	}
	if err := rdr.Err(); err != nil {
		releaseAll(batches)
		return nil, fmt.Errorf("failed to read csv file %s: %w", path, err)
	}

	schema := rdr.Schema()
	if schema == nil {
		// Empty input: no rows were read, so nothing was inferred.
		schema = arrow.NewSchema(nil, nil)
	}
	return &Table{Schema: schema, Batches: batches}, nil
}

// writeCSV writes the table as delimited text with a header row.
func writeCSV(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f, t.Schema, csv.WithHeader(true))
	for _, b := range t.Batches {
		if err := w.Write(b); err != nil {
			return fmt.Errorf("failed to write csv batch: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush csv writer: %w", err)
	}
	return f.Close()
}

func releaseAll(batches []arrow.Record) {
	for _, b := range batches {
		b.Release()
	}
}
