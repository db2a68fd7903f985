package table

import (
	"context"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

// loadParquet reads a parquet file into record batches.
func loadParquet(ctx context.Context, path string, opts Options) (*Table, error) {
	rdr, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = rdr.Close() }()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{
		BatchSize: int64(opts.batchSize()),
	}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	schema, err := fr.Schema()
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet schema: %w", err)
	}

	rr, err := fr.GetRecordReader(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create record reader: %w", err)
	}
	defer rr.Release()

	var batches []arrow.Record
	for rr.Next() {
		rec := rr.Record()
		rec.Retain()
		batches = append(batches, rec)
	}
	if err := rr.Err(); err != nil {
		releaseAll(batches)
		return nil, fmt.Errorf("failed to read parquet file %s: %w", path, err)
	}

	return &Table{Schema: schema, Batches: batches}, nil
}

// writeParquet writes the table as a snappy-compressed parquet file, one row
// group per batch.
func writeParquet(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = f.Close() }()

	props := parquet.NewWriterProperties(
		parquet.WithCompression(compress.Codecs.Snappy),
	)
	arrowProps := pqarrow.NewArrowWriterProperties()

	fw, err := pqarrow.NewFileWriter(t.Schema, f, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	for _, b := range t.Batches {
		if err := fw.Write(b); err != nil {
			_ = fw.Close()
			return fmt.Errorf("failed to write parquet batch: %w", err)
		}
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return f.Close()
}
