package table

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// buildBatches converts row maps into record batches of at most batchSize
// rows each, in schema column order. Shared by the JSON and Avro loaders.
func buildBatches(schema *arrow.Schema, rows []map[string]interface{}, batchSize int) ([]arrow.Record, error) {
	var batches []arrow.Record
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		rec, err := buildRecord(schema, rows[start:end])
		if err != nil {
			releaseAll(batches)
			return nil, err
		}
		batches = append(batches, rec)
	}
	return batches, nil
}

func buildRecord(schema *arrow.Schema, rows []map[string]interface{}) (arrow.Record, error) {
	bld := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer bld.Release()

	for _, row := range rows {
		for i, field := range schema.Fields() {
			if err := appendValue(bld.Field(i), row[field.Name]); err != nil {
				return nil, fmt.Errorf("column %q: %w", field.Name, err)
			}
		}
	}
	return bld.NewRecord(), nil
}

// appendValue appends one decoded value to the builder for its column,
// converting between the narrow set of Go types the JSON and Avro decoders
// produce and the builder's type. A nil value appends null.
func appendValue(b array.Builder, value interface{}) error {
	if value == nil {
		b.AppendNull()
		return nil
	}

	switch b := b.(type) {
	case *array.BooleanBuilder:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("cannot store %T in a boolean column", value)
		}
		b.Append(v)

	case *array.Int32Builder:
		switch v := value.(type) {
		case int32:
			b.Append(v)
		case int64:
			b.Append(int32(v))
		case int:
			b.Append(int32(v))
		default:
			return fmt.Errorf("cannot store %T in an int32 column", value)
		}

	case *array.Int64Builder:
		switch v := value.(type) {
		case int:
			b.Append(int64(v))
		case int32:
			b.Append(int64(v))
		case int64:
			b.Append(v)
		default:
			return fmt.Errorf("cannot store %T in an int64 column", value)
		}

	case *array.Float32Builder:
		switch v := value.(type) {
		case float32:
			b.Append(v)
		case float64:
			b.Append(float32(v))
		default:
			return fmt.Errorf("cannot store %T in a float32 column", value)
		}

	case *array.Float64Builder:
		switch v := value.(type) {
		case float32:
			b.Append(float64(v))
		case float64:
			b.Append(v)
		case int64:
			b.Append(float64(v))
		case int32:
			b.Append(float64(v))
		default:
			return fmt.Errorf("cannot store %T in a float64 column", value)
		}

	case *array.StringBuilder:
		if v, ok := value.(string); ok {
			b.Append(v)
		} else {
			b.Append(fmt.Sprintf("%v", value))
		}

	case *array.BinaryBuilder:
		switch v := value.(type) {
		case []byte:
			b.Append(v)
		case string:
			b.Append([]byte(v))
		default:
			return fmt.Errorf("cannot store %T in a binary column", value)
		}

	default:
		return fmt.Errorf("unsupported builder type %T", b)
	}
	return nil
}
