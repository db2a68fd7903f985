package table

import (
	"bufio"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/goccy/go-json"
	"github.com/linkedin/goavro/v2"
)

// loadAvro reads an Avro object container file. The Arrow schema is derived
// from the writer schema embedded in the file, preserving field order.
func loadAvro(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	ocf, err := goavro.NewOCFReader(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("failed to open avro file: %w", err)
	}

	schema, err := avroToArrowSchema(ocf.Codec().Schema())
	if err != nil {
		return nil, fmt.Errorf("unsupported avro schema in %s: %w", path, err)
	}

	var rows []map[string]interface{}
	for ocf.Scan() {
		datum, err := ocf.Read()
		if err != nil {
			return nil, fmt.Errorf("failed to read avro row %d: %w", len(rows), err)
		}
		m, ok := datum.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("avro row %d is not a record: %T", len(rows), datum)
		}
		for k, v := range m {
			m[k] = unwrapUnion(v)
		}
		rows = append(rows, m)
	}
	if err := ocf.Err(); err != nil {
		return nil, fmt.Errorf("failed to read avro file %s: %w", path, err)
	}

	batches, err := buildBatches(schema, rows, opts.batchSize())
	if err != nil {
		return nil, fmt.Errorf("failed to build batches for %s: %w", path, err)
	}
	return &Table{Schema: schema, Batches: batches}, nil
}

// unwrapUnion strips goavro's single-entry union wrapper, e.g.
// {"long": 5} becomes 5. Nulls decode as plain nil already.
func unwrapUnion(v interface{}) interface{} {
	m, ok := v.(map[string]interface{})
	if !ok || len(m) != 1 {
		return v
	}
	for _, inner := range m {
		return inner
	}
	return v
}

// avroField is the subset of an Avro record schema needed to derive columns.
// Field order in the JSON array is the column order.
type avroField struct {
	Name string      `json:"name"`
	Type interface{} `json:"type"`
}

func avroToArrowSchema(avroSchema string) (*arrow.Schema, error) {
	var rec struct {
		Type   string      `json:"type"`
		Fields []avroField `json:"fields"`
	}
	if err := json.Unmarshal([]byte(avroSchema), &rec); err != nil {
		return nil, fmt.Errorf("failed to parse avro schema: %w", err)
	}
	if rec.Type != "record" {
		return nil, fmt.Errorf("top-level avro type must be a record, got %q", rec.Type)
	}

	fields := make([]arrow.Field, len(rec.Fields))
	for i, af := range rec.Fields {
		dt, nullable, err := avroFieldType(af.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", af.Name, err)
		}
		fields[i] = arrow.Field{Name: af.Name, Type: dt, Nullable: nullable}
	}
	return arrow.NewSchema(fields, nil), nil
}

// avroFieldType maps an Avro field type to an Arrow type. Unions are only
// supported in the ["null", T] nullable form.
func avroFieldType(t interface{}) (arrow.DataType, bool, error) {
	switch t := t.(type) {
	case string:
		dt, err := avroPrimitiveType(t)
		return dt, false, err
	case []interface{}:
		var nullable bool
		var dt arrow.DataType
		for _, member := range t {
			name, ok := member.(string)
			if !ok {
				return nil, false, fmt.Errorf("unsupported complex union member %v", member)
			}
			if name == "null" {
				nullable = true
				continue
			}
			if dt != nil {
				return nil, false, fmt.Errorf("unsupported multi-type union %v", t)
			}
			var err error
			dt, err = avroPrimitiveType(name)
			if err != nil {
				return nil, false, err
			}
		}
		if dt == nil {
			return nil, false, fmt.Errorf("union %v has no concrete type", t)
		}
		return dt, nullable, nil
	default:
		return nil, false, fmt.Errorf("unsupported avro type %v", t)
	}
}

func avroPrimitiveType(name string) (arrow.DataType, error) {
	switch name {
	case "boolean":
		return arrow.FixedWidthTypes.Boolean, nil
	case "int":
		return arrow.PrimitiveTypes.Int32, nil
	case "long":
		return arrow.PrimitiveTypes.Int64, nil
	case "float":
		return arrow.PrimitiveTypes.Float32, nil
	case "double":
		return arrow.PrimitiveTypes.Float64, nil
	case "string":
		return arrow.BinaryTypes.String, nil
	case "bytes":
		return arrow.BinaryTypes.Binary, nil
	default:
		return nil, fmt.Errorf("unsupported avro type %q", name)
	}
}
