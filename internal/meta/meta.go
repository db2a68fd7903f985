// Package meta reads parquet footer metadata: file-level information plus
// per-row-group, per-column statistics.
package meta

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"
)

// FileInfo is the decoded footer of a parquet file.
type FileInfo struct {
	Version   int32
	CreatedBy string
	NumRows   int64
	RowGroups []RowGroupInfo
}

// RowGroupInfo describes one row group.
type RowGroupInfo struct {
	NumRows       int64
	TotalByteSize int64
	Columns       []ColumnInfo
}

// ColumnInfo describes one column chunk within a row group. Statistics that
// the writer did not record are rendered as "N/A".
type ColumnInfo struct {
	Name          string
	PhysicalType  string
	LogicalType   string
	NullCount     int64
	DistinctCount int64
	Min           string
	Max           string
}

// Read decodes the footer of the parquet file at path.
func Read(path string) (*FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	md := pf.Metadata()
	logical := leafLogicalTypes(pf.Schema())

	info := &FileInfo{
		Version:   md.Version,
		CreatedBy: md.CreatedBy,
		NumRows:   md.NumRows,
	}
	for _, rg := range md.RowGroups {
		rgInfo := RowGroupInfo{
			NumRows:       rg.NumRows,
			TotalByteSize: rg.TotalByteSize,
		}
		for _, col := range rg.Columns {
			cm := col.MetaData
			name := strings.Join(cm.PathInSchema, ".")
			rgInfo.Columns = append(rgInfo.Columns, ColumnInfo{
				Name:          name,
				PhysicalType:  cm.Type.String(),
				LogicalType:   logical[name],
				NullCount:     cm.Statistics.NullCount,
				DistinctCount: cm.Statistics.DistinctCount,
				Min:           decodeStat(cm.Type, cm.Statistics.MinValue, cm.Statistics.Min),
				Max:           decodeStat(cm.Type, cm.Statistics.MaxValue, cm.Statistics.Max),
			})
		}
		info.RowGroups = append(info.RowGroups, rgInfo)
	}
	return info, nil
}

// leafLogicalTypes maps dot-notation leaf column names to their logical type
// names. Columns without a logical type map to the empty string.
func leafLogicalTypes(schema *parquet.Schema) map[string]string {
	types := make(map[string]string)
	for _, field := range schema.Fields() {
		collectLeafTypes(field, "", types)
	}
	return types
}

func collectLeafTypes(field parquet.Field, prefix string, types map[string]string) {
	name := field.Name()
	if prefix != "" {
		name = prefix + "." + name
	}

	children := field.Fields()
	if len(children) > 0 {
		for _, child := range children {
			collectLeafTypes(child, name, types)
		}
		return
	}

	if t := field.Type(); t != nil {
		if lt := t.LogicalType(); lt != nil {
			types[name] = lt.String()
		}
	}
}

// decodeStat renders a min/max statistic as text. Writers record either the
// modern MinValue/MaxValue fields or the deprecated Min/Max ones; the modern
// field wins when both are present.
func decodeStat(typ format.Type, value, deprecated []byte) string {
	if len(value) == 0 {
		value = deprecated
	}
	if len(value) == 0 {
		return "N/A"
	}

	switch typ {
	case format.Boolean:
		if len(value) < 1 {
			return "N/A"
		}
		return fmt.Sprintf("%t", value[0] != 0)
	case format.Int32:
		if len(value) < 4 {
			return "N/A"
		}
		return fmt.Sprintf("%d", int32(binary.LittleEndian.Uint32(value)))
	case format.Int64:
		if len(value) < 8 {
			return "N/A"
		}
		return fmt.Sprintf("%d", int64(binary.LittleEndian.Uint64(value)))
	case format.Float:
		if len(value) < 4 {
			return "N/A"
		}
		return fmt.Sprintf("%v", math.Float32frombits(binary.LittleEndian.Uint32(value)))
	case format.Double:
		if len(value) < 8 {
			return "N/A"
		}
		return fmt.Sprintf("%v", math.Float64frombits(binary.LittleEndian.Uint64(value)))
	case format.ByteArray, format.FixedLenByteArray:
		if utf8.Valid(value) {
			return string(value)
		}
		return hex.EncodeToString(value)
	default:
		return hex.EncodeToString(value)
	}
}
