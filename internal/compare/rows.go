package compare

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// RowIter presents an ordered sequence of column-major record batches as a
// single forward-only stream of rows, hiding batch boundaries. Rows are built
// lazily, one per Next call; the iterator never materializes a row-major copy
// of the input.
//
// Usage follows the scanner idiom:
//
//	it := compare.NewRowIter(batches)
//	for it.Next() {
//	    row := it.Row()
//	    ...
//	}
//	if err := it.Err(); err != nil {
//	    ...
//	}
//
// The iterator borrows the batches; it never mutates or releases them.
type RowIter struct {
	batches []arrow.Record
	batch   int
	offset  int
	row     Row
	err     error
}

// NewRowIter creates a row iterator over the given batches. The batches must
// share one schema; their concatenation in slice order defines the row order.
func NewRowIter(batches []arrow.Record) *RowIter {
	return &RowIter{batches: batches}
}

// Next advances to the next row. It returns false when all batches are
// exhausted or when extraction fails; the two cases are distinguished by Err.
func (it *RowIter) Next() bool {
	if it.err != nil {
		return false
	}
	for it.batch < len(it.batches) {
		b := it.batches[it.batch]
		if it.offset >= int(b.NumRows()) {
			it.batch++
			it.offset = 0
			continue
		}
		row, err := extractRow(b, it.offset)
		if err != nil {
			it.err = err
			return false
		}
		it.row = row
		it.offset++
		return true
	}
	return false
}

// Row returns the row produced by the last successful Next call.
func (it *RowIter) Row() Row { return it.row }

// Err returns the extraction error that terminated iteration, if any. An
// unsupported column type is an engine fault, never silently downgraded to a
// null or skipped cell.
func (it *RowIter) Err() error { return it.err }

// extractRow builds one row from a batch at the given offset, dispatching on
// the concrete array type of every column. The dispatch is the single place
// that enumerates the supported column types; anything else fails fast.
func extractRow(b arrow.Record, offset int) (Row, error) {
	row := make(Row, 0, b.NumCols())
	for j := 0; j < int(b.NumCols()); j++ {
		col := b.Column(j)
		if col.IsNull(offset) {
			row = append(row, NullValue())
			continue
		}
		switch arr := col.(type) {
		case *array.Int8:
			row = append(row, Int8Value(arr.Value(offset)))
		case *array.Int16:
			row = append(row, Int16Value(arr.Value(offset)))
		case *array.Int32:
			row = append(row, Int32Value(arr.Value(offset)))
		case *array.Int64:
			row = append(row, Int64Value(arr.Value(offset)))
		case *array.Uint8:
			row = append(row, Uint8Value(arr.Value(offset)))
		case *array.Uint16:
			row = append(row, Uint16Value(arr.Value(offset)))
		case *array.Uint32:
			row = append(row, Uint32Value(arr.Value(offset)))
		case *array.Uint64:
			row = append(row, Uint64Value(arr.Value(offset)))
		case *array.Float32:
			row = append(row, Float32Value(arr.Value(offset)))
		case *array.Float64:
			row = append(row, Float64Value(arr.Value(offset)))
		case *array.String:
			row = append(row, Utf8Value(arr.Value(offset)))
		case *array.Date32:
			row = append(row, Date32Value(int32(arr.Value(offset))))
		case *array.Date64:
			row = append(row, Date64Value(int64(arr.Value(offset))))
		default:
			return nil, fmt.Errorf("unsupported column type %s for column %q",
				col.DataType(), b.Schema().Field(j).Name)
		}
	}
	return row, nil
}
