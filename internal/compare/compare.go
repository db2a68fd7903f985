// Package compare implements the tabular equivalence engine: a row-streaming
// adapter over column-major record batches and a comparator that walks two
// such streams in lockstep, reporting the first discrepancy with full
// coordinates.
//
// The package performs no I/O and emits no text. Loading files into batches
// is the table package's job; rendering outcomes is the caller's.
package compare

import (
	"fmt"
	"math"

	"github.com/apache/arrow-go/v18/arrow"
)

// Options configures a comparison.
type Options struct {
	// Epsilon, when non-nil, enables tolerant equality for floating-point
	// cells of matching width. Must be non-negative. Nil disables tolerance;
	// zero permits only exact equality, which amounts to the same thing.
	Epsilon *float64

	// Absolute switches the epsilon test from the signed difference
	// left - right < epsilon to |left - right| < epsilon. The signed form is
	// the historical behavior and remains the default.
	Absolute bool
}

// TotalRows returns the sum of row counts across batches.
func TotalRows(batches []arrow.Record) int64 {
	var n int64
	for _, b := range batches {
		n += b.NumRows()
	}
	return n
}

// Compare walks two datasets row by row and cell by cell and returns the
// first discrepancy found, or a match. Columns are compared positionally.
//
// Row counts are checked first: when they differ the comparison short-circuits
// with CountMismatch before a single row is extracted. A returned error is an
// engine fault (an unsupported column type during extraction), disjoint from
// the data-level Result.
func Compare(left, right []arrow.Record, opts Options) (Result, error) {
	countLeft := TotalRows(left)
	countRight := TotalRows(right)
	res := Result{LeftCount: countLeft, RightCount: countRight}

	if countLeft != countRight {
		res.Outcome = CountMismatch
		res.Message = fmt.Sprintf("row counts do not match: %d != %d", countLeft, countRight)
		return res, nil
	}

	lit := NewRowIter(left)
	rit := NewRowIter(right)
	for i := int64(0); lit.Next(); i++ {
		if !rit.Next() {
			// Counts are equal, so the right stream can only stop early on
			// an extraction fault.
			break
		}
		a, b := lit.Row(), rit.Row()
		if len(a) != len(b) {
			res.Outcome = RowShapeMismatch
			res.RowIndex = i
			res.LeftRow = a
			res.RightRow = b
			res.Message = fmt.Sprintf("row lengths do not match at index %d: %d != %d", i, len(a), len(b))
			return res, nil
		}
		for j := range a {
			if a[j].Equal(b[j]) {
				continue
			}
			if opts.Epsilon != nil && withinEpsilon(a[j], b[j], *opts.Epsilon, opts.Absolute) {
				continue
			}
			res.Outcome = CellMismatch
			res.RowIndex = i
			res.ColumnIndex = j
			res.LeftRow = a
			res.RightRow = b
			res.Message = fmt.Sprintf("data does not match at row %d column %d: %s != %s", i, j, a[j], b[j])
			return res, nil
		}
	}
	if err := lit.Err(); err != nil {
		return Result{}, err
	}
	if err := rit.Err(); err != nil {
		return Result{}, err
	}
	res.Outcome = Match
	return res, nil
}

// withinEpsilon applies the tolerance policy to a pair of unequal values.
// Only floating-point pairs of the same width qualify; a kind mismatch, a
// null on either side, or any non-float type is a genuine mismatch.
func withinEpsilon(a, b Value, epsilon float64, absolute bool) bool {
	var diff float64
	switch {
	case a.kind == KindFloat32 && b.kind == KindFloat32:
		diff = float64(a.f32 - b.f32)
	case a.kind == KindFloat64 && b.kind == KindFloat64:
		diff = a.f64 - b.f64
	default:
		return false
	}
	if absolute {
		diff = math.Abs(diff)
	}
	return diff < epsilon
}
