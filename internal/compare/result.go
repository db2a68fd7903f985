package compare

import "fmt"

// Outcome is the data-level result of a comparison. It never encodes engine
// failure; extraction faults surface as ordinary errors from Compare.
type Outcome int

const (
	// Match means the datasets are row-for-row, cell-for-cell equivalent.
	Match Outcome = iota
	// CountMismatch means the total row counts differ. Detected before any
	// row is read.
	CountMismatch
	// RowShapeMismatch means two rows at the same index have different
	// lengths. A structural defect, never subject to epsilon tolerance.
	RowShapeMismatch
	// CellMismatch means two cells at the same (row, column) position hold
	// genuinely different values.
	CellMismatch
)

// Result is the immutable outcome of one comparison run. Which fields are
// meaningful depends on Outcome: counts for CountMismatch, row/column indices
// and row snapshots for the row-level outcomes.
type Result struct {
	Outcome Outcome

	// LeftCount and RightCount are the total row counts of the two inputs.
	// Always populated.
	LeftCount  int64
	RightCount int64

	// RowIndex locates the first divergent row for RowShapeMismatch and
	// CellMismatch. ColumnIndex additionally locates the cell for
	// CellMismatch.
	RowIndex    int64
	ColumnIndex int

	// LeftRow and RightRow are full snapshots of the divergent row pair.
	LeftRow  Row
	RightRow Row

	// Message is a human-readable explanation of the mismatch.
	Message string
}

// Matched reports whether the comparison found no discrepancy.
func (r Result) Matched() bool { return r.Outcome == Match }

// String renders the result for display.
func (r Result) String() string {
	switch r.Outcome {
	case CountMismatch:
		return fmt.Sprintf("files are different: %s", r.Message)
	case RowShapeMismatch, CellMismatch:
		return fmt.Sprintf("row mismatch: %s\n left: %s\nright: %s", r.Message, r.LeftRow, r.RightRow)
	default:
		return "files match"
	}
}
