package column

import (
	"fmt"

	"github.com/roach88/jsonsql/internal/types"
)

// Arg is one call argument: a full column, or a one-row vector broadcast to
// every row when Scalar is set.
type Arg struct {
	Vector Vector
	Scalar bool
}

// ColumnArg wraps a full column.
func ColumnArg(v Vector) Arg { return Arg{Vector: v} }

// ScalarArg wraps a literal broadcast to every row.
func ScalarArg(d types.Datum) Arg {
	return Arg{Vector: FromDatum(d, 1), Scalar: true}
}

// Type returns the argument's SQL type.
func (a Arg) Type() types.T { return a.Vector.Type() }

// Row maps an output row to the argument's row.
func (a Arg) Row(i int) int {
	if a.Scalar {
		return 0
	}
	return i
}

// IsNull reports whether the argument is null at output row i.
func (a Arg) IsNull(i int) bool { return a.Vector.IsNull(a.Row(i)) }

// Value returns the argument at output row i.
func (a Arg) Value(i int) any { return a.Vector.Value(a.Row(i)) }

// Rows returns the batch length implied by args: the length of the first
// column argument, or 1 when every argument is scalar.
func Rows(args []Arg) (int, error) {
	n := -1
	for pos, a := range args {
		if a.Scalar {
			if a.Vector.Len() != 1 {
				return 0, fmt.Errorf("argument %d: scalar argument has %d rows", pos, a.Vector.Len())
			}
			continue
		}
		switch {
		case n < 0:
			n = a.Vector.Len()
		case a.Vector.Len() != n:
			return 0, fmt.Errorf("argument %d: column has %d rows, want %d", pos, a.Vector.Len(), n)
		}
	}
	if n < 0 {
		return 1, nil
	}
	return n, nil
}

// Batch is a set of equally long named columns.
type Batch struct {
	rows  int
	names []string
	cols  map[string]Vector
}

// NewBatch returns an empty batch of the given row count.
func NewBatch(rows int) *Batch {
	return &Batch{rows: rows, cols: make(map[string]Vector)}
}

// Add appends a named column.
func (b *Batch) Add(name string, v Vector) error {
	if v.Len() != b.rows {
		return fmt.Errorf("column %q has %d rows, batch has %d", name, v.Len(), b.rows)
	}
	if _, dup := b.cols[name]; dup {
		return fmt.Errorf("duplicate column %q", name)
	}
	b.names = append(b.names, name)
	b.cols[name] = v
	return nil
}

// Rows returns the row count.
func (b *Batch) Rows() int { return b.rows }

// Names returns column names in insertion order.
func (b *Batch) Names() []string { return append([]string(nil), b.names...) }

// Column looks up a column by name.
func (b *Batch) Column(name string) (Vector, bool) {
	v, ok := b.cols[name]
	return v, ok
}
