package column

import (
	"fmt"

	"github.com/roach88/jsonsql/internal/types"
	"github.com/roach88/jsonsql/internal/union"
)

// Vector is a nullable column of one SQL type.
// Only *Vec[T] implements it.
type Vector interface {
	Type() types.T
	Len() int
	IsNull(i int) bool
	// Value returns the Go value of row i, or nil for a null cell.
	Value(i int) any
	vector()
}

// Vec is a column of T. A nil valid slice means every cell is valid.
type Vec[T any] struct {
	typ    types.T
	values []T
	valid  []bool
}

// Concrete vector shapes.
type (
	Nulls     = Vec[struct{}]
	Bools     = Vec[bool]
	Ints      = Vec[int64]
	Floats    = Vec[float64]
	Texts     = Vec[string]
	Unions    = Vec[union.Value]
	TextLists = Vec[[]string]
)

func (*Vec[T]) vector() {}

// New returns an empty vector of type t with room for n rows. The Go element
// type must match t; use the typed constructors below where possible.
func New[T any](t types.T, n int) *Vec[T] {
	return &Vec[T]{typ: t, values: make([]T, 0, n)}
}

func NewNulls(n int) *Nulls {
	v := New[struct{}](types.Null, n)
	for range n {
		v.AppendNull()
	}
	return v
}

func NewBools(n int) *Bools         { return New[bool](types.Bool, n) }
func NewFloats(n int) *Floats       { return New[float64](types.Float64, n) }
func NewUnions(n int) *Unions       { return New[union.Value](types.Union, n) }
func NewTextLists(n int) *TextLists { return New[[]string](types.TextList, n) }

// NewInts returns an integer vector of Int64 or Int32.
func NewInts(t types.T, n int) *Ints {
	if !t.IsInteger() {
		panic(fmt.Sprintf("column: %s is not an integer type", t))
	}
	return New[int64](t, n)
}

// NewTexts returns a text vector of Text or Binary.
func NewTexts(t types.T, n int) *Texts {
	if t != types.Text && t != types.Binary {
		panic(fmt.Sprintf("column: %s is not a text type", t))
	}
	return New[string](t, n)
}

func (v *Vec[T]) Type() types.T { return v.typ }
func (v *Vec[T]) Len() int      { return len(v.values) }

func (v *Vec[T]) IsNull(i int) bool {
	return v.valid != nil && !v.valid[i]
}

// Get returns row i and whether it is valid.
func (v *Vec[T]) Get(i int) (T, bool) {
	if v.IsNull(i) {
		var zero T
		return zero, false
	}
	return v.values[i], true
}

func (v *Vec[T]) Value(i int) any {
	if v.IsNull(i) {
		return nil
	}
	return v.values[i]
}

// Append adds a valid cell.
func (v *Vec[T]) Append(x T) {
	v.values = append(v.values, x)
	if v.valid != nil {
		v.valid = append(v.valid, true)
	}
}

// AppendNull adds a null cell.
func (v *Vec[T]) AppendNull() {
	if v.valid == nil {
		v.valid = make([]bool, len(v.values), cap(v.values))
		for i := range v.valid {
			v.valid[i] = true
		}
	}
	var zero T
	v.values = append(v.values, zero)
	v.valid = append(v.valid, false)
}

// AppendOK appends x when ok, a null otherwise.
func (v *Vec[T]) AppendOK(x T, ok bool) {
	if ok {
		v.Append(x)
		return
	}
	v.AppendNull()
}

// NullCount returns the number of null cells.
func (v *Vec[T]) NullCount() int {
	n := 0
	for _, ok := range v.valid {
		if !ok {
			n++
		}
	}
	return n
}

// FromDatum builds an n-row constant vector from a literal.
func FromDatum(d types.Datum, n int) Vector {
	switch x := d.(type) {
	case types.DBool:
		return fill(NewBools(n), bool(x), n)
	case types.DInt:
		return fill(NewInts(types.Int64, n), int64(x), n)
	case types.DFloat:
		return fill(NewFloats(n), float64(x), n)
	case types.DString:
		return fill(NewTexts(types.Text, n), string(x), n)
	default:
		return NewNulls(n)
	}
}

func fill[T any](v *Vec[T], x T, n int) *Vec[T] {
	for range n {
		v.Append(x)
	}
	return v
}

// Datum returns row i of v as a literal. Union and list cells have no literal
// form and report false.
func Datum(v Vector, i int) (types.Datum, bool) {
	switch x := v.Value(i).(type) {
	case nil:
		return types.DNull{}, true
	case bool:
		return types.DBool(x), true
	case int64:
		return types.DInt(x), true
	case float64:
		return types.DFloat(x), true
	case string:
		return types.DString(x), true
	default:
		return nil, false
	}
}

// Format renders row i for display.
func Format(v Vector, i int) string {
	switch x := v.Value(i).(type) {
	case nil:
		return "NULL"
	case union.Value:
		return union.Format(x)
	case []string:
		return fmt.Sprintf("%q", x)
	case string:
		if v.Type() == types.Binary {
			return fmt.Sprintf("x%q", x)
		}
		return types.FormatDatum(types.DString(x))
	default:
		d, _ := Datum(v, i)
		return types.FormatDatum(d)
	}
}
