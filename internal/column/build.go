package column

import (
	"fmt"

	"github.com/roach88/jsonsql/internal/types"
	"github.com/roach88/jsonsql/internal/union"
)

// NewOf returns an empty vector for t.
func NewOf(t types.T, n int) (Vector, error) {
	switch t {
	case types.Null:
		return NewNulls(0), nil
	case types.Bool:
		return NewBools(n), nil
	case types.Int32, types.Int64:
		return NewInts(t, n), nil
	case types.Float32:
		return New[float64](types.Float32, n), nil
	case types.Float64:
		return NewFloats(n), nil
	case types.Text, types.Binary:
		return NewTexts(t, n), nil
	case types.Union:
		return NewUnions(n), nil
	case types.TextList:
		return NewTextLists(n), nil
	default:
		return nil, fmt.Errorf("column: no vector for type %s", t)
	}
}

// AppendValue appends x to v, or a null when x is nil. x must have the Go
// element type of v, as returned by Vector.Value.
func AppendValue(v Vector, x any) error {
	if x == nil {
		appendNull(v)
		return nil
	}
	ok := false
	switch vec := v.(type) {
	case *Bools:
		var b bool
		if b, ok = x.(bool); ok {
			vec.Append(b)
		}
	case *Ints:
		var i int64
		if i, ok = x.(int64); ok {
			vec.Append(i)
		}
	case *Floats:
		var f float64
		if f, ok = x.(float64); ok {
			vec.Append(f)
		}
	case *Texts:
		var s string
		if s, ok = x.(string); ok {
			vec.Append(s)
		}
	case *Unions:
		var u union.Value
		if u, ok = x.(union.Value); ok {
			vec.Append(u)
		}
	case *TextLists:
		var l []string
		if l, ok = x.([]string); ok {
			vec.Append(l)
		}
	}
	if !ok {
		return fmt.Errorf("column: cannot append %T to %s vector", x, v.Type())
	}
	return nil
}

func appendNull(v Vector) {
	switch vec := v.(type) {
	case *Nulls:
		vec.AppendNull()
	case *Bools:
		vec.AppendNull()
	case *Ints:
		vec.AppendNull()
	case *Floats:
		vec.AppendNull()
	case *Texts:
		vec.AppendNull()
	case *Unions:
		vec.AppendNull()
	case *TextLists:
		vec.AppendNull()
	}
}

// Broadcast expands a one-row argument to n rows. Column arguments are
// returned unchanged.
func Broadcast(a Arg, n int) (Vector, error) {
	if !a.Scalar {
		return a.Vector, nil
	}
	out, err := NewOf(a.Type(), n)
	if err != nil {
		return nil, err
	}
	x := a.Vector.Value(0)
	for range n {
		if err := AppendValue(out, x); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Take returns the rows of v at the given positions, in order.
func Take(v Vector, rows []int) (Vector, error) {
	out, err := NewOf(v.Type(), len(rows))
	if err != nil {
		return nil, err
	}
	for _, i := range rows {
		if err := AppendValue(out, v.Value(i)); err != nil {
			return nil, err
		}
	}
	return out, nil
}
