package expr

import (
	"slices"

	"github.com/roach88/jsonsql/internal/types"
)

// Children returns the direct children of e.
func Children(e Expr) []Expr {
	switch n := e.(type) {
	case Call:
		return n.Args
	case Cast:
		return []Expr{n.Expr}
	case Binary:
		return []Expr{n.Left, n.Right}
	case IsNull:
		return []Expr{n.Expr}
	default:
		return nil
	}
}

// Walk visits e and its descendants in pre-order. Returning false from fn
// skips the children of that node.
func Walk(e Expr, fn func(Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, c := range Children(e) {
		Walk(c, fn)
	}
}

// Transform rebuilds e bottom-up, replacing every node with fn(node) after
// its children have been transformed. e itself is never modified.
func Transform(e Expr, fn func(Expr) Expr) Expr {
	switch n := e.(type) {
	case Call:
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			args[i] = Transform(a, fn)
		}
		return fn(Call{Name: n.Name, Args: args})
	case Cast:
		return fn(Cast{Expr: Transform(n.Expr, fn), To: n.To})
	case Binary:
		return fn(Binary{Op: n.Op, Left: Transform(n.Left, fn), Right: Transform(n.Right, fn)})
	case IsNull:
		return fn(IsNull{Expr: Transform(n.Expr, fn), Negated: n.Negated})
	case nil:
		return nil
	default:
		return fn(e)
	}
}

// Equal reports structural equality.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case Column:
		y, ok := b.(Column)
		return ok && x == y
	case Literal:
		y, ok := b.(Literal)
		return ok && literalEqual(x.Value, y.Value)
	case Call:
		y, ok := b.(Call)
		return ok && x.Name == y.Name && slices.EqualFunc(x.Args, y.Args, Equal)
	case Cast:
		y, ok := b.(Cast)
		return ok && x.To == y.To && Equal(x.Expr, y.Expr)
	case Binary:
		y, ok := b.(Binary)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case IsNull:
		y, ok := b.(IsNull)
		return ok && x.Negated == y.Negated && Equal(x.Expr, y.Expr)
	case nil:
		return b == nil
	default:
		return false
	}
}

func literalEqual(a, b types.Datum) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Type() == b.Type() && a == b
}

// Calls lists the names of every function called in e, in pre-order.
func Calls(e Expr) []string {
	var names []string
	Walk(e, func(n Expr) bool {
		if c, ok := n.(Call); ok {
			names = append(names, c.Name)
		}
		return true
	})
	return names
}
