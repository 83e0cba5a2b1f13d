package expr

import (
	"github.com/roach88/jsonsql/internal/types"
)

// Expr is a node in an expression tree.
//
// This is a sealed interface - only types in this package implement it.
// Type switches over Expr in planners and compilers can be exhaustive.
type Expr interface {
	exprNode() // Marker method - seals interface to this package
}

// Column references a column of the input batch or table by name.
type Column struct {
	Name string
}

func (Column) exprNode() {}

// Literal is a constant.
//
// Literal path arguments are what allow the rewrite rules to fire: a rule
// that needs to know the shape of a path only inspects Literal nodes.
type Literal struct {
	Value types.Datum
}

func (Literal) exprNode() {}

// Call invokes a scalar function by name.
//
// Semantics:
//
//	<name>(<args>...)
//
// Example:
//
//	Call{Name: "json_get", Args: []Expr{Column{"doc"}, Lit(types.DString("a"))}}
//
// renders as json_get(doc, 'a').
type Call struct {
	Name string
	Args []Expr
}

func (Call) exprNode() {}

// Cast converts an expression to a SQL type.
//
// Semantics:
//
//	CAST(<expr> AS <to>)
//
// A Cast over the generic json_get is the pattern the cast rule specializes.
type Cast struct {
	Expr Expr
	To   types.T
}

func (Cast) exprNode() {}

// Op is a binary operator.
type Op string

const (
	// OpArrow is `->`, the generic accessor.
	OpArrow Op = "->"
	// OpLongArrow is `->>`, the text accessor.
	OpLongArrow Op = "->>"
	// OpQuestion is `?`, the existence test.
	OpQuestion Op = "?"

	OpEq  Op = "="
	OpNe  Op = "<>"
	OpLt  Op = "<"
	OpLe  Op = "<="
	OpGt  Op = ">"
	OpGe  Op = ">="
	OpAnd Op = "AND"
	OpOr  Op = "OR"
)

// IsComparison reports whether op compares two values.
func (op Op) IsComparison() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	}
	return false
}

// IsJSON reports whether op is one of the JSON operators.
func (op Op) IsJSON() bool {
	return op == OpArrow || op == OpLongArrow || op == OpQuestion
}

// Binary applies an infix operator.
//
// JSON operators chain to the left: doc -> 'a' -> 'b' is
// Binary{OpArrow, Binary{OpArrow, doc, 'a'}, 'b'}.
type Binary struct {
	Op    Op
	Left  Expr
	Right Expr
}

func (Binary) exprNode() {}

// IsNull tests for SQL null.
type IsNull struct {
	Expr    Expr
	Negated bool
}

func (IsNull) exprNode() {}

// Col builds a Column.
func Col(name string) Column { return Column{Name: name} }

// Lit builds a Literal.
func Lit(d types.Datum) Literal { return Literal{Value: d} }

// Str builds a text Literal.
func Str(s string) Literal { return Literal{Value: types.DString(s)} }

// Int builds an integer Literal.
func Int(i int64) Literal { return Literal{Value: types.DInt(i)} }

// Fn builds a Call.
func Fn(name string, args ...Expr) Call { return Call{Name: name, Args: args} }

// CastTo builds a Cast.
func CastTo(e Expr, to types.T) Cast { return Cast{Expr: e, To: to} }

// Bin builds a Binary.
func Bin(op Op, left, right Expr) Binary { return Binary{Op: op, Left: left, Right: right} }
