package engine

import (
	"fmt"

	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/expr"
	"github.com/roach88/jsonsql/internal/function"
	"github.com/roach88/jsonsql/internal/types"
)

// Schema maps column names to types.
type Schema map[string]types.T

// SchemaOf returns the schema of a batch.
func SchemaOf(b *column.Batch) Schema {
	s := make(Schema, len(b.Names()))
	for _, name := range b.Names() {
		v, _ := b.Column(name)
		s[name] = v.Type()
	}
	return s
}

// Plan is an optimized and type-checked expression.
type Plan struct {
	// Input is the expression as written.
	Input expr.Expr
	// Expr is the expression after rewriting.
	Expr expr.Expr
	// Type is the result type.
	Type types.T
	// Fired lists the rules that fired, in order.
	Fired []string
}

// Plan optimizes e and binds it against schema.
func (s *Session) Plan(e expr.Expr, schema Schema) (*Plan, error) {
	optimized, fired := s.Optimize(e)
	t, err := s.bind(optimized, schema)
	if err != nil {
		return nil, err
	}
	return &Plan{Input: e, Expr: optimized, Type: t, Fired: fired}, nil
}

// TypeOf type-checks e as written against schema without rewriting it.
func (s *Session) TypeOf(e expr.Expr, schema Schema) (types.T, error) {
	return s.bind(e, schema)
}

func (s *Session) bind(e expr.Expr, schema Schema) (types.T, error) {
	switch n := e.(type) {
	case expr.Column:
		t, ok := schema[n.Name]
		if !ok {
			return 0, &PlanError{Code: ErrCodeUnknownColumn, Message: fmt.Sprintf("no column %q", n.Name)}
		}
		return t, nil

	case expr.Literal:
		if n.Value == nil {
			return types.Null, nil
		}
		return n.Value.Type(), nil

	case expr.Call:
		fn, ok := s.functions[n.Name]
		if !ok {
			return 0, &PlanError{Code: ErrCodeUnknownFunction, Message: fmt.Sprintf("no function %q", n.Name), Expr: expr.String(n)}
		}
		args := make([]function.ArgType, len(n.Args))
		for i, a := range n.Args {
			t, err := s.bind(a, schema)
			if err != nil {
				return 0, err
			}
			args[i].Type = t
			if lit, ok := a.(expr.Literal); ok {
				args[i].Literal = lit.Value
			}
		}
		rt, err := fn.ReturnType(args)
		if err != nil {
			return 0, fmt.Errorf("bind %s: %w", expr.String(n), err)
		}
		return rt, nil

	case expr.Cast:
		from, err := s.bind(n.Expr, schema)
		if err != nil {
			return 0, err
		}
		if !castable(from, n.To) {
			return 0, &PlanError{Code: ErrCodeUnsupportedCast, Message: fmt.Sprintf("cannot cast %s to %s", from, n.To), Expr: expr.String(n)}
		}
		return n.To, nil

	case expr.Binary:
		if n.Op.IsJSON() {
			return 0, &PlanError{Code: ErrCodeUnknownOperator, Message: fmt.Sprintf("operator %s is not registered", n.Op), Expr: expr.String(n)}
		}
		l, err := s.bind(n.Left, schema)
		if err != nil {
			return 0, err
		}
		r, err := s.bind(n.Right, schema)
		if err != nil {
			return 0, err
		}
		switch {
		case n.Op == expr.OpAnd || n.Op == expr.OpOr:
			if !isBoolish(l) || !isBoolish(r) {
				return 0, &PlanError{Code: ErrCodeInvalidOperand, Message: fmt.Sprintf("%s needs boolean operands, got %s and %s", n.Op, l, r), Expr: expr.String(n)}
			}
		case n.Op.IsComparison():
			if !canCompare(l, r) {
				return 0, &PlanError{Code: ErrCodeInvalidComparison, Message: fmt.Sprintf("cannot compare %s with %s", l, r), Expr: expr.String(n)}
			}
		default:
			return 0, &PlanError{Code: ErrCodeUnknownOperator, Message: fmt.Sprintf("unknown operator %q", n.Op), Expr: expr.String(n)}
		}
		return types.Bool, nil

	case expr.IsNull:
		if _, err := s.bind(n.Expr, schema); err != nil {
			return 0, err
		}
		return types.Bool, nil

	default:
		return 0, fmt.Errorf("unsupported expression %T", e)
	}
}

func isBoolish(t types.T) bool { return t == types.Bool || t == types.Null }

// canCompare reports whether values of types l and r may be compared.
// Union values only compare with union values.
func canCompare(l, r types.T) bool {
	switch {
	case l == types.Null || r == types.Null:
		return true
	case l == types.Union || r == types.Union:
		return l == r
	case l.IsNumeric():
		return r.IsNumeric()
	case l == types.Text || l == types.Binary:
		return r == types.Text || r == types.Binary
	case l == types.Bool:
		return r == types.Bool
	default:
		return false
	}
}

// castable reports whether CAST(from AS to) is defined.
func castable(from, to types.T) bool {
	switch {
	case from == to, from == types.Null:
		return true
	case to == types.Null || to == types.TextList || from == types.TextList:
		return false
	case from == types.Union:
		return to == types.Bool || to.IsNumeric() || to == types.Text
	case from == types.Text:
		return true
	case from == types.Binary:
		return to == types.Text || to == types.Union
	case from.IsNumeric() || from == types.Bool:
		return to.IsNumeric() || to == types.Bool || to == types.Text
	default:
		return false
	}
}
