package engine

import (
	"fmt"

	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/expr"
	"github.com/roach88/jsonsql/internal/types"
)

// Eval evaluates a plan over b and returns one cell per row.
func (s *Session) Eval(p *Plan, b *column.Batch) (column.Vector, error) {
	a, err := s.eval(p.Expr, b)
	if err != nil {
		return nil, err
	}
	return column.Broadcast(a, b.Rows())
}

// eval returns a column argument, or a scalar one when the subtree is constant.
func (s *Session) eval(e expr.Expr, b *column.Batch) (column.Arg, error) {
	switch n := e.(type) {
	case expr.Column:
		v, ok := b.Column(n.Name)
		if !ok {
			return column.Arg{}, &PlanError{Code: ErrCodeUnknownColumn, Message: fmt.Sprintf("no column %q", n.Name)}
		}
		return column.ColumnArg(v), nil

	case expr.Literal:
		d := n.Value
		if d == nil {
			d = types.DNull{}
		}
		return column.ScalarArg(d), nil

	case expr.Call:
		fn, ok := s.functions[n.Name]
		if !ok {
			return column.Arg{}, &PlanError{Code: ErrCodeUnknownFunction, Message: fmt.Sprintf("no function %q", n.Name)}
		}
		args, scalar, err := s.evalArgs(n.Args, b)
		if err != nil {
			return column.Arg{}, err
		}
		out, err := fn.Invoke(args)
		if err != nil {
			return column.Arg{}, fmt.Errorf("eval %s: %w", expr.String(n), err)
		}
		return column.Arg{Vector: out, Scalar: scalar}, nil

	case expr.Cast:
		in, err := s.eval(n.Expr, b)
		if err != nil {
			return column.Arg{}, err
		}
		out, err := s.cast(in.Vector, n.To)
		if err != nil {
			return column.Arg{}, err
		}
		return column.Arg{Vector: out, Scalar: in.Scalar}, nil

	case expr.Binary:
		args, scalar, err := s.evalArgs([]expr.Expr{n.Left, n.Right}, b)
		if err != nil {
			return column.Arg{}, err
		}
		rows, err := column.Rows(args)
		if err != nil {
			return column.Arg{}, err
		}
		out := column.NewBools(rows)
		for i := range rows {
			out.AppendOK(binary(n.Op, args[0].Value(i), args[1].Value(i)))
		}
		return column.Arg{Vector: out, Scalar: scalar}, nil

	case expr.IsNull:
		in, err := s.eval(n.Expr, b)
		if err != nil {
			return column.Arg{}, err
		}
		out := column.NewBools(in.Vector.Len())
		for i := range in.Vector.Len() {
			out.Append(in.Vector.IsNull(i) != n.Negated)
		}
		return column.Arg{Vector: out, Scalar: in.Scalar}, nil

	default:
		return column.Arg{}, fmt.Errorf("unsupported expression %T", e)
	}
}

func (s *Session) evalArgs(exprs []expr.Expr, b *column.Batch) ([]column.Arg, bool, error) {
	args := make([]column.Arg, len(exprs))
	scalar := true
	for i, a := range exprs {
		arg, err := s.eval(a, b)
		if err != nil {
			return nil, false, err
		}
		args[i] = arg
		scalar = scalar && arg.Scalar
	}
	return args, scalar, nil
}

func (s *Session) cast(v column.Vector, to types.T) (column.Vector, error) {
	out, err := column.NewOf(to, v.Len())
	if err != nil {
		return nil, err
	}
	for i := range v.Len() {
		var cell any
		if x := v.Value(i); x != nil {
			if c, ok := CastValue(x, v.Type(), to, s.intPolicy); ok {
				cell = c
			}
		}
		if err := column.AppendValue(out, cell); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// binary evaluates one row of a comparison or boolean operator with SQL
// three-valued logic. ok=false is SQL null.
func binary(op expr.Op, l, r any) (result, ok bool) {
	switch op {
	case expr.OpAnd:
		lb, lok := l.(bool)
		rb, rok := r.(bool)
		switch {
		case lok && !lb, rok && !rb:
			return false, true
		case lok && rok:
			return true, true
		}
		return false, false
	case expr.OpOr:
		lb, lok := l.(bool)
		rb, rok := r.(bool)
		switch {
		case lok && lb, rok && rb:
			return true, true
		case lok && rok:
			return false, true
		}
		return false, false
	}
	if l == nil || r == nil {
		return false, false
	}
	return compareValues(op, l, r)
}
