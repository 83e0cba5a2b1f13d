package rewrite

import (
	"github.com/roach88/jsonsql/internal/expr"
	"github.com/roach88/jsonsql/internal/function"
)

// DefaultOperators maps the JSON operators to the functions they alias.
func DefaultOperators() map[expr.Op]string {
	return map[expr.Op]string{
		expr.OpArrow:     function.JSONGet,
		expr.OpLongArrow: function.JSONAsText,
		expr.OpQuestion:  function.JSONContains,
	}
}

// OperatorRule replaces a binary operator with a call to the function
// registered for it. Operators without an entry are left alone.
type OperatorRule struct {
	Ops map[expr.Op]string
}

// Name implements Rule.
func (OperatorRule) Name() string { return "json_operator" }

// Rewrite implements Rule.
func (r OperatorRule) Rewrite(e expr.Expr) (expr.Expr, bool) {
	b, ok := e.(expr.Binary)
	if !ok {
		return e, false
	}
	fn, ok := r.Ops[b.Op]
	if !ok {
		return e, false
	}
	return expr.Call{Name: fn, Args: []expr.Expr{b.Left, b.Right}}, true
}
