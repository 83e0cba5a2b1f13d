package rewrite

import (
	"github.com/roach88/jsonsql/internal/expr"
	"github.com/roach88/jsonsql/internal/function"
)

// Outer functions that may absorb an inner json_get. Accessors that echo
// source text (json_get_json, json_as_text) only qualify when they add at
// least one path element, since the inner value then has to be a container
// and containers are carried verbatim.
var unnestable = map[string]bool{
	function.JSONGet:      false,
	function.JSONGetStr:   false,
	function.JSONGetInt:   false,
	function.JSONGetFloat: false,
	function.JSONGetBool:  false,
	function.JSONGetArray: false,
	function.JSONGetJSON:  true,
	function.JSONAsText:   true,
}

// UnnestRule rewrites json_get_X(json_get(json, p1...), p2...) into
// json_get_X(json, p1..., p2...) when every path argument is a literal.
//
// The two forms agree only when every document is validated in full. A lazy
// lookup checks the whole container the inner json_get lands on but stops at
// the member the unnested call needs, so {"a": {"b": 1, "c": oops}} is null
// through the chain and 1 through the unnested call. Install the rule for
// strict hosts only.
type UnnestRule struct{}

// Name implements Rule.
func (UnnestRule) Name() string { return "unnest_json_get" }

// Rewrite implements Rule.
func (UnnestRule) Rewrite(e expr.Expr) (expr.Expr, bool) {
	outer, ok := e.(expr.Call)
	if !ok || len(outer.Args) == 0 {
		return e, false
	}
	needsPath, ok := unnestable[outer.Name]
	if !ok || (needsPath && len(outer.Args) < 2) {
		return e, false
	}
	inner, ok := outer.Args[0].(expr.Call)
	if !ok || inner.Name != function.JSONGet || len(inner.Args) == 0 {
		return e, false
	}
	if !literalPath(inner.Args[1:]) || !literalPath(outer.Args[1:]) {
		return e, false
	}

	args := make([]expr.Expr, 0, len(inner.Args)+len(outer.Args)-1)
	args = append(args, inner.Args...)
	args = append(args, outer.Args[1:]...)
	return expr.Call{Name: outer.Name, Args: args}, true
}
