package rewrite

import (
	"github.com/roach88/jsonsql/internal/expr"
	"github.com/roach88/jsonsql/internal/function"
	"github.com/roach88/jsonsql/internal/types"
)

type castTarget struct {
	fn string
	// narrow is set for targets the accessor does not produce directly; the
	// accessor result is cast down to it.
	narrow bool
}

var castTargets = map[types.T]castTarget{
	types.Bool:    {fn: function.JSONGetBool},
	types.Int64:   {fn: function.JSONGetInt},
	types.Int32:   {fn: function.JSONGetInt, narrow: true},
	types.Float64: {fn: function.JSONGetFloat},
	types.Float32: {fn: function.JSONGetFloat, narrow: true},
	types.Text:    {fn: function.JSONGetStr},
}

// CastRule specializes CAST(json_get(json, path...) AS T) into the typed
// accessor for T. Casts to other types, casts over anything but the generic
// accessor, and paths with literals that are neither text nor integer are
// left alone.
type CastRule struct{}

// Name implements Rule.
func (CastRule) Name() string { return "cast_json_get" }

// Rewrite implements Rule.
func (CastRule) Rewrite(e expr.Expr) (expr.Expr, bool) {
	c, ok := e.(expr.Cast)
	if !ok {
		return e, false
	}
	call, ok := c.Expr.(expr.Call)
	if !ok || call.Name != function.JSONGet || len(call.Args) == 0 {
		return e, false
	}
	target, ok := castTargets[c.To]
	if !ok || !compatiblePath(call.Args[1:]) {
		return e, false
	}

	typed := expr.Call{Name: target.fn, Args: call.Args}
	if target.narrow {
		return expr.Cast{Expr: typed, To: c.To}, true
	}
	return typed, true
}
