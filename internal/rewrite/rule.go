package rewrite

import (
	"github.com/roach88/jsonsql/internal/expr"
	"github.com/roach88/jsonsql/internal/types"
)

// Rule rewrites a single node.
type Rule interface {
	// Name identifies the rule in logs and plan explanations.
	Name() string
	// Rewrite returns the replacement for e, or e and false to decline.
	Rewrite(e expr.Expr) (expr.Expr, bool)
}

// maxPasses bounds Apply. The shipped rules reach a fixpoint in at most a
// few passes; the bound only guards against a misbehaving custom rule.
const maxPasses = 32

// Apply rewrites e with rules until no rule fires. It returns the new tree
// and the name of every rule that fired, in firing order.
func Apply(e expr.Expr, rules []Rule) (expr.Expr, []string) {
	var fired []string
	for range maxPasses {
		changed := false
		e = expr.Transform(e, func(n expr.Expr) expr.Expr {
			for _, r := range rules {
				if out, ok := r.Rewrite(n); ok {
					fired = append(fired, r.Name())
					changed = true
					n = out
				}
			}
			return n
		})
		if !changed {
			break
		}
	}
	return e, fired
}

// literalPath reports whether every argument is a text or integer literal.
func literalPath(args []expr.Expr) bool {
	for _, a := range args {
		lit, ok := a.(expr.Literal)
		if !ok || !isPathLiteral(lit) {
			return false
		}
	}
	return true
}

// compatiblePath reports whether args could bind as path arguments of a
// typed accessor: literals must be text or integer, anything else is left
// to the binder.
func compatiblePath(args []expr.Expr) bool {
	for _, a := range args {
		if lit, ok := a.(expr.Literal); ok && !isPathLiteral(lit) {
			return false
		}
	}
	return true
}

func isPathLiteral(lit expr.Literal) bool {
	return lit.Value != nil && lit.Value.Type().IsPathKey() || isNullLiteral(lit)
}

func isNullLiteral(lit expr.Literal) bool {
	return lit.Value != nil && lit.Value.Type() == types.Null
}
