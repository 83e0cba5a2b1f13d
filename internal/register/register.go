// Package register installs the JSON function library into a host.
//
// A host is anything that can hold functions, rewrite rules and operator
// bindings. engine.Session is one; the SQLite store collects the same set
// through a Catalog before it opens connections.
package register

import (
	"fmt"
	"log/slog"

	"github.com/roach88/jsonsql/internal/expr"
	"github.com/roach88/jsonsql/internal/function"
	"github.com/roach88/jsonsql/internal/rewrite"
)

// Registry is the surface a host exposes for registration.
type Registry interface {
	// RegisterFunction installs fn and reports whether it replaced an
	// existing function of the same name.
	RegisterFunction(fn *function.Function) bool
	RegisterRewrite(r rewrite.Rule)
	RegisterOperator(op expr.Op, name string) error
}

// Options configures the installed functions.
type Options struct {
	Function function.Options
}

// RegisterAll installs every function, the JSON operators and the rewrite
// rules. Operator rewriting runs first so that the other rules see calls.
// json_get chains are only unnested under strict validation.
func RegisterAll(reg Registry, opts Options) error {
	for _, fn := range function.All(opts.Function) {
		if reg.RegisterFunction(fn) {
			slog.Debug("overwrite existing function", "function", fn.Name)
		}
	}

	ops := rewrite.DefaultOperators()
	for _, op := range []expr.Op{expr.OpArrow, expr.OpLongArrow, expr.OpQuestion} {
		if err := reg.RegisterOperator(op, ops[op]); err != nil {
			return fmt.Errorf("register operator %s: %w", op, err)
		}
	}

	reg.RegisterRewrite(rewrite.OperatorRule{Ops: ops})
	if opts.Function.Strict {
		reg.RegisterRewrite(rewrite.UnnestRule{})
	}
	reg.RegisterRewrite(rewrite.CastRule{})
	return nil
}

// Catalog is a Registry that only records what was registered.
type Catalog struct {
	Functions []*function.Function
	Rules     []rewrite.Rule
	Operators map[expr.Op]string
}

// RegisterFunction implements Registry.
func (c *Catalog) RegisterFunction(fn *function.Function) bool {
	replaced := false
	for i, old := range c.Functions {
		if old.Name == fn.Name {
			c.Functions[i] = fn
			replaced = true
		}
	}
	if !replaced {
		c.Functions = append(c.Functions, fn)
	}
	return replaced
}

// RegisterRewrite implements Registry.
func (c *Catalog) RegisterRewrite(r rewrite.Rule) {
	c.Rules = append(c.Rules, r)
}

// RegisterOperator implements Registry.
func (c *Catalog) RegisterOperator(op expr.Op, name string) error {
	for _, fn := range c.Functions {
		if fn.Name == name {
			if c.Operators == nil {
				c.Operators = make(map[expr.Op]string)
			}
			c.Operators[op] = name
			return nil
		}
	}
	return fmt.Errorf("function %q is not registered", name)
}

// NewCatalog returns a Catalog with everything installed.
func NewCatalog(opts Options) (*Catalog, error) {
	c := &Catalog{}
	if err := RegisterAll(c, opts); err != nil {
		return nil, err
	}
	return c, nil
}
