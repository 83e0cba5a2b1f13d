package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/expr"
	"github.com/roach88/jsonsql/internal/function"
	"github.com/roach88/jsonsql/internal/rewrite"
)

// Session holds the functions, operators and rules available to planning.
type Session struct {
	id        string
	intPolicy coerce.IntPolicy
	functions map[string]*function.Function
	operators map[expr.Op]string
	rules     []rewrite.Rule
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithIDGenerator sets the generator for the session id.
// Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) SessionOption {
	return func(s *Session) {
		s.id = g.Generate()
	}
}

// WithIntPolicy sets the float-to-integer policy of generic casts over union
// values. It must match the policy the functions were built with, so that a
// cast over json_get and the typed accessor agree.
func WithIntPolicy(p coerce.IntPolicy) SessionOption {
	return func(s *Session) {
		s.intPolicy = p
	}
}

// NewSession creates an empty session. Nothing is registered.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		functions: make(map[string]*function.Function),
		operators: make(map[expr.Op]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = UUIDv7Generator{}.Generate()
	}
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// IntPolicy returns the policy of generic casts over union values.
func (s *Session) IntPolicy() coerce.IntPolicy { return s.intPolicy }

// RegisterFunction installs fn under its name and aliases. It reports whether
// an existing function was replaced.
func (s *Session) RegisterFunction(fn *function.Function) bool {
	replaced := false
	for _, name := range fn.Names() {
		if _, ok := s.functions[name]; ok {
			replaced = true
		}
		s.functions[name] = fn
	}
	return replaced
}

// RegisterRewrite appends a rule. Rules run in registration order.
func (s *Session) RegisterRewrite(r rewrite.Rule) {
	s.rules = append(s.rules, r)
}

// RegisterOperator binds op to a registered function.
func (s *Session) RegisterOperator(op expr.Op, name string) error {
	if _, ok := s.functions[name]; !ok {
		return fmt.Errorf("operator %s: function %q is not registered", op, name)
	}
	s.operators[op] = name
	return nil
}

// Function looks up a function by name or alias.
func (s *Session) Function(name string) (*function.Function, bool) {
	fn, ok := s.functions[name]
	return fn, ok
}

// Functions returns every distinct registered function sorted by name.
func (s *Session) Functions() []*function.Function {
	var out []*function.Function
	for _, fn := range s.functions {
		if !slices.Contains(out, fn) {
			out = append(out, fn)
		}
	}
	slices.SortFunc(out, func(a, b *function.Function) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Operators returns the operator table.
func (s *Session) Operators() map[expr.Op]string {
	out := make(map[expr.Op]string, len(s.operators))
	for op, name := range s.operators {
		out[op] = name
	}
	return out
}

// Rules returns the registered rules in order.
func (s *Session) Rules() []rewrite.Rule {
	return slices.Clone(s.rules)
}

// Optimize applies the registered rules to a fixpoint.
func (s *Session) Optimize(e expr.Expr) (expr.Expr, []string) {
	out, fired := rewrite.Apply(e, s.rules)
	if len(fired) > 0 {
		slog.Debug("rewrite rules fired",
			"session", s.id,
			"rules", fired,
			"before", expr.String(e),
			"after", expr.String(out))
	}
	return out, fired
}
