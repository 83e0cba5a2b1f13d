package expr

import "strings"

// Projection is one output column of a Select.
type Projection struct {
	Expr  Expr
	Alias string
}

// Name returns the alias, or the rendered expression when there is none.
func (p Projection) Name() string {
	if p.Alias != "" {
		return p.Alias
	}
	return String(p.Expr)
}

// Select is a single-table projection with an optional filter.
//
// Semantics:
//
//	SELECT <columns> FROM <from> WHERE <where>
//
// Both hosts run the same Select: the in-memory engine over a column.Batch,
// and the SQLite store after querysql compiles it.
type Select struct {
	Columns []Projection
	From    string
	Where   Expr // nil = no filter
}

// Map returns a copy of s with fn applied to every expression.
func (s Select) Map(fn func(Expr) Expr) Select {
	out := Select{From: s.From, Columns: make([]Projection, len(s.Columns))}
	for i, c := range s.Columns {
		out.Columns[i] = Projection{Expr: fn(c.Expr), Alias: c.Alias}
	}
	if s.Where != nil {
		out.Where = fn(s.Where)
	}
	return out
}

// String renders s as SQL text.
func (s Select) String() string {
	var b strings.Builder
	b.WriteString("SELECT ")
	for i, c := range s.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(String(c.Expr))
		if c.Alias != "" {
			b.WriteString(" AS ")
			b.WriteString(c.Alias)
		}
	}
	b.WriteString(" FROM ")
	b.WriteString(s.From)
	if s.Where != nil {
		b.WriteString(" WHERE ")
		b.WriteString(String(s.Where))
	}
	return b.String()
}
