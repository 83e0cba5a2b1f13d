package engine

import (
	"fmt"

	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/expr"
	"github.com/roach88/jsonsql/internal/types"
)

// SelectPlan is a planned Select. Both hosts execute it: Query here, and the
// SQLite store after compiling Select to SQL.
type SelectPlan struct {
	// Select is the statement with every expression rewritten.
	Select  expr.Select
	Columns []*Plan
	// Filter is nil when there is no WHERE clause.
	Filter *Plan
}

// Names returns the output column names as written.
func (p *SelectPlan) Names() []string {
	out := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		out[i] = expr.Projection{Expr: c.Input, Alias: p.Select.Columns[i].Alias}.Name()
	}
	return out
}

// Types returns the output column types.
func (p *SelectPlan) Types() []types.T {
	out := make([]types.T, len(p.Columns))
	for i, c := range p.Columns {
		out[i] = c.Type
	}
	return out
}

// Plans returns the projection plans followed by the filter plan, if any.
func (p *SelectPlan) Plans() []*Plan {
	out := append([]*Plan(nil), p.Columns...)
	if p.Filter != nil {
		out = append(out, p.Filter)
	}
	return out
}

// PlanSelect plans every expression of sel against schema.
func (s *Session) PlanSelect(sel expr.Select, schema Schema) (*SelectPlan, error) {
	sp := &SelectPlan{
		Select:  expr.Select{From: sel.From, Columns: make([]expr.Projection, len(sel.Columns))},
		Columns: make([]*Plan, len(sel.Columns)),
	}
	for i, c := range sel.Columns {
		p, err := s.Plan(c.Expr, schema)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		sp.Columns[i] = p
		sp.Select.Columns[i] = expr.Projection{Expr: p.Expr, Alias: c.Alias}
	}
	if sel.Where == nil {
		return sp, nil
	}

	filter, err := s.Plan(sel.Where, schema)
	if err != nil {
		return nil, fmt.Errorf("where: %w", err)
	}
	if filter.Type != types.Bool && filter.Type != types.Null {
		return nil, &PlanError{
			Code:    ErrCodeInvalidOperand,
			Message: fmt.Sprintf("WHERE needs a boolean, got %s", filter.Type),
			Expr:    expr.String(filter.Expr),
		}
	}
	sp.Filter = filter
	sp.Select.Where = filter.Expr
	return sp, nil
}

// Result is the output of a Select. Vectors[i] holds column Columns[i].
type Result struct {
	Columns []string
	Types   []types.T
	Vectors []column.Vector
	Plans   []*Plan
}

// Rows returns the number of result rows.
func (r *Result) Rows() int {
	if len(r.Vectors) == 0 {
		return 0
	}
	return r.Vectors[0].Len()
}

// Row returns the datums of row i.
func (r *Result) Row(i int) []types.Datum {
	row := make([]types.Datum, len(r.Vectors))
	for c, v := range r.Vectors {
		d, _ := column.Datum(v, i)
		row[c] = d
	}
	return row
}

// Format renders cell (row, col) for display.
func (r *Result) Format(row, col int) string {
	return column.Format(r.Vectors[col], row)
}

// Query runs sel over b. The From table name is not checked; b is the table.
func (s *Session) Query(sel expr.Select, b *column.Batch) (*Result, error) {
	sp, err := s.PlanSelect(sel, SchemaOf(b))
	if err != nil {
		return nil, err
	}

	input := b
	if sp.Filter != nil {
		input, err = s.filter(sp.Filter, b)
		if err != nil {
			return nil, err
		}
	}

	res := &Result{Columns: sp.Names(), Types: sp.Types(), Plans: sp.Plans()}
	for i, p := range sp.Columns {
		v, err := s.Eval(p, input)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		res.Vectors = append(res.Vectors, v)
	}
	return res, nil
}

// filter keeps the rows of b where the plan is true. Null drops the row.
func (s *Session) filter(p *Plan, b *column.Batch) (*column.Batch, error) {
	v, err := s.Eval(p, b)
	if err != nil {
		return nil, fmt.Errorf("where: %w", err)
	}
	var keep []int
	for i := range v.Len() {
		if x, ok := v.Value(i).(bool); ok && x {
			keep = append(keep, i)
		}
	}
	out := column.NewBatch(len(keep))
	for _, name := range b.Names() {
		col, _ := b.Column(name)
		taken, err := column.Take(col, keep)
		if err != nil {
			return nil, err
		}
		if err := out.Add(name, taken); err != nil {
			return nil, err
		}
	}
	return out, nil
}
