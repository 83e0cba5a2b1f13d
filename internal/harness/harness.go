package harness

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/engine"
	"github.com/roach88/jsonsql/internal/expr"
	"github.com/roach88/jsonsql/internal/register"
	"github.com/roach88/jsonsql/internal/store"
	"github.com/roach88/jsonsql/internal/testutil"
	"github.com/roach88/jsonsql/internal/types"
	"github.com/roach88/jsonsql/internal/union"
)

// Harness holds both hosts for one scenario run.
type Harness struct {
	session *engine.Session
	store   *store.Store
	batch   *column.Batch
	table   string
}

// Run executes a scenario and returns the result.
//
// Each scenario gets a fresh in-memory SQLite database and a fresh engine
// session built from the scenario options, both with a fixed session id.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()
	opts, err := scenario.Options.RegisterOptions()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	h, err := open(ctx, scenario, opts)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	defer h.store.Close()

	result := NewResult()
	for i := range scenario.Cases {
		c := &scenario.Cases[i]
		got, memErr, sqlErr := h.runCase(ctx, c)
		result.Cases = append(result.Cases, got)
		for _, err := range checkCase(c, got, memErr, sqlErr) {
			result.AddError(err.Error())
		}
	}

	slog.Info("scenario run",
		"scenario", scenario.Name,
		"cases", len(scenario.Cases),
		"pass", result.Pass,
		"errors", len(result.Errors))
	return result, nil
}

func open(ctx context.Context, scenario *Scenario, opts register.Options) (*Harness, error) {
	ids := testutil.NewFixedIDGenerator(scenario.Name)
	session := engine.NewSession(
		engine.WithIDGenerator(ids),
		engine.WithIntPolicy(opts.Function.IntPolicy))
	if err := register.RegisterAll(session, opts); err != nil {
		return nil, err
	}

	batch, defs, err := buildTable(scenario.Table)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(":memory:",
		store.WithRegisterOptions(opts),
		store.WithSessionOptions(engine.WithIDGenerator(ids)))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	if err := st.CreateTable(ctx, scenario.Table.Name, defs); err != nil {
		st.Close()
		return nil, err
	}
	if err := st.Insert(ctx, scenario.Table.Name, batch); err != nil {
		st.Close()
		return nil, err
	}
	return &Harness{session: session, store: st, batch: batch, table: scenario.Table.Name}, nil
}

// runCase evaluates c on both hosts.
func (h *Harness) runCase(ctx context.Context, c *Case) (CaseResult, error, error) {
	sel := c.Select(h.table)
	got := CaseResult{Name: c.Name, Input: expr.String(c.Expr.Expr)}

	mem, memErr := h.session.Query(sel, h.batch)
	sq, sqlErr := h.store.Select(ctx, sel)

	if memErr != nil {
		got.Error = memErr.Error()
	} else {
		plan := mem.Plans[0]
		got.Plan = expr.String(plan.Expr)
		got.Fired = plan.Fired
		got.Type = plan.Type.String()
		got.Memory = formatColumn(mem)
	}
	if sqlErr == nil {
		got.SQLite = formatColumn(sq)
	}
	return got, memErr, sqlErr
}

func formatColumn(r *engine.Result) []string {
	cells := make([]string, r.Rows())
	for i := range cells {
		cells[i] = r.Format(i, 0)
	}
	return cells
}

// buildTable converts the YAML table into a batch and store column
// definitions.
func buildTable(t Table) (*column.Batch, []store.ColumnDef, error) {
	b := column.NewBatch(len(t.Rows))
	defs := make([]store.ColumnDef, len(t.Columns))
	for ci, spec := range t.Columns {
		typ, err := types.Parse(spec.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("column %s: %w", spec.Name, err)
		}
		defs[ci] = store.ColumnDef{Name: spec.Name, Type: typ}

		vec, err := column.NewOf(typ, len(t.Rows))
		if err != nil {
			return nil, nil, err
		}
		for ri, row := range t.Rows {
			cell, err := cellValue(row[ci], typ)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d column %s: %w", ri, spec.Name, err)
			}
			if err := column.AppendValue(vec, cell); err != nil {
				return nil, nil, fmt.Errorf("row %d column %s: %w", ri, spec.Name, err)
			}
		}
		if err := b.Add(spec.Name, vec); err != nil {
			return nil, nil, err
		}
	}
	return b, defs, nil
}

// cellValue converts a decoded YAML scalar to a cell of type t.
func cellValue(x any, t types.T) (any, error) {
	if x == nil {
		return nil, nil
	}
	switch t {
	case types.Int32, types.Int64:
		if n, ok := x.(int); ok {
			return int64(n), nil
		}
	case types.Float32, types.Float64:
		switch n := x.(type) {
		case int:
			return float64(n), nil
		case float64:
			return n, nil
		}
	case types.Bool:
		if b, ok := x.(bool); ok {
			return b, nil
		}
	case types.Text, types.Binary:
		if s, ok := x.(string); ok {
			return s, nil
		}
	case types.Union:
		if s, ok := x.(string); ok {
			v, ok := union.Parse([]byte(s))
			if !ok {
				return nil, fmt.Errorf("invalid JSON for union cell: %s", s)
			}
			return v, nil
		}
	case types.TextList:
		if items, ok := x.([]any); ok {
			out := make([]string, len(items))
			for i, it := range items {
				s, ok := it.(string)
				if !ok {
					return nil, fmt.Errorf("text[] element %d is %T", i, it)
				}
				out[i] = s
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("cannot use %T as %s", x, t)
}
