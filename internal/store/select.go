package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/jsonsql/internal/engine"
	"github.com/roach88/jsonsql/internal/expr"
	"github.com/roach88/jsonsql/internal/querysql"
	"github.com/roach88/jsonsql/internal/types"
)

// Compile plans sel against the catalog schema of sel.From and compiles the
// rewritten statement.
func (s *Store) Compile(ctx context.Context, sel expr.Select) (*engine.SelectPlan, string, []any, error) {
	schema, err := s.Schema(ctx, sel.From)
	if err != nil {
		return nil, "", nil, err
	}
	sp, err := s.session.PlanSelect(sel, schema)
	if err != nil {
		return nil, "", nil, err
	}
	c := querysql.NewSQLCompiler(func(e expr.Expr) (types.T, error) {
		return s.session.TypeOf(e, schema)
	})
	query, params, err := c.Compile(sp.Select)
	if err != nil {
		return nil, "", nil, fmt.Errorf("compile select: %w", err)
	}
	return sp, query, params, nil
}

// Select runs sel inside SQLite and returns the same Result shape the
// in-memory engine produces.
func (s *Store) Select(ctx context.Context, sel expr.Select) (*engine.Result, error) {
	sp, query, params, err := s.Compile(ctx, sel)
	if err != nil {
		return nil, err
	}
	slog.Debug("store select", "sql", query, "params", len(params))

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", sel.From, err)
	}
	defer rows.Close()

	vecs, err := scanVectors(rows, sp.Types())
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", sel.From, err)
	}
	return &engine.Result{
		Columns: sp.Names(),
		Types:   sp.Types(),
		Vectors: vecs,
		Plans:   sp.Plans(),
	}, nil
}
