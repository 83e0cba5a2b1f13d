package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/engine"
	"github.com/roach88/jsonsql/internal/querysql"
	"github.com/roach88/jsonsql/internal/types"
)

// ErrUnknownTable is returned for tables missing from the catalog.
var ErrUnknownTable = errors.New("unknown table")

// ColumnDef declares one table column.
type ColumnDef struct {
	Name string
	Type types.T
}

// affinity returns the SQLite column type for t.
func affinity(t types.T) string {
	switch {
	case t == types.Bool || t.IsInteger():
		return "INTEGER"
	case t.IsFloat():
		return "REAL"
	case t == types.Binary:
		return "BLOB"
	case t == types.Null:
		return ""
	default:
		return "TEXT"
	}
}

// CreateTable creates table name and records its column types.
func (s *Store) CreateTable(ctx context.Context, name string, cols []ColumnDef) error {
	if len(cols) == 0 {
		return fmt.Errorf("create table %s: no columns", name)
	}
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = strings.TrimSpace(querysql.QuoteIdent(c.Name) + " " + affinity(c.Type))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}
	defer tx.Rollback()

	stmt := fmt.Sprintf("CREATE TABLE %s (%s)", querysql.QuoteIdent(name), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create table %s: %w", name, err)
	}
	for i, c := range cols {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO jsonsql_columns (table_name, column_name, position, sql_type)
			VALUES (?, ?, ?, ?)
		`, name, c.Name, i, c.Type.String())
		if err != nil {
			return fmt.Errorf("create table %s: record column %s: %w", name, c.Name, err)
		}
	}
	return tx.Commit()
}

// Columns returns the declared columns of table name in order.
func (s *Store) Columns(ctx context.Context, name string) ([]ColumnDef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT column_name, sql_type
		FROM jsonsql_columns
		WHERE table_name = ?
		ORDER BY position ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	var cols []ColumnDef
	for rows.Next() {
		var col, typ string
		if err := rows.Scan(&col, &typ); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		t, err := types.Parse(typ)
		if err != nil {
			return nil, fmt.Errorf("column %s.%s: %w", name, col, err)
		}
		cols = append(cols, ColumnDef{Name: col, Type: t})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	return cols, nil
}

// Schema returns the planning schema of table name.
func (s *Store) Schema(ctx context.Context, name string) (engine.Schema, error) {
	cols, err := s.Columns(ctx, name)
	if err != nil {
		return nil, err
	}
	schema := make(engine.Schema, len(cols))
	for _, c := range cols {
		schema[c.Name] = c.Type
	}
	return schema, nil
}

// Insert appends every row of b to table name. Batch columns are matched to
// table columns by name; missing columns are NULL.
func (s *Store) Insert(ctx context.Context, name string, b *column.Batch) error {
	cols, err := s.Columns(ctx, name)
	if err != nil {
		return err
	}
	names := b.Names()
	for _, n := range names {
		if !hasColumn(cols, n) {
			return fmt.Errorf("insert into %s: no column %q", name, n)
		}
	}
	if len(names) == 0 {
		return nil
	}

	quoted := make([]string, len(names))
	marks := make([]string, len(names))
	for i, n := range names {
		quoted[i] = querysql.QuoteIdent(n)
		marks[i] = "?"
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		querysql.QuoteIdent(name), strings.Join(quoted, ", "), strings.Join(marks, ", "))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", name, err)
	}
	defer tx.Rollback()

	prepared, err := tx.PrepareContext(ctx, stmt)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", name, err)
	}
	defer prepared.Close()

	args := make([]any, len(names))
	for row := range b.Rows() {
		for i, n := range names {
			vec, _ := b.Column(n)
			if args[i], err = toColumnValue(vec.Value(row), vec.Type()); err != nil {
				return fmt.Errorf("insert into %s: row %d: %w", name, row, err)
			}
		}
		if _, err := prepared.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert into %s: row %d: %w", name, row, err)
		}
	}
	return tx.Commit()
}

// Load reads every row of table name into a batch, in insertion order.
func (s *Store) Load(ctx context.Context, name string) (*column.Batch, error) {
	cols, err := s.Columns(ctx, name)
	if err != nil {
		return nil, err
	}
	quoted := make([]string, len(cols))
	typs := make([]types.T, len(cols))
	for i, c := range cols {
		quoted[i] = querysql.QuoteIdent(c.Name)
		typs[i] = c.Type
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid ASC", strings.Join(quoted, ", "), querysql.QuoteIdent(name))

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	defer rows.Close()

	vecs, err := scanVectors(rows, typs)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	b := column.NewBatch(rowCount(vecs))
	for i, c := range cols {
		if err := b.Add(c.Name, vecs[i]); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func hasColumn(cols []ColumnDef, name string) bool {
	for _, c := range cols {
		if c.Name == name {
			return true
		}
	}
	return false
}

// scanVectors reads rows into one vector per column, converting each value
// back to an engine cell of the given type.
func scanVectors(rows *sql.Rows, typs []types.T) ([]column.Vector, error) {
	vecs := make([]column.Vector, len(typs))
	for i, t := range typs {
		v, err := column.NewOf(t, 0)
		if err != nil {
			return nil, err
		}
		vecs[i] = v
	}

	raw := make([]any, len(typs))
	ptrs := make([]any, len(typs))
	for i := range raw {
		ptrs[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i, t := range typs {
			var cell any
			if v, ok := fromSQLite(raw[i], t); ok {
				cell = v
			}
			if err := column.AppendValue(vecs[i], cell); err != nil {
				return nil, err
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return vecs, nil
}

func rowCount(vecs []column.Vector) int {
	if len(vecs) == 0 {
		return 0
	}
	return vecs[0].Len()
}
