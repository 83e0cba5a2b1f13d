package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/jsonsql/internal/expr"
	"github.com/roach88/jsonsql/internal/types"
)

// CastFunction is the SQL function the store registers for CAST.
//
// SQLite's own CAST converts 'x' to 0 and never narrows integers, so casts
// compile to jsonsql_cast(value, from, to) which applies the engine's cast
// table on each row.
const CastFunction = "jsonsql_cast"

// SQLCompiler compiles a rewritten expr.Select to parameterized SQL for SQLite.
//
// Every literal becomes a ? parameter. Every query ends with ORDER BY rowid so
// rows come back in insertion order, the order the in-memory engine keeps.
type SQLCompiler struct {
	// TypeOf resolves the static type of a cast operand.
	TypeOf func(expr.Expr) (types.T, error)
}

// NewSQLCompiler creates a compiler that types cast operands with typeOf.
func NewSQLCompiler(typeOf func(expr.Expr) (types.T, error)) *SQLCompiler {
	return &SQLCompiler{TypeOf: typeOf}
}

// Compile converts sel to SQL. Returns (sql, params, error).
//
// sel must already be rewritten: JSON operators left in the tree are an error.
func (c *SQLCompiler) Compile(sel expr.Select) (string, []any, error) {
	if len(sel.Columns) == 0 {
		return "", nil, fmt.Errorf("select has no columns")
	}
	if sel.From == "" {
		return "", nil, fmt.Errorf("select has no table")
	}

	var (
		b      strings.Builder
		params []any
	)
	b.WriteString("SELECT ")
	for i, col := range sel.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		sql, p, err := c.CompileExpr(col.Expr)
		if err != nil {
			return "", nil, fmt.Errorf("compile column %d: %w", i+1, err)
		}
		b.WriteString(sql)
		params = append(params, p...)
		if col.Alias != "" {
			b.WriteString(" AS ")
			b.WriteString(QuoteIdent(col.Alias))
		}
	}

	b.WriteString(" FROM ")
	b.WriteString(QuoteIdent(sel.From))

	if sel.Where != nil {
		sql, p, err := c.CompileExpr(sel.Where)
		if err != nil {
			return "", nil, fmt.Errorf("compile where: %w", err)
		}
		b.WriteString(" WHERE ")
		b.WriteString(sql)
		params = append(params, p...)
	}

	b.WriteString(" ORDER BY rowid ASC")
	return b.String(), params, nil
}

// CompileExpr compiles a single expression.
func (c *SQLCompiler) CompileExpr(e expr.Expr) (string, []any, error) {
	var params []any
	var b strings.Builder
	if err := c.compile(&b, &params, e); err != nil {
		return "", nil, err
	}
	return b.String(), params, nil
}

func (c *SQLCompiler) compile(b *strings.Builder, params *[]any, e expr.Expr) error {
	switch n := e.(type) {
	case expr.Column:
		b.WriteString(QuoteIdent(n.Name))

	case expr.Literal:
		p, err := datumToParam(n.Value)
		if err != nil {
			return err
		}
		b.WriteByte('?')
		*params = append(*params, p)

	case expr.Call:
		if !isFunctionName(n.Name) {
			return fmt.Errorf("invalid function name %q", n.Name)
		}
		b.WriteString(n.Name)
		b.WriteByte('(')
		for i, a := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := c.compile(b, params, a); err != nil {
				return err
			}
		}
		b.WriteByte(')')

	case expr.Cast:
		if c.TypeOf == nil {
			return fmt.Errorf("cannot compile %s: no type resolver", expr.String(n))
		}
		from, err := c.TypeOf(n.Expr)
		if err != nil {
			return fmt.Errorf("type cast operand: %w", err)
		}
		b.WriteString(CastFunction)
		b.WriteByte('(')
		if err := c.compile(b, params, n.Expr); err != nil {
			return err
		}
		b.WriteString(", ?, ?)")
		*params = append(*params, from.String(), n.To.String())

	case expr.Binary:
		if n.Op.IsJSON() {
			return fmt.Errorf("operator %s must be rewritten before compiling", n.Op)
		}
		if !n.Op.IsComparison() && n.Op != expr.OpAnd && n.Op != expr.OpOr {
			return fmt.Errorf("unsupported operator %q", n.Op)
		}
		b.WriteByte('(')
		if err := c.compile(b, params, n.Left); err != nil {
			return err
		}
		b.WriteByte(' ')
		b.WriteString(string(n.Op))
		b.WriteByte(' ')
		if err := c.compile(b, params, n.Right); err != nil {
			return err
		}
		b.WriteByte(')')

	case expr.IsNull:
		b.WriteByte('(')
		if err := c.compile(b, params, n.Expr); err != nil {
			return err
		}
		if n.Negated {
			b.WriteString(" IS NOT NULL)")
		} else {
			b.WriteString(" IS NULL)")
		}

	default:
		return fmt.Errorf("unsupported expression type: %T", e)
	}
	return nil
}

// isFunctionName reports whether name can be written unquoted as a function
// call: an ASCII letter or underscore followed by letters, digits or underscores.
func isFunctionName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}

// QuoteIdent quotes an SQLite identifier.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// datumToParam converts a literal to a Go value for an SQL parameter.
func datumToParam(d types.Datum) (any, error) {
	switch v := d.(type) {
	case nil, types.DNull:
		return nil, nil
	case types.DBool:
		return bool(v), nil
	case types.DInt:
		return int64(v), nil
	case types.DFloat:
		return float64(v), nil
	case types.DString:
		return string(v), nil
	default:
		return nil, fmt.Errorf("unsupported literal type for SQL parameter: %T", d)
	}
}
