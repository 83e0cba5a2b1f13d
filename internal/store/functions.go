package store

import (
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/engine"
	"github.com/roach88/jsonsql/internal/function"
	"github.com/roach88/jsonsql/internal/querysql"
	"github.com/roach88/jsonsql/internal/register"
	"github.com/roach88/jsonsql/internal/types"
)

// installFunctions registers every catalog function under each of its names,
// plus the cast helper the compiler emits.
func installFunctions(conn *sqlite3.SQLiteConn, catalog *register.Catalog, policy coerce.IntPolicy) error {
	for _, fn := range catalog.Functions {
		impl := scalarFunc(fn)
		for _, name := range fn.Names() {
			if err := conn.RegisterFunc(name, impl, true); err != nil {
				return fmt.Errorf("register %s: %w", name, err)
			}
		}
	}
	if err := conn.RegisterFunc(querysql.CastFunction, castFunc(policy), true); err != nil {
		return fmt.Errorf("register %s: %w", querysql.CastFunction, err)
	}
	return nil
}

// scalarFunc adapts a vectorized function to SQLite's one-row calls: each
// argument becomes a one-row scalar Arg.
func scalarFunc(fn *function.Function) func(args ...any) (any, error) {
	return func(args ...any) (any, error) {
		in := make([]column.Arg, len(args))
		for i, a := range args {
			arg, err := toArg(a)
			if err != nil {
				return nil, fmt.Errorf("%s: argument %d: %w", fn.Name, i+1, err)
			}
			in[i] = arg
		}
		out, err := fn.Invoke(in)
		if err != nil {
			return nil, err
		}
		return toSQLite(out.Value(0))
	}
}

// castFunc implements jsonsql_cast(value, from, to) with the engine's cast
// table. from is the static type of value before it crossed into SQLite.
func castFunc(policy coerce.IntPolicy) func(x any, from, to string) (any, error) {
	return func(x any, from, to string) (any, error) {
		ft, err := types.Parse(from)
		if err != nil {
			return nil, err
		}
		tt, err := types.Parse(to)
		if err != nil {
			return nil, err
		}
		v, ok := fromSQLite(x, ft)
		if !ok {
			return nil, nil
		}
		out, ok := engine.CastValue(v, ft, tt, policy)
		if !ok {
			return nil, nil
		}
		return toSQLite(out)
	}
}
