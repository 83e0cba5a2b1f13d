package function

import (
	"fmt"

	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/jsonpath"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
)

// accessor is the shape shared by every (json, path...) function: navigate,
// then turn the outcome into a cell of T.
type accessor[T any] struct {
	name      string
	aliases   []string
	doc       string
	ret       types.T
	sorted    scan.Sortedness
	newVector func(rows int) *column.Vec[T]
	extract   func(o scan.Outcome, p coerce.IntPolicy) (T, bool)
}

func (a accessor[T]) build(opts Options) *Function {
	scanOpts := opts.scan(a.sorted)

	return &Function{
		Name:      a.name,
		Aliases:   a.aliases,
		Doc:       a.doc,
		Signature: "json, path...",
		ReturnType: func(args []ArgType) (types.T, error) {
			if err := checkPathArgs(a.name, args); err != nil {
				return 0, err
			}
			return a.ret, nil
		},
		Invoke: func(args []column.Arg) (column.Vector, error) {
			if err := checkPathArgs(a.name, argTypes(args)); err != nil {
				return nil, err
			}
			rows, err := column.Rows(args)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", a.name, err)
			}

			out := a.newVector(rows)
			path := make(jsonpath.Path, 0, len(args)-1)
			for i := range rows {
				doc, ok := document(args[0], i)
				if !ok {
					out.AppendNull()
					continue
				}
				path, ok = rowPath(path[:0], args[1:], i)
				if !ok {
					out.AppendNull()
					continue
				}
				out.AppendOK(a.extract(scan.Find(doc, path, scanOpts), opts.IntPolicy))
			}
			return out, nil
		},
	}
}

// buildRoot builds the accessor for the whole document: a single JSON
// argument and no path.
func (a accessor[T]) buildRoot(opts Options) *Function {
	fn := a.build(opts)
	ret, invoke := fn.ReturnType, fn.Invoke

	fn.Signature = "json"
	fn.ReturnType = func(args []ArgType) (types.T, error) {
		if err := checkArity(a.name, len(args), 1); err != nil {
			return 0, err
		}
		return ret(args)
	}
	fn.Invoke = func(args []column.Arg) (column.Vector, error) {
		if err := checkArity(a.name, len(args), 1); err != nil {
			return nil, err
		}
		return invoke(args)
	}
	return fn
}
