package function

import (
	"fmt"

	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/jsonpath"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
)

// json_extract takes its path as one JSONPath literal instead of a list of
// keys and indices. Only singular paths are accepted.
func jsonExtract(opts Options) *Function {
	scanOpts := opts.scan(scan.Unsorted)

	check := func(args []ArgType) (jsonpath.Path, error) {
		if len(args) != 2 {
			return nil, planErrorf(ErrCodeArity, JSONExtract, 0, "requires exactly two arguments, got %d", len(args))
		}
		if err := checkDocumentArg(JSONExtract, args[0].Type); err != nil {
			return nil, err
		}
		lit, ok := args[1].Literal.(types.DString)
		if !ok {
			return nil, planErrorf(ErrCodeArgumentType, JSONExtract, 2, "path must be a text literal")
		}
		path, err := jsonpath.ParseJSONPath(string(lit))
		if err != nil {
			return nil, planErrorf(ErrCodeInvalidPath, JSONExtract, 2, "%v", err)
		}
		return path, nil
	}

	return &Function{
		Name:      JSONExtract,
		Doc:       "Get a value from a JSON document by a JSONPath expression such as $.a[0].",
		Signature: "json, jsonpath",
		ReturnType: func(args []ArgType) (types.T, error) {
			if _, err := check(args); err != nil {
				return 0, err
			}
			return types.Union, nil
		},
		Invoke: func(args []column.Arg) (column.Vector, error) {
			path, err := check(argTypes(args))
			if err != nil {
				return nil, err
			}
			rows, err := column.Rows(args)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", JSONExtract, err)
			}

			out := column.NewUnions(rows)
			for i := range rows {
				doc, ok := document(args[0], i)
				if !ok {
					out.AppendNull()
					continue
				}
				out.AppendOK(coerce.Union(scan.Find(doc, path, scanOpts)))
			}
			return out, nil
		},
	}
}
