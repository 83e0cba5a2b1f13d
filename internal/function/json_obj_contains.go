package function

import (
	"fmt"

	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/jsonpath"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
)

// json_obj_contains is json_contains narrowed to one top-level key.
func jsonObjContains(opts Options) *Function {
	scanOpts := opts.scan(scan.Unsorted)

	check := func(args []ArgType) error {
		if err := checkArity(JSONObjContains, len(args), 2); err != nil {
			return err
		}
		if err := checkDocumentArg(JSONObjContains, args[0].Type); err != nil {
			return err
		}
		if args[1].Type != types.Null && args[1].Type != types.Text {
			return planErrorf(ErrCodeArgumentType, JSONObjContains, 2, "key must be text, got %s", args[1].Type)
		}
		return nil
	}

	return &Function{
		Name:      JSONObjContains,
		Aliases:   []string{"json_object_contains"},
		Doc:       "Does the key exist at the top level of the JSON object?",
		Signature: "json, key",
		ReturnType: func(args []ArgType) (types.T, error) {
			if err := check(args); err != nil {
				return 0, err
			}
			return types.Bool, nil
		},
		Invoke: func(args []column.Arg) (column.Vector, error) {
			if err := check(argTypes(args)); err != nil {
				return nil, err
			}
			rows, err := column.Rows(args)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", JSONObjContains, err)
			}

			out := column.NewBools(rows)
			path := make(jsonpath.Path, 1)
			for i := range rows {
				doc, ok := document(args[0], i)
				if !ok {
					out.AppendNull()
					continue
				}
				key, ok := args[1].Value(i).(string)
				if !ok {
					out.AppendNull()
					continue
				}
				path[0] = jsonpath.Key(key)
				out.Append(coerce.Contains(scan.Find(doc, path, scanOpts)))
			}
			return out, nil
		},
	}
}
