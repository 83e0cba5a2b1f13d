package function

import (
	"fmt"
	"strings"

	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/jsonpath"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
)

// json_str_contains takes its path as one dotted string of object keys,
// e.g. 'user.profile.name'. Anything other than a string at the path is false.
func jsonStrContains(opts Options) *Function {
	scanOpts := opts.scan(scan.Unsorted)

	check := func(args []ArgType) error {
		if err := checkArity(JSONStrContains, len(args), 3); err != nil {
			return err
		}
		if err := checkDocumentArg(JSONStrContains, args[0].Type); err != nil {
			return err
		}
		for i, a := range args[1:] {
			if a.Type != types.Null && a.Type != types.Text {
				return planErrorf(ErrCodeArgumentType, JSONStrContains, i+2, "must be text, got %s", a.Type)
			}
		}
		return nil
	}

	return &Function{
		Name:      JSONStrContains,
		Doc:       "Does the string at a dotted key path contain the needle?",
		Signature: "json, dotted_path, needle",
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
				return nil, fmt.Errorf("%s: %w", JSONStrContains, err)
			}

			out := column.NewBools(rows)
			var path jsonpath.Path
			for i := range rows {
				doc, ok := document(args[0], i)
				if !ok {
					out.AppendNull()
					continue
				}
				dotted, ok := args[1].Value(i).(string)
				if !ok {
					out.AppendNull()
					continue
				}
				needle, ok := args[2].Value(i).(string)
				if !ok {
					out.AppendNull()
					continue
				}
				path = path[:0]
				for _, k := range strings.Split(dotted, ".") {
					path = append(path, jsonpath.Key(k))
				}
				s, ok := coerce.Str(scan.Find(doc, path, scanOpts))
				out.Append(ok && strings.Contains(s, needle))
			}
			return out, nil
		},
	}
}
