package function

import (
	"fmt"

	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/types"
	"github.com/roach88/jsonsql/internal/union"
)

// json_from_scalar lifts a SQL scalar into the union. An untyped NULL
// becomes JSON null; a null cell of a typed column stays SQL null.
func jsonFromScalar(Options) *Function {
	check := func(args []ArgType) error {
		if err := checkArity(JSONFromScalar, len(args), 1); err != nil {
			return err
		}
		switch t := args[0].Type; {
		case t == types.Null, t == types.Bool, t == types.Text, t.IsNumeric():
			return nil
		default:
			return planErrorf(ErrCodeArgumentType, JSONFromScalar, 1,
				"value must be null, boolean, numeric or text, got %s", t)
		}
	}

	return &Function{
		Name:      JSONFromScalar,
		Aliases:   []string{"scalar_to_json"},
		Doc:       "Convert a null, boolean, numeric or text value to a JSON union value.",
		Signature: "value",
		ReturnType: func(args []ArgType) (types.T, error) {
			if err := check(args); err != nil {
				return 0, err
			}
			return types.Union, nil
		},
		Invoke: func(args []column.Arg) (column.Vector, error) {
			if err := check(argTypes(args)); err != nil {
				return nil, err
			}
			rows, err := column.Rows(args)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", JSONFromScalar, err)
			}

			out := column.NewUnions(rows)
			untyped := args[0].Type() == types.Null
			for i := range rows {
				switch v := args[0].Value(i).(type) {
				case bool:
					out.Append(union.Bool(v))
				case int64:
					out.Append(union.Int(v))
				case float64:
					out.Append(union.Float(v))
				case string:
					out.Append(union.String(v))
				default:
					if untyped {
						out.Append(union.Null{})
					} else {
						out.AppendNull()
					}
				}
			}
			return out, nil
		},
	}
}
