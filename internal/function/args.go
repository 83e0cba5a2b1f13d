package function

import (
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/jsonpath"
	"github.com/roach88/jsonsql/internal/types"
	"github.com/roach88/jsonsql/internal/union"
)

// checkPathArgs validates a (json, path...) argument list.
func checkPathArgs(fn string, args []ArgType) error {
	if len(args) == 0 {
		return planErrorf(ErrCodeArity, fn, 0, "requires at least one argument")
	}
	if err := checkDocumentArg(fn, args[0].Type); err != nil {
		return err
	}
	for i, a := range args[1:] {
		if a.Type != types.Null && !a.Type.IsPathKey() {
			return planErrorf(ErrCodeArgumentType, fn, i+2,
				"path arguments must be text or integer, got %s", a.Type)
		}
	}
	return nil
}

func checkDocumentArg(fn string, t types.T) error {
	if t != types.Null && !t.IsJSONInput() {
		return planErrorf(ErrCodeArgumentType, fn, 1,
			"JSON argument must be text, bytea or json_union, got %s", t)
	}
	return nil
}

// argTypes describes runtime arguments the way a binder would.
func argTypes(args []column.Arg) []ArgType {
	out := make([]ArgType, len(args))
	for i, a := range args {
		out[i] = ArgType{Type: a.Type()}
		if a.Scalar {
			if d, ok := column.Datum(a.Vector, 0); ok {
				out[i].Literal = d
			}
		}
	}
	return out
}

// document returns the JSON text of the first argument at row i. ok is false
// for a null cell. Union cells contribute their JSON rendering.
func document(a column.Arg, i int) (doc []byte, ok bool) {
	switch v := a.Value(i).(type) {
	case string:
		return []byte(v), true
	case union.Value:
		return union.JSON(v), true
	default:
		return nil, false
	}
}

// rowPath appends the path of row i to dst. ok is false when any path
// argument is null at that row.
func rowPath(dst jsonpath.Path, args []column.Arg, i int) (jsonpath.Path, bool) {
	for _, a := range args {
		switch v := a.Value(i).(type) {
		case string:
			dst = append(dst, jsonpath.Key(v))
		case int64:
			dst = append(dst, jsonpath.Index(v))
		default:
			return dst, false
		}
	}
	return dst, true
}

var argCounts = [...]string{"zero arguments", "one argument", "two arguments", "three arguments"}

// checkArity fails unless the call has exactly want arguments.
func checkArity(fn string, got, want int) error {
	if got != want {
		return planErrorf(ErrCodeArity, fn, 0, "requires exactly %s, got %d", argCounts[want], got)
	}
	return nil
}
