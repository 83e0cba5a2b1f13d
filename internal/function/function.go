package function

import (
	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
)

// Function names. Aliases are listed on each Function.
const (
	JSONGet                    = "json_get"
	JSONGetStr                 = "json_get_str"
	JSONGetStrTopLevelSorted   = "json_get_str_top_level_sorted"
	JSONGetStrRecursiveSorted  = "json_get_str_recursive_sorted"
	JSONGetInt                 = "json_get_int"
	JSONGetFloat               = "json_get_float"
	JSONGetBool                = "json_get_bool"
	JSONGetBoolTopLevelSorted  = "json_get_bool_top_level_sorted"
	JSONGetBoolRecursiveSorted = "json_get_bool_recursive_sorted"
	JSONGetJSON                = "json_get_json"
	JSONGetArray               = "json_get_array"
	JSONContains               = "json_contains"
	JSONObjContains            = "json_obj_contains"
	JSONStrContains            = "json_str_contains"
	JSONAsText                 = "json_as_text"
	JSONAsTextTopLevelSorted   = "json_as_text_top_level_sorted"
	JSONAsTextRecursiveSorted  = "json_as_text_recursive_sorted"
	JSONFormat                 = "json_format"
	JSONParse                  = "json_parse"
	JSONFromScalar             = "json_from_scalar"
	JSONLength                 = "json_length"
	JSONObjectKeys             = "json_object_keys"
	JSONExtract                = "json_extract"
)

// ArgType describes one argument at bind time.
type ArgType struct {
	Type types.T
	// Literal holds the value of a constant argument, nil otherwise.
	Literal types.Datum
}

// Options configures the behavior shared by every function.
type Options struct {
	// IntPolicy decides how float leaves satisfy integer results.
	IntPolicy coerce.IntPolicy
	// NegativeIndex resolves negative array indices from the end.
	NegativeIndex bool
	// Strict treats any document that is not entirely valid JSON as malformed.
	Strict bool
}

func (o Options) scan(sorted scan.Sortedness) scan.Options {
	return scan.Options{NegativeIndex: o.NegativeIndex, Strict: o.Strict, Sorted: sorted}
}

// Function is one SQL scalar function.
type Function struct {
	Name    string
	Aliases []string
	Doc     string
	// Signature is a human readable argument list, e.g. "json, path...".
	Signature string

	// ReturnType checks the argument types and reports the result type.
	ReturnType func(args []ArgType) (types.T, error)

	// Invoke evaluates the function over a batch. Arguments are checked the
	// same way ReturnType checks them, since hosts with dynamic typing only
	// learn the types at execution time.
	Invoke func(args []column.Arg) (column.Vector, error)
}

// Names returns the function name followed by its aliases.
func (f *Function) Names() []string {
	return append([]string{f.Name}, f.Aliases...)
}

// All builds every function under opts, in a stable order.
func All(opts Options) []*Function {
	return []*Function{
		jsonGet(opts),
		jsonGetStr(opts, JSONGetStr, scan.Unsorted),
		jsonGetStr(opts, JSONGetStrTopLevelSorted, scan.TopLevelSorted),
		jsonGetStr(opts, JSONGetStrRecursiveSorted, scan.RecursiveSorted),
		jsonGetInt(opts),
		jsonGetFloat(opts),
		jsonGetBool(opts, JSONGetBool, scan.Unsorted),
		jsonGetBool(opts, JSONGetBoolTopLevelSorted, scan.TopLevelSorted),
		jsonGetBool(opts, JSONGetBoolRecursiveSorted, scan.RecursiveSorted),
		jsonGetJSON(opts),
		jsonGetArray(opts),
		jsonContains(opts),
		jsonObjContains(opts),
		jsonStrContains(opts),
		jsonAsText(opts, JSONAsText, scan.Unsorted),
		jsonAsText(opts, JSONAsTextTopLevelSorted, scan.TopLevelSorted),
		jsonAsText(opts, JSONAsTextRecursiveSorted, scan.RecursiveSorted),
		jsonFormat(opts),
		jsonParse(opts),
		jsonFromScalar(opts),
		jsonLength(opts),
		jsonObjectKeys(opts),
		jsonExtract(opts),
	}
}
