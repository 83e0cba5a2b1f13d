package function

import (
	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
)

var getBoolDocs = map[scan.Sortedness]string{
	scan.Unsorted:        "Get a boolean value from a JSON document by its path.",
	scan.TopLevelSorted:  "Like json_get_bool, for documents whose top-level keys are sorted.",
	scan.RecursiveSorted: "Like json_get_bool, for documents whose keys are sorted at every level.",
}

func jsonGetBool(opts Options, name string, sorted scan.Sortedness) *Function {
	return accessor[bool]{
		name:      name,
		doc:       getBoolDocs[sorted],
		ret:       types.Bool,
		sorted:    sorted,
		newVector: column.NewBools,
		extract: func(o scan.Outcome, _ coerce.IntPolicy) (bool, bool) {
			return coerce.Bool(o)
		},
	}.build(opts)
}
