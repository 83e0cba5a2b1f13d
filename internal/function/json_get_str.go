package function

import (
	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
)

var getStrDocs = map[scan.Sortedness]string{
	scan.Unsorted:        "Get a string value from a JSON document by its path.",
	scan.TopLevelSorted:  "Like json_get_str, for documents whose top-level keys are sorted.",
	scan.RecursiveSorted: "Like json_get_str, for documents whose keys are sorted at every level.",
}

func jsonGetStr(opts Options, name string, sorted scan.Sortedness) *Function {
	return accessor[string]{
		name:   name,
		doc:    getStrDocs[sorted],
		ret:    types.Text,
		sorted: sorted,
		newVector: func(rows int) *column.Texts {
			return column.NewTexts(types.Text, rows)
		},
		extract: func(o scan.Outcome, _ coerce.IntPolicy) (string, bool) {
			return coerce.Str(o)
		},
	}.build(opts)
}
