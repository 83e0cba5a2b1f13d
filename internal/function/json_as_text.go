package function

import (
	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
)

var asTextDocs = map[scan.Sortedness]string{
	scan.Unsorted:        "Get any value from a JSON document by its path, as text. Strings are unquoted.",
	scan.TopLevelSorted:  "Like json_as_text, for documents whose top-level keys are sorted.",
	scan.RecursiveSorted: "Like json_as_text, for documents whose keys are sorted at every level.",
}

func jsonAsText(opts Options, name string, sorted scan.Sortedness) *Function {
	return accessor[string]{
		name:   name,
		doc:    asTextDocs[sorted],
		ret:    types.Text,
		sorted: sorted,
		newVector: func(rows int) *column.Texts {
			return column.NewTexts(types.Text, rows)
		},
		extract: func(o scan.Outcome, _ coerce.IntPolicy) (string, bool) {
			return coerce.AsText(o)
		},
	}.build(opts)
}
