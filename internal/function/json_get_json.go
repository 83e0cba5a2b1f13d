package function

import (
	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
)

func jsonGetJSON(opts Options) *Function {
	return accessor[string]{
		name: JSONGetJSON,
		doc:  "Get the source text of any value in a JSON document by its path.",
		ret:  types.Text,
		newVector: func(rows int) *column.Texts {
			return column.NewTexts(types.Text, rows)
		},
		extract: func(o scan.Outcome, _ coerce.IntPolicy) (string, bool) {
			return coerce.RawJSON(o)
		},
	}.build(opts)
}
