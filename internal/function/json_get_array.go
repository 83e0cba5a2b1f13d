package function

import (
	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
)

func jsonGetArray(opts Options) *Function {
	return accessor[[]string]{
		name:      JSONGetArray,
		doc:       "Get the elements of an array in a JSON document by its path, as JSON text.",
		ret:       types.TextList,
		newVector: column.NewTextLists,
		extract: func(o scan.Outcome, _ coerce.IntPolicy) ([]string, bool) {
			return coerce.Elements(o)
		},
	}.build(opts)
}
