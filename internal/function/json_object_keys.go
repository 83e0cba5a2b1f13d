package function

import (
	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
)

func jsonObjectKeys(opts Options) *Function {
	return accessor[[]string]{
		name:      JSONObjectKeys,
		aliases:   []string{"json_keys"},
		doc:       "Get the keys of the object at the path, in document order.",
		ret:       types.TextList,
		newVector: column.NewTextLists,
		extract: func(o scan.Outcome, _ coerce.IntPolicy) ([]string, bool) {
			return coerce.Keys(o)
		},
	}.build(opts)
}
