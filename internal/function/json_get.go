package function

import (
	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
	"github.com/roach88/jsonsql/internal/union"
)

func jsonGet(opts Options) *Function {
	return accessor[union.Value]{
		name:      JSONGet,
		doc:       "Get a value from a JSON document by its path, tagged with its JSON type.",
		ret:       types.Union,
		newVector: column.NewUnions,
		extract: func(o scan.Outcome, _ coerce.IntPolicy) (union.Value, bool) {
			return coerce.Union(o)
		},
	}.build(opts)
}
