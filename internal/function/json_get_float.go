package function

import (
	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
)

func jsonGetFloat(opts Options) *Function {
	return accessor[float64]{
		name:      JSONGetFloat,
		doc:       "Get a float value from a JSON document by its path. Integers are widened.",
		ret:       types.Float64,
		newVector: column.NewFloats,
		extract: func(o scan.Outcome, _ coerce.IntPolicy) (float64, bool) {
			return coerce.Float(o)
		},
	}.build(opts)
}
