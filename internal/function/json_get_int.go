package function

import (
	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/types"
)

func jsonGetInt(opts Options) *Function {
	return accessor[int64]{
		name: JSONGetInt,
		doc:  "Get an integer value from a JSON document by its path.",
		ret:  types.Int64,
		newVector: func(rows int) *column.Ints {
			return column.NewInts(types.Int64, rows)
		},
		extract: coerce.Int,
	}.build(opts)
}
