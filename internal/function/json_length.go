package function

import (
	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
)

func jsonLength(opts Options) *Function {
	return accessor[int64]{
		name:    JSONLength,
		aliases: []string{"json_len"},
		doc:     "Get the length of the array or object at the path.",
		ret:     types.Int64,
		newVector: func(rows int) *column.Ints {
			return column.NewInts(types.Int64, rows)
		},
		extract: func(o scan.Outcome, _ coerce.IntPolicy) (int64, bool) {
			return coerce.Length(o)
		},
	}.build(opts)
}
