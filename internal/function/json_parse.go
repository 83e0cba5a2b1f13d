package function

import (
	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
	"github.com/roach88/jsonsql/internal/union"
)

func jsonParse(opts Options) *Function {
	return accessor[union.Value]{
		name:      JSONParse,
		doc:       "Parse a whole JSON document into a value tagged with its JSON type.",
		ret:       types.Union,
		newVector: column.NewUnions,
		extract: func(o scan.Outcome, _ coerce.IntPolicy) (union.Value, bool) {
			return coerce.Union(o)
		},
	}.buildRoot(opts)
}
