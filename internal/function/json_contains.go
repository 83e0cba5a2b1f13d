package function

import (
	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
)

// json_contains answers false, not null, when a non-null document lacks the path.
func jsonContains(opts Options) *Function {
	return accessor[bool]{
		name:      JSONContains,
		doc:       "Does the key or index path exist in the JSON document?",
		ret:       types.Bool,
		newVector: column.NewBools,
		extract: func(o scan.Outcome, _ coerce.IntPolicy) (bool, bool) {
			return coerce.Contains(o), true
		},
	}.build(opts)
}
