package function

import (
	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
)

// json_format is json_as_text at the root. A document that is a single
// string comes back unquoted.
func jsonFormat(opts Options) *Function {
	return accessor[string]{
		name: JSONFormat,
		doc:  "Render a whole JSON document as text, or null when it is not valid JSON.",
		ret:  types.Text,
		newVector: func(rows int) *column.Texts {
			return column.NewTexts(types.Text, rows)
		},
		extract: func(o scan.Outcome, _ coerce.IntPolicy) (string, bool) {
			return coerce.AsText(o)
		},
	}.buildRoot(opts)
}
