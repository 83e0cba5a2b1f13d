package engine

import (
	"cmp"
	"strings"

	"github.com/roach88/jsonsql/internal/expr"
	"github.com/roach88/jsonsql/internal/union"
)

// compareValues evaluates a comparison between two non-null cells. ok=false
// yields SQL null.
//
// Union cells are equal only with the same discriminant and payload; values
// of different discriminants are unequal and unordered.
func compareValues(op expr.Op, l, r any) (result, ok bool) {
	if lu, isUnion := l.(union.Value); isUnion {
		ru, _ := r.(union.Value)
		switch op {
		case expr.OpEq:
			return union.Equal(lu, ru), true
		case expr.OpNe:
			return !union.Equal(lu, ru), true
		}
		c, ok := union.Compare(lu, ru)
		if !ok {
			return false, false
		}
		return ordered(op, c), true
	}

	c, ok := compareScalars(l, r)
	if !ok {
		return false, false
	}
	return ordered(op, c), true
}

func compareScalars(l, r any) (int, bool) {
	switch x := l.(type) {
	case bool:
		y, ok := r.(bool)
		if !ok {
			return 0, false
		}
		return cmp.Compare(boolToInt(x), boolToInt(y)), true
	case int64:
		switch y := r.(type) {
		case int64:
			return cmp.Compare(x, y), true
		case float64:
			return cmp.Compare(float64(x), y), true
		}
	case float64:
		switch y := r.(type) {
		case int64:
			return cmp.Compare(x, float64(y)), true
		case float64:
			return cmp.Compare(x, y), true
		}
	case string:
		if y, ok := r.(string); ok {
			return strings.Compare(x, y), true
		}
	}
	return 0, false
}

func ordered(op expr.Op, c int) bool {
	switch op {
	case expr.OpEq:
		return c == 0
	case expr.OpNe:
		return c != 0
	case expr.OpLt:
		return c < 0
	case expr.OpLe:
		return c <= 0
	case expr.OpGt:
		return c > 0
	case expr.OpGe:
		return c >= 0
	}
	return false
}
