package store

import (
	"fmt"
	"strings"

	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
	"github.com/roach88/jsonsql/internal/union"
)

// toArg converts a value SQLite passed to a function.
func toArg(x any) (column.Arg, error) {
	switch v := x.(type) {
	case nil:
		return column.ScalarArg(types.DNull{}), nil
	case int64:
		return column.ScalarArg(types.DInt(v)), nil
	case float64:
		return column.ScalarArg(types.DFloat(v)), nil
	case string:
		return column.ScalarArg(types.DString(v)), nil
	case bool:
		return column.ScalarArg(types.DBool(v)), nil
	case []byte:
		vec := column.NewTexts(types.Binary, 1)
		vec.Append(string(v))
		return column.Arg{Vector: vec, Scalar: true}, nil
	default:
		return column.Arg{}, fmt.Errorf("unsupported SQLite value %T", x)
	}
}

// toSQLite converts an engine cell to a value SQLite can store.
func toSQLite(x any) (any, error) {
	switch v := x.(type) {
	case nil, int64, float64, string:
		return v, nil
	case bool:
		if v {
			return int64(1), nil
		}
		return int64(0), nil
	case union.Value:
		return string(union.JSON(v)), nil
	case []string:
		return encodeTextList(v), nil
	default:
		return nil, fmt.Errorf("unsupported cell %T", x)
	}
}

// fromSQLite converts a value read from SQLite back to an engine cell of
// type t. ok=false is a null cell.
func fromSQLite(x any, t types.T) (any, bool) {
	if x == nil {
		return nil, false
	}
	if b, isBytes := x.([]byte); isBytes && t != types.Binary {
		x = string(b)
	}
	switch t {
	case types.Null:
		return nil, false
	case types.Bool:
		switch v := x.(type) {
		case int64:
			return v != 0, true
		case bool:
			return v, true
		}
	case types.Int32, types.Int64:
		if v, ok := x.(int64); ok {
			return v, true
		}
	case types.Float32, types.Float64:
		switch v := x.(type) {
		case float64:
			return v, true
		case int64:
			return float64(v), true
		}
	case types.Text:
		if v, ok := x.(string); ok {
			return v, true
		}
	case types.Binary:
		switch v := x.(type) {
		case []byte:
			return string(v), true
		case string:
			return v, true
		}
	case types.Union:
		if v, ok := x.(string); ok {
			return union.Parse([]byte(v))
		}
	case types.TextList:
		if v, ok := x.(string); ok {
			return decodeTextList(v)
		}
	}
	return nil, false
}

// toColumnValue converts an engine cell to what an INSERT stores for a column
// of type t.
func toColumnValue(x any, t types.T) (any, error) {
	if b, ok := x.(string); ok && t == types.Binary {
		return []byte(b), nil
	}
	return toSQLite(x)
}

func encodeTextList(items []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, s := range items {
		if i > 0 {
			b.WriteByte(',')
		}
		b.Write(union.JSON(union.String(s)))
	}
	b.WriteByte(']')
	return b.String()
}

func decodeTextList(s string) ([]string, bool) {
	elems, ok := scan.Elements([]byte(s))
	if !ok {
		return nil, false
	}
	out := make([]string, len(elems))
	for i, e := range elems {
		if out[i], ok = scan.Unquote(e); !ok {
			return nil, false
		}
	}
	return out, true
}
