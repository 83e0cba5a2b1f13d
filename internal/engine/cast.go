package engine

import (
	"strconv"
	"strings"

	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/types"
	"github.com/roach88/jsonsql/internal/union"
)

// CastValue converts one non-null cell. ok=false yields a null cell: casts
// that cannot represent the value produce null rather than an error.
//
// Union values go through coerce.Cast, the same table the typed accessors use.
func CastValue(x any, from, to types.T, p coerce.IntPolicy) (any, bool) {
	if from == to {
		return x, true
	}
	switch v := x.(type) {
	case union.Value:
		return datumValue(coerce.Cast(v, to, p))
	case bool:
		if to == types.Text {
			return strconv.FormatBool(v), true
		}
		return castInt(boolToInt(v), to)
	case int64:
		return castInt(v, to)
	case float64:
		return castFloat(v, to)
	case string:
		return castString(v, to)
	}
	return nil, false
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func castInt(v int64, to types.T) (any, bool) {
	switch to {
	case types.Int64:
		return v, true
	case types.Int32:
		return coerce.NarrowInt32(v)
	case types.Float64:
		return float64(v), true
	case types.Float32:
		return coerce.NarrowFloat32(float64(v))
	case types.Bool:
		return v != 0, true
	case types.Text:
		return strconv.FormatInt(v, 10), true
	}
	return nil, false
}

func castFloat(v float64, to types.T) (any, bool) {
	switch to {
	case types.Int64, types.Int32:
		i, ok := coerce.FloatToInt(v, coerce.Truncate)
		if !ok {
			return nil, false
		}
		return castInt(i, to)
	case types.Float64:
		return v, true
	case types.Float32:
		return coerce.NarrowFloat32(v)
	case types.Bool:
		return v != 0, true
	case types.Text:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	}
	return nil, false
}

func castString(v string, to types.T) (any, bool) {
	switch to {
	case types.Text, types.Binary:
		return v, true
	case types.Int64, types.Int32:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, false
		}
		return castInt(i, to)
	case types.Float64, types.Float32:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, false
		}
		return castFloat(f, to)
	case types.Bool:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return nil, false
		}
		return b, true
	case types.Union:
		u, ok := union.Parse([]byte(v))
		if !ok {
			return nil, false
		}
		return u, true
	}
	return nil, false
}

// datumValue unwraps a literal into the Go value vectors hold.
func datumValue(d types.Datum) (any, bool) {
	switch v := d.(type) {
	case types.DBool:
		return bool(v), true
	case types.DInt:
		return int64(v), true
	case types.DFloat:
		return float64(v), true
	case types.DString:
		return string(v), true
	default:
		return nil, false
	}
}
