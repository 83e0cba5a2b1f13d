// Package coerce turns navigation outcomes into the values each accessor
// returns. Every function reports ok=false where the accessor yields SQL null.
//
// Coercion is strict: a leaf only satisfies a target of its own kind, with the
// single widening of integers to floats and the policy-controlled narrowing
// of integral floats to integers.
package coerce

import (
	"fmt"
	"math"

	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
	"github.com/roach88/jsonsql/internal/union"
)

// IntPolicy decides how a float leaf satisfies an integer target.
type IntPolicy uint8

const (
	// Integral accepts floats with no fractional part (4.0 -> 4, 4.2 -> null).
	Integral IntPolicy = iota
	// Reject never accepts a float.
	Reject
	// Truncate drops the fraction toward zero.
	Truncate
)

var policyNames = [...]string{
	Integral: "integral",
	Reject:   "reject",
	Truncate: "truncate",
}

func (p IntPolicy) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}
	return "unknown"
}

// ParseIntPolicy maps a configured name to a policy.
func ParseIntPolicy(name string) (IntPolicy, error) {
	for p, n := range policyNames {
		if n == name {
			return IntPolicy(p), nil
		}
	}
	return 0, fmt.Errorf("unknown float_to_int policy %q", name)
}

func isScalar(o scan.Outcome, t scan.Type) bool {
	return o.Kind == scan.Scalar && o.Type == t
}

// Bool accepts only boolean leaves.
func Bool(o scan.Outcome) (bool, bool) {
	if isScalar(o, scan.TypeBool) {
		return o.Bool, true
	}
	return false, false
}

// Int accepts integer leaves, and float leaves as allowed by p.
func Int(o scan.Outcome, p IntPolicy) (int64, bool) {
	switch {
	case isScalar(o, scan.TypeInt):
		return o.Int, true
	case isScalar(o, scan.TypeFloat):
		return FloatToInt(o.Float, p)
	default:
		return 0, false
	}
}

// 2^63 as a float64; int64 holds [-2^63, 2^63).
const twoTo63 = 9223372036854775808.0

// FloatToInt applies p to a single float.
func FloatToInt(f float64, p IntPolicy) (int64, bool) {
	switch p {
	case Integral:
		if f != math.Trunc(f) {
			return 0, false
		}
	case Truncate:
		f = math.Trunc(f)
	default:
		return 0, false
	}
	if math.IsNaN(f) || f < -twoTo63 || f >= twoTo63 {
		return 0, false
	}
	return int64(f), true
}

// Float accepts float leaves and widens integer leaves.
func Float(o scan.Outcome) (float64, bool) {
	switch {
	case isScalar(o, scan.TypeFloat):
		return o.Float, true
	case isScalar(o, scan.TypeInt):
		return float64(o.Int), true
	default:
		return 0, false
	}
}

// Str accepts only string leaves.
func Str(o scan.Outcome) (string, bool) {
	if isScalar(o, scan.TypeString) {
		return o.Str, true
	}
	return "", false
}

// RawJSON returns the source text of any located value. A JSON null is the
// text "null", not SQL null.
func RawJSON(o scan.Outcome) (string, bool) {
	if !o.Found() {
		return "", false
	}
	return string(o.Raw), true
}

// AsText returns strings unquoted and every other non-null value as its
// source text.
func AsText(o scan.Outcome) (string, bool) {
	switch {
	case !o.Found(), o.IsNull():
		return "", false
	case o.Type == scan.TypeString:
		return o.Str, true
	default:
		return string(o.Raw), true
	}
}

// Union tags the located value.
func Union(o scan.Outcome) (union.Value, bool) {
	return union.FromOutcome(o)
}

// Contains is the existence test: true for any located value, JSON null included.
func Contains(o scan.Outcome) bool {
	return o.Found()
}

// Length counts the members or elements of a located container.
func Length(o scan.Outcome) (int64, bool) {
	if o.Kind != scan.Container {
		return 0, false
	}
	return scan.Length(o.Raw)
}

// Keys lists the member keys of a located object.
func Keys(o scan.Outcome) ([]string, bool) {
	if o.Kind != scan.Container || o.Type != scan.TypeObject {
		return nil, false
	}
	return scan.Keys(o.Raw)
}

// Elements lists the raw JSON text of each element of a located array.
func Elements(o scan.Outcome) ([]string, bool) {
	if o.Kind != scan.Container || o.Type != scan.TypeArray {
		return nil, false
	}
	raw, ok := scan.Elements(o.Raw)
	if !ok {
		return nil, false
	}
	out := make([]string, len(raw))
	for i, e := range raw {
		out[i] = string(e)
	}
	return out, true
}

// NarrowInt32 range-checks i for a 32-bit target.
func NarrowInt32(i int64) (int64, bool) {
	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, false
	}
	return i, true
}

// NarrowFloat32 rounds f to single precision. Finite values beyond the
// float32 range yield false.
func NarrowFloat32(f float64) (float64, bool) {
	n := float32(f)
	if math.IsInf(float64(n), 0) && !math.IsInf(f, 0) {
		return 0, false
	}
	return float64(n), true
}

// Cast converts a union value to a primitive SQL type with exactly the
// semantics of the matching typed accessor, so a cast over the generic
// accessor and the specialized accessor agree for every input.
func Cast(v union.Value, t types.T, p IntPolicy) types.Datum {
	if v == nil {
		return types.DNull{}
	}
	o := union.Outcome(v)
	switch t {
	case types.Bool:
		if b, ok := Bool(o); ok {
			return types.DBool(b)
		}
	case types.Int64, types.Int32:
		i, ok := Int(o, p)
		if ok && t == types.Int32 {
			i, ok = NarrowInt32(i)
		}
		if ok {
			return types.DInt(i)
		}
	case types.Float64, types.Float32:
		f, ok := Float(o)
		if ok && t == types.Float32 {
			f, ok = NarrowFloat32(f)
		}
		if ok {
			return types.DFloat(f)
		}
	case types.Text:
		if s, ok := Str(o); ok {
			return types.DString(s)
		}
	}
	return types.DNull{}
}
