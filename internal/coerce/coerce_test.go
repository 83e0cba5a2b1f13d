package coerce

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jsonsql/internal/jsonpath"
	"github.com/roach88/jsonsql/internal/scan"
	"github.com/roach88/jsonsql/internal/types"
	"github.com/roach88/jsonsql/internal/union"
)

const doc = `{"n":null,"b":true,"i":7,"f":1.5,"fi":4.0,"s":"x","a":[1,"two"],"o":{"k":1,"j":[]}}`

func at(key string) scan.Outcome {
	return scan.Find([]byte(doc), jsonpath.Path{jsonpath.Key(key)}, scan.Options{})
}

var (
	missing   = at("nope")
	malformed = scan.Outcome{Kind: scan.Malformed}
)

func TestBool(t *testing.T) {
	v, ok := Bool(at("b"))
	assert.True(t, ok)
	assert.True(t, v)

	for _, key := range []string{"n", "i", "f", "s", "a", "o", "nope"} {
		_, ok := Bool(at(key))
		assert.False(t, ok, key)
	}
	_, ok = Bool(malformed)
	assert.False(t, ok)
}

func TestInt(t *testing.T) {
	v, ok := Int(at("i"), Integral)
	assert.True(t, ok)
	assert.Equal(t, int64(7), v)

	v, ok = Int(at("fi"), Integral)
	assert.True(t, ok)
	assert.Equal(t, int64(4), v)

	_, ok = Int(at("f"), Integral)
	assert.False(t, ok)

	_, ok = Int(at("fi"), Reject)
	assert.False(t, ok)

	v, ok = Int(at("f"), Truncate)
	assert.True(t, ok)
	assert.Equal(t, int64(1), v)

	for _, key := range []string{"n", "b", "s", "a", "o", "nope"} {
		_, ok := Int(at(key), Integral)
		assert.False(t, ok, key)
	}
}

func TestFloatToInt(t *testing.T) {
	tests := []struct {
		f      float64
		p      IntPolicy
		want   int64
		wantOK bool
	}{
		{-2.0, Integral, -2, true},
		{-2.7, Truncate, -2, true},
		{-2.7, Integral, 0, false},
		{1e19, Integral, 0, false},
		{-9223372036854775808.0, Integral, math.MinInt64, true},
		{math.Inf(1), Truncate, 0, false},
		{math.NaN(), Truncate, 0, false},
	}
	for _, tt := range tests {
		got, ok := FloatToInt(tt.f, tt.p)
		assert.Equal(t, tt.wantOK, ok, "%v %v", tt.f, tt.p)
		assert.Equal(t, tt.want, got, "%v %v", tt.f, tt.p)
	}
}

func TestFloat(t *testing.T) {
	v, ok := Float(at("f"))
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)

	v, ok = Float(at("i"))
	assert.True(t, ok)
	assert.Equal(t, 7.0, v)

	_, ok = Float(at("s"))
	assert.False(t, ok)
}

func TestStr(t *testing.T) {
	v, ok := Str(at("s"))
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	for _, key := range []string{"n", "b", "i", "f", "a", "o"} {
		_, ok := Str(at(key))
		assert.False(t, ok, key)
	}
}

func TestRawJSON(t *testing.T) {
	tests := map[string]string{
		"n": "null",
		"b": "true",
		"f": "1.5",
		"s": `"x"`,
		"a": `[1,"two"]`,
	}
	for key, want := range tests {
		got, ok := RawJSON(at(key))
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
	_, ok := RawJSON(missing)
	assert.False(t, ok)
}

func TestAsText(t *testing.T) {
	tests := map[string]string{
		"b":  "true",
		"i":  "7",
		"fi": "4.0",
		"s":  "x",
		"o":  `{"k":1,"j":[]}`,
	}
	for key, want := range tests {
		got, ok := AsText(at(key))
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
	_, ok := AsText(at("n"))
	assert.False(t, ok)
	_, ok = AsText(malformed)
	assert.False(t, ok)
}

func TestContainers(t *testing.T) {
	n, ok := Length(at("o"))
	assert.True(t, ok)
	assert.Equal(t, int64(2), n)

	_, ok = Length(at("i"))
	assert.False(t, ok)

	keys, ok := Keys(at("o"))
	assert.True(t, ok)
	assert.Equal(t, []string{"k", "j"}, keys)

	_, ok = Keys(at("a"))
	assert.False(t, ok)

	elems, ok := Elements(at("a"))
	assert.True(t, ok)
	assert.Equal(t, []string{"1", `"two"`}, elems)

	_, ok = Elements(at("o"))
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	assert.True(t, Contains(at("n")))
	assert.True(t, Contains(at("o")))
	assert.False(t, Contains(missing))
	assert.False(t, Contains(malformed))
}

func TestNarrow(t *testing.T) {
	_, ok := NarrowInt32(math.MaxInt32 + 1)
	assert.False(t, ok)
	v, ok := NarrowInt32(-5)
	assert.True(t, ok)
	assert.Equal(t, int64(-5), v)

	_, ok = NarrowFloat32(1e300)
	assert.False(t, ok)
	f, ok := NarrowFloat32(0.5)
	assert.True(t, ok)
	assert.Equal(t, 0.5, f)
}

// Casting the generic accessor's value must agree with the typed accessor.
func TestCastAgreesWithTypedAccessors(t *testing.T) {
	for _, key := range []string{"n", "b", "i", "f", "fi", "s", "a", "o", "nope"} {
		o := at(key)
		v, _ := union.FromOutcome(o)
		for _, p := range []IntPolicy{Integral, Reject, Truncate} {
			b, ok := Bool(o)
			assert.Equal(t, datum(ok, types.DBool(b)), Cast(v, types.Bool, p), key)

			i, ok := Int(o, p)
			assert.Equal(t, datum(ok, types.DInt(i)), Cast(v, types.Int64, p), key)

			f, ok := Float(o)
			assert.Equal(t, datum(ok, types.DFloat(f)), Cast(v, types.Float64, p), key)

			s, ok := Str(o)
			assert.Equal(t, datum(ok, types.DString(s)), Cast(v, types.Text, p), key)
		}
	}
}

func datum(ok bool, d types.Datum) types.Datum {
	if !ok {
		return types.DNull{}
	}
	return d
}

func TestCastNarrowAndUnsupported(t *testing.T) {
	assert.Equal(t, types.DInt(7), Cast(union.Int(7), types.Int32, Integral))
	assert.Equal(t, types.DNull{}, Cast(union.Int(1<<40), types.Int32, Integral))
	assert.Equal(t, types.DFloat(1.5), Cast(union.Float(1.5), types.Float32, Integral))
	assert.Equal(t, types.DNull{}, Cast(union.Int(1), types.Binary, Integral))
	assert.Equal(t, types.DNull{}, Cast(nil, types.Int64, Integral))
}

func TestParseIntPolicy(t *testing.T) {
	for _, p := range []IntPolicy{Integral, Reject, Truncate} {
		got, err := ParseIntPolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParseIntPolicy("round")
	assert.Error(t, err)
}
