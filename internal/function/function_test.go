package function

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jsonsql/internal/coerce"
	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/types"
	"github.com/roach88/jsonsql/internal/union"
)

func lookup(t *testing.T, opts Options, name string) *Function {
	t.Helper()
	for _, fn := range All(opts) {
		for _, n := range fn.Names() {
			if n == name {
				return fn
			}
		}
	}
	t.Fatalf("function %s not found", name)
	return nil
}

// call evaluates name on one document with literal path arguments and
// returns the single output cell.
func call(t *testing.T, opts Options, name string, doc any, path ...any) any {
	t.Helper()
	args := []column.Arg{column.ScalarArg(datumOf(doc))}
	for _, p := range path {
		args = append(args, column.ScalarArg(datumOf(p)))
	}
	out, err := lookup(t, opts, name).Invoke(args)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	return out.Value(0)
}

func datumOf(v any) types.Datum {
	switch x := v.(type) {
	case nil:
		return types.DNull{}
	case string:
		return types.DString(x)
	case int:
		return types.DInt(x)
	case bool:
		return types.DBool(x)
	case float64:
		return types.DFloat(x)
	default:
		panic("unsupported literal")
	}
}

func TestScenarios(t *testing.T) {
	var o Options

	assert.Equal(t, true, call(t, o, JSONContains, `{"a":1,"b":2}`, "b"))
	assert.Equal(t, false, call(t, o, JSONContains, `{}`, "b"))
	assert.Equal(t, "x", call(t, o, JSONGetStr, `{"a":{"b":"x"}}`, "a", "b"))
	assert.Equal(t, int64(20), call(t, o, JSONGetInt, `{"a":[10,20,30]}`, "a", 1))
	assert.Equal(t, int64(3), call(t, o, JSONLength, `{"a":1,"b":2,"c":3}`))
	assert.Equal(t, int64(2), call(t, o, JSONLength, `[1,2]`))
	assert.Nil(t, call(t, o, JSONLength, `5`))
	assert.Nil(t, call(t, o, JSONGetStr, `{"a":1}`, "a"))
	assert.Equal(t, `{"x":1}`, call(t, o, JSONAsText, `{"a":{"x":1}}`, "a"))
}

func TestTypedAccessors(t *testing.T) {
	var o Options
	doc := `{"s":"x","i":7,"f":1.5,"fi":2.0,"b":false,"n":null,"a":[1,"y",{"z":true}],"o":{"k":null,"j":1}}`

	tests := []struct {
		fn   string
		path []any
		want any
	}{
		{JSONGetStr, []any{"s"}, "x"},
		{JSONGetStr, []any{"i"}, nil},
		{JSONGetInt, []any{"i"}, int64(7)},
		{JSONGetInt, []any{"fi"}, int64(2)},
		{JSONGetInt, []any{"f"}, nil},
		{JSONGetInt, []any{"s"}, nil},
		{JSONGetFloat, []any{"f"}, 1.5},
		{JSONGetFloat, []any{"i"}, 7.0},
		{JSONGetFloat, []any{"b"}, nil},
		{JSONGetBool, []any{"b"}, false},
		{JSONGetBool, []any{"i"}, nil},
		{JSONGetBool, []any{"a", 2, "z"}, true},
		{JSONGetJSON, []any{"n"}, "null"},
		{JSONGetJSON, []any{"s"}, `"x"`},
		{JSONGetJSON, []any{"a", 2}, `{"z":true}`},
		{JSONGetJSON, []any{"missing"}, nil},
		{JSONGetArray, []any{"a"}, []string{"1", `"y"`, `{"z":true}`}},
		{JSONGetArray, []any{"o"}, nil},
		{JSONAsText, []any{"s"}, "x"},
		{JSONAsText, []any{"f"}, "1.5"},
		{JSONAsText, []any{"b"}, "false"},
		{JSONAsText, []any{"n"}, nil},
		{JSONAsText, []any{"a"}, `[1,"y",{"z":true}]`},
		{JSONLength, []any{"o"}, int64(2)},
		{"json_len", []any{"a"}, int64(3)},
		{JSONObjectKeys, []any{"o"}, []string{"k", "j"}},
		{"json_keys", []any{"a"}, nil},
		{JSONContains, []any{"o", "k"}, true},
		{JSONContains, []any{"a", 3}, false},
		{JSONGet, []any{"i"}, union.Int(7)},
		{JSONGet, []any{"n"}, union.Null{}},
		{JSONGet, []any{"o"}, union.Object(`{"k":null,"j":1}`)},
		{JSONGet, []any{"nope"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			assert.Equal(t, tt.want, call(t, o, tt.fn, doc, tt.path...), "%s%v", tt.fn, tt.path)
		})
	}
}

func TestNullPropagation(t *testing.T) {
	var o Options
	for _, fn := range All(o) {
		if fn.Name == JSONExtract {
			continue
		}
		assert.Nil(t, call(t, o, fn.Name, nil, "a"), fn.Name)
		assert.Nil(t, call(t, o, fn.Name, `{"a":1}`, nil), fn.Name)
	}
}

func TestMalformedDocuments(t *testing.T) {
	var o Options
	for _, doc := range []string{``, `{`, `nope`, `{"a":}`, `[1,2`} {
		for _, fn := range All(o) {
			if fn.Name == JSONExtract {
				continue
			}
			want := any(nil)
			if fn.Name == JSONContains {
				want = false
			}
			assert.Equal(t, want, call(t, o, fn.Name, doc, "a"), "%s(%q)", fn.Name, doc)
		}
	}
}

func TestWholeDocumentRoundTrip(t *testing.T) {
	var o Options
	for _, doc := range []string{`{"a": [1, 2.50, "x"]}`, `[]`, `"s"`, `4.2e-1`, `null`, `true`} {
		assert.Equal(t, doc, call(t, o, JSONGetJSON, doc), doc)
	}
}

func TestOptions(t *testing.T) {
	neg := Options{NegativeIndex: true}
	assert.Nil(t, call(t, Options{}, JSONGetInt, `[1,2,3]`, -1))
	assert.Equal(t, int64(3), call(t, neg, JSONGetInt, `[1,2,3]`, -1))

	truncate := Options{IntPolicy: coerce.Truncate}
	assert.Equal(t, int64(4), call(t, truncate, JSONGetInt, `{"a":4.7}`, "a"))
	assert.Nil(t, call(t, Options{IntPolicy: coerce.Reject}, JSONGetInt, `{"a":4.0}`, "a"))

	strict := Options{Strict: true}
	assert.Equal(t, int64(1), call(t, Options{}, JSONGetInt, `{"a":1,"b":`, "a"))
	assert.Nil(t, call(t, strict, JSONGetInt, `{"a":1,"b":`, "a"))
	assert.Equal(t, false, call(t, strict, JSONContains, `{"a":1,"b":`, "a"))
}

func TestSortedAsText(t *testing.T) {
	var o Options
	unsortedDoc := `{"b":1,"a":2}`
	assert.Equal(t, "2", call(t, o, JSONAsText, unsortedDoc, "a"))
	assert.Nil(t, call(t, o, JSONAsTextTopLevelSorted, unsortedDoc, "a"))

	sortedDoc := `{"a":{"x":1,"y":"v"},"b":2}`
	assert.Equal(t, "v", call(t, o, JSONAsTextTopLevelSorted, sortedDoc, "a", "y"))
	assert.Equal(t, "v", call(t, o, JSONAsTextRecursiveSorted, sortedDoc, "a", "y"))
}

func TestSortedTypedAccessors(t *testing.T) {
	var o Options
	unsortedDoc := `{"z":"last","b":true,"a":"first"}`
	assert.Equal(t, "first", call(t, o, JSONGetStr, unsortedDoc, "a"))
	assert.Nil(t, call(t, o, JSONGetStrTopLevelSorted, unsortedDoc, "a"))
	assert.Equal(t, true, call(t, o, JSONGetBool, unsortedDoc, "b"))
	assert.Nil(t, call(t, o, JSONGetBoolTopLevelSorted, unsortedDoc, "b"))

	nested := `{"a":{"y":false,"x":"v"}}`
	assert.Equal(t, "v", call(t, o, JSONGetStrTopLevelSorted, nested, "a", "x"))
	assert.Nil(t, call(t, o, JSONGetStrRecursiveSorted, nested, "a", "x"))
	assert.Equal(t, false, call(t, o, JSONGetBoolTopLevelSorted, nested, "a", "y"))
	assert.Equal(t, false, call(t, o, JSONGetBoolRecursiveSorted, nested, "a", "y"))

	sortedDoc := `{"a":{"b":true,"s":"x"},"c":1}`
	for _, name := range []string{JSONGetStr, JSONGetStrTopLevelSorted, JSONGetStrRecursiveSorted} {
		assert.Equal(t, "x", call(t, o, name, sortedDoc, "a", "s"), name)
		assert.Nil(t, call(t, o, name, sortedDoc, "c"), name)
	}
	for _, name := range []string{JSONGetBool, JSONGetBoolTopLevelSorted, JSONGetBoolRecursiveSorted} {
		assert.Equal(t, true, call(t, o, name, sortedDoc, "a", "b"), name)
	}
}

func TestJSONStrContains(t *testing.T) {
	var o Options
	doc := `{"name":"Norm Macdonald","user":{"profile":{"name":"Norm Macdonald"}},"n":5}`

	assert.Equal(t, true, call(t, o, JSONStrContains, doc, "name", "Norm"))
	assert.Equal(t, false, call(t, o, JSONStrContains, doc, "name", "Dave"))
	assert.Equal(t, true, call(t, o, JSONStrContains, doc, "user.profile.name", "Macdonald"))
	assert.Equal(t, true, call(t, o, JSONStrContains, doc, "name", ""))
	assert.Equal(t, false, call(t, o, JSONStrContains, doc, "user.profile", "Norm"))
	assert.Equal(t, false, call(t, o, JSONStrContains, doc, "n", "5"))
	assert.Equal(t, false, call(t, o, JSONStrContains, doc, "missing", "x"))
	assert.Equal(t, false, call(t, o, JSONStrContains, `{"name":"Norm`, "name", "N"))
	assert.Nil(t, call(t, o, JSONStrContains, nil, "name", "Norm"))
	assert.Nil(t, call(t, o, JSONStrContains, doc, nil, "Norm"))
	assert.Nil(t, call(t, o, JSONStrContains, doc, "name", nil))

	fn := lookup(t, o, JSONStrContains)
	var pe *PlanError
	_, err := fn.ReturnType([]ArgType{{Type: types.Text}, {Type: types.Text}})
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrCodeArity, pe.Code)
	assert.Equal(t, "ARITY: json_str_contains: requires exactly three arguments, got 2", pe.Error())

	_, err = fn.ReturnType([]ArgType{{Type: types.Text}, {Type: types.Int64}, {Type: types.Text}})
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Position)

	rt, err := fn.ReturnType([]ArgType{{Type: types.Union}, {Type: types.Text}, {Type: types.Text}})
	require.NoError(t, err)
	assert.Equal(t, types.Bool, rt)
}

func TestJSONObjContains(t *testing.T) {
	var o Options
	assert.Equal(t, true, call(t, o, JSONObjContains, `{"a":1,"b":null}`, "b"))
	assert.Equal(t, false, call(t, o, JSONObjContains, `{"a":{"b":1}}`, "b"))
	assert.Equal(t, false, call(t, o, JSONObjContains, `["a"]`, "a"))
	assert.Equal(t, false, call(t, o, JSONObjContains, `not json`, "a"))
	assert.Equal(t, true, call(t, o, "json_object_contains", `{"a":1,"b":`, "a"))
	assert.Equal(t, false, call(t, Options{Strict: true}, JSONObjContains, `{"a":1,"b":`, "a"))
	assert.Nil(t, call(t, o, JSONObjContains, nil, "a"))
	assert.Nil(t, call(t, o, JSONObjContains, `{"a":1}`, nil))

	_, err := lookup(t, o, JSONObjContains).ReturnType([]ArgType{{Type: types.Text}, {Type: types.Int64}})
	var pe *PlanError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrCodeArgumentType, pe.Code)
	assert.Equal(t, 2, pe.Position)

	_, err = lookup(t, o, JSONObjContains).ReturnType([]ArgType{{Type: types.Text}, {Type: types.Text}, {Type: types.Text}})
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrCodeArity, pe.Code)
}

func TestJSONFormatAndParse(t *testing.T) {
	var o Options
	assert.Equal(t, `{"a": [1, 2]}`, call(t, o, JSONFormat, `{"a": [1, 2]}`))
	assert.Equal(t, "x", call(t, o, JSONFormat, `"x"`))
	assert.Equal(t, "1.5", call(t, o, JSONFormat, ` 1.5 `))
	assert.Nil(t, call(t, o, JSONFormat, `{"a":1,"b":`))
	assert.Nil(t, call(t, o, JSONFormat, nil))

	assert.Equal(t, union.Object(`{"a": [1, 2]}`), call(t, o, JSONParse, `{"a": [1, 2]}`))
	assert.Equal(t, union.Int(7), call(t, o, JSONParse, `7`))
	assert.Equal(t, union.Null{}, call(t, o, JSONParse, `null`))
	assert.Nil(t, call(t, o, JSONParse, `[1,`))

	for _, name := range []string{JSONFormat, JSONParse} {
		fn := lookup(t, o, name)
		assert.Equal(t, "json", fn.Signature)
		_, err := fn.ReturnType([]ArgType{{Type: types.Text}, {Type: types.Text}})
		var pe *PlanError
		require.ErrorAs(t, err, &pe, name)
		assert.Equal(t, ErrCodeArity, pe.Code, name)

		_, err = fn.Invoke([]column.Arg{column.ScalarArg(types.DString("{}")), column.ScalarArg(types.DString("a"))})
		assert.ErrorIs(t, err, ErrArgumentShape, name)
	}

	rt, err := lookup(t, o, JSONParse).ReturnType([]ArgType{{Type: types.Binary}})
	require.NoError(t, err)
	assert.Equal(t, types.Union, rt)
}

func TestJSONFromScalar(t *testing.T) {
	var o Options
	assert.Equal(t, union.Int(3), call(t, o, JSONFromScalar, 3))
	assert.Equal(t, union.Float(1.5), call(t, o, JSONFromScalar, 1.5))
	assert.Equal(t, union.String("x"), call(t, o, "scalar_to_json", "x"))
	assert.Equal(t, union.Bool(true), call(t, o, JSONFromScalar, true))
	assert.Equal(t, union.Null{}, call(t, o, JSONFromScalar, nil))

	ints := column.NewInts(types.Int32, 2)
	ints.Append(9)
	ints.AppendNull()
	out, err := lookup(t, o, JSONFromScalar).Invoke([]column.Arg{column.ColumnArg(ints)})
	require.NoError(t, err)
	assert.Equal(t, union.Int(9), out.Value(0))
	assert.Nil(t, out.Value(1))

	fn := lookup(t, o, JSONFromScalar)
	for _, bad := range []types.T{types.Union, types.Binary, types.TextList} {
		_, err := fn.ReturnType([]ArgType{{Type: bad}})
		var pe *PlanError
		require.ErrorAs(t, err, &pe, bad.String())
		assert.Equal(t, ErrCodeArgumentType, pe.Code)
	}
	_, err = fn.ReturnType(nil)
	assert.ErrorIs(t, err, ErrArgumentShape)
}

func TestStrictAccessorsNullOnEveryTruncation(t *testing.T) {
	strict := Options{Strict: true}
	doc := `{"a":{"b":[1,"x",true]},"c":2.5}`
	for n := 0; n < len(doc); n++ {
		prefix := doc[:n]
		assert.Nil(t, call(t, strict, JSONGet, prefix, "a"), prefix)
		assert.Nil(t, call(t, strict, JSONGetInt, prefix, "a", "b", 0), prefix)
		assert.Nil(t, call(t, strict, JSONGetStr, prefix, "a", "b", 1), prefix)
		assert.Nil(t, call(t, strict, JSONFormat, prefix), prefix)
		assert.Equal(t, false, call(t, strict, JSONContains, prefix, "a"), prefix)
	}
	assert.Equal(t, int64(1), call(t, Options{}, JSONGetInt, doc[:len(doc)-6], "a", "b", 0))
}

func TestJSONExtract(t *testing.T) {
	var o Options
	doc := `{"a":{"b":[10,{"c":"deep"}]}}`

	assert.Equal(t, union.String("deep"), call(t, o, JSONExtract, doc, "$.a.b[1].c"))
	assert.Equal(t, union.Int(10), call(t, o, JSONExtract, doc, "$['a']['b'][0]"))
	assert.Nil(t, call(t, o, JSONExtract, doc, "$.a.zzz"))
	assert.Nil(t, call(t, o, JSONExtract, nil, "$.a"))

	fn := lookup(t, o, JSONExtract)
	_, err := fn.ReturnType([]ArgType{{Type: types.Text}, {Type: types.Text, Literal: types.DString("$..a")}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArgumentShape))

	_, err = fn.ReturnType([]ArgType{{Type: types.Text}, {Type: types.Text}})
	assert.ErrorIs(t, err, ErrArgumentShape)

	rt, err := fn.ReturnType([]ArgType{{Type: types.Text}, {Type: types.Text, Literal: types.DString("$.a")}})
	require.NoError(t, err)
	assert.Equal(t, types.Union, rt)
}

func TestReturnTypes(t *testing.T) {
	want := map[string]types.T{
		JSONGet:                  types.Union,
		JSONGetStr:               types.Text,
		JSONGetInt:               types.Int64,
		JSONGetFloat:             types.Float64,
		JSONGetBool:              types.Bool,
		JSONGetJSON:              types.Text,
		JSONGetArray:             types.TextList,
		JSONContains:             types.Bool,
		JSONAsText:               types.Text,
		JSONAsTextTopLevelSorted: types.Text,
		JSONLength:               types.Int64,
		JSONObjectKeys:           types.TextList,
	}
	args := []ArgType{{Type: types.Text}, {Type: types.Text}, {Type: types.Int64}}
	for name, rt := range want {
		got, err := lookup(t, Options{}, name).ReturnType(args)
		require.NoError(t, err, name)
		assert.Equal(t, rt, got, name)
	}
}

func TestArgumentShapeErrors(t *testing.T) {
	fn := lookup(t, Options{}, JSONGetStr)

	_, err := fn.ReturnType(nil)
	var pe *PlanError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrCodeArity, pe.Code)

	_, err = fn.ReturnType([]ArgType{{Type: types.Int64}})
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, ErrCodeArgumentType, pe.Code)
	assert.Equal(t, 1, pe.Position)

	_, err = fn.ReturnType([]ArgType{{Type: types.Text}, {Type: types.Text}, {Type: types.Bool}})
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Position)
	assert.Equal(t, "ARGUMENT_TYPE: json_get_str: argument 3: path arguments must be text or integer, got boolean", pe.Error())

	_, err = fn.ReturnType([]ArgType{{Type: types.Union}, {Type: types.Int32}, {Type: types.Null}})
	assert.NoError(t, err)

	// Invoke applies the same checks to runtime argument types.
	_, err = fn.Invoke([]column.Arg{column.ScalarArg(types.DString("{}")), column.ScalarArg(types.DFloat(1))})
	assert.ErrorIs(t, err, ErrArgumentShape)
}

func TestPerRowPaths(t *testing.T) {
	docs := column.NewTexts(types.Text, 3)
	docs.Append(`{"a":[1,2,3],"b":{"c":"x"}}`)
	docs.Append(`{"a":[4,5,6]}`)
	docs.AppendNull()

	keys := column.NewTexts(types.Text, 3)
	keys.Append("a")
	keys.Append("a")
	keys.Append("a")

	idx := column.NewInts(types.Int64, 3)
	idx.Append(0)
	idx.AppendNull()
	idx.Append(2)

	fn := lookup(t, Options{}, JSONGetInt)
	out, err := fn.Invoke([]column.Arg{column.ColumnArg(docs), column.ColumnArg(keys), column.ColumnArg(idx)})
	require.NoError(t, err)
	require.Equal(t, 3, out.Len())
	assert.Equal(t, int64(1), out.Value(0))
	assert.Nil(t, out.Value(1))
	assert.Nil(t, out.Value(2))

	out, err = fn.Invoke([]column.Arg{column.ColumnArg(docs), column.ScalarArg(types.DString("a")), column.ScalarArg(types.DInt(1))})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Value(0))
	assert.Equal(t, int64(5), out.Value(1))
	assert.Nil(t, out.Value(2))
}

func TestUnionDocumentArgument(t *testing.T) {
	u := column.NewUnions(4)
	u.Append(union.Object(`{"x":{"y":3}}`))
	u.Append(union.Array(`[true]`))
	u.Append(union.String("not json inside"))
	u.AppendNull()

	fn := lookup(t, Options{}, JSONGet)
	out, err := fn.Invoke([]column.Arg{column.ColumnArg(u), column.ScalarArg(types.DString("x"))})
	require.NoError(t, err)
	assert.Equal(t, union.Object(`{"y":3}`), out.Value(0))
	assert.Nil(t, out.Value(1))
	assert.Nil(t, out.Value(2))
	assert.Nil(t, out.Value(3))

	contains := lookup(t, Options{}, JSONContains)
	out, err = contains.Invoke([]column.Arg{column.ColumnArg(u)})
	require.NoError(t, err)
	assert.Equal(t, true, out.Value(2))
}

func TestAllNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, fn := range All(Options{}) {
		for _, n := range fn.Names() {
			assert.False(t, seen[n], n)
			seen[n] = true
		}
		assert.NotEmpty(t, fn.Doc, fn.Name)
	}
	assert.Len(t, seen, 27)
}
