package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	valid := []string{
		`{}`, `[]`, ` {"a": [1, 2.5, -3e10, true, false, null, "x"]} `, `"é"`, `0`, `-0.0E+1`,
		`{"a":{"b":{"c":[[]]}}}`, "\"日本\"",
	}
	for _, doc := range valid {
		assert.True(t, Valid([]byte(doc)), doc)
	}

	invalid := []string{
		``, ` `, `{}x`, `1 2`, `{"a":1,}`, `[1,]`, `{"a"}`, `[01]`, `+1`, `.5`, `1.e5`,
		`"abc`, `tru`, `nulll`, `{"a":1]`, `[1}`, "\"\x01\"",
	}
	for _, doc := range invalid {
		assert.False(t, Valid([]byte(doc)), doc)
	}
}

func TestLength(t *testing.T) {
	n, ok := Length([]byte(`{"a":1,"b":2,"c":3}`))
	assert.True(t, ok)
	assert.Equal(t, int64(3), n)

	n, ok = Length([]byte(`[1,[2,3],{"x":[4]}]`))
	assert.True(t, ok)
	assert.Equal(t, int64(3), n)

	n, ok = Length([]byte(`[]`))
	assert.True(t, ok)
	assert.Zero(t, n)

	_, ok = Length([]byte(`5`))
	assert.False(t, ok)

	_, ok = Length([]byte(`[1,2`))
	assert.False(t, ok)
}

func TestKeys(t *testing.T) {
	keys, ok := Keys([]byte(`{"b":1,"a\u0031":{"z":2},"b":3}`))
	assert.True(t, ok)
	assert.Equal(t, []string{"b", "a1", "b"}, keys)

	keys, ok = Keys([]byte(`{}`))
	assert.True(t, ok)
	assert.Empty(t, keys)

	_, ok = Keys([]byte(`[1]`))
	assert.False(t, ok)
}

func TestElements(t *testing.T) {
	elems, ok := Elements([]byte(`[1, {"a":2} ,"x"]`))
	assert.True(t, ok)
	assert.Equal(t, [][]byte{[]byte("1"), []byte(`{"a":2}`), []byte(`"x"`)}, elems)

	_, ok = Elements([]byte(`{"a":1}`))
	assert.False(t, ok)
}

func TestUnquote(t *testing.T) {
	s, ok := Unquote([]byte(`"a\"b"`))
	assert.True(t, ok)
	assert.Equal(t, `a"b`, s)

	s, ok = Unquote([]byte(`"plain"`))
	assert.True(t, ok)
	assert.Equal(t, "plain", s)

	_, ok = Unquote([]byte(`"open`))
	assert.False(t, ok)
	_, ok = Unquote([]byte(`"a" `))
	assert.False(t, ok)
}
