package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jsonsql/internal/types"
)

func TestExprSealed(t *testing.T) {
	var _ Expr = Column{}
	var _ Expr = Literal{}
	var _ Expr = Call{}
	var _ Expr = Cast{}
	var _ Expr = Binary{}
	var _ Expr = IsNull{}
}

func TestString(t *testing.T) {
	e := Bin(OpAnd,
		Bin(OpEq, CastTo(Fn("json_get", Col("doc"), Str("a"), Int(0)), types.Int64), Int(1)),
		IsNull{Expr: Bin(OpLongArrow, Col("doc"), Str("it's")), Negated: true},
	)
	assert.Equal(t,
		"((CAST(json_get(doc, 'a', 0) AS bigint) = 1) AND (doc ->> 'it''s') IS NOT NULL)",
		String(e))
}

func TestEqual(t *testing.T) {
	a := Fn("json_get", Col("doc"), Str("a"))
	assert.True(t, Equal(a, Fn("json_get", Col("doc"), Str("a"))))
	assert.False(t, Equal(a, Fn("json_get", Col("doc"), Str("b"))))
	assert.False(t, Equal(a, Fn("json_get", Col("doc"))))
	assert.False(t, Equal(Int(1), Lit(types.DFloat(1))))
	assert.False(t, Equal(CastTo(Col("x"), types.Int64), CastTo(Col("x"), types.Int32)))
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(Col("x"), nil))
}

func TestTransformIsBottomUpAndPure(t *testing.T) {
	in := Fn("outer", Fn("inner", Col("x")), Col("y"))
	var order []string
	out := Transform(in, func(e Expr) Expr {
		switch n := e.(type) {
		case Column:
			order = append(order, n.Name)
			return Col(n.Name + "2")
		case Call:
			order = append(order, n.Name)
		}
		return e
	})

	assert.Equal(t, []string{"x", "inner", "y", "outer"}, order)
	assert.Equal(t, "outer(inner(x2), y2)", String(out))
	assert.Equal(t, "outer(inner(x), y)", String(in))
}

func TestWalkAndCalls(t *testing.T) {
	e := CastTo(Fn("a", Fn("b"), Bin(OpEq, Fn("c"), Int(1))), types.Text)
	assert.Equal(t, []string{"a", "b", "c"}, Calls(e))

	var seen int
	Walk(e, func(n Expr) bool {
		seen++
		_, isCall := n.(Call)
		return !isCall
	})
	assert.Equal(t, 2, seen)
}

func TestSelect(t *testing.T) {
	s := Select{
		Columns: []Projection{{Expr: Bin(OpArrow, Col("doc"), Str("a")), Alias: "a"}, {Expr: Col("id")}},
		From:    "docs",
		Where:   Bin(OpQuestion, Col("doc"), Str("a")),
	}
	assert.Equal(t, "SELECT (doc -> 'a') AS a, id FROM docs WHERE (doc ? 'a')", s.String())
	assert.Equal(t, "id", s.Columns[1].Name())

	upper := s.Map(func(e Expr) Expr { return Fn("wrap", e) })
	assert.Equal(t, "SELECT wrap((doc -> 'a')) AS a, wrap(id) FROM docs WHERE wrap((doc ? 'a'))", upper.String())
	assert.Equal(t, "docs", upper.From)
}

func TestParseYAML(t *testing.T) {
	src := `
cast:
  call: json_get
  args:
    - column: doc
    - lit: a
    - lit: 2
    - lit: 1.5
    - lit: true
    - lit: null
    - lit: "7"
to: int
`
	e, err := ParseYAML([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, "CAST(json_get(doc, 'a', 2, 1.5, TRUE, NULL, '7') AS int)", String(e))
}

func TestParseYAMLOperators(t *testing.T) {
	src := `
op: AND
left:
  op: "?"
  left: {column: doc}
  right: {lit: k}
right:
  is_null: {op: "->>", left: {column: doc}, right: {lit: k}}
  negated: true
`
	e, err := ParseYAML([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, "((doc ? 'k') AND (doc ->> 'k') IS NOT NULL)", String(e))
}

func TestParseYAMLErrors(t *testing.T) {
	tests := map[string]string{
		"empty":       ``,
		"not mapping": `[1, 2]`,
		"no shape":    `{foo: 1}`,
		"extra key":   `{column: doc, to: int}`,
		"bad type":    `{cast: {column: doc}, to: decimal}`,
		"no target":   `{cast: {column: doc}}`,
		"args shape":  `{call: f, args: {column: doc}}`,
		"op sides":    `{op: "=", left: {column: a}}`,
		"lit shape":   `{lit: [1]}`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseYAML([]byte(src))
			assert.Error(t, err)
		})
	}
}
