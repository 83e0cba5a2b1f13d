package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/jsonsql/internal/types"
)

func TestFixedIDGenerator(t *testing.T) {
	g := NewFixedIDGenerator("s-1")
	assert.Equal(t, "s-1", g.Generate())
	assert.Equal(t, "s-1", g.Generate())
	assert.Equal(t, "test-session", NewFixedIDGenerator("").Generate())
}

func TestBatch(t *testing.T) {
	b := Batch(
		Text("doc", `{}`, nil),
		Col{Name: "n", Type: types.Int64, Values: []any{1, nil}},
	)
	assert.Equal(t, 2, b.Rows())
	assert.Equal(t, []string{"doc", "n"}, b.Names())

	n, ok := b.Column("n")
	assert.True(t, ok)
	assert.Equal(t, int64(1), n.Value(0))
	assert.True(t, n.IsNull(1))
}

func TestBatchPanicsOnMismatch(t *testing.T) {
	assert.Panics(t, func() {
		Batch(Col{Name: "n", Type: types.Int64, Values: []any{"x"}})
	})
	assert.Panics(t, func() {
		Batch(Text("a", "x"), Text("b", "x", "y"))
	})
}

func TestDocs(t *testing.T) {
	b := Docs(`{"a":1}`)
	v, ok := b.Column("doc")
	assert.True(t, ok)
	assert.Equal(t, types.Text, v.Type())
}
