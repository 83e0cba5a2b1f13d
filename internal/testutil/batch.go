// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"

	"github.com/roach88/jsonsql/internal/column"
	"github.com/roach88/jsonsql/internal/types"
)

// Col is a named column for Batch. Values use the Go cell types of
// column.Vector.Value; nil is a null cell. Plain ints are accepted for
// integer columns.
type Col struct {
	Name   string
	Type   types.T
	Values []any
}

// Text returns a text column.
func Text(name string, values ...any) Col {
	return Col{Name: name, Type: types.Text, Values: values}
}

// Batch builds a batch from columns of equal length. It panics on bad input;
// it is meant for test fixtures.
func Batch(cols ...Col) *column.Batch {
	rows := 0
	if len(cols) > 0 {
		rows = len(cols[0].Values)
	}
	b := column.NewBatch(rows)
	for _, c := range cols {
		v, err := column.NewOf(c.Type, len(c.Values))
		if err != nil {
			panic(err)
		}
		for i, x := range c.Values {
			if n, ok := x.(int); ok {
				x = int64(n)
			}
			if err := column.AppendValue(v, x); err != nil {
				panic(fmt.Sprintf("testutil: column %s row %d: %v", c.Name, i, err))
			}
		}
		if err := b.Add(c.Name, v); err != nil {
			panic(err)
		}
	}
	return b
}

// Docs returns a one-column batch named doc holding JSON text.
func Docs(docs ...any) *column.Batch {
	return Batch(Text("doc", docs...))
}
