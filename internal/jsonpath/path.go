// Package jsonpath models the path used to address a value inside a JSON
// document: an ordered sequence of object keys and array indices.
//
// A Path is built once per function invocation from the trailing SQL
// arguments and is traversed left to right, one container level per element.
// An empty Path addresses the whole document.
package jsonpath

import (
	"strconv"
	"strings"
)

// Kind discriminates the two element shapes.
type Kind uint8

const (
	// KindKey selects an object member by exact key.
	KindKey Kind = iota + 1
	// KindIndex selects an array element by position.
	KindIndex
)

// Element is one path segment. The zero Element is invalid.
type Element struct {
	kind  Kind
	key   string
	index int64
}

// Key returns an element selecting the object member named k.
func Key(k string) Element {
	return Element{kind: KindKey, key: k}
}

// Index returns an element selecting array position i.
// Negative positions only resolve when the navigator counts from the end.
func Index(i int64) Element {
	return Element{kind: KindIndex, index: i}
}

// Kind returns the element shape.
func (e Element) Kind() Kind { return e.kind }

// IsKey reports whether e selects an object member.
func (e Element) IsKey() bool { return e.kind == KindKey }

// IsIndex reports whether e selects an array element.
func (e Element) IsIndex() bool { return e.kind == KindIndex }

// KeyName returns the object key. Empty for index elements.
func (e Element) KeyName() string { return e.key }

// Position returns the array index. Zero for key elements.
func (e Element) Position() int64 { return e.index }

// String renders the element in JSONPath bracket notation.
func (e Element) String() string {
	switch e.kind {
	case KindKey:
		return "[" + strconv.Quote(e.key) + "]"
	case KindIndex:
		return "[" + strconv.FormatInt(e.index, 10) + "]"
	default:
		return "[?]"
	}
}

// Path is an ordered sequence of elements.
type Path []Element

// String renders the path as a JSONPath expression rooted at $.
func (p Path) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, e := range p {
		b.WriteString(e.String())
	}
	return b.String()
}

// Append returns a new path with elems after p. p is not modified.
func (p Path) Append(elems ...Element) Path {
	out := make(Path, 0, len(p)+len(elems))
	out = append(out, p...)
	return append(out, elems...)
}
