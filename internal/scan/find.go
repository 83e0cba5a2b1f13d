package scan

import (
	"strconv"
	"strings"

	"github.com/roach88/jsonsql/internal/jsonpath"
)

// step is the result of descending one path element.
type step uint8

const (
	stepFound step = iota
	stepMissing
	stepBad
)

func (s step) outcome() Outcome {
	if s == stepBad {
		return malformed()
	}
	return notFound()
}

// Find navigates doc by path and classifies the addressed value.
//
// Find never panics and never returns an error: every problem with the
// document is reported through the returned Outcome. Outcome.Raw aliases doc.
func Find(doc []byte, path jsonpath.Path, opts Options) Outcome {
	if opts.Strict && !Valid(doc) {
		return malformed()
	}

	s := scanner{data: doc}
	s.skipWS()
	for depth, el := range path {
		var st step
		switch s.peek() {
		case '{':
			if !el.IsKey() {
				return notFound()
			}
			st = s.findKey(el.KeyName(), opts.sortedAt(depth))
		case '[':
			if !el.IsIndex() {
				return notFound()
			}
			st = s.findIndex(el.Position(), opts.NegativeIndex)
		default:
			// Descent into a scalar. The scalar is still checked so that
			// garbage is reported as such.
			if !s.skipScalar() {
				return malformed()
			}
			return notFound()
		}
		if st != stepFound {
			return st.outcome()
		}
	}
	return s.classify()
}

// findKey scans the object at the cursor for key. On success the cursor is
// left on the first byte of the member value.
func (s *scanner) findKey(key string, sorted bool) step {
	s.pos++ // '{'
	s.skipWS()
	if s.peek() == '}' {
		return stepMissing
	}
	for {
		s.skipWS()
		if s.peek() != '"' {
			return stepBad
		}
		start := s.pos + 1
		escaped, ok := s.skipString()
		if !ok {
			return stepBad
		}
		name := s.data[start : s.pos-1]
		s.skipWS()
		if s.peek() != ':' {
			return stepBad
		}
		s.pos++
		s.skipWS()

		var cmp int
		if escaped {
			cmp = strings.Compare(unescape(name), key)
		} else {
			cmp = strings.Compare(string(name), key)
		}
		if cmp == 0 {
			return stepFound
		}
		if sorted && cmp > 0 {
			return stepMissing
		}

		if !s.skipValue() {
			return stepBad
		}
		s.skipWS()
		switch s.peek() {
		case ',':
			s.pos++
		case '}':
			return stepMissing
		default:
			return stepBad
		}
	}
}

// findIndex scans the array at the cursor for position idx. A negative idx
// only resolves when fromEnd is set, at the cost of one counting pass.
func (s *scanner) findIndex(idx int64, fromEnd bool) step {
	if idx < 0 {
		if !fromEnd {
			return stepMissing
		}
		probe := *s
		n, ok := probe.count()
		if !ok {
			return stepBad
		}
		idx += n
		if idx < 0 {
			return stepMissing
		}
	}

	s.pos++ // '['
	s.skipWS()
	if s.peek() == ']' {
		return stepMissing
	}
	for i := int64(0); ; i++ {
		s.skipWS()
		if i == idx {
			return stepFound
		}
		if !s.skipValue() {
			return stepBad
		}
		s.skipWS()
		switch s.peek() {
		case ',':
			s.pos++
		case ']':
			return stepMissing
		default:
			return stepBad
		}
	}
}

// classify decodes the value at the cursor.
func (s *scanner) classify() Outcome {
	start := s.pos
	switch c := s.peek(); c {
	case '{', '[':
		if !s.skipValue() {
			return malformed()
		}
		t := TypeObject
		if c == '[' {
			t = TypeArray
		}
		return Outcome{Kind: Container, Type: t, Raw: s.data[start:s.pos]}

	case '"':
		escaped, ok := s.skipString()
		if !ok {
			return malformed()
		}
		body := s.data[start+1 : s.pos-1]
		str := string(body)
		if escaped {
			str = unescape(body)
		}
		return Outcome{Kind: Scalar, Type: TypeString, Str: str, Raw: s.data[start:s.pos]}

	case 't', 'f':
		lit := "true"
		if c == 'f' {
			lit = "false"
		}
		if !s.skipLiteral(lit) {
			return malformed()
		}
		return Outcome{Kind: Scalar, Type: TypeBool, Bool: c == 't', Raw: s.data[start:s.pos]}

	case 'n':
		if !s.skipLiteral("null") {
			return malformed()
		}
		return Outcome{Kind: Scalar, Type: TypeNull, Raw: s.data[start:s.pos]}

	default:
		isFloat, ok := s.skipNumber()
		if !ok {
			return malformed()
		}
		raw := s.data[start:s.pos]
		if !isFloat {
			if i, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
				return Outcome{Kind: Scalar, Type: TypeInt, Int: i, Raw: raw}
			}
		}
		// Integers beyond int64 fall through to float. A magnitude beyond
		// float64 parses to an infinity with ErrRange, which is kept.
		f, _ := strconv.ParseFloat(string(raw), 64)
		return Outcome{Kind: Scalar, Type: TypeFloat, Float: f, Raw: raw}
	}
}
