package scan

// each visits the direct children of the container at the cursor, leaving the
// cursor after its closing bracket. For object members key is the raw key
// body; for array elements key is nil. value is the raw child span.
func (s *scanner) each(visit func(key []byte, escaped bool, value []byte)) bool {
	open := s.peek()
	var closer byte
	switch open {
	case '{':
		closer = '}'
	case '[':
		closer = ']'
	default:
		return false
	}
	s.pos++
	s.skipWS()
	if s.peek() == closer {
		s.pos++
		return true
	}
	for {
		var (
			key     []byte
			escaped bool
		)
		if open == '{' {
			s.skipWS()
			if s.peek() != '"' {
				return false
			}
			start := s.pos + 1
			esc, ok := s.skipString()
			if !ok {
				return false
			}
			key, escaped = s.data[start:s.pos-1], esc
			s.skipWS()
			if s.peek() != ':' {
				return false
			}
			s.pos++
		}
		s.skipWS()
		start := s.pos
		if !s.skipValue() {
			return false
		}
		if visit != nil {
			visit(key, escaped, s.data[start:s.pos])
		}
		s.skipWS()
		switch s.peek() {
		case ',':
			s.pos++
		case closer:
			s.pos++
			return true
		default:
			return false
		}
	}
}

func (s *scanner) count() (int64, bool) {
	var n int64
	ok := s.each(func([]byte, bool, []byte) { n++ })
	return n, ok
}

// Length returns the number of members or elements of the container in raw.
func Length(raw []byte) (int64, bool) {
	s := scanner{data: raw}
	s.skipWS()
	return s.count()
}

// Keys returns the member keys of the object in raw, in document order.
// Duplicate keys are reported as often as they occur.
func Keys(raw []byte) ([]string, bool) {
	s := scanner{data: raw}
	s.skipWS()
	if s.peek() != '{' {
		return nil, false
	}
	keys := []string{}
	ok := s.each(func(key []byte, escaped bool, _ []byte) {
		if escaped {
			keys = append(keys, unescape(key))
			return
		}
		keys = append(keys, string(key))
	})
	if !ok {
		return nil, false
	}
	return keys, true
}

// Elements returns the raw span of each element of the array in raw.
// The spans alias raw.
func Elements(raw []byte) ([][]byte, bool) {
	s := scanner{data: raw}
	s.skipWS()
	if s.peek() != '[' {
		return nil, false
	}
	elems := [][]byte{}
	ok := s.each(func(_ []byte, _ bool, value []byte) {
		elems = append(elems, value)
	})
	if !ok {
		return nil, false
	}
	return elems, true
}
