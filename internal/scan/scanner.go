package scan

import "unicode/utf8"

// scanner is a cursor over a JSON document. All methods advance pos and
// report false on a syntax error; pos is unspecified after a failure.
type scanner struct {
	data []byte
	pos  int
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// isDelim reports whether c may directly follow a number or literal.
func isDelim(c byte) bool {
	return isSpace(c) || c == ',' || c == ']' || c == '}' || c == ':'
}

func (s *scanner) skipWS() {
	for s.pos < len(s.data) && isSpace(s.data[s.pos]) {
		s.pos++
	}
}

// peek returns the byte at the cursor, or 0 at end of input.
func (s *scanner) peek() byte {
	if s.pos < len(s.data) {
		return s.data[s.pos]
	}
	return 0
}

// atBoundary reports whether the cursor sits at end of input or a delimiter.
func (s *scanner) atBoundary() bool {
	return s.pos >= len(s.data) || isDelim(s.data[s.pos])
}

// skipLiteral consumes lit (true, false or null) at the cursor.
func (s *scanner) skipLiteral(lit string) bool {
	if len(s.data)-s.pos < len(lit) || string(s.data[s.pos:s.pos+len(lit)]) != lit {
		return false
	}
	s.pos += len(lit)
	return s.atBoundary()
}

// skipString consumes a quoted string whose opening quote is at the cursor.
// It reports whether the content contains escapes, which decides whether the
// raw bytes can be compared directly.
func (s *scanner) skipString() (escaped, ok bool) {
	s.pos++ // opening quote
	start := s.pos
	high := false
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		switch {
		case c == '"':
			if high && !utf8.Valid(s.data[start:s.pos]) {
				return escaped, false
			}
			s.pos++
			return escaped, true
		case c == '\\':
			escaped = true
			if !s.skipEscape() {
				return escaped, false
			}
		case c < 0x20:
			return escaped, false
		default:
			if c >= utf8.RuneSelf {
				high = true
			}
			s.pos++
		}
	}
	return escaped, false
}

// skipEscape consumes one escape sequence starting at the backslash.
func (s *scanner) skipEscape() bool {
	s.pos++ // backslash
	if s.pos >= len(s.data) {
		return false
	}
	switch s.data[s.pos] {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		s.pos++
		return true
	case 'u':
		if len(s.data)-s.pos < 5 {
			return false
		}
		for _, h := range s.data[s.pos+1 : s.pos+5] {
			if unhex(h) < 0 {
				return false
			}
		}
		s.pos += 5
		return true
	default:
		return false
	}
}

func unhex(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'f':
		return int(c - 'a' + 10)
	case 'A' <= c && c <= 'F':
		return int(c - 'A' + 10)
	default:
		return -1
	}
}

// skipNumber consumes a number per the JSON grammar:
// -? (0 | [1-9][0-9]*) (. [0-9]+)? ([eE] [+-]? [0-9]+)?
// isFloat is true when a fraction or exponent is present.
func (s *scanner) skipNumber() (isFloat, ok bool) {
	if s.peek() == '-' {
		s.pos++
	}
	switch c := s.peek(); {
	case c == '0':
		s.pos++
	case '1' <= c && c <= '9':
		s.skipDigits()
	default:
		return false, false
	}
	if s.peek() == '.' {
		s.pos++
		if !s.skipDigits() {
			return true, false
		}
		isFloat = true
	}
	if c := s.peek(); c == 'e' || c == 'E' {
		s.pos++
		if c := s.peek(); c == '+' || c == '-' {
			s.pos++
		}
		if !s.skipDigits() {
			return true, false
		}
		isFloat = true
	}
	return isFloat, s.atBoundary()
}

// skipDigits consumes [0-9]* and reports whether at least one digit was read.
func (s *scanner) skipDigits() bool {
	start := s.pos
	for s.pos < len(s.data) && '0' <= s.data[s.pos] && s.data[s.pos] <= '9' {
		s.pos++
	}
	return s.pos > start
}

// skipScalar consumes a string, number or literal at the cursor.
func (s *scanner) skipScalar() bool {
	switch s.peek() {
	case '"':
		_, ok := s.skipString()
		return ok
	case 't':
		return s.skipLiteral("true")
	case 'f':
		return s.skipLiteral("false")
	case 'n':
		return s.skipLiteral("null")
	default:
		_, ok := s.skipNumber()
		return ok
	}
}

// skipKeyColon consumes `"key" :` inside an object.
func (s *scanner) skipKeyColon() bool {
	s.skipWS()
	if s.peek() != '"' {
		return false
	}
	if _, ok := s.skipString(); !ok {
		return false
	}
	s.skipWS()
	if s.peek() != ':' {
		return false
	}
	s.pos++
	return true
}

// skipValue consumes one complete JSON value, validating it. Nesting is
// tracked on an explicit stack of expected closing brackets, so arbitrarily
// deep documents do not grow the goroutine stack.
func (s *scanner) skipValue() bool {
	var buf [32]byte
	stack := buf[:0]
	for {
		s.skipWS()
		if s.pos >= len(s.data) {
			return false
		}

		opened := false
		switch s.data[s.pos] {
		case '{':
			s.pos++
			s.skipWS()
			if s.peek() == '}' {
				s.pos++
				break
			}
			if !s.skipKeyColon() {
				return false
			}
			stack = append(stack, '}')
			opened = true
		case '[':
			s.pos++
			s.skipWS()
			if s.peek() == ']' {
				s.pos++
				break
			}
			stack = append(stack, ']')
			opened = true
		default:
			if !s.skipScalar() {
				return false
			}
		}
		if opened {
			continue
		}

		// A value just ended: close finished containers, stop at the next separator.
		for next := false; !next; {
			if len(stack) == 0 {
				return true
			}
			s.skipWS()
			if s.pos >= len(s.data) {
				return false
			}
			top := stack[len(stack)-1]
			switch s.data[s.pos] {
			case ',':
				s.pos++
				if top == '}' && !s.skipKeyColon() {
					return false
				}
				next = true
			case top:
				s.pos++
				stack = stack[:len(stack)-1]
			default:
				return false
			}
		}
	}
}

// Valid reports whether doc is exactly one JSON value surrounded by optional whitespace.
func Valid(doc []byte) bool {
	s := scanner{data: doc}
	if !s.skipValue() {
		return false
	}
	s.skipWS()
	return s.pos == len(doc)
}
