package scan

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// unescape decodes the body of a JSON string (without quotes). The body must
// already have passed skipString. Unpaired surrogates decode to U+FFFD.
func unescape(body []byte) string {
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		i++
		switch body[i] {
		case '"', '\\', '/':
			b.WriteByte(body[i])
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'u':
			r := hex4(body[i+1:])
			i += 4
			if utf16.IsSurrogate(r) {
				r2 := utf8.RuneError
				if i+6 < len(body) && body[i+1] == '\\' && body[i+2] == 'u' {
					r2 = utf16.DecodeRune(r, hex4(body[i+3:]))
					if r2 != utf8.RuneError {
						i += 6
					}
				}
				r = r2
			}
			b.WriteRune(r)
		}
		i++
	}
	return b.String()
}

func hex4(p []byte) rune {
	var r rune
	for _, c := range p[:4] {
		r = r<<4 | rune(unhex(c))
	}
	return r
}

// Unquote decodes a complete JSON string literal, quotes included.
func Unquote(raw []byte) (string, bool) {
	s := scanner{data: raw}
	if s.peek() != '"' {
		return "", false
	}
	escaped, ok := s.skipString()
	if !ok || s.pos != len(raw) {
		return "", false
	}
	body := raw[1 : len(raw)-1]
	if !escaped {
		return string(body), true
	}
	return unescape(body), true
}
