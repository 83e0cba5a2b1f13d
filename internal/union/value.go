package union

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/roach88/jsonsql/internal/scan"
)

// Tag is the discriminant of a Value.
type Tag uint8

const (
	TagNull Tag = iota
	TagBool
	TagInt
	TagFloat
	TagString
	TagArray
	TagObject
)

var tagNames = [...]string{
	TagNull:   "null",
	TagBool:   "bool",
	TagInt:    "int",
	TagFloat:  "float",
	TagString: "str",
	TagArray:  "array",
	TagObject: "object",
}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}

// Value is a sealed interface. Only the types in this file implement it.
type Value interface {
	Tag() Tag
	unionValue()
}

// Null is a JSON null that was found at the path.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Int is a JSON number that is integral and fits in int64.
type Int int64

// Float is any other JSON number.
type Float float64

// String is a decoded JSON string.
type String string

// Array holds the raw JSON text of an array.
type Array []byte

// Object holds the raw JSON text of an object.
type Object []byte

func (Null) unionValue()   {}
func (Bool) unionValue()   {}
func (Int) unionValue()    {}
func (Float) unionValue()  {}
func (String) unionValue() {}
func (Array) unionValue()  {}
func (Object) unionValue() {}

func (Null) Tag() Tag   { return TagNull }
func (Bool) Tag() Tag   { return TagBool }
func (Int) Tag() Tag    { return TagInt }
func (Float) Tag() Tag  { return TagFloat }
func (String) Tag() Tag { return TagString }
func (Array) Tag() Tag  { return TagArray }
func (Object) Tag() Tag { return TagObject }

// FromOutcome converts a navigation outcome. ok is false when the path did
// not resolve. Container text is copied so the value owns its bytes.
func FromOutcome(o scan.Outcome) (v Value, ok bool) {
	switch o.Kind {
	case scan.Scalar:
		switch o.Type {
		case scan.TypeNull:
			return Null{}, true
		case scan.TypeBool:
			return Bool(o.Bool), true
		case scan.TypeInt:
			return Int(o.Int), true
		case scan.TypeFloat:
			return Float(o.Float), true
		case scan.TypeString:
			return String(o.Str), true
		}
	case scan.Container:
		raw := bytes.Clone(o.Raw)
		if o.Type == scan.TypeArray {
			return Array(raw), true
		}
		return Object(raw), true
	}
	return nil, false
}

// Outcome converts v back into the navigation outcome it stands for, so the
// same coercion code serves both the typed accessors and casts of a union.
func Outcome(v Value) scan.Outcome {
	switch val := v.(type) {
	case Null:
		return scan.Outcome{Kind: scan.Scalar, Type: scan.TypeNull, Raw: []byte("null")}
	case Bool:
		return scan.Outcome{Kind: scan.Scalar, Type: scan.TypeBool, Bool: bool(val), Raw: JSON(val)}
	case Int:
		return scan.Outcome{Kind: scan.Scalar, Type: scan.TypeInt, Int: int64(val), Raw: JSON(val)}
	case Float:
		return scan.Outcome{Kind: scan.Scalar, Type: scan.TypeFloat, Float: float64(val), Raw: JSON(val)}
	case String:
		return scan.Outcome{Kind: scan.Scalar, Type: scan.TypeString, Str: string(val), Raw: JSON(val)}
	case Array:
		return scan.Outcome{Kind: scan.Container, Type: scan.TypeArray, Raw: []byte(val)}
	case Object:
		return scan.Outcome{Kind: scan.Container, Type: scan.TypeObject, Raw: []byte(val)}
	default:
		return scan.Outcome{Kind: scan.NotFound}
	}
}

// JSON renders v as JSON text. Containers are echoed verbatim; numbers use
// the shortest representation that round-trips, and integral floats keep a
// fraction so they read back as floats.
func JSON(v Value) []byte {
	switch val := v.(type) {
	case Null:
		return []byte("null")
	case Bool:
		return strconv.AppendBool(nil, bool(val))
	case Int:
		return strconv.AppendInt(nil, int64(val), 10)
	case Float:
		return appendFloat(nil, float64(val))
	case String:
		return appendQuoted(nil, string(val))
	case Array:
		return bytes.Clone(val)
	case Object:
		return bytes.Clone(val)
	default:
		return nil
	}
}

func appendFloat(dst []byte, f float64) []byte {
	switch {
	case math.IsInf(f, 1):
		// Only reachable from a literal beyond float64 range.
		return append(dst, "1e999"...)
	case math.IsInf(f, -1):
		return append(dst, "-1e999"...)
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, f, 'g', -1, 64)
	// Keep integral floats recognizable as floats when the text is re-read.
	if !bytes.ContainsAny(dst[start:], ".eE") {
		dst = append(dst, '.', '0')
	}
	return dst
}

const hexDigits = "0123456789abcdef"

// appendQuoted writes s as a JSON string literal without HTML escaping.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				dst = append(dst, "\uFFFD"...)
			} else {
				dst = append(dst, s[i:i+size]...)
			}
			i += size
			continue
		}
		switch {
		case c == '"' || c == '\\':
			dst = append(dst, '\\', c)
		case c == '\n':
			dst = append(dst, `\n`...)
		case c == '\r':
			dst = append(dst, `\r`...)
		case c == '\t':
			dst = append(dst, `\t`...)
		case c < 0x20:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		default:
			dst = append(dst, c)
		}
		i++
	}
	return append(dst, '"')
}

// Equal reports whether a and b carry the same discriminant and payload.
// Null equals nothing, not even another Null.
func Equal(a, b Value) bool {
	if a == nil || b == nil || a.Tag() != b.Tag() {
		return false
	}
	switch x := a.(type) {
	case Bool:
		return x == b.(Bool)
	case Int:
		return x == b.(Int)
	case Float:
		return x == b.(Float)
	case String:
		return x == b.(String)
	case Array:
		return bytes.Equal(x, b.(Array))
	case Object:
		return bytes.Equal(x, b.(Object))
	default:
		return false
	}
}

// Compare orders two values of the same scalar discriminant. ok is false for
// differing discriminants, nulls and containers.
func Compare(a, b Value) (cmp int, ok bool) {
	if a == nil || b == nil || a.Tag() != b.Tag() {
		return 0, false
	}
	switch x := a.(type) {
	case Bool:
		y := b.(Bool)
		switch {
		case x == y:
			return 0, true
		case !bool(x):
			return -1, true
		default:
			return 1, true
		}
	case Int:
		return cmpOrdered(x, b.(Int)), true
	case Float:
		return cmpOrdered(x, b.(Float)), true
	case String:
		return strings.Compare(string(x), string(b.(String))), true
	default:
		return 0, false
	}
}

func cmpOrdered[T Int | Float](x, y T) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

// Format renders v for display as tag and JSON text, e.g. {int=1}.
func Format(v Value) string {
	if v == nil {
		return "NULL"
	}
	return "{" + v.Tag().String() + "=" + string(JSON(v)) + "}"
}

// Parse reads a JSON document as a union value, the way a union column
// would hold it. ok is false when doc is not valid JSON.
func Parse(doc []byte) (Value, bool) {
	return FromOutcome(scan.Find(doc, nil, scan.Options{Strict: true}))
}
