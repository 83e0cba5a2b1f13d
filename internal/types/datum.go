package types

import (
	"strconv"
)

// Datum is a sealed interface representing a literal SQL value.
// Only DNull, DBool, DInt, DFloat and DString implement it.
type Datum interface {
	datum() // Sealed - only these types implement it

	// Type returns the natural column type of the literal.
	Type() T
}

// DNull is the NULL literal.
type DNull struct{}

func (DNull) datum() {}

// Type implements Datum.
func (DNull) Type() T { return Null }

// DBool is a boolean literal.
type DBool bool

func (DBool) datum() {}

// Type implements Datum.
func (DBool) Type() T { return Bool }

// DInt is an integer literal. Integer literals are always 64-bit.
type DInt int64

func (DInt) datum() {}

// Type implements Datum.
func (DInt) Type() T { return Int64 }

// DFloat is a floating-point literal.
type DFloat float64

func (DFloat) datum() {}

// Type implements Datum.
func (DFloat) Type() T { return Float64 }

// DString is a text literal.
type DString string

func (DString) datum() {}

// Type implements Datum.
func (DString) Type() T { return Text }

// FormatDatum renders a literal the way it would appear in SQL text.
func FormatDatum(d Datum) string {
	switch v := d.(type) {
	case nil, DNull:
		return "NULL"
	case DBool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case DInt:
		return strconv.FormatInt(int64(v), 10)
	case DFloat:
		return strconv.FormatFloat(float64(v), 'g', -1, 64)
	case DString:
		return quoteSQL(string(v))
	default:
		return "?"
	}
}

// quoteSQL wraps s in single quotes, doubling embedded quotes.
func quoteSQL(s string) string {
	buf := make([]byte, 0, len(s)+2)
	buf = append(buf, '\'')
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			buf = append(buf, '\'')
		}
		buf = append(buf, s[i])
	}
	buf = append(buf, '\'')
	return string(buf)
}
