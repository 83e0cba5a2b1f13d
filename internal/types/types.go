package types

import "fmt"

// T identifies a SQL column type.
type T uint8

const (
	// Null is the type of an untyped NULL literal.
	Null T = iota
	Bool
	Int32
	Int64
	Float32
	Float64
	Text
	// Binary holds raw bytes; as a JSON input it is treated as JSON text.
	Binary
	// Union is the tagged JSON value returned by json_get and json_extract.
	Union
	// TextList is a list of text values (json_get_array, json_object_keys).
	TextList
)

var typeNames = [...]string{
	Null:     "null",
	Bool:     "boolean",
	Int32:    "int",
	Int64:    "bigint",
	Float32:  "real",
	Float64:  "double",
	Text:     "text",
	Binary:   "bytea",
	Union:    "json_union",
	TextList: "text[]",
}

// String returns the SQL spelling of the type.
func (t T) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("T(%d)", uint8(t))
}

// IsInteger reports whether t belongs to the integer family.
func (t T) IsInteger() bool {
	return t == Int32 || t == Int64
}

// IsFloat reports whether t belongs to the floating-point family.
func (t T) IsFloat() bool {
	return t == Float32 || t == Float64
}

// IsNumeric reports whether t is an integer or floating-point type.
func (t T) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}

// IsJSONInput reports whether a value of type t can be navigated as a JSON document.
func (t T) IsJSONInput() bool {
	return t == Text || t == Binary || t == Union
}

// IsPathKey reports whether a value of type t is accepted as a path element.
// Text becomes an object key, integers become array indices.
func (t T) IsPathKey() bool {
	return t == Text || t.IsInteger()
}

// Parse maps a SQL type name to a T. Common aliases of each family are accepted.
func Parse(name string) (T, error) {
	switch name {
	case "bool", "boolean":
		return Bool, nil
	case "int", "int4", "integer", "int32":
		return Int32, nil
	case "bigint", "int8", "int64":
		return Int64, nil
	case "real", "float4", "float32":
		return Float32, nil
	case "double", "float", "float8", "float64", "double precision":
		return Float64, nil
	case "text", "string", "varchar", "utf8":
		return Text, nil
	case "bytea", "blob", "binary":
		return Binary, nil
	case "json_union", "union":
		return Union, nil
	case "text[]":
		return TextList, nil
	case "null":
		return Null, nil
	default:
		return Null, fmt.Errorf("unknown type %q", name)
	}
}
