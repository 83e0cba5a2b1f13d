// Package union defines the tagged value produced by the generic accessor.
//
// A Value is a closed sum type: exactly one of Null, Bool, Int, Float,
// String, Array or Object. Arrays and objects carry their raw JSON text. A
// cell that did not resolve (missing path or malformed document) is not a
// Value at all; hosts store it as a SQL null cell.
package union
