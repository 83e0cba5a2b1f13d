// Package types defines the SQL data types and literal values shared by the
// function catalog, the expression tree, and both hosts.
//
// This package contains type definitions only. Every other internal package
// may import types; types imports nothing internal.
//
// Key design constraints:
//   - T is a closed enumeration; unknown types are rejected, never guessed
//   - Datum is a sealed interface; only DNull, DBool, DInt, DFloat and DString implement it
//   - Union is a single column type whose cells carry their own discriminant
package types
