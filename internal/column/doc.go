// Package column is the columnar batch model the functions are evaluated
// over: typed, nullable vectors grouped into a Batch, and call arguments that
// are either a full column or a scalar broadcast to every row.
//
// Vectors are read-only once handed to a function. Functions build their
// output in a fresh vector.
package column
