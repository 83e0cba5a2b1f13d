// Package engine is the in-memory query host for the JSON functions.
//
// A Session is the registration target for functions, operators and rewrite
// rules. It plans expressions in two steps and then evaluates them over a
// column.Batch:
//
//  1. Optimize: the registered rules are applied to a fixpoint. This is where
//     operators become calls and CAST(json_get(...) AS T) becomes the typed
//     accessor.
//  2. Bind: every node is type-checked against the batch schema. Unknown
//     names, argument-shape errors and invalid comparisons are reported here,
//     before any row is read.
//
// Evaluation is vectorized: each node produces a whole column, or a single
// broadcast value when all of its inputs are constant.
//
// Thread-safety: registration must complete before planning starts. After
// that a Session is read-only and Plan/Eval may be called concurrently.
package engine
