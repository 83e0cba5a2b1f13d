// Package expr is the host plan tree the JSON functions are planned in.
//
// Expressions are a sealed sum type: Column, Literal, Call, Cast, Binary and
// IsNull. Trees are values; rewrites build new trees with Transform and never
// mutate their input, so a rule can be tested on bare expressions without a
// session or an optimizer.
package expr
