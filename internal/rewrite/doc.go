// Package rewrite holds the plan rules for the JSON functions.
//
// A Rule maps one expression node to a replacement. Apply runs a rule set
// bottom-up over a tree until nothing changes. Rules are pure: they inspect
// only the node they are given and never fail, they simply decline.
//
//   - OperatorRule turns ->, ->> and ? into calls.
//   - UnnestRule folds json_get chains into one call with a longer path.
//     It is only sound when documents are validated in full.
//   - CastRule turns CAST(json_get(...) AS T) into the typed accessor for T.
package rewrite
