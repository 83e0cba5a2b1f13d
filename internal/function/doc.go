// Package function implements the SQL-visible JSON functions as vectorized
// adapters over column batches.
//
// Every function is a pure per-row mapping from a JSON document and a path to
// one output cell. Rows are independent: nothing is cached between rows or
// batches, so a Function may be invoked concurrently on disjoint batches.
//
// Argument problems that make a query meaningless (wrong arity, a path
// argument that is neither text nor integer, an invalid JSONPath literal) are
// bind-time PlanErrors. Problems with the data itself never are: missing
// paths, type mismatches and malformed documents all produce null cells, or
// false for json_contains over a non-null document.
package function
