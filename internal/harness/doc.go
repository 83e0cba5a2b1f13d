// Package harness runs conformance scenarios against both query hosts.
//
// A scenario declares one table and a list of cases. Each case is a single
// expression, evaluated as SELECT <expr> FROM <table> [WHERE <where>] by the
// in-memory engine and by the SQLite store. A case passes when both hosts
// agree with each other and with the expected cells.
//
// # Scenario Format
//
//	name: nested_lookup
//	description: "Typed accessors over nested documents"
//	options:
//	  float_to_int: integral
//	table:
//	  name: docs
//	  columns:
//	    - { name: doc, type: text }
//	  rows:
//	    - ['{"a": [1, 2]}']
//	    - [null]
//	cases:
//	  - name: second element
//	    expr: { call: json_get_int, args: [{ column: doc }, { lit: a }, { lit: 1 }] }
//	    plan: "json_get_int(doc, 'a', 1)"
//	    expect: ["2", "NULL"]
//
// Expected cells are written the way column.Format renders them: NULL, TRUE,
// 42, 'text', {int=1}. A case with error expects planning to fail on both
// hosts with a message containing that text.
package harness
