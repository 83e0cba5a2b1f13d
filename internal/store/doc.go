// Package store runs JSON queries inside SQLite.
//
// Every Store registers its own database/sql driver whose ConnectHook installs
// the function library on each new connection, so plain SQL over the store
// can call json_get_int, json_as_text and the rest directly.
//
// # Value mapping
//
// Function results cross the SQLite boundary as native values:
//   - boolean results become INTEGER 0 or 1
//   - json_union results become their JSON text ("1", "2.0", "\"s\"", "null")
//   - text[] results become a JSON array of strings
//
// Union text parses back to the same union value, which is how Select
// rebuilds engine.Result columns from rows.
//
// # Tables
//
// CreateTable records each column's SQL type in the jsonsql_columns catalog
// so a reopened store can plan queries against tables it created earlier.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package store
