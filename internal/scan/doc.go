// Package scan locates the value addressed by a jsonpath.Path inside a raw
// JSON document without building a tree.
//
// The navigator makes a single forward pass. Members and elements that are
// not on the path are skipped structurally: the skipper tracks nesting and
// string escapes and validates the bytes it passes over, but decodes nothing.
// Only the addressed value is decoded, and containers are returned as a span
// of the original bytes.
//
// Every call is independent. Nothing is cached between documents and the
// returned Outcome aliases the input buffer, so callers that keep a raw span
// beyond the lifetime of the input must copy it.
package scan
