package jsonpath

import (
	"errors"
	"fmt"

	rfc9535 "github.com/theory/jsonpath"
	"github.com/theory/jsonpath/spec"
)

// ErrNotSingular is returned when a JSONPath expression may select more than
// one node. Only name and index selectors, one per child segment, are allowed.
var ErrNotSingular = errors.New("jsonpath is not a singular name/index path")

// ParseJSONPath converts an RFC 9535 JSONPath expression such as $.a.b[0]
// or $['k'][1] into a Path.
func ParseJSONPath(expr string) (Path, error) {
	parsed, err := rfc9535.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse jsonpath %q: %w", expr, err)
	}

	segments := parsed.Query().Segments()
	path := make(Path, 0, len(segments))
	for i, seg := range segments {
		if seg.IsDescendant() {
			return nil, fmt.Errorf("segment %d of %q: descendant segment: %w", i, expr, ErrNotSingular)
		}
		selectors := seg.Selectors()
		if len(selectors) != 1 {
			return nil, fmt.Errorf("segment %d of %q: %d selectors: %w", i, expr, len(selectors), ErrNotSingular)
		}
		switch sel := selectors[0].(type) {
		case spec.Name:
			path = append(path, Key(string(sel)))
		case spec.Index:
			path = append(path, Index(int64(sel)))
		default:
			return nil, fmt.Errorf("segment %d of %q: selector %T: %w", i, expr, sel, ErrNotSingular)
		}
	}
	return path, nil
}
