// Package wkt provides Well-Known Text support for the orb geometry library.
// It parses WKT strings into orb.Geometry values and renders orb.Geometry
// values back to text, choosing the most compact WKT form when serializing.
package wkt

import (
	"errors"
)

// Common errors returned by this package.
var (
	ErrInvalidWKT      = errors.New("wkt: invalid text")
	ErrUnbalanced      = errors.New("wkt: unbalanced parentheses")
	ErrTooDeep         = errors.New("wkt: nesting too deep")
	ErrUnsupportedType = errors.New("wkt: unsupported geometry type")
)

// errNoMatch reports that an input did not match the shape grammar a parser
// was probing for. It is distinct from a malformed input: the collection
// parser uses it to fall back to the untagged component form implied by the
// collection keyword.
var errNoMatch = errors.New("wkt: no match")

// maxDepth bounds geometry nesting so adversarial input cannot exhaust the
// call stack.
const maxDepth = 64
