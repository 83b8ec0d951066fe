package wkt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Unmarshal parses a WKT string into an orb.Geometry.
//
// POINT, LINESTRING and POLYGON map to orb.Point, orb.LineString and
// orb.Polygon. The four collection keywords (MULTIPOINT, MULTILINESTRING,
// MULTIPOLYGON, GEOMETRYCOLLECTION) all map to orb.Collection: the keyword
// routes parsing but is not preserved in the value, Marshal re-derives it
// from the component composition. Keywords are case-insensitive and interior
// whitespace is tolerated.
func Unmarshal(s string) (orb.Geometry, error) {
	g, err := unmarshal(strings.TrimSpace(s), 0)
	if err != nil {
		if errors.Is(err, errNoMatch) {
			return nil, fmt.Errorf("%w: unrecognized geometry %q", ErrInvalidWKT, snippet(s))
		}
		return nil, err
	}
	return g, nil
}

// UnmarshalEWKT parses a WKT string with an optional leading "SRID=n;" tag,
// returning the geometry and the SRID. The SRID is carried through untouched,
// never interpreted; 0 means the input had no tag.
func UnmarshalEWKT(s string) (orb.Geometry, int, error) {
	s = strings.TrimSpace(s)
	srid := 0
	if len(s) >= 5 && strings.EqualFold(s[:5], "SRID=") {
		sep := strings.IndexByte(s, ';')
		if sep < 0 {
			return nil, 0, fmt.Errorf("%w: SRID tag without geometry", ErrInvalidWKT)
		}
		n, err := strconv.Atoi(strings.TrimSpace(s[5:sep]))
		if err != nil {
			return nil, 0, fmt.Errorf("%w: bad SRID %q", ErrInvalidWKT, s[5:sep])
		}
		srid = n
		s = s[sep+1:]
	}
	g, err := Unmarshal(s)
	if err != nil {
		return nil, 0, err
	}
	return g, srid, nil
}

// unmarshal routes on the leading keyword. depth counts collection nesting.
func unmarshal(s string, depth int) (orb.Geometry, error) {
	if depth > maxDepth {
		return nil, ErrTooDeep
	}
	if body, ok := stripTag(s, "POINT"); ok {
		return parsePointBody(body)
	}
	if body, ok := stripTag(s, "LINESTRING"); ok {
		return parseLineStringBody(body)
	}
	if body, ok := stripTag(s, "POLYGON"); ok {
		return parsePolygonBody(body)
	}
	return parseCollection(s, depth)
}

// stripTag matches a case-insensitive keyword followed by a parenthesized
// body and returns the body interior. ok is false when the keyword or the
// enclosing parentheses are missing.
func stripTag(s, tag string) (string, bool) {
	if len(s) < len(tag) || !strings.EqualFold(s[:len(tag)], tag) {
		return "", false
	}
	rest := strings.TrimSpace(s[len(tag):])
	if len(rest) < 2 || rest[0] != '(' || rest[len(rest)-1] != ')' {
		return "", false
	}
	return rest[1 : len(rest)-1], true
}

// parsePointList parses "x1 y1,x2 y2,..." into points. Each comma-separated
// pair must split into exactly two numeric tokens.
func parsePointList(s string) ([]orb.Point, error) {
	pairs := strings.Split(s, ",")
	points := make([]orb.Point, 0, len(pairs))
	for _, pair := range pairs {
		fields := strings.Fields(pair)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: coordinate pair %q", ErrInvalidWKT, strings.TrimSpace(pair))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: coordinate %q", ErrInvalidWKT, fields[0])
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: coordinate %q", ErrInvalidWKT, fields[1])
		}
		points = append(points, orb.Point{x, y})
	}
	return points, nil
}

func parsePointBody(body string) (orb.Geometry, error) {
	points, err := parsePointList(body)
	if err != nil {
		return nil, err
	}
	if len(points) != 1 {
		return nil, fmt.Errorf("%w: POINT wants a single coordinate pair", ErrInvalidWKT)
	}
	return points[0], nil
}

func parseLineStringBody(body string) (orb.Geometry, error) {
	points, err := parsePointList(body)
	if err != nil {
		return nil, err
	}
	if len(points) < 2 {
		return nil, errNoMatch
	}
	return orb.LineString(points), nil
}

// parsePolygonBody parses "(ring),(ring),..." with the first ring outer and
// the rest holes. Ring boundaries are the parentheses themselves: rings never
// nest, so no depth tracking is needed here. A body without paren-grouped
// rings is no match.
func parsePolygonBody(body string) (orb.Geometry, error) {
	rest := strings.TrimSpace(body)
	if rest == "" || rest[0] != '(' {
		return nil, errNoMatch
	}
	var poly orb.Polygon
	for {
		if rest == "" || rest[0] != '(' {
			return nil, fmt.Errorf("%w: polygon ring must be parenthesized", ErrInvalidWKT)
		}
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated polygon ring", ErrUnbalanced)
		}
		points, err := parsePointList(rest[1:end])
		if err != nil {
			return nil, err
		}
		poly = append(poly, orb.Ring(points))
		rest = strings.TrimSpace(rest[end+1:])
		if rest == "" {
			return poly, nil
		}
		// A comma may separate rings, but only after a ring has been read.
		if rest[0] == ',' {
			rest = strings.TrimSpace(rest[1:])
		}
	}
}

// parseCollection handles the four collection keywords. Every collection
// parses to an orb.Collection; the keyword is used only for routing. Each
// component is first tried as a full tagged geometry. A component without a
// keyword of its own, as produced by the compact MULTIPOINT "x y" and
// MULTIPOLYGON "((ring))" forms, is reinterpreted under the keyword of the
// enclosing collection. GEOMETRYCOLLECTION components carry their own
// keywords, so it has no untagged form.
func parseCollection(s string, depth int) (orb.Geometry, error) {
	var tag, body string
	ok := false
	for _, t := range []string{"MULTIPOINT", "MULTILINESTRING", "MULTIPOLYGON", "GEOMETRYCOLLECTION"} {
		if body, ok = stripTag(s, t); ok {
			tag = t
			break
		}
	}
	if !ok {
		return nil, errNoMatch
	}
	coll := orb.Collection{}
	sc := newComponentScanner(body)
	for sc.Scan() {
		frag := strings.TrimSpace(sc.Text())
		g, err := unmarshal(frag, depth+1)
		if errors.Is(err, errNoMatch) {
			g, err = parseUntagged(tag, frag)
		}
		if err != nil {
			if errors.Is(err, errNoMatch) {
				return nil, fmt.Errorf("%w: %s component %q", ErrInvalidWKT, tag, snippet(frag))
			}
			return nil, err
		}
		coll = append(coll, g)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return coll, nil
}

// parseUntagged parses a collection component that has no keyword of its own,
// using the enclosing collection keyword to pick the grammar.
func parseUntagged(tag, frag string) (orb.Geometry, error) {
	switch tag {
	case "MULTIPOINT":
		return parsePointBody(stripParens(frag))
	case "MULTILINESTRING":
		body, ok := unwrapParens(frag)
		if !ok {
			return nil, errNoMatch
		}
		return parseLineStringBody(body)
	case "MULTIPOLYGON":
		body, ok := unwrapParens(frag)
		if !ok {
			return nil, errNoMatch
		}
		return parsePolygonBody(body)
	default:
		return nil, errNoMatch
	}
}

// unwrapParens strips one enclosing paren pair.
func unwrapParens(s string) (string, bool) {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return "", false
	}
	return s[1 : len(s)-1], true
}

// stripParens strips one enclosing paren pair when present, for the
// MULTIPOINT member forms "x y" and "(x y)".
func stripParens(s string) string {
	if body, ok := unwrapParens(s); ok {
		return body
	}
	return s
}

// snippet shortens an input fragment for error messages.
func snippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 32 {
		return s[:32] + "..."
	}
	return s
}
