package wkt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// formatFloat renders a coordinate in its shortest exact decimal form, so
// values round-trip through parsing unchanged.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func writePoint(b *strings.Builder, p orb.Point) {
	b.WriteString(formatFloat(p[0]))
	b.WriteByte(' ')
	b.WriteString(formatFloat(p[1]))
}

// writePointList renders "(x1 y1,x2 y2,...)". Commas carry no surrounding
// space; the separator inside a pair is a single space.
func writePointList(b *strings.Builder, points []orb.Point) {
	b.WriteByte('(')
	for i, p := range points {
		if i > 0 {
			b.WriteByte(',')
		}
		writePoint(b, p)
	}
	b.WriteByte(')')
}

// MarshalPoint renders p as POINT(x y).
func MarshalPoint(p orb.Point) string {
	var b strings.Builder
	b.WriteString("POINT(")
	writePoint(&b, p)
	b.WriteByte(')')
	return b.String()
}

// MarshalLineString renders ls as LINESTRING(x1 y1,x2 y2,...).
func MarshalLineString(ls orb.LineString) string {
	var b strings.Builder
	b.WriteString("LINESTRING")
	writePointList(&b, ls)
	return b.String()
}

// MarshalPolygon renders p as POLYGON((outer),(hole),...), outer ring first.
func MarshalPolygon(p orb.Polygon) string {
	var b strings.Builder
	b.WriteString("POLYGON(")
	for i, ring := range p {
		if i > 0 {
			b.WriteByte(',')
		}
		writePointList(&b, ring)
	}
	b.WriteByte(')')
	return b.String()
}

// MarshalMultiPoint renders mp with every member spelled out as a POINT.
// Zero members render as the empty string: nothing to render, not an error.
func MarshalMultiPoint(mp orb.MultiPoint) string {
	if len(mp) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("MULTIPOINT(")
	for i, p := range mp {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(MarshalPoint(p))
	}
	b.WriteByte(')')
	return b.String()
}

// MarshalMultiLineString renders mls with every member spelled out as a
// LINESTRING. Zero members render as the empty string.
func MarshalMultiLineString(mls orb.MultiLineString) string {
	if len(mls) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("MULTILINESTRING(")
	for i, ls := range mls {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(MarshalLineString(ls))
	}
	b.WriteByte(')')
	return b.String()
}

// MarshalMultiPolygon renders mp by formatting each member as a POLYGON and
// stripping the leading keyword, so members read ((ring),(ring)). Zero
// members render as the empty string.
func MarshalMultiPolygon(mp orb.MultiPolygon) string {
	if len(mp) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("MULTIPOLYGON(")
	for i, p := range mp {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strings.TrimPrefix(MarshalPolygon(p), "POLYGON"))
	}
	b.WriteByte(')')
	return b.String()
}

// Marshal renders g in its most compact WKT form.
//
// A nil geometry renders as POINT(). An open orb.LineString renders as
// LINESTRING; an orb.Ring, being a filled boundary, goes through the
// MULTIPOLYGON path like orb.Polygon does, so a lone surface reads
// MULTIPOLYGON(((...))). An orb.Collection collapses to its sole member when
// it has exactly one, renders as MULTIPOINT when every member is a point,
// and as GEOMETRYCOLLECTION otherwise. A value outside orb's closed type set
// returns ErrUnsupportedType: that is a programming error in the caller, not
// bad data.
func Marshal(g orb.Geometry) (string, error) {
	return marshal(g)
}

// marshal dispatches on the concrete geometry kind. orb.Geometry is a sealed
// interface, so its implementations are exactly the cases below; dispatching
// on any keeps the unrepresentable-value error reachable.
func marshal(g any) (string, error) {
	switch v := g.(type) {
	case nil:
		return "POINT()", nil
	case orb.Point:
		return MarshalPoint(v), nil
	case orb.LineString:
		return MarshalLineString(v), nil
	case orb.Ring:
		return MarshalMultiPolygon(orb.MultiPolygon{orb.Polygon{v}}), nil
	case orb.Polygon:
		return MarshalMultiPolygon(orb.MultiPolygon{v}), nil
	case orb.MultiPoint:
		return MarshalMultiPoint(v), nil
	case orb.MultiLineString:
		return MarshalMultiLineString(v), nil
	case orb.MultiPolygon:
		return MarshalMultiPolygon(v), nil
	case orb.Bound:
		return MarshalMultiPolygon(orb.MultiPolygon{boundPolygon(v)}), nil
	case orb.Collection:
		return marshalCollection(v)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedType, g)
	}
}

// MarshalEWKT renders g like Marshal with a leading "SRID=n;" tag. The srid
// is written as given, never interpreted.
func MarshalEWKT(g orb.Geometry, srid int) (string, error) {
	s, err := Marshal(g)
	if err != nil {
		return "", err
	}
	return "SRID=" + strconv.Itoa(srid) + ";" + s, nil
}

// MarshalGeometryCollection renders GEOMETRYCOLLECTION over the given
// geometries, each member in its most compact form. A single orb.Collection
// argument is unwrapped to its members first, so both a collection value and
// an explicit list render the same way. A member that renders as nothing,
// such as an empty collection, is left out of the join entirely.
func MarshalGeometryCollection(geoms ...orb.Geometry) (string, error) {
	if len(geoms) == 1 {
		if c, ok := geoms[0].(orb.Collection); ok {
			geoms = c
		}
	}
	var b strings.Builder
	b.WriteString("GEOMETRYCOLLECTION(")
	n := 0
	for _, g := range geoms {
		s, err := Marshal(g)
		if err != nil {
			return "", err
		}
		if s == "" {
			continue
		}
		if n > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s)
		n++
	}
	b.WriteByte(')')
	return b.String(), nil
}

func marshalCollection(c orb.Collection) (string, error) {
	if len(c) == 1 {
		return Marshal(c[0])
	}
	if mp, ok := pointsOnly(c); ok {
		return MarshalMultiPoint(mp), nil
	}
	return MarshalGeometryCollection(c...)
}

// pointsOnly reports whether every member of c is a point, returning the
// members as a MultiPoint when so.
func pointsOnly(c orb.Collection) (orb.MultiPoint, bool) {
	mp := make(orb.MultiPoint, 0, len(c))
	for _, g := range c {
		p, ok := g.(orb.Point)
		if !ok {
			return nil, false
		}
		mp = append(mp, p)
	}
	return mp, true
}

// boundPolygon converts a bound to its rectangle polygon.
func boundPolygon(b orb.Bound) orb.Polygon {
	return orb.Polygon{
		orb.Ring{
			{b.Min[0], b.Min[1]},
			{b.Max[0], b.Min[1]},
			{b.Max[0], b.Max[1]},
			{b.Min[0], b.Max[1]},
			{b.Min[0], b.Min[1]},
		},
	}
}
