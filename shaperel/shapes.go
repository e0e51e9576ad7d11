package shaperel

import (
	"math"

	"github.com/quadterm/geoidx/quadgeo"
)

// ShapeKind tags which concrete geometry a Shape wraps. The oracle and
// the streaming iterator never switch on it — they only ever call
// Bounds() and Relate() — but a caller building an index-time pipeline
// needs to know what it parsed before it can decide how to refine a
// coarse cell relation (e.g. point-in-polygon for ShapeKindPolygon, a
// plain radius test for ShapeKindCircle).
//
// Grounded on beetlebugorg-s57's internal/parser.GeometryType
// (Point/LineString/Polygon), generalized here to the shape kinds a
// query engine's bounding-box/distance/relate predicates actually need.
type ShapeKind int

const (
	ShapeKindPoint ShapeKind = iota
	ShapeKindRectangle
	ShapeKindCircle
	ShapeKindPolygon
	ShapeKindMultiPoint
	ShapeKindCollection
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeKindPoint:
		return "Point"
	case ShapeKindRectangle:
		return "Rectangle"
	case ShapeKindCircle:
		return "Circle"
	case ShapeKindPolygon:
		return "Polygon"
	case ShapeKindMultiPoint:
		return "MultiPoint"
	case ShapeKindCollection:
		return "ShapeCollection"
	default:
		return "Unknown"
	}
}

// Point is a single (lon, lat) location. Its Bounds is a degenerate,
// zero-area rectangle at the point itself.
type Point struct {
	Lon, Lat float64
}

func (Point) Kind() ShapeKind { return ShapeKindPoint }

func (p Point) Bounds() quadgeo.Rectangle {
	return quadgeo.Rectangle{MinLon: p.Lon, MinLat: p.Lat, MaxLon: p.Lon, MaxLat: p.Lat}
}

// Circle is a center point plus a great-circle radius in meters. Its
// Bounds computes the same flat-earth degree expansion as
// termenum.NewDistanceFilter, clamping latitude but not longitude.
type Circle struct {
	CenterLon, CenterLat float64
	RadiusMeters         float64
}

func (Circle) Kind() ShapeKind { return ShapeKindCircle }

func (c Circle) Bounds() quadgeo.Rectangle {
	const metersPerDegreeLat = 111320.0
	dLat := c.RadiusMeters / metersPerDegreeLat
	cosLat := math.Cos(c.CenterLat * math.Pi / 180.0)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	dLon := c.RadiusMeters / (metersPerDegreeLat * cosLat)
	return quadgeo.Rectangle{
		MinLon: c.CenterLon - dLon,
		MinLat: clampLat(c.CenterLat - dLat),
		MaxLon: c.CenterLon + dLon,
		MaxLat: clampLat(c.CenterLat + dLat),
	}
}

func clampLat(lat float64) float64 {
	switch {
	case lat > quadgeo.WorldMaxLat:
		return quadgeo.WorldMaxLat
	case lat < quadgeo.WorldMinLat:
		return quadgeo.WorldMinLat
	default:
		return lat
	}
}

// Polygon is a closed ring of (lon, lat) vertices, outer ring only;
// holes and dateline-wrapping validation are the external geometry
// library's concern (spec.md §1's out-of-scope list), not this core's.
// Its Bounds is the vertex-wise envelope.
type Polygon struct {
	Ring [][2]float64 // [lon, lat] pairs, first and last equal
}

func (Polygon) Kind() ShapeKind { return ShapeKindPolygon }

func (p Polygon) Bounds() quadgeo.Rectangle {
	if len(p.Ring) == 0 {
		return quadgeo.Rectangle{}
	}
	r := quadgeo.Rectangle{MinLon: p.Ring[0][0], MinLat: p.Ring[0][1], MaxLon: p.Ring[0][0], MaxLat: p.Ring[0][1]}
	for _, v := range p.Ring[1:] {
		if v[0] < r.MinLon {
			r.MinLon = v[0]
		}
		if v[0] > r.MaxLon {
			r.MaxLon = v[0]
		}
		if v[1] < r.MinLat {
			r.MinLat = v[1]
		}
		if v[1] > r.MaxLat {
			r.MaxLat = v[1]
		}
	}
	return r
}

// MultiPoint is a set of (lon, lat) locations treated as a single shape,
// e.g. a cluster of soundings. Its Bounds is the envelope of every
// point.
type MultiPoint struct {
	Points []Point
}

func (MultiPoint) Kind() ShapeKind { return ShapeKindMultiPoint }

func (mp MultiPoint) Bounds() quadgeo.Rectangle {
	if len(mp.Points) == 0 {
		return quadgeo.Rectangle{}
	}
	r := mp.Points[0].Bounds()
	for _, p := range mp.Points[1:] {
		b := p.Bounds()
		if b.MinLon < r.MinLon {
			r.MinLon = b.MinLon
		}
		if b.MaxLon > r.MaxLon {
			r.MaxLon = b.MaxLon
		}
		if b.MinLat < r.MinLat {
			r.MinLat = b.MinLat
		}
		if b.MaxLat > r.MaxLat {
			r.MaxLat = b.MaxLat
		}
	}
	return r
}

// ShapeCollection groups heterogeneous Shapes (e.g. a polygon with
// disjoint multipoint annotations) as a single query shape. Its Bounds
// is the union envelope of every member; an Oracle relating a cell to
// a ShapeCollection must still inspect members individually to get an
// exact Relation, which is why ShapeCollection itself does not try to
// compute one.
type ShapeCollection struct {
	Shapes []Shape
}

func (ShapeCollection) Kind() ShapeKind { return ShapeKindCollection }

func (sc ShapeCollection) Bounds() quadgeo.Rectangle {
	if len(sc.Shapes) == 0 {
		return quadgeo.Rectangle{}
	}
	r := sc.Shapes[0].Bounds()
	for _, s := range sc.Shapes[1:] {
		b := s.Bounds()
		if b.MinLon < r.MinLon {
			r.MinLon = b.MinLon
		}
		if b.MaxLon > r.MaxLon {
			r.MaxLon = b.MaxLon
		}
		if b.MinLat < r.MinLat {
			r.MinLat = b.MinLat
		}
		if b.MaxLat > r.MaxLat {
			r.MaxLat = b.MaxLat
		}
	}
	return r
}

// RectBounds already implements ShapeKindRectangle's Bounds in
// shaperel.go; it is not redeclared here to avoid a second Shape with
// an identical layout.
func (RectBounds) Kind() ShapeKind { return ShapeKindRectangle }
