// Package shaperel defines the ShapeRelationOracle contract the core
// consumes from an external planar-geometry engine, plus two
// self-contained reference implementations so the streaming iterator
// and term-enumeration filters are testable without wiring in a real
// JTS-equivalent geometry library.
//
// RectBounds and the rectsOverlap/rectContains helpers are grounded on
// beetlebugorg-s57/pkg/v1/spatial.go's Bounds, generalized from a
// chart-coverage bounding box to a query shape envelope.
package shaperel

import (
	"github.com/quadterm/geoidx/cell"
	"github.com/quadterm/geoidx/quadgeo"
)

// Shape is the minimal surface the core needs from a query geometry: its
// own bounding box, used by RectOracle. Concrete shape kinds (point, polygon, circle, ...)
// are an external collaborator's concern; the core only ever asks for
// Bounds() and hands the shape to an Oracle.
type Shape interface {
	Bounds() quadgeo.Rectangle
}

// Oracle computes the relation between a cell's rectangle and a query
// shape. An external geometry library implements this; the core only
// calls it.
type Oracle interface {
	// Relate returns how rect relates to shape, or an *InvalidShapeError
	// if shape fails the oracle's own validity rules. InvalidShape is
	// fatal: the caller must abort iteration, not attempt to recover a
	// partial cover.
	Relate(shape Shape, rect quadgeo.Rectangle) (cell.Relation, error)
}

// InvalidShapeError reports that a query geometry failed the oracle's
// validity rules (self-intersection, unclosed ring, and similar).
type InvalidShapeError struct {
	Reason string
}

func (e *InvalidShapeError) Error() string {
	return "shaperel: invalid shape: " + e.Reason
}

// RectBounds is a Shape backed by a plain rectangle, useful for tests
// and for exact bounding-box queries.
type RectBounds quadgeo.Rectangle

func (r RectBounds) Bounds() quadgeo.Rectangle { return quadgeo.Rectangle(r) }

// RectOracle relates a cell's rectangle to any Shape purely via bounding
// box overlap: it is exact for axis-aligned rectangle queries. For any
// other shape it relates the cell to the shape's Bounds() envelope, so
// it can report Within or Contains where the shape's exact geometry
// would not, since it never inspects geometry finer than Bounds().
type RectOracle struct{}

func (RectOracle) Relate(shape Shape, rect quadgeo.Rectangle) (cell.Relation, error) {
	b := shape.Bounds()
	if !rectsOverlap(b, rect) {
		return cell.Disjoint, nil
	}
	if rectContains(b, rect) {
		return cell.Within, nil
	}
	if rectContains(rect, b) {
		return cell.Contains, nil
	}
	return cell.Intersects, nil
}

func rectsOverlap(a, b quadgeo.Rectangle) bool {
	return !(a.MaxLon < b.MinLon || a.MinLon > b.MaxLon || a.MaxLat < b.MinLat || a.MinLat > b.MaxLat)
}

// rectContains reports whether outer fully contains inner.
func rectContains(outer, inner quadgeo.Rectangle) bool {
	return outer.MinLon <= inner.MinLon && outer.MaxLon >= inner.MaxLon &&
		outer.MinLat <= inner.MinLat && outer.MaxLat >= inner.MaxLat
}

// NopOracle reports every rectangle as Intersects, a test double useful
// for exercising traversal shape without any geometry at all (it never
// prunes, so a tree walk against it visits every cell down to the max
// level).
type NopOracle struct{}

func (NopOracle) Relate(Shape, quadgeo.Rectangle) (cell.Relation, error) {
	return cell.Intersects, nil
}
