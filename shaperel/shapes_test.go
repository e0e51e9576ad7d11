package shaperel

import "testing"

func TestPointBoundsIsDegenerate(t *testing.T) {
	p := Point{Lon: 10, Lat: 20}
	b := p.Bounds()
	if b.MinLon != 10 || b.MaxLon != 10 || b.MinLat != 20 || b.MaxLat != 20 {
		t.Errorf("Point.Bounds() = %+v, want a zero-area rectangle at (10,20)", b)
	}
	if p.Kind() != ShapeKindPoint {
		t.Errorf("Kind() = %v, want ShapeKindPoint", p.Kind())
	}
}

func TestCircleBoundsCoversCenter(t *testing.T) {
	c := Circle{CenterLon: 0, CenterLat: 0, RadiusMeters: 50000}
	b := c.Bounds()
	if !b.Contains(0, 0) {
		t.Errorf("Circle.Bounds() %+v does not contain its own center", b)
	}
	if c.Kind() != ShapeKindCircle {
		t.Errorf("Kind() = %v, want ShapeKindCircle", c.Kind())
	}
}

func TestCircleBoundsClampsAtPoles(t *testing.T) {
	c := Circle{CenterLon: 0, CenterLat: 89.9, RadiusMeters: 500000}
	b := c.Bounds()
	if b.MaxLat != 90 {
		t.Errorf("Circle.Bounds() near pole MaxLat = %v, want clamped to 90", b.MaxLat)
	}
}

func TestPolygonBoundsIsVertexEnvelope(t *testing.T) {
	poly := Polygon{Ring: [][2]float64{{0, 0}, {10, 0}, {10, 5}, {0, 5}, {0, 0}}}
	b := poly.Bounds()
	if b.MinLon != 0 || b.MaxLon != 10 || b.MinLat != 0 || b.MaxLat != 5 {
		t.Errorf("Polygon.Bounds() = %+v, want (0,0,10,5)", b)
	}
	if poly.Kind() != ShapeKindPolygon {
		t.Errorf("Kind() = %v, want ShapeKindPolygon", poly.Kind())
	}
}

func TestMultiPointBoundsUnionsMembers(t *testing.T) {
	mp := MultiPoint{Points: []Point{{Lon: -5, Lat: 0}, {Lon: 5, Lat: 10}}}
	b := mp.Bounds()
	if b.MinLon != -5 || b.MaxLon != 5 || b.MinLat != 0 || b.MaxLat != 10 {
		t.Errorf("MultiPoint.Bounds() = %+v, want (-5,0,5,10)", b)
	}
}

func TestShapeCollectionBoundsUnionsMembers(t *testing.T) {
	sc := ShapeCollection{Shapes: []Shape{
		Point{Lon: 0, Lat: 0},
		RectBounds{MinLon: 20, MinLat: 20, MaxLon: 30, MaxLat: 30},
	}}
	b := sc.Bounds()
	if b.MinLon != 0 || b.MaxLon != 30 || b.MinLat != 0 || b.MaxLat != 30 {
		t.Errorf("ShapeCollection.Bounds() = %+v, want (0,0,30,30)", b)
	}
	if sc.Kind() != ShapeKindCollection {
		t.Errorf("Kind() = %v, want ShapeKindCollection", sc.Kind())
	}
}

func TestRectBoundsKind(t *testing.T) {
	r := RectBounds{MinLon: 0, MinLat: 0, MaxLon: 1, MaxLat: 1}
	if r.Kind() != ShapeKindRectangle {
		t.Errorf("Kind() = %v, want ShapeKindRectangle", r.Kind())
	}
}
