package termenum

import (
	"testing"

	"github.com/quadterm/geoidx/bitcode"
	"github.com/quadterm/geoidx/quadgeo"
)

func TestBBoxFilterAcceptsInteriorPoint(t *testing.T) {
	rect := quadgeo.Rectangle{MinLon: -10, MinLat: -10, MaxLon: 10, MaxLat: 10}
	f := NewBBoxFilter(rect)
	term := bitcode.MortonEncode(0, 0)
	accept, _ := f.Accept(term)
	if !accept {
		t.Errorf("expected origin point to be accepted by %+v", rect)
	}
}

func TestBBoxFilterRejectsExteriorPoint(t *testing.T) {
	rect := quadgeo.Rectangle{MinLon: -10, MinLat: -10, MaxLon: 10, MaxLat: 10}
	f := NewBBoxFilter(rect)
	term := bitcode.MortonEncode(50, 50)
	accept, _ := f.Accept(term)
	if accept {
		t.Errorf("expected (50,50) to be rejected by %+v", rect)
	}
}

func TestBBoxFilterPanicsOnCrossingRect(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a dateline-crossing rectangle")
		}
	}()
	NewBBoxFilter(quadgeo.Rectangle{MinLon: 170, MinLat: -10, MaxLon: -170, MaxLat: 10})
}

func TestSplitDatelineNonCrossingIsUnchanged(t *testing.T) {
	rect := quadgeo.Rectangle{MinLon: -10, MinLat: -10, MaxLon: 10, MaxLat: 10}
	parts := SplitDateline(rect)
	if len(parts) != 1 || parts[0] != rect {
		t.Errorf("SplitDateline(%+v) = %+v, want unchanged single-element slice", rect, parts)
	}
}

func TestSplitDatelineCrossingProducesTwoParts(t *testing.T) {
	rect := quadgeo.Rectangle{MinLon: 170, MinLat: -10, MaxLon: -170, MaxLat: 10}
	parts := SplitDateline(rect)
	if len(parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(parts))
	}
	for _, p := range parts {
		if p.MinLon > p.MaxLon {
			t.Errorf("split part %+v still crosses the antimeridian", p)
		}
	}
}

func TestOrFiltersAcceptsIfAnySubFilterAccepts(t *testing.T) {
	a := NewBBoxFilter(quadgeo.Rectangle{MinLon: -10, MinLat: -10, MaxLon: 0, MaxLat: 0})
	b := NewBBoxFilter(quadgeo.Rectangle{MinLon: 5, MinLat: 5, MaxLon: 15, MaxLat: 15})
	or := NewOrFilters(a, b)

	inA := bitcode.MortonEncode(-5, -5)
	inB := bitcode.MortonEncode(10, 10)
	inNeither := bitcode.MortonEncode(50, 50)

	if accept, _ := or.Accept(inA); !accept {
		t.Error("expected a point inside filter a to be accepted")
	}
	if accept, _ := or.Accept(inB); !accept {
		t.Error("expected a point inside filter b to be accepted")
	}
	if accept, _ := or.Accept(inNeither); accept {
		t.Error("expected a point inside neither filter to be rejected")
	}
}

func TestDistanceFilterAcceptsNearbyPoint(t *testing.T) {
	f := NewDistanceFilter(0, 0, 50000) // 50 km around the origin
	term := bitcode.MortonEncode(0.1, 0.1)
	accept, _ := f.Accept(term)
	if !accept {
		t.Error("expected a point ~15km from the origin to be within a 50km radius")
	}
}

func TestDistanceFilterRejectsFarPoint(t *testing.T) {
	f := NewDistanceFilter(0, 0, 50000)
	term := bitcode.MortonEncode(10, 10)
	accept, _ := f.Accept(term)
	if accept {
		t.Error("expected a point thousands of km away to be rejected by a 50km radius")
	}
}

func TestNewDistanceFiltersHandlesDatelineCrossing(t *testing.T) {
	or := NewDistanceFilters(179.9, 0, 50000)
	// A point just past the antimeridian from the query center.
	term := bitcode.MortonEncode(-179.95, 0)
	accept, _ := or.Accept(term)
	if !accept {
		t.Error("expected a point just across the antimeridian to be accepted")
	}
}

func TestDedupeCoarseCellsRemovesPoleCollisions(t *testing.T) {
	hashes := []string{"gzzzzzzzzzzz", "gzzzzzzzzzzz", "u000000000000"[:12]}
	out := DedupeCoarseCells(hashes)
	if len(out) != 2 {
		t.Fatalf("got %d unique hashes, want 2, out=%v", len(out), out)
	}
}
