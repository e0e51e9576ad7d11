package stream

import (
	"errors"
	"testing"

	"github.com/quadterm/geoidx"
	"github.com/quadterm/geoidx/cell"
	"github.com/quadterm/geoidx/pqt"
	"github.com/quadterm/geoidx/quadgeo"
	"github.com/quadterm/geoidx/shaperel"
)

func drain(t *testing.T, it *ShapeIterator) []pqt.Cell {
	t.Helper()
	var out []pqt.Cell
	for it.HasNext() {
		c, err := it.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		out = append(out, c)
	}
	_, err := it.Next()
	if !errors.Is(err, geoidx.ErrEndOfIteration) {
		t.Errorf("Next after exhaustion = %v, want ErrEndOfIteration", err)
	}
	return out
}

func TestShapeIteratorNopOracleVisitsEveryCellToMaxDepth(t *testing.T) {
	tree := pqt.New(3)
	shape := shaperel.RectBounds(quadgeo.World())
	it := New(tree, shape, shaperel.NopOracle{})

	// NopOracle always answers Intersects, so every interior cell from
	// level 1 down to the max level is published (the advance loop
	// both records and descends on Intersects): sum(4^k, k=1..3).
	cells := drain(t, it)
	if want := 4 + 16 + 64; len(cells) != want {
		t.Fatalf("got %d cells, want %d", len(cells), want)
	}
	leaves := 0
	for _, c := range cells {
		if c.IsLeaf() {
			leaves++
		}
	}
	if leaves != 64 {
		t.Errorf("got %d leaf cells, want 64 (one per max-level cell)", leaves)
	}
}

func TestShapeIteratorDisjointShapeYieldsNothing(t *testing.T) {
	tree := pqt.New(4)
	shape := shaperel.RectBounds{MinLon: -200, MinLat: -200, MaxLon: -190, MaxLat: -190}
	it := New(tree, shape, shaperel.RectOracle{})

	if it.HasNext() {
		t.Fatalf("expected no cells for an out-of-world shape")
	}
}

func TestShapeIteratorExactQuadrantShapeMarksOneCellWithin(t *testing.T) {
	// A 1-level tree so every emitted cell is forced to leaf regardless
	// of relation, isolating the Within branch's relation tag from its
	// leaf-forcing effect.
	tree := pqt.New(1)
	quad := quadgeo.Child(quadgeo.World(), quadgeo.QuadNE)
	shape := shaperel.RectBounds(quad)
	it := New(tree, shape, shaperel.RectOracle{})

	cells := drain(t, it)
	if len(cells) != 4 {
		t.Fatalf("got %d cells, want 4 (one per level-1 quadrant)", len(cells))
	}
	withinCount := 0
	for _, c := range cells {
		if !c.IsLeaf() {
			t.Errorf("cell at depth-1 tree must be forced leaf")
		}
		if c.ShapeRelation() == cell.Within {
			withinCount++
		}
	}
	if withinCount != 1 {
		t.Errorf("got %d cells tagged Within, want exactly 1 (the NE quadrant itself)", withinCount)
	}
}

func TestShapeIteratorSortedOrder(t *testing.T) {
	tree := pqt.New(5)
	shape := shaperel.RectBounds(quadgeo.World())
	it := New(tree, shape, shaperel.RectOracle{})

	cells := drain(t, it)
	for i := 1; i < len(cells); i++ {
		prev, cur := cells[i-1], cells[i]
		if prev.CompareNoLeaf(cur) >= 0 {
			t.Fatalf("cells not strictly ascending at index %d", i)
		}
	}
}

func TestShapeIteratorRestartIsDeterministic(t *testing.T) {
	tree := pqt.New(4)
	shape := shaperel.RectBounds{MinLon: -30, MinLat: -30, MaxLon: 30, MaxLat: 30}

	first := drain(t, New(tree, shape, shaperel.RectOracle{}))
	second := drain(t, New(tree, shape, shaperel.RectOracle{}))

	if len(first) != len(second) {
		t.Fatalf("restart produced %d cells, want %d", len(second), len(first))
	}
	for i := range first {
		if first[i].Term() != second[i].Term() {
			t.Errorf("cell %d differs across restarts: %#x vs %#x", i, first[i].Term(), second[i].Term())
		}
	}
}
