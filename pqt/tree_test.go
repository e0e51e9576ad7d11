package pqt

import (
	"testing"

	"github.com/quadterm/geoidx/quadgeo"
)

func TestTreeWorldIsLevelZero(t *testing.T) {
	tree := New(4)
	w := tree.World()
	if w.Level() != 0 {
		t.Errorf("World().Level() = %d, want 0", w.Level())
	}
	if w.Term() != WorldTerm {
		t.Errorf("World().Term() = %#x, want %#x", w.Term(), WorldTerm)
	}
}

func TestTreeCellForContainsPoint(t *testing.T) {
	tree := New(6)
	lon, lat := 12.3, -45.6
	const level = 5

	c := tree.CellFor(lon, lat, level)
	if c.Level() != level {
		t.Fatalf("CellFor level = %d, want %d", c.Level(), level)
	}
	if !c.Rectangle().Contains(lon, lat) {
		t.Errorf("CellFor(%v,%v,%d).Rectangle() = %+v does not contain the point", lon, lat, level, c.Rectangle())
	}
}

func TestTreeDecodeRejectsZeroTerm(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic decoding a zero term")
		}
	}()
	tree := New(4)
	tree.Decode(0)
}

func TestTreeCellForPanicsBeyondMaxLevels(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for level beyond tree max")
		}
	}()
	tree := New(2)
	tree.CellFor(0, 0, 5)
}

func TestCellSubCellsStayInsideParentRectangle(t *testing.T) {
	tree := New(3)
	parent := tree.World()
	children := parent.SubCells()
	if len(children) != 4 {
		t.Fatalf("got %d sub-cells, want 4", len(children))
	}
	parentRect := quadgeo.World()
	for i, child := range children {
		r := child.Rectangle()
		if r.MinLon < parentRect.MinLon || r.MaxLon > parentRect.MaxLon ||
			r.MinLat < parentRect.MinLat || r.MaxLat > parentRect.MaxLat {
			t.Errorf("child[%d].Rectangle() = %+v escapes parent %+v", i, r, parentRect)
		}
	}
}

func TestCellCompareNoLeafOrdersParentBeforeChild(t *testing.T) {
	tree := New(4)
	parent := tree.World()
	child, ok := parent.Next(true)
	if !ok {
		t.Fatal("Next(true) from world failed")
	}
	if parent.CompareNoLeaf(child) >= 0 {
		t.Errorf("CompareNoLeaf(world, child) = %d, want < 0", parent.CompareNoLeaf(child))
	}
	if child.CompareNoLeaf(parent) <= 0 {
		t.Errorf("CompareNoLeaf(child, world) = %d, want > 0", child.CompareNoLeaf(parent))
	}
	if parent.CompareNoLeaf(parent) != 0 {
		t.Errorf("CompareNoLeaf(world, world) = %d, want 0", parent.CompareNoLeaf(parent))
	}
}
