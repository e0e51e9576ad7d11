package pqt

import (
	"fmt"

	"github.com/quadterm/geoidx"
	"github.com/quadterm/geoidx/quadgeo"
)

// Tree is a packed quad prefix tree: the Geometry metric tables plus the
// max depth terms are allowed to reach. It is immutable after
// construction and safe to share across goroutines; Cells it produces
// are thread-owned.
type Tree struct {
	geo *quadgeo.Geometry
}

// New builds a tree with the given max depth (1..quadgeo.MaxLevels). It
// panics if maxLevels is out of range, per the construction-time
// invariant in the spec.
func New(maxLevels int) *Tree {
	return &Tree{geo: quadgeo.NewGeometry(maxLevels)}
}

// MaxLevels returns the tree's configured max depth.
func (t *Tree) MaxLevels() int { return t.geo.MaxLevels() }

// World returns the tree's world cell (level 0).
func (t *Tree) World() Cell { return WorldCell(t.geo) }

// Decode wraps an externally supplied token into a Cell bound to this
// tree. It panics with an InvariantViolation-shaped message if term has
// no sentinel bit set (term == 0) or decodes to a level beyond the
// tree's max depth or the 31-level hard ceiling, since such a term
// cannot have been produced by this tree and signals a corrupted term
// per the spec's error taxonomy.
func (t *Tree) Decode(term uint64) Cell {
	if term == 0 {
		panic(geoidx.InvariantViolation{Term: term, Reason: "term has no sentinel bit set"})
	}
	level := LevelOf(term)
	if level < 0 || level > t.geo.MaxLevels() {
		panic(geoidx.InvariantViolation{Term: term, Reason: fmt.Sprintf("decodes to out-of-range level %d", level)})
	}
	return NewCell(t.geo, term)
}

// CellFor descends from the world cell to the cell at `level` containing
// (lon, lat), choosing at each split the quadrant under the lower-left
// rule (x in [xmin,xmax), y in [ymin,ymax)). It panics if level exceeds
// the tree's max depth.
func (t *Tree) CellFor(lon, lat float64, level int) Cell {
	if level > t.geo.MaxLevels() {
		panic(fmt.Sprintf("pqt: invariant violation: level %d exceeds tree max %d", level, t.geo.MaxLevels()))
	}
	term := WorldTerm
	rect := quadgeo.World()
	for l := 0; l < level; l++ {
		q := quadgeo.QuadrantOf(rect, lon, lat)
		term = Descend(term, Quadrant(q))
		rect = quadgeo.Child(rect, q)
	}
	return NewCell(t.geo, term)
}
