// Package stream produces the minimal cover of a query shape as an
// ordered stream of packed-quad-tree cells, pulling one cell at a time
// from a ShapeRelationOracle-driven tree walk.
//
// The iterator is grounded on the teacher's pull-style traversal shape
// in table_iter.go (Supernets/Subnets unwind a tree one step per call
// rather than materializing a slice). Next returns one pqt.Cell value
// per call; the iterator keeps no token-bytes buffer or pool.
package stream

import (
	"github.com/quadterm/geoidx"
	"github.com/quadterm/geoidx/cell"
	"github.com/quadterm/geoidx/pqt"
	"github.com/quadterm/geoidx/shaperel"
)

const (
	relDisjoint   = cell.Disjoint
	relWithin     = cell.Within
	relContains   = cell.Contains
	relIntersects = cell.Intersects
)

var errEndOfIteration = geoidx.ErrEndOfIteration

// ShapeIterator produces the minimal cover of a shape as a sorted,
// restart-safe sequence of cells. A fresh iterator over the same
// (shape, tree) pair always yields the identical sequence, since the
// underlying descend/sibling/ascend walk is a pure function of the
// tree's geometry and the oracle's relation answers.
type ShapeIterator struct {
	tree   *pqt.Tree
	shape  shaperel.Shape
	oracle shaperel.Oracle

	current      pqt.Cell
	currentValid bool

	next      pqt.Cell
	nextValid bool

	err error
}

// New builds an iterator over tree's minimal cover of shape, relating
// each candidate cell to shape via oracle. The walk starts at the
// world cell's first descend (the NW root quadrant at level 1), per
// the cover contract: the world cell itself is never published.
func New(tree *pqt.Tree, shape shaperel.Shape, oracle shaperel.Oracle) *ShapeIterator {
	first, ok := tree.World().Next(true)
	return &ShapeIterator{
		tree:         tree,
		shape:        shape,
		oracle:       oracle,
		current:      first,
		currentValid: ok,
	}
}

// HasNext advances the internal cursor until it has a published cell
// ready, or the walk is exhausted. It is idempotent: calling it
// repeatedly without an intervening Next does not skip cells.
func (it *ShapeIterator) HasNext() bool {
	if it.nextValid || it.err != nil {
		return it.nextValid
	}
	for it.currentValid {
		rel, err := it.oracle.Relate(it.shape, it.current.Rectangle())
		if err != nil {
			it.err = err
			it.currentValid = false
			return false
		}

		switch rel {
		case relDisjoint:
			it.current, it.currentValid = it.current.Next(false)
			continue

		case relIntersects, relContains:
			cur := it.current
			cur.SetShapeRelation(rel)
			if cur.Level() >= it.tree.MaxLevels() {
				cur.SetLeaf(true)
			}
			it.next = cur
			it.nextValid = true
			it.current, it.currentValid = it.current.Next(true)
			return true

		case relWithin:
			cur := it.current
			cur.SetLeaf(true)
			cur.SetShapeRelation(rel)
			it.next = cur
			it.nextValid = true
			it.current, it.currentValid = it.current.Next(false)
			return true
		}
	}
	return false
}

// Next returns the next cell in the cover, or geoidx.ErrEndOfIteration
// (via the errEndOfIteration sentinel below) once the walk is
// exhausted. Callers should prefer the `for it.HasNext() { c, _ :=
// it.Next(); ... }` pattern; Next alone also advances via HasNext so
// it is safe to call without a preceding HasNext check.
func (it *ShapeIterator) Next() (pqt.Cell, error) {
	if !it.HasNext() {
		if it.err != nil {
			return pqt.Cell{}, it.err
		}
		return pqt.Cell{}, errEndOfIteration
	}
	c := it.next
	it.nextValid = false
	return c, nil
}
