package pqt

import (
	"github.com/quadterm/geoidx/cell"
	"github.com/quadterm/geoidx/quadgeo"
)

// Cell is the packed-quad-tree's concrete implementation of cell.Cell. It
// is a small value type: copying a Cell is cheap and safe, matching the
// spec's "cells are immutable in logic" lifecycle rule. The tree that
// produced it owns the Geometry metric tables; the Cell only borrows a
// pointer to them.
type Cell struct {
	geo      *quadgeo.Geometry
	term     uint64
	relation cell.Relation
}

// NewCell wraps term (as produced by Descend/Next, or decoded from an
// externally supplied token) into a Cell bound to geo's metric tables.
func NewCell(geo *quadgeo.Geometry, term uint64) Cell {
	return Cell{geo: geo, term: term}
}

// WorldCell returns the cell covering the entire plane for geo.
func WorldCell(geo *quadgeo.Geometry) Cell {
	return NewCell(geo, WorldTerm)
}

// Term returns the raw 64-bit token, leaf bit included.
func (c Cell) Term() uint64 { return c.term }

func (c Cell) TokenBytesWithLeaf() [8]byte {
	return TokenBytes(c.term)
}

func (c Cell) TokenBytesNoLeaf() [8]byte {
	return TokenBytes(stripLeaf(c.term))
}

func (c Cell) Level() int { return LevelOf(c.term) }

func (c Cell) IsLeaf() bool {
	return IsLeafBit(c.term) || c.Level() >= c.geo.MaxLevels()
}

func (c *Cell) SetLeaf(leaf bool) {
	if leaf {
		c.term = MarkLeaf(c.term)
	} else {
		c.term = stripLeaf(c.term)
	}
}

func (c Cell) ShapeRelation() cell.Relation { return c.relation }

func (c *Cell) SetShapeRelation(r cell.Relation) { c.relation = r }

// Next returns the lexicographically next cell after c, per pqt.Next,
// leaving c unchanged. It reports ok=false at the end of traversal.
func (c Cell) Next(descend bool) (Cell, bool) {
	next, ok := Next(c.term, c.geo.MaxLevels(), descend)
	if !ok {
		return Cell{}, false
	}
	return Cell{geo: c.geo, term: next}, true
}

// quadrantAt returns the quadrant chosen at level k (1-indexed, 1 is the
// outermost/first-descended level) of c's term.
func quadrantAt(term uint64, level, k int) quadgeo.Quadrant {
	low := uint((2*level + 1) - 2*k)
	return quadgeo.Quadrant((term >> low) & 0x3)
}

// Rectangle materializes c's geographic envelope by walking its quadrant
// pairs from the outermost (level 1) down, accumulating each level's
// half-width/half-height per the chosen quadrant — the same
// complete-binary-tree walk the teacher uses to recover a CIDR prefix
// from a baseIndex, generalized from 1 axis to 2.
func (c Cell) Rectangle() quadgeo.Rectangle {
	level := c.Level()
	xmin, ymin := quadgeo.WorldMinLon, quadgeo.WorldMinLat

	for k := 1; k <= level; k++ {
		q := quadrantAt(c.term, level, k)
		w := c.geo.LevelWidth(k)
		h := c.geo.LevelHeight(k)
		switch q {
		case quadgeo.QuadNW:
			ymin += h
		case quadgeo.QuadNE:
			xmin += w
			ymin += h
		case quadgeo.QuadSW:
			// origin corner, no offset
		case quadgeo.QuadSE:
			xmin += w
		}
	}

	w := c.geo.LevelWidth(level)
	h := c.geo.LevelHeight(level)
	return quadgeo.Rectangle{MinLon: xmin, MinLat: ymin, MaxLon: xmin + w, MaxLat: ymin + h}
}

// SubCells returns c's 4 children in Z-order (NW, NE, SW, SE), each with
// the leaf bit clear.
func (c Cell) SubCells() [4]cell.Cell {
	base := stripLeaf(c.term)
	var out [4]cell.Cell
	quads := [4]quadgeo.Quadrant{quadgeo.QuadNW, quadgeo.QuadNE, quadgeo.QuadSW, quadgeo.QuadSE}
	for i, q := range quads {
		child := Cell{geo: c.geo, term: Descend(base, Quadrant(q))}
		out[i] = child
	}
	return out
}

// CompareNoLeaf orders c against other by their leaf-stripped tokens
// using ordinary unsigned comparison. Equal-prefix cells at different
// levels are NOT special-cased: a shorter term is numerically smaller
// than any longer term that has it as a bit-prefix (because the longer
// term's sentinel sits further left), so plain integer comparison already
// gives the intuitive ordering. This is the convention spec.md's Design
// Notes leaves to the implementer; ties (identical term) compare equal.
func (c Cell) CompareNoLeaf(other cell.Cell) int {
	o, ok := other.(Cell)
	if !ok {
		o = Cell{term: 0}
	}
	a, b := stripLeaf(c.term), stripLeaf(o.term)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
