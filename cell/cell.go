// Package cell defines the capability set an indexable prefix-tree cell
// exposes to the rest of the core: encoded token bytes, level, leaf flag,
// shape relation, sub-cells, and rectangle materialization. Concrete
// trees (packed quad tree, geohash tree) implement this interface with
// their own tagged term representation; callers consuming cells never
// need to know which.
package cell

import "github.com/quadterm/geoidx/quadgeo"

// Relation describes how a cell's rectangle relates to a query shape.
type Relation uint8

const (
	Disjoint Relation = iota
	Within            // the cell is entirely inside the shape
	Contains          // the cell entirely contains the shape
	Intersects
)

func (r Relation) String() string {
	switch r {
	case Disjoint:
		return "Disjoint"
	case Within:
		return "Within"
	case Contains:
		return "Contains"
	case Intersects:
		return "Intersects"
	default:
		return "Unknown"
	}
}

// Cell is the read-only capability set the core exposes to an index
// writer or a query-time consumer. Implementations are value-like: a
// scratch buffer returned by a token-bytes method is only guaranteed
// valid until the next call that produces a new cell from the same
// tree (see each tree package's Next documentation for its specific
// reuse contract). Leaf-marking and shape-relation tagging are a
// concrete tree's own mutator methods (e.g. pqt.Cell.SetLeaf), used by
// a tree-walking caller that already holds the concrete type — they
// are deliberately not part of this interface, since a pointer-receiver
// mutator would force every concrete cell to be boxed behind a pointer
// just to satisfy it.
type Cell interface {
	// TokenBytesWithLeaf returns the big-endian 8-byte encoding of the
	// cell's token with the leaf bit folded in.
	TokenBytesWithLeaf() [8]byte
	// TokenBytesNoLeaf returns the big-endian 8-byte encoding of the
	// cell's token with the leaf bit cleared.
	TokenBytesNoLeaf() [8]byte

	Level() int
	IsLeaf() bool

	ShapeRelation() Relation

	// Rectangle returns the cell's geographic envelope.
	Rectangle() quadgeo.Rectangle

	// SubCells returns the cell's 4 children in Z-order (NW, NE, SW, SE).
	SubCells() [4]Cell

	// CompareNoLeaf orders this cell against other by their tokens with
	// the leaf bit stripped from both sides. How cells at different
	// levels compare is each tree's own convention; see each tree's
	// implementation for the exact tie-break it pins.
	CompareNoLeaf(other Cell) int
}
