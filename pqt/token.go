// Package pqt implements the Packed Quad Prefix Tree: a Z-order-encoded
// hierarchical decomposition of the lat/lon plane where each cell is a
// single 64-bit integer term. It supports lexicographic descend/sibling
// navigation (Next) without materializing the tree, which is what lets
// the streaming shape indexer emit a shape's minimal covering without
// ever holding more than one cursor cell in memory.
//
// The token arithmetic here is grounded on the same complete-binary-tree
// index trick the teacher uses for CIDR prefixes in
// internal/art/base_index.go (PfxToIdx/IdxToPfx/HostIdx): a sentinel bit
// marks the top of a variable-length address, and descending appends
// bits at the low end. Z-order quad addressing generalizes that from an
// 8-bit, 256-way octet trie to a 2-bit, 4-way (NW/NE/SW/SE) trie.
package pqt

import "math/bits"

// WorldTerm is the literal encoding of the cell covering the entire
// plane: sentinel bit set, no quadrant pairs, leaf bit clear.
const WorldTerm uint64 = 0x2

// Quadrant values match the spec's Z-order bit pattern exactly, so a
// Quadrant can be OR'd directly into Descend's shifted position.
type Quadrant uint8

const (
	QuadNW Quadrant = 0
	QuadNE Quadrant = 1
	QuadSW Quadrant = 2
	QuadSE Quadrant = 3
)

// LevelOf returns the tree depth encoded by term: the position of its
// sentinel bit, halved.
func LevelOf(term uint64) int {
	significant := 64 - bits.LeadingZeros64(term)
	return (significant >> 1) - 1
}

// Descend appends quad as the next (deepest) quadrant pair, advancing
// one level. The appended trailing bit is the new leaf flag, which
// starts clear.
func Descend(term uint64, quad Quadrant) uint64 {
	return (term << 2) | (uint64(quad) << 1)
}

// stripLeaf clears the leaf bit if set, without touching anything else.
func stripLeaf(term uint64) uint64 {
	return term &^ 1
}

// IsLeafBit reports whether term's LSB (the leaf flag) is set.
func IsLeafBit(term uint64) bool {
	return term&1 == 1
}

// MarkLeaf sets the leaf bit.
func MarkLeaf(term uint64) uint64 {
	return term | 1
}

// Sibling advances term to its next sibling at the same level (+0x2). It
// reports false (and returns term unchanged) when the current quadrant
// is already SE and has no next sibling.
func Sibling(term uint64) (uint64, bool) {
	if term&0x6 == 0x6 {
		return term, false
	}
	return term + 0x2, true
}

// IsEnd reports whether term is the all-SE path at its own level: the
// last cell in pre-order traversal order reachable without descending
// past it. The world term is never considered an end, even though the
// all-SE formula coincidentally matches it at level 0.
func IsEnd(term uint64) bool {
	t := stripLeaf(term)
	if t == WorldTerm {
		return false
	}
	level := LevelOf(t)
	return t == (uint64(1)<<uint(level*2+2))-2
}

// Next computes the lexicographically next cell after term, given the
// tree's maxLevel and whether the caller wants to descend into term's
// subtree (descend=true) or skip it (descend=false, e.g. after a leaf or
// a Disjoint relation). It reports ok=false when traversal is exhausted.
//
// This mirrors spec.md's next_cell(descend): descend always steps into
// the NW (quadrant 0) child; covering the other 3 quadrants of a level
// happens through the sibling-or-ascend branch as the caller walks the
// tree. The leaf bit is always stripped before arithmetic and never
// re-examined afterward, which is the normalization this implementation
// picked for the "leaf bit on an interior cell" open question in
// spec.md's Design Notes.
func Next(term uint64, maxLevel int, descend bool) (next uint64, ok bool) {
	level := LevelOf(term)

	if level == maxLevel && IsEnd(term) {
		return 0, false
	}
	if !descend && IsEnd(term) {
		return 0, false
	}

	isLeaf := IsLeafBit(term)

	if (descend && !isLeaf && level != maxLevel) || level == 0 {
		return stripLeaf(term) << 2, true
	}

	base := stripLeaf(term)
	candidate := base + 0x2

	if term&0x6 == 0x6 {
		tz := bits.TrailingZeros64(candidate)
		var shift int
		if tz%2 == 0 {
			shift = tz - 2
		} else {
			shift = tz - 1
		}
		if shift > 0 {
			candidate >>= uint(shift)
		}
	}

	return candidate, true
}

// TokenBytes encodes term as big-endian 8 bytes. Byte order equals
// lexicographic order for the inverted index, which is why no length
// prefix is needed.
func TokenBytes(term uint64) [8]byte {
	var b [8]byte
	b[0] = byte(term >> 56)
	b[1] = byte(term >> 48)
	b[2] = byte(term >> 40)
	b[3] = byte(term >> 32)
	b[4] = byte(term >> 24)
	b[5] = byte(term >> 16)
	b[6] = byte(term >> 8)
	b[7] = byte(term)
	return b
}
