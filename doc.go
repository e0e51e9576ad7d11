// Package geoidx provides the geospatial indexing core shared by a
// search engine's bounding-box, distance, and shape-relate query paths:
// it turns shapes and points on the WGS84 sphere into lexicographically
// ordered byte terms suitable for inverted-index storage, and turns
// spatial predicates into iteration plans over those terms.
//
// geoidx is a thin facade over its component packages:
//
//   - bitcode:  Morton interleave/deinterleave and flip-flop bit codecs
//   - geohash:  base-32 geohash string/packed-form codec
//   - quadgeo:  per-level quad tree geometry (widths, heights, world rect)
//   - cell:     the capability contract a tree cell exposes (token bytes,
//     level, leaf flag, shape relation, sub-cells)
//   - pqt:      the packed quad prefix tree and its lexicographic Next
//     traversal
//   - shaperel: the ShapeRelationOracle contract plus two reference
//     implementations
//   - stream:   the streaming shape-to-terms iterator
//   - termenum: bounding-box and distance term-enumeration filters
//
// This package itself only carries the pieces a caller needs regardless
// of which tree or strategy they pick: Config and the error taxonomy.
package geoidx
