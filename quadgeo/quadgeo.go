// Package quadgeo holds the per-level metric tables and world-rectangle
// geometry shared by the packed quad tree: level widths/heights in
// degrees, and lat/lon-to-cell containment at a given level.
//
// Metric tables are built once per tree and are read-only afterward;
// Geometry values may be shared across goroutines without synchronization,
// mirroring the teacher's read-only per-level stride tables.
package quadgeo

import "fmt"

// MaxLevels is the hard ceiling on tree depth for a packed quad tree: a
// term needs a sentinel bit, 2 bits per level and a leaf bit, and must
// fit in 64 bits, so levels > 31 cannot be addressed.
const MaxLevels = 31

// World bounds of the plane this tree indexes, in degrees.
const (
	WorldMinLon = -180.0
	WorldMinLat = -90.0
	WorldMaxLon = 180.0
	WorldMaxLat = 90.0
)

// Rectangle is an axis-aligned lon/lat box, minimum-inclusive,
// maximum-exclusive per the lower-left containment rule.
type Rectangle struct {
	MinLon, MinLat, MaxLon, MaxLat float64
}

// Contains reports whether (lon, lat) falls in the rectangle under the
// lower-left rule: x in [MinLon, MaxLon), y in [MinLat, MaxLat).
func (r Rectangle) Contains(lon, lat float64) bool {
	return lon >= r.MinLon && lon < r.MaxLon && lat >= r.MinLat && lat < r.MaxLat
}

// Width and Height of the rectangle in degrees.
func (r Rectangle) Width() float64  { return r.MaxLon - r.MinLon }
func (r Rectangle) Height() float64 { return r.MaxLat - r.MinLat }

// World returns the rectangle covering the whole plane.
func World() Rectangle {
	return Rectangle{WorldMinLon, WorldMinLat, WorldMaxLon, WorldMaxLat}
}

// Geometry holds the per-level width/height tables for a tree of a given
// max depth. It is immutable once built and safe to share.
type Geometry struct {
	maxLevels int
	levelW    []float64 // levelW[i] = width of a cell at level i, degrees
	levelH    []float64 // levelH[i] = height of a cell at level i, degrees
}

// NewGeometry builds the level metric tables for a tree with the given
// max depth. It panics with an InvariantViolation-shaped message if
// maxLevels is outside 1..MaxLevels, per the construction-time invariant
// in the spec.
func NewGeometry(maxLevels int) *Geometry {
	if maxLevels < 1 || maxLevels > MaxLevels {
		panic(fmt.Sprintf("quadgeo: invariant violation: maxLevels %d outside 1..%d", maxLevels, MaxLevels))
	}
	g := &Geometry{
		maxLevels: maxLevels,
		levelW:    make([]float64, maxLevels+1),
		levelH:    make([]float64, maxLevels+1),
	}
	w, h := WorldMaxLon-WorldMinLon, WorldMaxLat-WorldMinLat
	for i := 0; i <= maxLevels; i++ {
		g.levelW[i] = w
		g.levelH[i] = h
		w /= 2
		h /= 2
	}
	return g
}

// MaxLevels returns the tree's configured max depth.
func (g *Geometry) MaxLevels() int { return g.maxLevels }

// LevelWidth returns the width in degrees of a cell at level i.
func (g *Geometry) LevelWidth(i int) float64 { return g.levelW[i] }

// LevelHeight returns the height in degrees of a cell at level i.
func (g *Geometry) LevelHeight(i int) float64 { return g.levelH[i] }

// PrecisionTable is a precomputed, monotone-decreasing step function from
// a requested resolution in meters to the smallest quad tree level whose
// cell diagonal is at most that resolution. NewPrecisionTable builds it
// from a Geometry (no Geometry or tree builds one on its own), and
// LevelForMeters answers from the cached array rather than recomputing
// a level's width/height on every lookup,
// mirroring the context-factory table the original implementation this
// core was distilled from builds eagerly rather than per-query.
type PrecisionTable struct {
	// diagSqMeters[i] is the squared diagonal, in meters, of a cell at
	// level i+1 (index 0 is level 1; the world, level 0, has no finite
	// diagonal and is never a candidate resolution).
	diagSqMeters []float64
}

// metersPerDegree approximates the WGS84 equatorial degree length, the
// same flat-earth scale config.go's levelsForPrecisionQuad and
// geohash.LevelsForPrecision both use for this coarse, non-polar-aware
// conversion.
const metersPerDegree = 111320.0

// NewPrecisionTable precomputes geo's per-level diagonal in meters for
// every level 1..geo.MaxLevels().
func NewPrecisionTable(geo *Geometry) *PrecisionTable {
	t := &PrecisionTable{diagSqMeters: make([]float64, geo.MaxLevels())}
	for l := 1; l <= geo.MaxLevels(); l++ {
		w := geo.LevelWidth(l) * metersPerDegree
		h := geo.LevelHeight(l) * metersPerDegree
		t.diagSqMeters[l-1] = w*w + h*h
	}
	return t
}

// LevelForMeters returns the smallest level whose cell diagonal is at
// most meters, i.e. the shallowest (coarsest) level that still
// satisfies the requested resolution; a level whose diagonal equals
// meters qualifies. If no level is fine enough, it returns the table's
// deepest level.
func (t *PrecisionTable) LevelForMeters(meters float64) int {
	target := meters * meters
	for i, diagSq := range t.diagSqMeters {
		if diagSq <= target {
			return i + 1
		}
	}
	return len(t.diagSqMeters)
}

// Quadrant identifies one of the 4 children of a cell in Z-order.
type Quadrant uint8

const (
	QuadNW Quadrant = 0
	QuadNE Quadrant = 1
	QuadSW Quadrant = 2
	QuadSE Quadrant = 3
)

// QuadrantOf returns which quadrant of rect contains (lon, lat), under
// the lower-left rule (x in [xmin,xmax), y in [ymin,ymax)): a point on a
// shared edge belongs to the cell whose minimum edge it lies on, so the
// center itself falls in NE. The origin of the quadrant split is the
// rectangle's center.
func QuadrantOf(rect Rectangle, lon, lat float64) Quadrant {
	cLon := (rect.MinLon + rect.MaxLon) / 2
	cLat := (rect.MinLat + rect.MaxLat) / 2
	west := lon < cLon
	south := lat < cLat
	switch {
	case !west && !south:
		return QuadNE
	case west && !south:
		return QuadNW
	case west && south:
		return QuadSW
	default:
		return QuadSE
	}
}

// Child returns the sub-rectangle of rect for the given quadrant.
func Child(rect Rectangle, q Quadrant) Rectangle {
	cLon := (rect.MinLon + rect.MaxLon) / 2
	cLat := (rect.MinLat + rect.MaxLat) / 2
	switch q {
	case QuadNW:
		return Rectangle{rect.MinLon, cLat, cLon, rect.MaxLat}
	case QuadNE:
		return Rectangle{cLon, cLat, rect.MaxLon, rect.MaxLat}
	case QuadSW:
		return Rectangle{rect.MinLon, rect.MinLat, cLon, cLat}
	default: // QuadSE
		return Rectangle{cLon, rect.MinLat, rect.MaxLon, cLat}
	}
}

// CellFor descends from the world rectangle, choosing at each level the
// quadrant containing (lon, lat), until level is reached, returning the
// quadrant path taken (index 0 is the level-1 split).
func CellFor(lon, lat float64, level int) []Quadrant {
	path := make([]Quadrant, 0, level)
	rect := World()
	for l := 0; l < level; l++ {
		q := QuadrantOf(rect, lon, lat)
		path = append(path, q)
		rect = Child(rect, q)
	}
	return path
}
