// Package termenum implements the two-phase abstract acceptor pattern
// over an externally supplied, sorted iteration of Morton-coded point
// terms: a cheap range-seek phase followed by an exact per-candidate
// test. Callers own the actual term iteration (a B-tree cursor, a
// posting list, whatever backs the inverted index); termenum only
// decides where to seek to and whether to accept what it finds there.
//
// The bbox phase is grounded on the teacher's overlaps.go interval/bit
// arithmetic; the distance phase's haversine refinement borrows its
// earth-radius and angle constants from isbang-h3go's constants.go.
package termenum

import (
	"math"

	"github.com/bits-and-blooms/bitset"

	"github.com/quadterm/geoidx/bitcode"
	"github.com/quadterm/geoidx/geohash"
	"github.com/quadterm/geoidx/quadgeo"
)

// earthRadiusKM is the WGS84 authalic mean radius, the same constant
// isbang-h3go's constants.go carries as EARTH_RADIUS_KM for its own
// great-circle distance math.
const earthRadiusKM = 6371.007180918475

// Acceptor is the contract a caller's term-iteration loop drives: seek
// to SeekMin, then for each candidate term in ascending order call
// Accept until it returns stop=true or the candidate exceeds SeekMax.
type Acceptor interface {
	SeekMin() uint64
	SeekMax() uint64
	// Accept reports whether term passes this filter's exact test, and
	// whether the caller may stop scanning (term has moved past
	// SeekMax for every remaining sub-range).
	Accept(term uint64) (accept bool, stop bool)
}

// BBoxFilter accepts Morton-coded point terms whose decoded (lon, lat)
// falls inside a rectangle. Its seek range is the coarse interval
// between the Morton codes of the rectangle's SW and NE corners: a
// conservative bound, not an exact one, since the Z-order curve does
// not map a 2D rectangle onto a single contiguous 1D range — Accept's
// exact per-point decode-and-contains test is what actually enforces
// correctness; the seek range only skips the part of the iteration
// that provably cannot contain a match.
type BBoxFilter struct {
	rect     quadgeo.Rectangle
	minTerm  uint64
	maxTerm  uint64
}

// NewBBoxFilter builds a filter for rect. If rect crosses the
// antimeridian (MinLon > MaxLon), split it into two BBoxFilters first
// via SplitDateline and OR their results — NewBBoxFilter itself assumes
// a non-crossing rectangle and panics otherwise, since a single Morton
// range cannot represent a wrapped interval.
func NewBBoxFilter(rect quadgeo.Rectangle) *BBoxFilter {
	if rect.MinLon > rect.MaxLon {
		panic("termenum: BBoxFilter rectangle crosses the antimeridian; use SplitDateline first")
	}
	// MortonEncode wraps lon 180 and lat 90 to the bottom of their
	// ranges; clamp the upper corner just inside them so SeekMax stays an
	// upper bound for rectangles that reach either edge.
	maxLon := math.Min(rect.MaxLon, math.Nextafter(quadgeo.WorldMaxLon, 0))
	maxLat := math.Min(rect.MaxLat, math.Nextafter(quadgeo.WorldMaxLat, 0))
	return &BBoxFilter{
		rect:    rect,
		minTerm: bitcode.MortonEncode(rect.MinLon, rect.MinLat),
		maxTerm: bitcode.MortonEncode(maxLon, maxLat),
	}
}

func (f *BBoxFilter) SeekMin() uint64 { return f.minTerm }
func (f *BBoxFilter) SeekMax() uint64 { return f.maxTerm }

// Accept decodes term's point and tests exact containment in the
// rectangle, per the lower-left rule (Rectangle.Contains). It never
// signals stop: stopping once a term passes SeekMax is left to the
// caller, per the Acceptor contract.
func (f *BBoxFilter) Accept(term uint64) (accept bool, stop bool) {
	lon, lat := bitcode.MortonDecode(term)
	return f.rect.Contains(lon, lat), false
}

// SplitDateline returns the two non-crossing rectangles that together
// cover rect when rect's [MinLon, MaxLon) interval wraps past ±180°
// (MinLon > MaxLon signals a wrapped rectangle by convention), or rect
// alone, unsplit, when it does not cross.
func SplitDateline(rect quadgeo.Rectangle) []quadgeo.Rectangle {
	if rect.MinLon <= rect.MaxLon {
		return []quadgeo.Rectangle{rect}
	}
	return []quadgeo.Rectangle{
		{MinLon: rect.MinLon, MinLat: rect.MinLat, MaxLon: quadgeo.WorldMaxLon, MaxLat: rect.MaxLat},
		{MinLon: quadgeo.WorldMinLon, MinLat: rect.MinLat, MaxLon: rect.MaxLon, MaxLat: rect.MaxLat},
	}
}

// OrFilters combines several Acceptors as a logical OR: a candidate
// term is accepted if any sub-filter accepts it. Its seek range spans
// the union's outer bound; stop is only signaled once every sub-filter
// has signaled stop for the given term.
type OrFilters struct {
	filters []Acceptor
	min     uint64
	max     uint64
}

// NewOrFilters builds an OR-combinator over filters, which must be
// non-empty. Its SeekMin/SeekMax span the tightest outer bound across
// all sub-filters, used by a caller that wants a single range-seek
// covering every branch of the OR before dispatching per-term Accept
// calls to whichever sub-filters are still live.
func NewOrFilters(filters ...Acceptor) *OrFilters {
	if len(filters) == 0 {
		panic("termenum: NewOrFilters requires at least one filter")
	}
	o := &OrFilters{filters: filters, min: filters[0].SeekMin(), max: filters[0].SeekMax()}
	for _, f := range filters[1:] {
		if f.SeekMin() < o.min {
			o.min = f.SeekMin()
		}
		if f.SeekMax() > o.max {
			o.max = f.SeekMax()
		}
	}
	return o
}

func (o *OrFilters) SeekMin() uint64 { return o.min }
func (o *OrFilters) SeekMax() uint64 { return o.max }

func (o *OrFilters) Accept(term uint64) (accept bool, stop bool) {
	stop = true
	for _, f := range o.filters {
		a, s := f.Accept(term)
		if a {
			accept = true
		}
		if !s {
			stop = false
		}
	}
	return accept, stop
}

// DistanceFilter accepts Morton-coded point terms within radiusMeters
// of (centerLon, centerLat), great-circle distance. Phase 2 (cell
// test) is a coarse bounding-box prefilter; phase 3 (point refinement)
// is the exact haversine test.
type DistanceFilter struct {
	centerLon, centerLat float64
	radiusMeters         float64
	bbox                 *BBoxFilter
}

// NewDistanceFilter builds the coarse bounding box (a flat-earth degree
// expansion of radiusMeters around the center, generous enough to never
// under-cover the true circle) and wraps it for the exact haversine
// test in Accept. When the coarse box would cross the antimeridian,
// call NewDistanceFilters instead to get the dateline-split pair.
func NewDistanceFilter(centerLon, centerLat, radiusMeters float64) *DistanceFilter {
	const metersPerDegreeLat = 111320.0
	dLat := radiusMeters / metersPerDegreeLat
	cosLat := math.Cos(centerLat * math.Pi / 180.0)
	if cosLat < 0.01 {
		cosLat = 0.01 // near the poles, avoid an unbounded longitude span
	}
	dLon := radiusMeters / (metersPerDegreeLat * cosLat)

	rect := quadgeo.Rectangle{
		MinLon: centerLon - dLon,
		MinLat: math.Max(centerLat-dLat, quadgeo.WorldMinLat),
		MaxLon: centerLon + dLon,
		MaxLat: math.Min(centerLat+dLat, quadgeo.WorldMaxLat),
	}
	return &DistanceFilter{
		centerLon:    centerLon,
		centerLat:    centerLat,
		radiusMeters: radiusMeters,
		bbox:         NewBBoxFilter(clampLon(rect)),
	}
}

func clampLon(r quadgeo.Rectangle) quadgeo.Rectangle {
	if r.MinLon < quadgeo.WorldMinLon {
		r.MinLon = quadgeo.WorldMinLon
	}
	if r.MaxLon > quadgeo.WorldMaxLon {
		r.MaxLon = quadgeo.WorldMaxLon
	}
	return r
}

// NewDistanceFilters is NewDistanceFilter's dateline-aware form: when
// the coarse box would cross ±180°, it returns the two
// antimeridian-split sub-filters OR-combined, per the spec's "bounding
// box splits into two subqueries OR-combined" rule; otherwise it
// returns a single-element OR wrapping the one filter, so callers can
// always go through the same OrFilters-shaped API.
func NewDistanceFilters(centerLon, centerLat, radiusMeters float64) *OrFilters {
	const metersPerDegreeLat = 111320.0
	dLat := radiusMeters / metersPerDegreeLat
	cosLat := math.Cos(centerLat * math.Pi / 180.0)
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	dLon := radiusMeters / (metersPerDegreeLat * cosLat)

	raw := quadgeo.Rectangle{
		MinLon: centerLon - dLon,
		MinLat: math.Max(centerLat-dLat, quadgeo.WorldMinLat),
		MaxLon: centerLon + dLon,
		MaxLat: math.Min(centerLat+dLat, quadgeo.WorldMaxLat),
	}

	if raw.MinLon >= quadgeo.WorldMinLon && raw.MaxLon <= quadgeo.WorldMaxLon {
		return NewOrFilters(&DistanceFilter{centerLon: centerLon, centerLat: centerLat, radiusMeters: radiusMeters, bbox: NewBBoxFilter(raw)})
	}

	// Recast the overflowing box as a MinLon > MaxLon "crossing"
	// rectangle in the -180..180 convention SplitDateline expects, by
	// wrapping only the edge that overflowed.
	crossing := raw
	switch {
	case raw.MaxLon > quadgeo.WorldMaxLon:
		crossing.MaxLon = raw.MaxLon - 360.0
	case raw.MinLon < quadgeo.WorldMinLon:
		crossing.MinLon = raw.MinLon + 360.0
	}
	parts := SplitDateline(crossing)

	filters := make([]Acceptor, 0, len(parts))
	for _, p := range parts {
		filters = append(filters, &DistanceFilter{centerLon: centerLon, centerLat: centerLat, radiusMeters: radiusMeters, bbox: NewBBoxFilter(p)})
	}
	return NewOrFilters(filters...)
}

func (f *DistanceFilter) SeekMin() uint64 { return f.bbox.SeekMin() }
func (f *DistanceFilter) SeekMax() uint64 { return f.bbox.SeekMax() }

func (f *DistanceFilter) Accept(term uint64) (accept bool, stop bool) {
	coarseAccept, stop := f.bbox.Accept(term)
	if !coarseAccept {
		return false, stop
	}
	lon, lat := bitcode.MortonDecode(term)
	return haversineMeters(f.centerLat, f.centerLon, lat, lon) <= f.radiusMeters, stop
}

// haversineMeters is the great-circle distance between two (lat, lon)
// points in meters, using earthRadiusKM as the sphere radius.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const d2r = math.Pi / 180.0
	phi1, phi2 := lat1*d2r, lat2*d2r
	dPhi := (lat2 - lat1) * d2r
	dLambda := (lon2 - lon1) * d2r

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * 1000 * c
}

// DedupeCoarseCells removes hashes that decode to an identical packed
// form, a case that arises at the poles where geohash.Neighbors folds
// two or more compass directions onto the same clamped cell. It
// tracks which earlier positions survived with a bitset rather than a
// map, the way the teacher's overlaps.go tracks sparse child/prefix
// presence with childrenBitset/prefixesBitset instead of a map — here
// over the handful of candidates geohash.Expand produces rather than
// a 256-wide stride.
func DedupeCoarseCells(hashes []string) []string {
	kept := bitset.New(uint(len(hashes)))
	packed := make([]uint64, len(hashes))
	for i, h := range hashes {
		p, err := geohash.LongEncodeFromString(h)
		if err != nil {
			continue
		}
		packed[i] = p
		dup := false
		for j := uint(0); j < uint(i); j++ {
			if kept.Test(j) && packed[j] == p {
				dup = true
				break
			}
		}
		if !dup {
			kept.Set(uint(i))
		}
	}
	out := make([]string, 0, len(hashes))
	for i, h := range hashes {
		if kept.Test(uint(i)) {
			out = append(out, h)
		}
	}
	return out
}
