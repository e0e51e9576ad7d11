// Package geohash implements the base-32 geohash codec: (lat, lon,
// precision) <-> string <-> packed 64-bit form, plus the geohash cell
// envelope and precision-to-level lookup used by the geohash prefix tree
// and by point-distance term enumeration.
//
// The interleave/deinterleave step is built on bitcode.Widen/Unwiden, the
// same bit-spread cascade the packed quad tree uses for Morton codes;
// geohash quantizes each axis to the full 32 bits before spreading
// (rather than bitcode's 31-bit Morton quantization) so that a
// precision-12 hash (60 interleaved bits) retains the resolution real
// geohash implementations provide.
package geohash

import (
	"fmt"
	"math"

	"github.com/quadterm/geoidx/bitcode"
)

const (
	base32 = "0123456789bcdefghjkmnpqrstuvwxyz"

	// PrecisionMin and PrecisionMax bound the string length (and, times
	// 5, the bit length) of a geohash.
	PrecisionMin = 1
	PrecisionMax = 12

	latMax = 90.0
	lonMax = 180.0
)

var base32Index [256]int8

func init() {
	for i := range base32Index {
		base32Index[i] = -1
	}
	for i := 0; i < len(base32); i++ {
		base32Index[base32[i]] = int8(i)
	}
}

func clampPrecision(p int) int {
	switch {
	case p < PrecisionMin:
		return PrecisionMin
	case p > PrecisionMax:
		return PrecisionMax
	default:
		return p
	}
}

// quantizeAxis maps x in [-r, r) onto a full 32-bit unsigned fraction of
// the 2r range, clamping x >= r to just below r (how the encoder handles
// lat=90); interleave60 wraps lon=180 to -180 before calling it.
func quantizeAxis(x, r float64) uint32 {
	if x >= r {
		x = math.Nextafter(r, -r)
	}
	return uint32(math.Floor(math.Exp2(32) * (x + r) / (2 * r)))
}

func dequantizeAxis(q uint32, r float64) float64 {
	p := float64(q) / math.Exp2(32)
	return 2*r*p - r
}

// interleave60 returns the 60 most significant bits of the full
// interleave of lat/lon, with longitude's top bit as the overall MSB
// (matching the public geohash convention of splitting on longitude
// first).
func interleave60(lat, lon float64) uint64 {
	if lon >= lonMax {
		lon -= 2 * lonMax
	}
	latQ := quantizeAxis(lat, latMax)
	lonQ := quantizeAxis(lon, lonMax)
	full := bitcode.Widen(latQ) | (bitcode.Widen(lonQ) << 1)
	return full >> 4
}

func deinterleave60(hash60 uint64) (lat, lon float64) {
	full := hash60 << 4
	latQ := bitcode.Unwiden(full)
	lonQ := bitcode.Unwiden(full >> 1)
	return dequantizeAxis(latQ, latMax), dequantizeAxis(lonQ, lonMax)
}

// StringEncode returns the base-32 geohash of (lat, lon) at the given
// character precision (1..12, clamped).
func StringEncode(lat, lon float64, precision int) string {
	precision = clampPrecision(precision)
	hash60 := interleave60(lat, lon)
	bits := precision * 5
	// hash60 holds 60 significant bits MSB-aligned; keep the top `bits`.
	hash := hash60 >> (60 - bits)
	return stringFromBits(hash, precision)
}

func stringFromBits(hash uint64, precision int) string {
	b := make([]byte, precision)
	for i := precision - 1; i >= 0; i-- {
		b[i] = base32[hash&0x1f]
		hash >>= 5
	}
	return string(b)
}

// LongEncode packs (lat, lon, precision) as (60-bit interleaved hash << 4)
// | precision, keeping only the top precision*5 hash bits so the result
// equals LongEncodeFromString(StringEncode(lat, lon, precision)).
func LongEncode(lat, lon float64, precision int) uint64 {
	precision = clampPrecision(precision)
	drop := uint(60 - precision*5)
	hash60 := (interleave60(lat, lon) >> drop) << drop
	return (hash60 << 4) | uint64(precision)
}

// StringEncodeFromLong converts a packed form (as produced by LongEncode)
// back to its base-32 string.
func StringEncodeFromLong(packed uint64) string {
	precision := int(packed & 0xF)
	if precision < PrecisionMin {
		precision = PrecisionMin
	}
	if precision > PrecisionMax {
		precision = PrecisionMax
	}
	hash60 := packed >> 4
	bits := precision * 5
	hash := hash60 >> (60 - bits)
	return stringFromBits(hash, precision)
}

// LongEncodeFromString is the inverse of StringEncodeFromLong: it parses a
// base-32 geohash string back into its packed 64-bit form. It returns an
// error if s contains a character outside the base-32 alphabet or exceeds
// PrecisionMax.
func LongEncodeFromString(s string) (uint64, error) {
	if len(s) == 0 || len(s) > PrecisionMax {
		return 0, fmt.Errorf("geohash: invalid length %d (want 1..%d)", len(s), PrecisionMax)
	}
	var hash uint64
	for i := 0; i < len(s); i++ {
		idx := base32Index[s[i]]
		if idx < 0 {
			return 0, fmt.Errorf("geohash: invalid character %q in %q", s[i], s)
		}
		hash = (hash << 5) | uint64(idx)
	}
	precision := len(s)
	hash60 := hash << (60 - precision*5)
	return (hash60 << 4) | uint64(precision), nil
}

// Decode returns the estimated center (lat, lon) of hash and the half-width
// error bounds of the decode on each axis.
func Decode(hash string) (lat, lon, latErr, lonErr float64, err error) {
	packed, err := LongEncodeFromString(hash)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	minLon, minLat, maxLon, maxLat := BBoxOf(hash)
	_ = packed
	lat = (minLat + maxLat) / 2
	lon = (minLon + maxLon) / 2
	latErr = (maxLat - minLat) / 2
	lonErr = (maxLon - minLon) / 2
	return lat, lon, latErr, lonErr, nil
}

// BBoxOf returns the geohash cell envelope (minLon, minLat, maxLon,
// maxLat) of hash, computed by walking its bits through successive
// lon/lat bisection exactly as the encoder would have produced it.
func BBoxOf(hash string) (minLon, minLat, maxLon, maxLat float64) {
	minLon, maxLon = -lonMax, lonMax
	minLat, maxLat = -latMax, latMax
	even := true

	for i := 0; i < len(hash); i++ {
		idx := base32Index[hash[i]]
		if idx < 0 {
			continue
		}
		for bit := 4; bit >= 0; bit-- {
			b := (idx >> uint(bit)) & 1
			if even {
				mid := (minLon + maxLon) / 2
				if b == 1 {
					minLon = mid
				} else {
					maxLon = mid
				}
			} else {
				mid := (minLat + maxLat) / 2
				if b == 1 {
					minLat = mid
				} else {
					maxLat = mid
				}
			}
			even = !even
		}
	}
	return minLon, minLat, maxLon, maxLat
}

// precisionDiagMeters[i] is the cached cell diagonal, in meters, of a
// geohash of character precision i+1. Unlike the quad tree (whose max
// depth is chosen per tree), geohash precision always ranges 1..12, so
// this table is precomputed exactly once at package init rather than
// rebuilt per call to LevelsForPrecision.
var precisionDiagMeters [PrecisionMax]float64

func init() {
	for p := PrecisionMin; p <= PrecisionMax; p++ {
		precisionDiagMeters[p-1] = geohashDiagonalMeters(p)
	}
}

// LevelsForPrecision returns the smallest geohash character precision
// whose cell diagonal is at most meters, i.e. the shortest (coarsest)
// geohash precision that still satisfies the requested resolution, or
// PrecisionMax if none does. It
// reads from the package's precomputed precisionDiagMeters table rather
// than recomputing each precision's diagonal on every call.
func LevelsForPrecision(meters float64) int {
	for p := PrecisionMin; p <= PrecisionMax; p++ {
		if precisionDiagMeters[p-1] <= meters {
			return p
		}
	}
	return PrecisionMax
}

func geohashDiagonalMeters(precision int) float64 {
	bits := precision * 5
	lonBits := (bits + 1) / 2
	latBits := bits / 2
	lonWidthDeg := 360.0 / math.Exp2(float64(lonBits))
	latHeightDeg := 180.0 / math.Exp2(float64(latBits))
	const metersPerDegree = 111320.0
	w := lonWidthDeg * metersPerDegree
	h := latHeightDeg * metersPerDegree
	return math.Hypot(w, h)
}

// Neighbors returns the 8 geohash cells adjacent to hash, ordered N, NE,
// E, SE, S, SW, W, NW.
func Neighbors(hash string) [8]string {
	minLon, minLat, maxLon, maxLat := BBoxOf(hash)
	dLon := maxLon - minLon
	dLat := maxLat - minLat
	cLon := (minLon + maxLon) / 2
	cLat := (minLat + maxLat) / 2
	precision := len(hash)

	wrap := func(lon float64) float64 {
		for lon < -lonMax {
			lon += 2 * lonMax
		}
		for lon >= lonMax {
			lon -= 2 * lonMax
		}
		return lon
	}
	clampLat := func(lat float64) float64 {
		if lat > latMax {
			return math.Nextafter(latMax, -latMax)
		}
		if lat < -latMax {
			return -latMax
		}
		return lat
	}

	offsets := [8][2]float64{
		{0, dLat},   // N
		{dLon, dLat}, // NE
		{dLon, 0},   // E
		{dLon, -dLat}, // SE
		{0, -dLat},  // S
		{-dLon, -dLat}, // SW
		{-dLon, 0},  // W
		{-dLon, dLat}, // NW
	}

	var out [8]string
	for i, off := range offsets {
		out[i] = StringEncode(clampLat(cLat+off[1]), wrap(cLon+off[0]), precision)
	}
	return out
}

// Expand returns hash together with its 8 neighbors, used as a coarse
// candidate set by the distance TermEnum filter before point refinement.
func Expand(hash string) []string {
	neighbors := Neighbors(hash)
	out := make([]string, 0, 9)
	out = append(out, hash)
	out = append(out, neighbors[:]...)
	return out
}
