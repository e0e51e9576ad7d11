package geoidx

import (
	"fmt"

	"github.com/quadterm/geoidx/geohash"
	"github.com/quadterm/geoidx/quadgeo"
)

// TreeKind selects which prefix tree backs the index.
type TreeKind uint8

const (
	TreeQuad TreeKind = iota
	TreeGeohash
)

func (k TreeKind) String() string {
	if k == TreeGeohash {
		return "geohash"
	}
	return "quadtree"
}

// Strategy selects which iterator a query instantiates over the tree.
type Strategy uint8

const (
	// StrategyTerm emits exactly the leaf tokens of a pre-indexed shape.
	StrategyTerm Strategy = iota
	// StrategyRecursive explores sub-cells from an explicit stack.
	StrategyRecursive
	// StrategyStreaming is the pull-driven cursor iterator in package
	// stream; it never materializes more than one cursor cell.
	StrategyStreaming
)

func (s Strategy) String() string {
	switch s {
	case StrategyRecursive:
		return "recursive"
	case StrategyStreaming:
		return "streaming"
	default:
		return "term"
	}
}

// Orientation is the polygon winding interpretation passed through to the
// external shape parser; geoidx itself never inspects it.
type Orientation uint8

const (
	OrientationRight Orientation = iota // counter-clockwise
	OrientationLeft                     // clockwise
)

const (
	maxGeohashLevels = 24
	defaultLevels    = 11
)

// Config holds the resolved, validated settings an index or query
// builder needs to pick a tree, a strategy, and a max depth. Build one
// with NewConfig rather than filling the struct by hand, so
// PrecisionMeters gets resolved into TreeLevels consistently.
type Config struct {
	Tree             TreeKind
	Strategy         Strategy
	TreeLevels       int
	PrecisionMeters  float64
	DistanceErrorPct float64
	Orientation      Orientation
}

// DefaultConfig returns a quadtree/streaming configuration with a
// reasonable default depth and no distance slop.
func DefaultConfig() Config {
	return Config{
		Tree:             TreeQuad,
		Strategy:         StrategyStreaming,
		TreeLevels:       defaultLevels,
		DistanceErrorPct: 0,
		Orientation:      OrientationRight,
	}
}

// ConfigOption mutates a Config under construction, in the teacher
// pack's functional-options style (see
// beetlebugorg-s57/pkg/v1/options.go's ParseOptions for the pattern this
// generalizes).
type ConfigOption func(*Config)

func WithTree(k TreeKind) ConfigOption { return func(c *Config) { c.Tree = k } }

func WithStrategy(s Strategy) ConfigOption { return func(c *Config) { c.Strategy = s } }

func WithTreeLevels(levels int) ConfigOption { return func(c *Config) { c.TreeLevels = levels } }

func WithPrecisionMeters(meters float64) ConfigOption {
	return func(c *Config) { c.PrecisionMeters = meters }
}

func WithDistanceErrorPct(pct float64) ConfigOption {
	return func(c *Config) { c.DistanceErrorPct = pct }
}

func WithOrientation(o Orientation) ConfigOption { return func(c *Config) { c.Orientation = o } }

// NewConfig builds a Config from DefaultConfig plus opts, validates it,
// and resolves PrecisionMeters into TreeLevels when set (precision wins
// over an explicit TreeLevels, matching the context-factory resolution
// order in the original implementation this core was distilled from).
func NewConfig(opts ...ConfigOption) (Config, error) {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}

	if c.DistanceErrorPct < 0 || c.DistanceErrorPct > 0.5 {
		return Config{}, &ErrInvalidConfiguration{
			Reason: fmt.Sprintf("distance_error_pct %v outside [0, 0.5]", c.DistanceErrorPct),
		}
	}

	maxLevels := quadgeo.MaxLevels
	if c.Tree == TreeGeohash {
		maxLevels = maxGeohashLevels
	}

	if c.PrecisionMeters > 0 {
		if c.Tree == TreeGeohash {
			c.TreeLevels = geohash.LevelsForPrecision(c.PrecisionMeters)
		} else {
			c.TreeLevels = levelsForPrecisionQuad(c.PrecisionMeters, maxLevels)
		}
	}

	if c.TreeLevels < 1 || c.TreeLevels > maxLevels {
		return Config{}, &ErrInvalidConfiguration{
			Reason: fmt.Sprintf("tree_levels %d outside 1..%d for %s", c.TreeLevels, maxLevels, c.Tree),
		}
	}

	return c, nil
}

// levelsForPrecisionQuad returns the smallest quadtree level whose cell
// diagonal is at most meters, the quadtree analogue of
// geohash.LevelsForPrecision. Each call builds a Geometry and a
// PrecisionTable for maxLevels and resolves the lookup against that
// table.
func levelsForPrecisionQuad(meters float64, maxLevels int) int {
	geo := quadgeo.NewGeometry(maxLevels)
	return quadgeo.NewPrecisionTable(geo).LevelForMeters(meters)
}
