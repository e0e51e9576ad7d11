package geoidx

import (
	"errors"
	"fmt"
)

// ErrEndOfIteration is returned by a Next/next()-style call after the
// iterator has been fully drained. It is an explicit end-of-sequence
// signal, not an exceptional error: callers should check for it the way
// they check io.EOF.
var ErrEndOfIteration = errors.New("geoidx: end of iteration")

// ErrInvalidConfiguration reports an unknown tree/strategy name or a
// tree_levels value out of range for the selected tree.
type ErrInvalidConfiguration struct {
	Reason string
}

func (e *ErrInvalidConfiguration) Error() string {
	return fmt.Sprintf("geoidx: invalid configuration: %s", e.Reason)
}

// ErrInvalidShape is surfaced from a ShapeRelationOracle when the query
// geometry fails its validity rules (self-intersection on a
// non-self-intersecting type, an unclosed ring, and similar). It is
// fatal to the iteration that produced it: the core does not attempt to
// recover a partial cover from a shape it could not relate.
type ErrInvalidShape struct {
	Reason string
}

func (e *ErrInvalidShape) Error() string {
	return fmt.Sprintf("geoidx: invalid shape: %s", e.Reason)
}

// InvariantViolation is the panic payload used for a corrupted term: one
// with no sentinel bit set, or that decodes to a level the tree could
// never have produced. It is unrecoverable by design — the core's own
// arithmetic never produces such a term, so seeing one means the caller
// handed in a token it did not get from this package.
type InvariantViolation struct {
	Term   uint64
	Reason string
}

func (e InvariantViolation) Error() string {
	return fmt.Sprintf("geoidx: invariant violation on term %#x: %s", e.Term, e.Reason)
}

// ErrPrecisionExhausted is not returned to callers: per the spec,
// attempting to descend past a tree's max depth is silently treated as
// a forced leaf. It exists only so tests can assert that the forced-leaf
// path fired, by checking errors.As against it where a package chooses
// to record the condition rather than just acting on it silently.
type ErrPrecisionExhausted struct {
	Level, MaxLevel int
}

func (e *ErrPrecisionExhausted) Error() string {
	return fmt.Sprintf("geoidx: precision exhausted at level %d (max %d)", e.Level, e.MaxLevel)
}
