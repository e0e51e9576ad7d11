package pqt

import (
	"sync"
	"sync/atomic"
)

// TokenPool is a type-safe wrapper around sync.Pool specialized for
// *[8]byte scratch buffers, adapted from the teacher's node pool
// (pool.go in the root of this repository's history): same
// Get/Put/Stats shape, generalized from *node[V] to a fixed-size byte
// array since cells have no per-instance heap state to reuse beyond the
// token bytes themselves.
//
// Use of a pool is optional: TokenBytesWithLeaf/TokenBytesNoLeaf already
// return a plain [8]byte value with no pool involved. TokenPool exists
// for callers that want to hand a *[8]byte down to a write path (e.g. an
// index writer's io.Writer) without allocating one per Next() call; the
// returned buffer is only valid until the next Put of that same buffer,
// matching the spec's scratch-buffer lifecycle rule.
type TokenPool struct {
	sync.Pool

	totalAllocated atomic.Int64
	currentLive    atomic.Int64
}

// NewTokenPool creates a pool of reusable 8-byte token scratch buffers.
func NewTokenPool() *TokenPool {
	p := &TokenPool{}
	p.New = func() any {
		p.totalAllocated.Add(1)
		return new([8]byte)
	}
	return p
}

// Get returns a scratch buffer from the pool, or a new one if the pool
// is nil.
func (p *TokenPool) Get() *[8]byte {
	if p == nil {
		return new([8]byte)
	}
	p.currentLive.Add(1)
	return p.Pool.Get().(*[8]byte)
}

// Put returns buf to the pool for reuse. If the pool is nil, buf is
// discarded.
func (p *TokenPool) Put(buf *[8]byte) {
	if p == nil {
		return
	}
	p.currentLive.Add(-1)
	*buf = [8]byte{}
	p.Pool.Put(buf)
}

// Stats returns the number of currently checked-out buffers and the
// total ever allocated, useful for tuning pool reuse in tests and
// benchmarks.
func (p *TokenPool) Stats() (live, total int64) {
	if p == nil {
		return 0, 0
	}
	return p.currentLive.Load(), p.totalAllocated.Load()
}

// PutToken encodes term (big-endian, leaf bit as-is) into a pooled
// buffer and returns it. Callers must Put it back when done.
func (p *TokenPool) PutToken(term uint64) *[8]byte {
	buf := p.Get()
	*buf = TokenBytes(term)
	return buf
}
