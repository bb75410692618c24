// Package pool provides type-safe object pooling for semtok's per-call
// scratch state. Encode calls allocate value pools on every invocation;
// recycling them through sync.Pool keeps the codec allocation-free on the
// steady state without sharing any logical state between calls (objects are
// reset before reuse). Envelope rows are never pooled: they escape into the
// returned envelope and outlive the call.
package pool

import (
	"sync"
	"sync/atomic"
)

// Pool represents a generic object pool with type safety.
// It wraps sync.Pool with reset-on-put semantics and hit/miss statistics.
// The pool is safe for concurrent use.
type Pool[T any] struct {
	pool  sync.Pool
	reset func(T)
	stats struct {
		hits   int64
		misses int64
	}
}

// New creates a new typed pool with custom allocation and reset functions.
// The reset function is called before an object is returned to the pool so
// a later Get never observes a previous call's state.
func New[T any](newFn func() T, reset func(T)) *Pool[T] {
	p := &Pool[T]{reset: reset}
	p.pool.New = func() interface{} {
		atomic.AddInt64(&p.stats.misses, 1)
		return newFn()
	}
	return p
}

// Get retrieves an object from the pool, allocating if empty.
func (p *Pool[T]) Get() T {
	atomic.AddInt64(&p.stats.hits, 1)
	return p.pool.Get().(T)
}

// Put returns an object to the pool after resetting it.
func (p *Pool[T]) Put(obj T) {
	if p.reset != nil {
		p.reset(obj)
	}
	p.pool.Put(obj)
}

// Stats returns the cumulative get count and the number of fresh allocations.
func (p *Pool[T]) Stats() (gets, allocs int64) {
	return atomic.LoadInt64(&p.stats.hits), atomic.LoadInt64(&p.stats.misses)
}

// Global pools for the codec's per-call scratch structures.

var stringSlicePool = New(
	func() *[]string {
		s := make([]string, 0, 256)
		return &s
	},
	func(s *[]string) { *s = (*s)[:0] },
)

// GetStringSlice retrieves a pooled string slice for value pooling.
func GetStringSlice() *[]string {
	return stringSlicePool.Get()
}

// PutStringSlice returns a string slice to the pool.
func PutStringSlice(s *[]string) {
	if cap(*s) > 64*1024 { // Don't pool very large slices
		return
	}
	stringSlicePool.Put(s)
}

