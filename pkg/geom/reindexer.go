package geom

import "gonum.org/v1/gonum/spatial/r3"

// Reindexer interns 3D points into dense integer ids. Identity is
// decided at single precision: points that differ only below float32
// resolution map to the same id. This intentionally merges the
// near-duplicate vertices that upstream floating-point construction
// produces, instead of letting them explode the vertex pool.
//
// Ids are issued densely in first-seen order and never deleted.
// A Reindexer is not safe for concurrent writers.
type Reindexer struct {
	index  map[[3]float32]int
	values []r3.Vec
}

// NewReindexer returns an empty Reindexer.
func NewReindexer() *Reindexer {
	return &Reindexer{index: make(map[[3]float32]int)}
}

// Reserve pre-sizes the pool for n vertices to reduce reallocation
// and rehashing.
func (rx *Reindexer) Reserve(n int) {
	if rx.index == nil || len(rx.index) == 0 {
		rx.index = make(map[[3]float32]int, n)
	}
	if cap(rx.values) < n {
		values := make([]r3.Vec, len(rx.values), n)
		copy(values, rx.values)
		rx.values = values
	}
}

// Lookup returns the id for v, interning it on first sight. The stored
// value keeps the full double-precision coordinates of the first point
// seen for each reduced-precision identity.
func (rx *Reindexer) Lookup(v r3.Vec) int {
	if rx.index == nil {
		rx.index = make(map[[3]float32]int)
	}
	key := [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
	if i, ok := rx.index[key]; ok {
		return i
	}
	i := len(rx.values)
	rx.index[key] = i
	rx.values = append(rx.values, v)
	return i
}

// Len returns the number of distinct ids issued.
func (rx *Reindexer) Len() int { return len(rx.values) }

// Array returns the dense interned point array. The slice is owned by
// the Reindexer; callers must not mutate it.
func (rx *Reindexer) Array() []r3.Vec { return rx.values }
