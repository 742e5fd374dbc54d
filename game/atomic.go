package game

import "sync/atomic"

// AtomicInt is a copyable counter whose mutations go through atomic fetch-add.
// A plain int64 field rather than an embedded atomic.Int64 keeps components
// carrying it ordinary value types in archetype columns; the only copies
// happen single-threaded at spawn time.
type AtomicInt struct {
	v int64
}

func (a *AtomicInt) Load() int64 {
	return atomic.LoadInt64(&a.v)
}

func (a *AtomicInt) Store(n int64) {
	atomic.StoreInt64(&a.v, n)
}

// Add atomically adds n and returns the previous value.
func (a *AtomicInt) Add(n int64) int64 {
	return atomic.AddInt64(&a.v, n) - n
}
