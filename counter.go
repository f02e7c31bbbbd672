package counters

import "sync/atomic"

// cell is a single-assignment slot. It is either empty (nil) or points to
// a fully constructed counter that never changes its key.
type cell = atomic.Pointer[counter]

func newCounter(key *Key, start uint16) *counter {
	c := &counter{key: *key, start: start}
	c.n.Store(uint32(start))
	return c
}

// getOrBind returns the counter bound to the slot, binding a new counter
// for (key, start) if the slot is still empty. Among concurrent binders
// exactly one CAS succeeds; the others drop their candidate and return
// the winner.
func getOrBind(slot *cell, key *Key, start uint16) *counter {
	if c := slot.Load(); c != nil {
		return c
	}
	c := newCounter(key, start)
	if slot.CompareAndSwap(nil, c) {
		return c
	}
	return slot.Load()
}

// fetchAdd adds one and returns the previous value. The value wraps
// around at 1<<16.
//
//go:nosplit
func (c *counter) fetchAdd() uint16 {
	return uint16(c.n.Add(1) - 1)
}

//go:nosplit
func (c *counter) load() uint16 {
	return uint16(c.n.Load())
}

// increments returns how many times fetchAdd has been applied.
func (c *counter) increments() uint64 {
	return uint64(c.n.Load() - uint32(c.start))
}
