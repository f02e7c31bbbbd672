// Package counters hands out sequence numbers for compound keys to any
// number of concurrent callers.
//
// Every (namespace, id) pair owns an independent 16-bit counter. The first
// call for a key starts the counter at the requested value; every call
// returns the value before its own increment, so callers can decide things
// like "am I the first registrant for this key?" without any coordination
// other than this package.
//
// Counters are kept in a chain of fixed-size blocks. A block holds
// CountersPerBlock slots and a pointer to the next block, which is created
// the first time a key does not fit. Slots and next pointers are published
// with a single compare-and-swap, so no caller ever waits on a lock, and
// the chain only grows: keys are never removed.
package counters

import (
	"sync/atomic"
	"unsafe"
)

// Counters is a registry of counters keyed by Key.
// It is safe for concurrent use by multiple goroutines.
//
// The zero Counters is empty and ready to use.
// It must not be copied after first use.
type Counters struct {
	head       block
	namespacer Namespacer
}

// block is one link of the chain.
type block struct {
	//lint:ignore U1000 prevents false sharing
	pad [(CacheLineSize - unsafe.Sizeof(struct {
		slots [CountersPerBlock]unsafe.Pointer
		next  unsafe.Pointer
	}{})%CacheLineSize) % CacheLineSize]byte

	slots [CountersPerBlock]cell // bound in index order
	next  atomic.Pointer[block]  // set once, after every slot is bound
}

// Config defines configurable Counters options.
type Config struct {
	namespacer Namespacer
}

// WithNamespacer sets how FetchAdd and Register resolve the caller's
// namespace. The default reads the NamespaceEnv environment variable.
func WithNamespacer(n Namespacer) func(*Config) {
	return func(c *Config) {
		c.namespacer = n
	}
}

// New creates a new Counters instance. Direct initialization is also supported.
func New(options ...func(*Config)) *Counters {
	var cfg Config
	for _, o := range options {
		o(&cfg)
	}
	return &Counters{namespacer: cfg.namespacer}
}

// FetchAddKey adds one to the counter for key and returns the previous
// value. If the key has never been seen, its counter starts at start, so
// the first call returns start.
//
// FetchAddKey never blocks: it walks a bounded number of blocks, binding
// at most one slot and publishing at most one new block.
func (c *Counters) FetchAddKey(key Key, start uint16) uint16 {
	for b := &c.head; ; b = b.nextBlock() {
		if ctr := b.find(&key, start); ctr != nil {
			return ctr.fetchAdd()
		}
	}
}

// FetchAddIn is FetchAddKey for Key{namespace, id}.
func (c *Counters) FetchAddIn(namespace, id string, start uint16) uint16 {
	return c.FetchAddKey(Key{Namespace: namespace, ID: id}, start)
}

// FetchAdd resolves the caller's namespace and then behaves like
// FetchAddIn. If the namespace cannot be resolved, the registry is left
// untouched and a *NamespaceError is returned.
func (c *Counters) FetchAdd(id string, start uint16) (uint16, error) {
	ns, err := c.resolveNamespace()
	if err != nil {
		return 0, err
	}
	return c.FetchAddIn(ns, id, start), nil
}

// Load returns the current value of the counter for key without binding
// it. The ok result is false if the key has never been used.
func (c *Counters) Load(key Key) (value uint16, ok bool) {
	for b := &c.head; b != nil; b = b.next.Load() {
		for i := range b.slots {
			ctr := b.slots[i].Load()
			if ctr == nil {
				// Slots are bound in order and the next block only exists
				// once this one is full.
				return 0, false
			}
			if ctr.key == key {
				return ctr.load(), true
			}
		}
	}
	return 0, false
}

func (c *Counters) resolveNamespace() (string, error) {
	if c.namespacer != nil {
		return c.namespacer.Namespace()
	}
	return EnvNamespace{}.Namespace()
}

// find scans the block in index order, binding the first empty slot to
// key. It returns nil if every slot is bound to another key.
func (b *block) find(key *Key, start uint16) *counter {
	for i := range b.slots {
		if ctr := getOrBind(&b.slots[i], key, start); ctr.key == *key {
			return ctr
		}
	}
	return nil
}

// nextBlock returns the next block, publishing an empty one if there is
// none yet. All racers observe the same block.
func (b *block) nextBlock() *block {
	if next := b.next.Load(); next != nil {
		return next
	}
	next := new(block)
	if b.next.CompareAndSwap(nil, next) {
		return next
	}
	return b.next.Load()
}
