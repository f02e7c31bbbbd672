//go:build counters_enablepadding

package counters

import (
	"sync/atomic"
	"unsafe"
)

// enablePadding is true, each counter will be padded to align with a cache line,
// This can mitigate false sharing between hot counters bound next to each other.
// If turned on, every counter occupies a full cache line.
// By default, it is turned off.
const enablePadding = true

type counter struct {
	//lint:ignore U1000 prevents false sharing
	pad [(CacheLineSize - unsafe.Sizeof(struct {
		key   Key
		start uint16
		n     atomic.Uint32
	}{})%CacheLineSize) % CacheLineSize]byte

	key   Key
	start uint16
	n     atomic.Uint32 // low 16 bits are the counter value
}
