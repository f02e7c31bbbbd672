//go:build !counters_enablepadding

package counters

import "sync/atomic"

// enablePadding is true, each counter will be padded to align with a cache line,
// This can mitigate false sharing between hot counters bound next to each other.
// If turned on, every counter occupies a full cache line.
// By default, it is turned off.
const enablePadding = false

type counter struct {
	key   Key
	start uint16
	n     atomic.Uint32 // low 16 bits are the counter value
}
