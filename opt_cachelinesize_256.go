//go:build counters_opt_cachelinesize_256

package counters

// CacheLineSize is fixed by the counters_opt_cachelinesize_256 build tag.
const CacheLineSize uintptr = 256
