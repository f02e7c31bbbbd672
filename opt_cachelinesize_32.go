//go:build counters_opt_cachelinesize_32

package counters

// CacheLineSize is fixed by the counters_opt_cachelinesize_32 build tag.
const CacheLineSize uintptr = 32
