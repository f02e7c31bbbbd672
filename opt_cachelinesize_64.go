//go:build counters_opt_cachelinesize_64

package counters

// CacheLineSize is fixed by the counters_opt_cachelinesize_64 build tag.
const CacheLineSize uintptr = 64
