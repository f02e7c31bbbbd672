//go:build counters_opt_cachelinesize_128

package counters

// CacheLineSize is fixed by the counters_opt_cachelinesize_128 build tag.
const CacheLineSize uintptr = 128
