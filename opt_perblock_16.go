//go:build counters_opt_perblock_16

package counters

// CountersPerBlock is the number of counters held by one block of the chain.
const CountersPerBlock = 16
