//go:build !counters_opt_perblock_8 && !counters_opt_perblock_16

package counters

// CountersPerBlock is the number of counters held by one block of the
// chain. Blocks are scanned linearly, so the value trades per-block memory
// against chain length. It can be changed with the
// counters_opt_perblock_8 and counters_opt_perblock_16 build tags.
const CountersPerBlock = 5
