package counters

import (
	"fmt"
	"strings"
)

// Stats returns statistics for the Counters. Just like other
// methods, this one is thread-safe. Yet it's an O(N) operation,
// so it should be used only for diagnostics or debugging purposes.
func (c *Counters) Stats() *Stats {
	stats := &Stats{}
	for b := &c.head; b != nil; b = b.next.Load() {
		stats.Blocks++
		stats.Capacity += CountersPerBlock
		for i := range b.slots {
			ctr := b.slots[i].Load()
			if ctr == nil {
				stats.Empty++
				continue
			}
			stats.Bound++
			stats.Total += ctr.increments()
		}
	}
	return stats
}

// Stats is Counters statistics.
//
// Warning: statistics are intended to be used for diagnostic
// purposes, not for production code.
type Stats struct {
	// Blocks is the length of the chain, including the head block.
	Blocks int
	// Capacity is the number of slots in all blocks.
	Capacity int
	// Bound is the number of distinct keys with a counter.
	Bound int
	// Empty is the number of slots not yet bound.
	Empty int
	// Total is the number of increments applied to all counters.
	Total uint64
}

// ToString returns string representation of counters stats.
func (s *Stats) ToString() string {
	var sb strings.Builder
	sb.WriteString("Stats{\n")
	sb.WriteString(fmt.Sprintf("Blocks:   %d\n", s.Blocks))
	sb.WriteString(fmt.Sprintf("Capacity: %d\n", s.Capacity))
	sb.WriteString(fmt.Sprintf("Bound:    %d\n", s.Bound))
	sb.WriteString(fmt.Sprintf("Empty:    %d\n", s.Empty))
	sb.WriteString(fmt.Sprintf("Total:    %d\n", s.Total))
	sb.WriteString("}\n")
	return sb.String()
}
