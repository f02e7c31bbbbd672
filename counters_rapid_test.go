package counters

import (
	"testing"

	"pgregory.net/rapid"
)

// TestCounters_MatchesModel checks any sequence of calls against a plain
// map holding the expected next value per key.
func TestCounters_MatchesModel(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := New()
		model := make(map[Key]uint16)

		namespaces := []string{"crateA", "crateB", "crateC"}
		numOps := rapid.IntRange(1, 200).Draw(t, "numOps")
		for i := 0; i < numOps; i++ {
			key := Key{
				Namespace: rapid.SampledFrom(namespaces).Draw(t, "namespace"),
				ID:        rapid.StringMatching(`[a-z]{1,2}`).Draw(t, "id"),
			}
			start := rapid.Uint16().Draw(t, "start")

			want, seen := model[key]
			if !seen {
				want = start
			}
			if got := c.FetchAddKey(key, start); got != want {
				t.Fatalf("%s: got %d, want %d", key, got, want)
			}
			model[key] = want + 1
		}

		for key, want := range model {
			if got, ok := c.Load(key); !ok || got != want {
				t.Fatalf("Load %s: got %d %v, want %d", key, got, ok, want)
			}
		}
		s := c.Stats()
		if s.Bound != len(model) {
			t.Fatalf("Bound: got %d, want %d", s.Bound, len(model))
		}
		if s.Blocks != expectedBlocks(len(model)) {
			t.Fatalf("Blocks: got %d, want %d", s.Blocks, expectedBlocks(len(model)))
		}
		if s.Total != uint64(numOps) {
			t.Fatalf("Total: got %d, want %d", s.Total, numOps)
		}
	})
}
