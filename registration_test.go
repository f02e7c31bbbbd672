package counters

import (
	"errors"
	"testing"
)

func TestCounters_Register(t *testing.T) {
	c := New(WithNamespacer(StaticNamespace("crateA")))

	r, err := c.Register("Trait", false)
	if err != nil {
		t.Fatal(err)
	}
	if !r.First() || r.Index != 0 || r.Key != (Key{"crateA", "Trait"}) {
		t.Fatalf("first registration: %+v", r)
	}
	if _, ok := r.Previous(); ok {
		t.Fatal("first registration has a previous one")
	}
	if got := r.Slot("Switch"); got != "Switch0" {
		t.Fatalf("Slot: got %q", got)
	}

	r, _ = c.Register("Trait", false)
	if r.First() || r.Index != 1 {
		t.Fatalf("second registration: %+v", r)
	}
	if prev, ok := r.Previous(); !ok || prev != 0 {
		t.Fatalf("Previous: got %d %v", prev, ok)
	}
}

func TestCounters_RegisterWithInitial(t *testing.T) {
	c := New(WithNamespacer(StaticNamespace("crateA")))
	r, err := c.Register("Trait", true)
	if err != nil {
		t.Fatal(err)
	}
	if r.First() || r.Index != 1 || r.Slot("Switch") != "Switch1" {
		t.Fatalf("registration after initial: %+v", r)
	}
	// the initial flag only matters for the first registration
	r, _ = c.Register("Trait", false)
	if r.Index != 2 {
		t.Fatalf("got %d, want 2", r.Index)
	}
}

func TestCounters_RegisterNamespaceFailure(t *testing.T) {
	c := New(WithNamespacer(EnvNamespace{LookupEnv: lookupFrom(nil)}))
	if _, err := c.Register("Trait", false); !errors.Is(err, ErrNamespaceUnset) {
		t.Fatalf("got %v", err)
	}
	if s := c.Stats(); s.Bound != 0 {
		t.Fatalf("registry touched on failure: %s", s.ToString())
	}
}

func TestDefault(t *testing.T) {
	if Default() != Default() {
		t.Fatal("Default is not a single instance")
	}
	t.Setenv(NamespaceEnv, "default-test")
	first, err := FetchAdd("TestDefault", 10)
	if err != nil {
		t.Fatal(err)
	}
	if first != 10 {
		t.Fatalf("got %d, want 10", first)
	}
	r, err := Register("TestDefault", false)
	if err != nil {
		t.Fatal(err)
	}
	if r.Index != 11 {
		t.Fatalf("got %d, want 11", r.Index)
	}
	if v, ok := Default().Load(Key{"default-test", "TestDefault"}); !ok || v != 12 {
		t.Fatalf("Load: got %d %v", v, ok)
	}
}
