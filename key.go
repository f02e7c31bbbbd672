package counters

// Key identifies one counter: a namespace (usually the name of the
// calling package or component) plus an id local to that namespace.
//
// Two keys are equal iff both fields are equal, so
//
//	{Namespace: "crateA", ID: "x"}
//	{Namespace: "crateB", ID: "x"}
//
// name unrelated counters.
type Key struct {
	Namespace string
	ID        string
}

// String returns "namespace/id".
func (k Key) String() string {
	switch {
	case k.Namespace == "" && k.ID == "":
		return "<empty>"
	case k.Namespace == "":
		return "<none>/" + k.ID
	default:
		return k.Namespace + "/" + k.ID
	}
}
