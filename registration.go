package counters

import "strconv"

// Registration is the outcome of Register: the key that was registered
// and how many registrations of that key came before this one.
type Registration struct {
	Key   Key
	Index uint16
}

// First reports whether no registration of the key came before this one.
func (r Registration) First() bool { return r.Index == 0 }

// Previous returns the index of the registration this one supersedes.
// The ok result is false for the first registration.
func (r Registration) Previous() (index uint16, ok bool) {
	if r.Index == 0 {
		return 0, false
	}
	return r.Index - 1, true
}

// Slot returns a stable name for this registration, prefix followed by
// the index, e.g. "Switch3".
func (r Registration) Slot(prefix string) string {
	return prefix + strconv.FormatUint(uint64(r.Index), 10)
}

// Register counts one more registration of id in the caller's namespace.
// When hasInitial is true an initial registration is assumed to exist
// already, so numbering starts at one instead of zero.
func (c *Counters) Register(id string, hasInitial bool) (Registration, error) {
	ns, err := c.resolveNamespace()
	if err != nil {
		return Registration{}, err
	}
	var start uint16
	if hasInitial {
		start = 1
	}
	key := Key{Namespace: ns, ID: id}
	return Registration{Key: key, Index: c.FetchAddKey(key, start)}, nil
}
