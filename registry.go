package counters

// defaultCounters is shared by the whole process and never torn down.
var defaultCounters Counters

// Default returns the process-wide Counters used by the package-level
// functions. Its namespace comes from the NamespaceEnv variable.
func Default() *Counters {
	return &defaultCounters
}

// FetchAdd calls FetchAdd on the process-wide Counters.
func FetchAdd(id string, start uint16) (uint16, error) {
	return defaultCounters.FetchAdd(id, start)
}

// Register calls Register on the process-wide Counters.
func Register(id string, hasInitial bool) (Registration, error) {
	return defaultCounters.Register(id, hasInitial)
}
