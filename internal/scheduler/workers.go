package scheduler

// Worker count resolution. Requested counts come from the -j flag or the
// config file; AutoWorkers means neither set one.
const (
	// AutoWorkers requests a worker count derived from the core count.
	AutoWorkers = -1
	// Sequential analyzes repositories one at a time after discovery.
	Sequential = 0
	// ReservedCores are left for discovery and the UI in auto mode.
	ReservedCores = 1
	// MaxAutoWorkers caps the auto worker count; git is mostly I/O bound
	// and more processes only add contention.
	MaxAutoWorkers = 8
	// AutoThresholdCores is the core count above which cores are reserved.
	AutoThresholdCores = 2
)

// ResolveWorkers turns a requested worker count into the number of
// concurrent analyses. Any negative request is treated as [AutoWorkers].
func ResolveWorkers(requested, cores int) int {
	if requested >= Sequential {
		return requested
	}
	if cores > AutoThresholdCores {
		return min(cores-ReservedCores, MaxAutoWorkers)
	}
	return cores
}
