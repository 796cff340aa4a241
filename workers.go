package dazzlodocs

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one conversion runs at a time.
	MinWorkers = 1

	// MaxWorkers caps concurrent pages in the shared browser (~50MB each).
	MaxWorkers = 8

	// cpuDivisor leaves headroom for Chrome's renderer processes.
	cpuDivisor = 2
)

// ResolveWorkers determines how many conversions to run concurrently
// against one Renderer.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
