package ports

// RunnerError is the return code a parallel runner reports when it cannot
// schedule a region at all (for example, a missing callback). Failures inside
// individual work items are the engine's own concern and are never reported
// through the runner's return value.
const RunnerError = -1

// RunInit is called by the runner exactly once per parallel region, before
// any work item, with the number of worker lanes the runner will use. The
// engine sizes its per-lane result buffers from this count. A nonzero return
// aborts the region and becomes its result.
type RunInit func(numThreads int) int

// RunFunc is one work item. index is the item in [start, end); lane is the
// worker slot in [0, numThreads) executing it. Lane identifiers are reused
// across items and carry no ordering guarantee.
type RunFunc func(index uint32, lane int)

// ParallelRunner services the engine's parallel-for protocol: call init once,
// then invoke work for every index in [start, end) across the runner's lanes,
// and return only after all items have completed.
type ParallelRunner interface {
	Run(init RunInit, work RunFunc, start, end uint32) int
}
