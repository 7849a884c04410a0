// Package parallel provides the worker pool that services the engine's
// parallel-for callback protocol.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/user/jxlpack/pkg/ports"
)

// Pool is a fixed-width worker pool implementing ports.ParallelRunner. One
// Pool may serve many sessions; each Run call is an independent region.
type Pool struct {
	workers int
}

// New creates a pool with the given worker count. Zero or negative selects
// runtime.NumCPU.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{workers: workers}
}

// Workers returns the pool's worker count.
func (p *Pool) Workers() int { return p.workers }

// Run executes one parallel region. init is called exactly once with the
// pool's worker count before any work item; a nonzero init code aborts the
// region and becomes its result. Every index in [start, end) is then passed
// to work exactly once, with a lane identifier in [0, Workers()). Run returns
// only after all items complete. Missing callbacks yield ports.RunnerError.
func (p *Pool) Run(init ports.RunInit, work ports.RunFunc, start, end uint32) int {
	if init == nil || work == nil {
		return ports.RunnerError
	}
	if code := init(p.workers); code != 0 {
		return code
	}
	if start >= end {
		return 0
	}

	lanes := p.workers
	if n := int(end - start); n < lanes {
		lanes = n
	}

	// Work stealing via a shared cursor; indices are claimed in order but
	// complete in no particular order.
	var next atomic.Uint32
	next.Store(start)

	var wg sync.WaitGroup
	for lane := 0; lane < lanes; lane++ {
		wg.Add(1)
		go func(lane int) {
			defer wg.Done()
			for {
				idx := next.Add(1) - 1
				if idx >= end {
					return
				}
				work(idx, lane)
			}
		}(lane)
	}
	wg.Wait()

	return 0
}

// Ensure Pool implements ports.ParallelRunner
var _ ports.ParallelRunner = (*Pool)(nil)
