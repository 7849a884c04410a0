package jxlengine

/*
#include <jxl/parallel_runner.h>
#include <stdint.h>

JxlParallelRetCode jxlpackCallInit(JxlParallelRunInit init, void* jpegxl_opaque, size_t num_threads);
void jxlpackCallFunc(JxlParallelRunFunction func, void* jpegxl_opaque, uint32_t value, size_t thread_id);
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/user/jxlpack/pkg/ports"
)

// jxlpackParallelRun is the JxlParallelRunner installed on every encoder.
// runner_opaque carries a cgo handle to the Go ParallelRunner; the engine's
// init and work callbacks are wrapped into Go closures and dispatched through
// it.
//
//export jxlpackParallelRun
func jxlpackParallelRun(runnerOpaque, jxlOpaque unsafe.Pointer,
	init C.JxlParallelRunInit, fn C.JxlParallelRunFunction,
	start, end C.uint32_t) C.JxlParallelRetCode {

	if runnerOpaque == nil || init == nil || fn == nil {
		return C.JxlParallelRetCode(ports.RunnerError)
	}
	runner, ok := cgo.Handle(uintptr(runnerOpaque)).Value().(ports.ParallelRunner)
	if !ok || runner == nil {
		return C.JxlParallelRetCode(ports.RunnerError)
	}

	goInit := func(numThreads int) int {
		return int(C.jxlpackCallInit(init, jxlOpaque, C.size_t(numThreads)))
	}
	goWork := func(index uint32, lane int) {
		C.jxlpackCallFunc(fn, jxlOpaque, C.uint32_t(index), C.size_t(lane))
	}

	return C.JxlParallelRetCode(runner.Run(goInit, goWork, uint32(start), uint32(end)))
}
