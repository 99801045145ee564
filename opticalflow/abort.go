package opticalflow

import (
	"fmt"
	"os"
)

// AbortExitCode is the exit status of a process terminated because a GPU
// buffer could not be released.
const AbortExitCode = 2

// abortOnReleaseFailure terminates the process. Deferred functions do not
// run. A failed release leaves device memory that nothing can reclaim, and
// the driver's allocation state is no longer known.
func abortOnReleaseFailure(handle GPUBufferHandle, st Status) {
	slogger().Error("opticalflow: failed to destroy optical flow CUDA buffer",
		"handle", uintptr(handle), "status", st)
	fmt.Fprintf(os.Stderr, "fatal error: failed to destroy optical flow CUDA buffer %#x: %v\n",
		uintptr(handle), st)
	os.Exit(AbortExitCode)
}

// destroyHandle releases a vendor buffer handle, aborting on failure.
func destroyHandle(api *FunctionList, handle GPUBufferHandle) {
	if st := api.DestroyGPUBufferCuda(handle); st != StatusSuccess {
		abortOnReleaseFailure(handle, st)
	}
}
