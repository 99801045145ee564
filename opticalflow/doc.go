// Package opticalflow manages GPU buffers allocated through the NVIDIA
// Optical Flow (NvOF) CUDA API.
//
// A [Buffer] owns exactly one vendor buffer handle. It is created by
// [NewBuffer] from an initialized NvOF session and a [FunctionList], and its
// device memory is released by [Buffer.Close], exactly once:
//
//	api, err := opticalflow.LoadCudaAPI()
//	if err != nil {
//	    return err
//	}
//	buf, err := opticalflow.NewBuffer(session, 1920, 1080, api,
//	    opticalflow.BufferUsageInput, opticalflow.BufferFormatABGR8)
//	if err != nil {
//	    return err
//	}
//	defer buf.Close()
//
// # Release failures
//
// Close cannot report an error. If the vendor refuses to destroy a buffer,
// device memory bookkeeping can no longer be trusted, and Close terminates
// the process with [AbortExitCode] after logging the failure. This is not a
// panic and cannot be recovered.
//
// # Pooling
//
// [Pool] recycles buffers with identical descriptors and enforces a device
// memory budget for long-running pipelines.
package opticalflow
