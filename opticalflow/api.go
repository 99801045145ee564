package opticalflow

import "fmt"

// FunctionList holds the vendor entry points used for buffer management.
// It is a subset of NV_OF_CUDA_API_FUNCTION_LIST, copied by value into every
// Buffer.
//
// LoadCudaAPI fills it from the installed driver; tests substitute fakes.
type FunctionList struct {
	// CreateGPUBufferCuda allocates a buffer (nvOFCreateGPUBufferCuda).
	CreateGPUBufferCuda func(of Handle, desc *BufferDescriptor, typ CudaBufferType, out *GPUBufferHandle) Status

	// GPUBufferGetCUdeviceptr returns the device pointer of a buffer
	// (nvOFGPUBufferGetCUdeviceptr). Zero means invalid.
	GPUBufferGetCUdeviceptr func(buf GPUBufferHandle) DevicePtr

	// GPUBufferGetStrideInfo queries per-plane strides
	// (nvOFGPUBufferGetStrideInfo).
	GPUBufferGetStrideInfo func(buf GPUBufferHandle, info *CudaBufferStrideInfo) Status

	// DestroyGPUBufferCuda releases a buffer (nvOFDestroyGPUBufferCuda).
	DestroyGPUBufferCuda func(buf GPUBufferHandle) Status
}

// Validate reports the first nil entry point.
func (fl FunctionList) Validate() error {
	switch {
	case fl.CreateGPUBufferCuda == nil:
		return fmt.Errorf("%w: nvOFCreateGPUBufferCuda is nil", ErrIncompleteFunctionList)
	case fl.GPUBufferGetCUdeviceptr == nil:
		return fmt.Errorf("%w: nvOFGPUBufferGetCUdeviceptr is nil", ErrIncompleteFunctionList)
	case fl.GPUBufferGetStrideInfo == nil:
		return fmt.Errorf("%w: nvOFGPUBufferGetStrideInfo is nil", ErrIncompleteFunctionList)
	case fl.DestroyGPUBufferCuda == nil:
		return fmt.Errorf("%w: nvOFDestroyGPUBufferCuda is nil", ErrIncompleteFunctionList)
	}
	return nil
}
