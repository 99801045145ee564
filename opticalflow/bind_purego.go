//go:build linux || windows

package opticalflow

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// cudaFunctionTable mirrors NV_OF_CUDA_API_FUNCTION_LIST. Every field is a C
// function pointer, in header order.
type cudaFunctionTable struct {
	CreateOpticalFlowCuda   uintptr
	Init                    uintptr
	CreateGPUBufferCuda     uintptr
	GPUBufferGetCUarray     uintptr
	GPUBufferGetCUdeviceptr uintptr
	GPUBufferGetStrideInfo  uintptr
	SetIOCudaStreams        uintptr
	Execute                 uintptr
	DestroyGPUBufferCuda    uintptr
	Destroy                 uintptr
	GetLastError            uintptr
	GetCaps                 uintptr
}

func bindCudaAPI(createInstance uintptr) (FunctionList, error) {
	var create func(apiVersion uint32, table *cudaFunctionTable) Status
	purego.RegisterFunc(&create, createInstance)

	var table cudaFunctionTable
	if st := create(APIVersion, &table); st != StatusSuccess {
		return FunctionList{}, fmt.Errorf("%w: %s: %v", ErrAPIUnavailable, createInstanceSymbol, st)
	}

	entries := []struct {
		name string
		ptr  uintptr
	}{
		{"nvOFCreateGPUBufferCuda", table.CreateGPUBufferCuda},
		{"nvOFGPUBufferGetCUdeviceptr", table.GPUBufferGetCUdeviceptr},
		{"nvOFGPUBufferGetStrideInfo", table.GPUBufferGetStrideInfo},
		{"nvOFDestroyGPUBufferCuda", table.DestroyGPUBufferCuda},
	}
	for _, e := range entries {
		if e.ptr == 0 {
			return FunctionList{}, fmt.Errorf("%w: %s", ErrEntryPointMissing, e.name)
		}
	}

	var fl FunctionList
	purego.RegisterFunc(&fl.CreateGPUBufferCuda, table.CreateGPUBufferCuda)
	purego.RegisterFunc(&fl.GPUBufferGetCUdeviceptr, table.GPUBufferGetCUdeviceptr)
	purego.RegisterFunc(&fl.GPUBufferGetStrideInfo, table.GPUBufferGetStrideInfo)
	purego.RegisterFunc(&fl.DestroyGPUBufferCuda, table.DestroyGPUBufferCuda)
	return fl, nil
}
