package opticalflow

import (
	"fmt"
	"sync"
)

// fakeAPI is an in-memory vendor that records every call.
type fakeAPI struct {
	mu sync.Mutex

	calls      []string
	nextHandle GPUBufferHandle
	descs      map[GPUBufferHandle]BufferDescriptor
	live       map[GPUBufferHandle]bool
	destroyed  map[GPUBufferHandle]int

	lastSession Handle
	lastDesc    BufferDescriptor
	lastType    CudaBufferType

	createStatus  Status
	strideStatus  Status
	destroyStatus Status
	nullPtr       bool

	// stride overrides the computed stride when non-nil.
	stride *CudaBufferStrideInfo
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		descs:     make(map[GPUBufferHandle]BufferDescriptor),
		live:      make(map[GPUBufferHandle]bool),
		destroyed: make(map[GPUBufferHandle]int),
	}
}

func (f *fakeAPI) functionList() FunctionList {
	return FunctionList{
		CreateGPUBufferCuda:     f.create,
		GPUBufferGetCUdeviceptr: f.devicePtr,
		GPUBufferGetStrideInfo:  f.strideInfo,
		DestroyGPUBufferCuda:    f.destroy,
	}
}

func (f *fakeAPI) create(of Handle, desc *BufferDescriptor, typ CudaBufferType, out *GPUBufferHandle) Status {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastSession, f.lastDesc, f.lastType = of, *desc, typ
	if f.createStatus != StatusSuccess {
		f.calls = append(f.calls, "create:failed")
		return f.createStatus
	}
	f.nextHandle++
	h := f.nextHandle
	f.descs[h] = *desc
	f.live[h] = true
	f.calls = append(f.calls, fmt.Sprintf("create:%d", h))
	*out = h
	return StatusSuccess
}

func (f *fakeAPI) devicePtr(h GPUBufferHandle) DevicePtr {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, fmt.Sprintf("ptr:%d", h))
	if f.nullPtr || !f.live[h] {
		return 0
	}
	return DevicePtr(0x7f0000000000 + uint64(h)*0x100000)
}

func (f *fakeAPI) strideInfo(h GPUBufferHandle, info *CudaBufferStrideInfo) Status {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, fmt.Sprintf("stride:%d", h))
	if f.strideStatus != StatusSuccess {
		return f.strideStatus
	}
	if f.stride != nil {
		*info = *f.stride
		return StatusSuccess
	}

	d := f.descs[h]
	pitch := alignUp(d.Width*uint32(d.Format.BytesPerPixel()), 256)
	info.Planes[0] = PlaneStride{XInBytes: pitch, YInBytes: d.Height}
	info.Planes[1] = PlaneStride{XInBytes: pitch / 2, YInBytes: d.Height / 2}
	info.NumPlanes = 2
	return StatusSuccess
}

func (f *fakeAPI) destroy(h GPUBufferHandle) Status {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, fmt.Sprintf("destroy:%d", h))
	f.destroyed[h]++
	if f.destroyStatus != StatusSuccess {
		return f.destroyStatus
	}
	delete(f.live, h)
	return StatusSuccess
}

func (f *fakeAPI) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) count(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (f *fakeAPI) liveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.live)
}

func (f *fakeAPI) destroyCount(h GPUBufferHandle) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.destroyed[h]
}

func alignUp(v, a uint32) uint32 {
	return (v + a - 1) / a * a
}
