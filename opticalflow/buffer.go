package opticalflow

import (
	"fmt"
	"math"
)

// noCopy marks a struct that must not be copied after first use.
// go vet's copylocks check reports copies of any type with Lock/Unlock.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Buffer owns one device buffer allocated through the optical flow API.
//
// A Buffer is only ever handled through a pointer; copying the struct would
// duplicate ownership of the vendor handle. The device pointer is non-zero
// exactly while the handle is live, from a successful NewBuffer until Close.
//
// Buffer has no internal locking. Callers sharing one across goroutines must
// synchronize themselves.
type Buffer struct {
	_ noCopy

	api    FunctionList
	desc   BufferDescriptor
	handle GPUBufferHandle
	ptr    DevicePtr
	stride Stride
	closed bool

	// pool is the owning pool, or nil for a standalone buffer.
	pool *Pool
}

// checkDimensions rejects sizes that are not positive or do not fit the
// descriptor's uint32 fields.
func checkDimensions(width, height int) error {
	if width <= 0 || height <= 0 || uint64(width) > math.MaxUint32 || uint64(height) > math.MaxUint32 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return nil
}

// NewBuffer allocates a device buffer on an initialized optical flow session.
//
// The buffer is created as device-pointer addressable. The function list is
// copied. Only the first plane's stride is recorded.
//
// Errors matching ErrUnrecoverableResource are returned when the vendor
// rejects the allocation, hands back a null device pointer, or fails the
// stride query. In the last two cases the handle is destroyed before
// returning, so nothing leaks. If that destroy itself fails the process
// aborts, as in Close.
func NewBuffer(session Handle, width, height int, api FunctionList, usage BufferUsage, format BufferFormat) (*Buffer, error) {
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}
	if err := api.Validate(); err != nil {
		return nil, err
	}

	b := &Buffer{
		api:  api,
		desc: NewBufferDescriptor(uint32(width), uint32(height), format, usage), //nolint:gosec // G115: bounds checked above
	}

	var handle GPUBufferHandle
	if st := b.api.CreateGPUBufferCuda(session, &b.desc, CudaBufferTypeCUdeviceptr, &handle); st != StatusSuccess {
		return nil, &ResourceError{Op: "nvOFCreateGPUBufferCuda", Status: st}
	}

	ptr := b.api.GPUBufferGetCUdeviceptr(handle)
	if ptr == 0 {
		destroyHandle(&b.api, handle)
		return nil, &ResourceError{Op: "nvOFGPUBufferGetCUdeviceptr", Reason: "null device pointer"}
	}

	var info CudaBufferStrideInfo
	if st := b.api.GPUBufferGetStrideInfo(handle, &info); st != StatusSuccess {
		destroyHandle(&b.api, handle)
		return nil, &ResourceError{Op: "nvOFGPUBufferGetStrideInfo", Status: st}
	}

	b.handle = handle
	b.ptr = ptr
	b.stride = Stride{X: info.Planes[0].XInBytes, Y: info.Planes[0].YInBytes}

	slogger().Debug("opticalflow: buffer created",
		"desc", b.desc.String(),
		"handle", uintptr(handle),
		"stride_x", b.stride.X,
		"stride_y", b.stride.Y)

	return b, nil
}

// Descriptor returns the descriptor the buffer was created with.
func (b *Buffer) Descriptor() BufferDescriptor {
	return b.desc
}

// Handle returns the vendor buffer handle, or 0 after Close.
func (b *Buffer) Handle() GPUBufferHandle {
	return b.handle
}

// Ptr returns the CUDA device pointer, or 0 after Close.
func (b *Buffer) Ptr() DevicePtr {
	return b.ptr
}

// Stride returns the plane-0 stride reported by the vendor at creation.
func (b *Buffer) Stride() Stride {
	return b.stride
}

// SizeBytes returns the padded size of the buffer: the row stride times the
// number of rows across all planes.
func (b *Buffer) SizeBytes() uint64 {
	return uint64(b.stride.X) * b.desc.Format.planeRows(uint64(b.desc.Height))
}

// IsClosed reports whether Close has been called.
func (b *Buffer) IsClosed() bool {
	return b.closed
}

// Close releases the device buffer. The vendor destroy call is made once;
// later calls do nothing.
//
// If the vendor reports a failure, Close logs it and terminates the process
// with AbortExitCode. It never returns in that case.
//
// Closing a buffer obtained from a Pool removes it from the pool's
// accounting. Prefer Pool.Release to make it reusable instead.
func (b *Buffer) Close() {
	if b.closed {
		return
	}
	b.closed = true

	if p := b.pool; p != nil {
		b.pool = nil
		p.forget(b)
	}

	handle := b.handle
	b.handle = 0
	b.ptr = 0
	destroyHandle(&b.api, handle)

	slogger().Debug("opticalflow: buffer destroyed", "desc", b.desc.String(), "handle", uintptr(handle))
}

// String returns a string representation of the buffer.
func (b *Buffer) String() string {
	if b.closed {
		return fmt.Sprintf("Buffer(%s, closed)", b.desc)
	}
	return fmt.Sprintf("Buffer(%s, ptr=%#x, stride=%dx%d)", b.desc, uint64(b.ptr), b.stride.X, b.stride.Y)
}
