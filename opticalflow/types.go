package opticalflow

import "fmt"

// Handle is an initialized NvOF session (NvOFHandle). It is owned by the
// caller, never by this package.
type Handle uintptr

// GPUBufferHandle is a vendor buffer handle (NvOFGPUBufferHandle).
type GPUBufferHandle uintptr

// DevicePtr is a CUDA device pointer (CUdeviceptr). Zero is invalid.
type DevicePtr uint64

// Status is a vendor status code (NV_OF_STATUS).
type Status int32

// Vendor status codes, numbered as in nvOpticalFlowCommon.h.
const (
	StatusSuccess Status = iota
	StatusOFNotAvailable
	StatusUnsupportedDevice
	StatusDeviceDoesNotExist
	StatusInvalidPtr
	StatusInvalidParam
	StatusInvalidCall
	StatusInvalidVersion
	StatusOutOfMemory
	StatusNotInitialized
	StatusUnsupportedFeature
	StatusGeneric
)

var statusNames = [...]string{
	StatusSuccess:            "NV_OF_SUCCESS",
	StatusOFNotAvailable:     "NV_OF_ERR_OF_NOT_AVAILABLE",
	StatusUnsupportedDevice:  "NV_OF_ERR_UNSUPPORTED_DEVICE",
	StatusDeviceDoesNotExist: "NV_OF_ERR_DEVICE_DOES_NOT_EXIST",
	StatusInvalidPtr:         "NV_OF_ERR_INVALID_PTR",
	StatusInvalidParam:       "NV_OF_ERR_INVALID_PARAM",
	StatusInvalidCall:        "NV_OF_ERR_INVALID_CALL",
	StatusInvalidVersion:     "NV_OF_ERR_INVALID_VERSION",
	StatusOutOfMemory:        "NV_OF_ERR_OUT_OF_MEMORY",
	StatusNotInitialized:     "NV_OF_ERR_NOT_INITIALIZED",
	StatusUnsupportedFeature: "NV_OF_ERR_UNSUPPORTED_FEATURE",
	StatusGeneric:            "NV_OF_ERR_GENERIC",
}

// String returns the vendor name of the status.
func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int32(s))
}

// BufferUsage is the role of a buffer for the optical flow engine
// (NV_OF_BUFFER_USAGE).
type BufferUsage uint32

// Buffer usages.
const (
	BufferUsageUndefined BufferUsage = iota
	// BufferUsageInput is an input frame or reference frame.
	BufferUsageInput
	// BufferUsageOutput receives flow vectors.
	BufferUsageOutput
	// BufferUsageHint carries external flow hints.
	BufferUsageHint
	// BufferUsageCost receives per-vector cost.
	BufferUsageCost
	// BufferUsageGlobalFlow receives the global flow vector.
	BufferUsageGlobalFlow
)

// String returns the string representation of BufferUsage.
func (u BufferUsage) String() string {
	switch u {
	case BufferUsageUndefined:
		return "Undefined"
	case BufferUsageInput:
		return "Input"
	case BufferUsageOutput:
		return "Output"
	case BufferUsageHint:
		return "Hint"
	case BufferUsageCost:
		return "Cost"
	case BufferUsageGlobalFlow:
		return "GlobalFlow"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(u))
	}
}

// BufferFormat is the pixel format of a buffer (NV_OF_BUFFER_FORMAT).
type BufferFormat uint32

// Buffer formats.
const (
	BufferFormatUndefined BufferFormat = iota
	// BufferFormatGrayscale8 is 8-bit luma.
	BufferFormatGrayscale8
	// BufferFormatNV12 is 8-bit luma followed by interleaved half-size chroma.
	BufferFormatNV12
	// BufferFormatABGR8 is 8-bit packed RGBA.
	BufferFormatABGR8
	// BufferFormatShort is one signed 16-bit value per element.
	BufferFormatShort
	// BufferFormatShort2 is a pair of signed 16-bit values per element (flow vectors).
	BufferFormatShort2
	// BufferFormatUint is one unsigned 32-bit value per element.
	BufferFormatUint
	// BufferFormatUint8 is one unsigned 8-bit value per element.
	BufferFormatUint8
)

// String returns the string representation of BufferFormat.
func (f BufferFormat) String() string {
	switch f {
	case BufferFormatUndefined:
		return "Undefined"
	case BufferFormatGrayscale8:
		return "Grayscale8"
	case BufferFormatNV12:
		return "NV12"
	case BufferFormatABGR8:
		return "ABGR8"
	case BufferFormatShort:
		return "Short"
	case BufferFormatShort2:
		return "Short2"
	case BufferFormatUint:
		return "Uint"
	case BufferFormatUint8:
		return "Uint8"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(f))
	}
}

// BytesPerPixel returns the size of one element of the first plane.
// Returns 0 for undefined formats.
func (f BufferFormat) BytesPerPixel() int {
	switch f {
	case BufferFormatGrayscale8, BufferFormatNV12, BufferFormatUint8:
		return 1
	case BufferFormatShort:
		return 2
	case BufferFormatABGR8, BufferFormatShort2, BufferFormatUint:
		return 4
	default:
		return 0
	}
}

// planeRows scales a luma row count to the total rows of all planes.
func (f BufferFormat) planeRows(height uint64) uint64 {
	if f == BufferFormatNV12 {
		return height + (height+1)/2
	}
	return height
}

// CudaBufferType selects how a buffer is exposed to CUDA
// (NV_OF_CUDA_BUFFER_TYPE).
type CudaBufferType uint32

// CUDA buffer types.
const (
	CudaBufferTypeUndefined CudaBufferType = iota
	CudaBufferTypeCUarray
	CudaBufferTypeCUdeviceptr
)

// BufferDescriptor describes the geometry and role of a buffer
// (NV_OF_BUFFER_DESCRIPTOR). Field order matches the vendor struct.
type BufferDescriptor struct {
	Width  uint32
	Height uint32
	Usage  BufferUsage
	Format BufferFormat
}

// NewBufferDescriptor builds a descriptor. It performs no validation.
func NewBufferDescriptor(width, height uint32, format BufferFormat, usage BufferUsage) BufferDescriptor {
	return BufferDescriptor{
		Width:  width,
		Height: height,
		Usage:  usage,
		Format: format,
	}
}

// String returns a compact description such as "1920x1080 ABGR8 Input".
func (d BufferDescriptor) String() string {
	return fmt.Sprintf("%dx%d %s %s", d.Width, d.Height, d.Format, d.Usage)
}

// estimatedBytes is the unpadded size of the buffer.
func (d BufferDescriptor) estimatedBytes() uint64 {
	row := uint64(d.Width) * uint64(d.Format.BytesPerPixel())
	return row * d.Format.planeRows(uint64(d.Height))
}

// PlaneStride is the stride of one plane (NV_OF_BUFFER_STRIDE).
type PlaneStride struct {
	XInBytes uint32
	YInBytes uint32
}

// CudaBufferStrideInfo is filled by the vendor stride query
// (NV_OF_CUDA_BUFFER_STRIDE_INFO).
type CudaBufferStrideInfo struct {
	Planes    [3]PlaneStride
	NumPlanes uint32
}

// Stride is the plane-0 stride of a buffer: X is the byte distance between
// rows, Y the vertical stride, both exactly as reported by the vendor.
type Stride struct {
	X, Y uint32
}
