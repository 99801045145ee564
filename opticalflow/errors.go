package opticalflow

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecoverableResource is matched by every buffer acquisition
	// failure. Acquisition is not retried.
	ErrUnrecoverableResource = errors.New("opticalflow: unrecoverable resource error")

	// ErrInvalidDimensions is returned for non-positive or oversized buffer
	// dimensions.
	ErrInvalidDimensions = errors.New("opticalflow: invalid buffer dimensions")

	// ErrIncompleteFunctionList is returned when a required vendor entry
	// point is nil.
	ErrIncompleteFunctionList = errors.New("opticalflow: incomplete function list")

	// ErrEntryPointMissing is returned when the optical flow library does
	// not export or fill a required entry point.
	ErrEntryPointMissing = errors.New("opticalflow: entry point missing")

	// ErrAPIUnavailable is returned when the vendor refuses to create an
	// API instance.
	ErrAPIUnavailable = errors.New("opticalflow: optical flow API unavailable")

	// ErrUnsupportedPlatform is returned by LoadCudaAPI on platforms without
	// a vendor driver.
	ErrUnsupportedPlatform = errors.New("opticalflow: platform not supported")
)

// ResourceError reports a vendor call that failed while acquiring a buffer.
// It matches ErrUnrecoverableResource.
type ResourceError struct {
	// Op is the vendor entry point, e.g. "nvOFCreateGPUBufferCuda".
	Op string

	// Status is the vendor status. It is StatusSuccess when the call
	// succeeded but returned an unusable result.
	Status Status

	// Reason describes an unusable result, e.g. "null device pointer".
	Reason string
}

func (e *ResourceError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("opticalflow: %s: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("opticalflow: %s failed: %v", e.Op, e.Status)
}

func (e *ResourceError) Unwrap() error {
	return ErrUnrecoverableResource
}
