package opticalflow

import (
	"fmt"
	"runtime"

	"github.com/gogpu/nvof/dynload"
)

// API version requested from the driver (NV_OF_API_VERSION).
const (
	APIMajorVersion = 2
	APIMinorVersion = 0
	APIVersion      = APIMajorVersion<<4 | APIMinorVersion
)

// createInstanceSymbol is the single exported entry point of the driver
// library; it fills the function table.
const createInstanceSymbol = "NvOFAPICreateInstanceCuda"

const driverHint = "Please install an NVIDIA display driver with Optical Flow support"

// DriverLibrary describes the optical flow driver library for the current
// platform.
func DriverLibrary() dynload.Library {
	if runtime.GOOS == "windows" {
		return dynload.Library{
			Name:       "nvofapi64",
			Candidates: []string{"nvofapi64.dll"},
			Hint:       driverHint,
		}
	}
	return dynload.Library{
		Name:       "libnvidia-opticalflow",
		Candidates: []string{"libnvidia-opticalflow.so.1", "libnvidia-opticalflow.so"},
		Hint:       driverHint,
	}
}

// LoadOption configures LoadCudaAPI.
type LoadOption func(*loadOptions)

type loadOptions struct {
	opener  dynload.Opener
	library dynload.Library
}

// WithOpener replaces the platform loader.
func WithOpener(o dynload.Opener) LoadOption {
	return func(opts *loadOptions) {
		opts.opener = o
	}
}

// WithDriverLibrary replaces the driver library description, for drivers
// installed under non-standard names.
func WithDriverLibrary(l dynload.Library) LoadOption {
	return func(opts *loadOptions) {
		opts.library = l
	}
}

// LoadCudaAPI opens the optical flow driver library and returns the buffer
// management entry points.
//
// A missing library is reported as a *dynload.LoadError. The library stays
// loaded for the life of the process.
func LoadCudaAPI(opts ...LoadOption) (FunctionList, error) {
	o := loadOptions{
		opener:  dynload.SystemOpener(),
		library: DriverLibrary(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	h, file, err := o.library.Open(o.opener)
	if err != nil {
		return FunctionList{}, err
	}

	sym, err := o.opener.Symbol(h, createInstanceSymbol)
	if err != nil || sym == 0 {
		return FunctionList{}, fmt.Errorf("%w: %s not exported by %s", ErrEntryPointMissing, createInstanceSymbol, file)
	}

	api, err := bindCudaAPI(sym)
	if err != nil {
		return FunctionList{}, err
	}

	slogger().Info("opticalflow: driver loaded", "file", file, "api_version", APIVersion)
	return api, nil
}
