package dynload

import (
	"os"
	"strconv"
	"sync"
)

// DefaultCUDAMajor is the CUDA major version used to build versioned NPP
// library names when none is configured.
const DefaultCUDAMajor = 11

// CUDAMajorEnv overrides DefaultCUDAMajor for the process-wide NPP resolver.
const CUDAMajorEnv = "NVOF_CUDA_MAJOR"

const nppHint = "Please install the CUDA toolkit or the NPP python wheel"

// NPPLibraries returns the NPP libraries in lookup order: the color
// conversion library first, then the NPP core library.
func NPPLibraries(cudaMajor int) []Library {
	return []Library{
		VersionedLibrary("nppicc", cudaMajor, nppHint),
		VersionedLibrary("nppc", cudaMajor, nppHint),
	}
}

// NewNPPResolver creates a Resolver over the NPP libraries for a CUDA major
// version.
func NewNPPResolver(cudaMajor int, opts ...Option) *Resolver {
	return NewResolver(NPPLibraries(cudaMajor), opts...)
}

var nppResolver = sync.OnceValue(func() *Resolver {
	return NewNPPResolver(cudaMajorFromEnv())
})

// NPP returns the process-wide NPP resolver. It is created on first call;
// libraries are opened on the first lookup.
func NPP() *Resolver {
	return nppResolver()
}

// NPPIsSymbolAvailable reports whether the process-wide NPP resolver can
// find name.
func NPPIsSymbolAvailable(name string) (bool, error) {
	return NPP().IsAvailable(name)
}

func cudaMajorFromEnv() int {
	v := os.Getenv(CUDAMajorEnv)
	if v == "" {
		return DefaultCUDAMajor
	}
	major, err := strconv.Atoi(v)
	if err != nil || major <= 0 {
		slogger().Warn("dynload: ignoring invalid CUDA major version", "env", CUDAMajorEnv, "value", v)
		return DefaultCUDAMajor
	}
	return major
}
