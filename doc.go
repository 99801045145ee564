// Package nvof manages scarce resources obtained from the NVIDIA Optical Flow
// SDK and the NPP libraries that accompany it.
//
// # Overview
//
// The work lives in two independent sub-packages:
//
//   - [github.com/gogpu/nvof/opticalflow] wraps GPU buffers allocated through
//     the NvOF CUDA function table. A [opticalflow.Buffer] is released exactly
//     once; a failed release terminates the process. A [opticalflow.Pool]
//     recycles buffers of the same shape under a memory budget.
//   - [github.com/gogpu/nvof/dynload] opens optional shared libraries on first
//     use and answers "is this symbol present?" with a memoized lookup.
//
// [github.com/gogpu/nvof/metrics] exports pool and resolver statistics as
// Prometheus collectors, and cmd/nvofprobe inspects a host from the command line.
//
// # Quick Start
//
//	api, err := opticalflow.LoadCudaAPI()
//	if err != nil {
//	    return err
//	}
//	buf, err := opticalflow.NewBuffer(session, 1920, 1080, api,
//	    opticalflow.BufferUsageInput, opticalflow.BufferFormatNV12)
//	if err != nil {
//	    return err
//	}
//	defer buf.Close()
//
//	ok, err := dynload.NPPIsSymbolAvailable("nppiNV12ToRGB_8u_P2C3R_Ctx")
//
// # Logging
//
// Nothing is logged by default. [SetLogger] installs a logger for this package
// and every sub-package at once.
//
// # Platforms
//
// Symbol loading uses purego on Linux, macOS and FreeBSD, and the Windows
// loader on Windows. The optical flow function table is bound on Linux and
// Windows, the platforms the SDK ships for.
package nvof

// Version is the module release.
const Version = "0.3.0"
