// Package dynload resolves optional symbols from native shared libraries that
// may or may not be installed on the host.
//
// A [Resolver] is configured with an ordered list of [Library] values. Each
// library is opened at most once per resolver, on first need, by trying its
// candidate file names in order (typically a CUDA-major-versioned name first
// and an unversioned name second). Symbol lookups walk the libraries in the
// configured order and return the first non-zero address.
//
// Availability answers are memoized per symbol name:
//
//	ok, err := dynload.NPP().IsAvailable("nppiNV12ToRGB_8u_P2C3R_Ctx")
//	if err != nil {
//	    // libnppc / libnppicc could not be opened at all
//	}
//	if !ok {
//	    // the installed NPP is too old for this entry point
//	}
//
// A library that cannot be opened under any candidate name is an error
// ([*LoadError], matching [ErrLibraryNotFound]). A symbol missing from an
// opened library is not an error: it is reported as unavailable.
package dynload
