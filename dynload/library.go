package dynload

import (
	"errors"
	"fmt"
	"slices"
)

// Library describes one shared library and the file names it may be
// installed under.
type Library struct {
	// Name is the logical name used in errors and logs, e.g. "nppc".
	Name string

	// Candidates are the file names to try, most preferred first.
	Candidates []string

	// Hint is appended to the load error to suggest remediation.
	Hint string
}

// VersionedLibrary describes a library installed under a name qualified by a
// CUDA major version, with the unqualified name as a fallback.
//
// On Linux, VersionedLibrary("nppc", 11, hint) tries "libnppc.so.11" and then
// "libnppc.so".
func VersionedLibrary(base string, cudaMajor int, hint string) Library {
	return Library{
		Name:       "lib" + base,
		Candidates: versionedFileNames(base, cudaMajor),
		Hint:       hint,
	}
}

// Open tries each candidate file name in order and returns the first handle
// the opener produces, along with the file name that succeeded.
//
// If no candidate can be opened, the error is a *LoadError.
func (l Library) Open(o Opener) (uintptr, string, error) {
	if len(l.Candidates) == 0 {
		return 0, "", &LoadError{Library: l.Name, Hint: l.Hint, Err: ErrNoCandidates}
	}

	errs := make([]error, 0, len(l.Candidates))
	for _, file := range l.Candidates {
		h, err := o.Open(file)
		if err == nil && h != 0 {
			return h, file, nil
		}
		if err == nil {
			err = fmt.Errorf("%s: loader returned a null handle", file)
		}
		slogger().Debug("dynload: candidate not loadable", "library", l.Name, "file", file, "err", err)
		errs = append(errs, err)
	}

	return 0, "", &LoadError{
		Library: l.Name,
		Tried:   slices.Clone(l.Candidates),
		Hint:    l.Hint,
		Err:     errors.Join(errs...),
	}
}
