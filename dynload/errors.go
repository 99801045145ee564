package dynload

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLibraryNotFound is matched by every error caused by a library that
	// could not be opened under any of its candidate file names.
	ErrLibraryNotFound = errors.New("dynload: shared library not found")

	// ErrUnsupportedPlatform is returned by the system opener on platforms
	// without a dynamic loader binding.
	ErrUnsupportedPlatform = errors.New("dynload: dynamic loading not supported on this platform")

	// ErrNoCandidates is returned when a Library has no file names to try.
	ErrNoCandidates = errors.New("dynload: library has no candidate file names")
)

// LoadError reports a library that could not be opened.
type LoadError struct {
	// Library is the logical library name, e.g. "nppc".
	Library string

	// Tried lists the file names attempted, in order.
	Tried []string

	// Hint is a remediation message for the user.
	Hint string

	// Err joins the per-candidate open errors.
	Err error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "dynload: loading %s failed (tried %s)", e.Library, strings.Join(e.Tried, ", "))
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if e.Hint != "" {
		b.WriteString(". ")
		b.WriteString(e.Hint)
	}
	return b.String()
}

// Unwrap lets errors.Is match both ErrLibraryNotFound and the underlying
// loader errors.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrLibraryNotFound}
	}
	return []error{ErrLibraryNotFound, e.Err}
}
