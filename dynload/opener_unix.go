//go:build darwin || freebsd || linux

package dynload

import "github.com/ebitengine/purego"

// systemOpener wraps dlopen/dlsym through purego, so no cgo toolchain is
// needed at build time.
type systemOpener struct{}

func (systemOpener) Open(file string) (uintptr, error) {
	return purego.Dlopen(file, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

func (systemOpener) Symbol(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}
