//go:build windows

package dynload

import "golang.org/x/sys/windows"

// systemOpener wraps LoadLibrary/GetProcAddress.
type systemOpener struct{}

func (systemOpener) Open(file string) (uintptr, error) {
	h, err := windows.LoadLibrary(file)
	if err != nil {
		return 0, err
	}
	return uintptr(h), nil
}

func (systemOpener) Symbol(handle uintptr, name string) (uintptr, error) {
	return windows.GetProcAddress(windows.Handle(handle), name)
}
