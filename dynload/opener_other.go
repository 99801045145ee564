//go:build !darwin && !freebsd && !linux && !windows

package dynload

type systemOpener struct{}

func (systemOpener) Open(string) (uintptr, error) {
	return 0, ErrUnsupportedPlatform
}

func (systemOpener) Symbol(uintptr, string) (uintptr, error) {
	return 0, ErrUnsupportedPlatform
}
