//go:build !linux && !windows

package opticalflow

func bindCudaAPI(uintptr) (FunctionList, error) {
	return FunctionList{}, ErrUnsupportedPlatform
}
