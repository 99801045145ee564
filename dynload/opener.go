package dynload

// Opener is the dynamic loader used by a Resolver.
//
// Open returns a non-zero handle for a loadable file. Symbol returns the
// address of name inside an opened library; a missing symbol may be reported
// either as an error or as a zero address.
type Opener interface {
	Open(file string) (uintptr, error)
	Symbol(handle uintptr, name string) (uintptr, error)
}

// SystemOpener returns the platform dynamic loader.
func SystemOpener() Opener {
	return systemOpener{}
}
