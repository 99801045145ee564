package dynload

import (
	"errors"
	"fmt"
	"sync"
)

var errNoSuchFile = errors.New("no such file")

// fakeOpener is an in-memory loader that counts every call.
type fakeOpener struct {
	mu sync.Mutex

	// files maps loadable file names to handles.
	files map[string]uintptr
	// exports maps a handle to the symbols it exports.
	exports map[uintptr]map[string]uintptr

	opens   map[string]int
	symbols map[string]int
}

func newFakeOpener() *fakeOpener {
	return &fakeOpener{
		files:   make(map[string]uintptr),
		exports: make(map[uintptr]map[string]uintptr),
		opens:   make(map[string]int),
		symbols: make(map[string]int),
	}
}

// install makes file loadable under handle, exporting syms.
func (f *fakeOpener) install(file string, handle uintptr, syms ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.files[file] = handle
	exp := make(map[string]uintptr, len(syms))
	for i, s := range syms {
		exp[s] = handle<<16 | uintptr(i+1)
	}
	f.exports[handle] = exp
}

func (f *fakeOpener) Open(file string) (uintptr, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.opens[file]++
	h, ok := f.files[file]
	if !ok {
		return 0, fmt.Errorf("%s: %w", file, errNoSuchFile)
	}
	return h, nil
}

func (f *fakeOpener) Symbol(handle uintptr, name string) (uintptr, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.symbols[name]++
	addr, ok := f.exports[handle][name]
	if !ok {
		return 0, fmt.Errorf("undefined symbol: %s", name)
	}
	return addr, nil
}

func (f *fakeOpener) openCount(file string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens[file]
}

func (f *fakeOpener) symbolCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.symbols[name]
}

func (f *fakeOpener) totalOpens() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.opens {
		n += c
	}
	return n
}
