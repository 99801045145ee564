package dynload

import (
	"sync"

	"github.com/gogpu/nvof/cache"
)

// Option configures a Resolver.
type Option func(*resolverOptions)

type resolverOptions struct {
	opener Opener
}

// WithOpener replaces the platform loader. Tests use it to inject a fake.
func WithOpener(o Opener) Option {
	return func(opts *resolverOptions) {
		opts.opener = o
	}
}

// openedLibrary is a Library plus its lazily opened handle.
type openedLibrary struct {
	lib    Library
	handle uintptr
	file   string
}

// Resolver looks up symbols in an ordered set of shared libraries.
//
// Libraries are opened on first need and kept open for the life of the
// Resolver; there is no Close. A library that fails to open is retried on the
// next call.
//
// Resolver is safe for concurrent use. The symbol table's mutex is held
// for the whole of a lookup, including any library open it triggers, so
// availability queries are serialized as one critical section. libMu is
// only taken inside it, or alone by Resolve and LoadedFiles; it is never
// held while waiting for the table.
type Resolver struct {
	opener Opener

	// libMu guards libs. Lock order: symbol table, then libMu.
	libMu sync.Mutex
	libs  []*openedLibrary

	symbols *cache.Memo[string, uintptr]
}

// NewResolver creates a Resolver over libs. Symbols are looked up in the
// order given, so list extension libraries before the core library they
// extend.
func NewResolver(libs []Library, opts ...Option) *Resolver {
	o := resolverOptions{opener: SystemOpener()}
	for _, opt := range opts {
		opt(&o)
	}

	r := &Resolver{
		opener:  o.opener,
		libs:    make([]*openedLibrary, len(libs)),
		symbols: cache.New[string, uintptr](),
	}
	for i, l := range libs {
		r.libs[i] = &openedLibrary{lib: l}
	}
	return r
}

// Libraries returns the configured libraries in lookup order.
func (r *Resolver) Libraries() []Library {
	out := make([]Library, len(r.libs))
	for i, ol := range r.libs {
		out[i] = ol.lib
	}
	return out
}

// load opens every library that is not open yet.
func (r *Resolver) load() ([]*openedLibrary, error) {
	r.libMu.Lock()
	defer r.libMu.Unlock()

	for _, ol := range r.libs {
		if ol.handle != 0 {
			continue
		}
		h, file, err := ol.lib.Open(r.opener)
		if err != nil {
			slogger().Warn("dynload: library unavailable", "library", ol.lib.Name, "err", err)
			return nil, err
		}
		ol.handle, ol.file = h, file
		slogger().Info("dynload: library loaded", "library", ol.lib.Name, "file", file)
	}
	return r.libs, nil
}

// Resolve returns the address of name from the first library that exports
// it, or 0 if none does.
//
// Resolve opens the libraries if needed and returns a *LoadError when one of
// them cannot be opened. It does not consult or fill the availability cache.
func (r *Resolver) Resolve(name string) (uintptr, error) {
	libs, err := r.load()
	if err != nil {
		return 0, err
	}

	for _, ol := range libs {
		addr, err := r.opener.Symbol(ol.handle, name)
		if err == nil && addr != 0 {
			slogger().Debug("dynload: symbol resolved", "symbol", name, "library", ol.lib.Name)
			return addr, nil
		}
	}

	slogger().Debug("dynload: symbol not found", "symbol", name)
	return 0, nil
}

// Lookup returns the memoized address of name. The first call for a name
// resolves it; later calls are answered from the cache without touching the
// loader. ok is false when no library exports the symbol.
func (r *Resolver) Lookup(name string) (addr uintptr, ok bool, err error) {
	addr, err = r.symbols.GetOrCompute(name, r.Resolve)
	if err != nil {
		return 0, false, err
	}
	return addr, addr != 0, nil
}

// IsAvailable reports whether any library exports name.
//
// The answer is memoized per name: for a given name, resolution runs at most
// once across all goroutines. A missing symbol returns false with a nil error;
// only a library that cannot be opened produces an error.
func (r *Resolver) IsAvailable(name string) (bool, error) {
	_, ok, err := r.Lookup(name)
	return ok, err
}

// Stats returns symbol cache statistics.
func (r *Resolver) Stats() cache.Stats {
	return r.symbols.Stats()
}

// LoadedFiles returns the file name each library was opened from, keyed by
// library name. Libraries not opened yet are absent.
func (r *Resolver) LoadedFiles() map[string]string {
	r.libMu.Lock()
	defer r.libMu.Unlock()

	out := make(map[string]string, len(r.libs))
	for _, ol := range r.libs {
		if ol.handle != 0 {
			out[ol.lib.Name] = ol.file
		}
	}
	return out
}
