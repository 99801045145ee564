// Package cache provides a memo table for values that are expensive to
// compute and must be computed at most once per key.
package cache

import (
	"sync"
	"sync/atomic"
)

// Stats holds memo table statistics.
type Stats struct {
	// Len is the number of memoized keys.
	Len int

	// Hits is the number of lookups answered from the table.
	Hits uint64

	// Misses is the number of lookups that ran the compute function.
	Misses uint64

	// Failures is the number of compute calls that returned an error.
	Failures uint64

	// HitRate is Hits / (Hits + Misses), or 0 when no lookups were made.
	HitRate float64
}

// Memo is a thread-safe, unbounded memo table.
//
// A single mutex guards both the lookup and the insert, and the compute
// function runs with that mutex held. For any key, a successful compute runs
// at most once across all goroutines. Failed computes are not memoized.
//
// Entries are never evicted.
type Memo[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]V

	hits     atomic.Uint64
	misses   atomic.Uint64
	failures atomic.Uint64
}

// New creates an empty memo table.
func New[K comparable, V any]() *Memo[K, V] {
	return &Memo[K, V]{
		entries: make(map[K]V),
	}
}

// Get returns the memoized value for key, if any.
func (m *Memo[K, V]) Get(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.entries[key]
	return v, ok
}

// GetOrCompute returns the memoized value for key, or runs compute and
// memoizes its result.
//
// compute is called with the table lock held, so concurrent callers asking
// for the same missing key wait for the first one instead of computing again.
// Keep compute short: it blocks every other key as well.
//
// If compute returns an error, nothing is stored and the error is returned.
// The next call for the same key computes again.
func (m *Memo[K, V]) GetOrCompute(key K, compute func(K) (V, error)) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.entries[key]; ok {
		m.hits.Add(1)
		return v, nil
	}

	m.misses.Add(1)
	v, err := compute(key)
	if err != nil {
		m.failures.Add(1)
		var zero V
		return zero, err
	}
	m.entries[key] = v
	return v, nil
}

// Len returns the number of memoized keys.
func (m *Memo[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Keys returns a snapshot of the memoized keys in unspecified order.
func (m *Memo[K, V]) Keys() []K {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]K, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return keys
}

// Stats returns current statistics.
func (m *Memo[K, V]) Stats() Stats {
	hits := m.hits.Load()
	misses := m.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Len:      m.Len(),
		Hits:     hits,
		Misses:   misses,
		Failures: m.failures.Load(),
		HitRate:  hitRate,
	}
}
