package opticalflow

import (
	"errors"
	"fmt"
	"sync"

	"github.com/eapache/queue"
)

// Pool errors.
var (
	// ErrMemoryBudgetExceeded is returned when an allocation would exceed
	// the pool budget even after evicting idle buffers.
	ErrMemoryBudgetExceeded = errors.New("opticalflow: memory budget exceeded")

	// ErrPoolClosed is returned when acquiring from a closed pool.
	ErrPoolClosed = errors.New("opticalflow: pool closed")
)

// Default pool limits.
const (
	// DefaultMaxMemoryMB is the default device memory budget (256 MB).
	DefaultMaxMemoryMB = 256

	// MinMemoryMB is the minimum allowed budget (16 MB).
	MinMemoryMB = 16

	// DefaultMaxIdlePerDescriptor is the default number of idle buffers kept
	// for each distinct descriptor.
	DefaultMaxIdlePerDescriptor = 4
)

// PoolConfig holds configuration for creating a Pool.
type PoolConfig struct {
	// MaxMemoryMB is the device memory budget in megabytes.
	// Values below MinMemoryMB select DefaultMaxMemoryMB.
	MaxMemoryMB int

	// MaxIdlePerDescriptor caps idle buffers per descriptor.
	// Defaults to DefaultMaxIdlePerDescriptor if <= 0.
	MaxIdlePerDescriptor int
}

// PoolStats contains pool usage statistics.
type PoolStats struct {
	// TotalBytes is the memory budget in bytes.
	TotalBytes uint64

	// UsedBytes is the padded size of all buffers the pool tracks.
	UsedBytes uint64

	// AvailableBytes is the remaining budget.
	AvailableBytes uint64

	// Live is the number of buffers handed out and not yet released.
	Live int

	// Idle is the number of buffers waiting for reuse.
	Idle int

	// Allocations counts buffers created by the pool.
	Allocations uint64

	// Reuses counts Acquire calls served from the idle set.
	Reuses uint64

	// Evictions counts idle buffers destroyed to make room.
	Evictions uint64

	// Utilization is UsedBytes / TotalBytes (0.0 to 1.0).
	Utilization float64
}

// String returns a human-readable string of pool stats.
func (s PoolStats) String() string {
	return fmt.Sprintf("Pool[%.1f%% used, %d/%d MB, %d live, %d idle, %d reuses, %d evictions]",
		s.Utilization*100,
		s.UsedBytes/(1024*1024),
		s.TotalBytes/(1024*1024),
		s.Live,
		s.Idle,
		s.Reuses,
		s.Evictions)
}

// poolEntry tracks one buffer owned by the pool.
type poolEntry struct {
	buf       *Buffer
	sizeBytes uint64
	idle      bool
	// seq identifies the current idle period; queue items from earlier
	// periods are stale.
	seq uint64
}

// idleItem is a queue element referring to an idle period of a buffer.
type idleItem struct {
	buf *Buffer
	seq uint64
}

// Pool recycles optical flow buffers and enforces a device memory budget.
//
// Buffers handed out by Acquire are exclusively owned by the caller until
// Release. Idle buffers are reused first-in first-out per descriptor and
// evicted oldest-first across descriptors when room is needed.
//
// Pool is safe for concurrent use.
type Pool struct {
	mu sync.Mutex

	session Handle
	api     FunctionList

	budgetBytes uint64
	usedBytes   uint64
	maxIdle     int

	entries map[*Buffer]*poolEntry

	// idle holds a FIFO of idleItem per descriptor.
	idle      map[BufferDescriptor]*queue.Queue
	idleCount map[BufferDescriptor]int
	idleTotal int

	// idleOrder holds every idleItem in release order, for eviction.
	idleOrder *queue.Queue
	nextSeq   uint64

	allocations uint64
	reuses      uint64
	evictions   uint64

	closed bool
}

// NewPool creates a pool allocating on session through api.
func NewPool(session Handle, api FunctionList, config PoolConfig) *Pool {
	maxMB := config.MaxMemoryMB
	if maxMB < MinMemoryMB {
		maxMB = DefaultMaxMemoryMB
	}
	maxIdle := config.MaxIdlePerDescriptor
	if maxIdle <= 0 {
		maxIdle = DefaultMaxIdlePerDescriptor
	}

	//nolint:gosec // G115: maxMB is bounded by MinMemoryMB minimum
	return &Pool{
		session:     session,
		api:         api,
		budgetBytes: uint64(maxMB) * 1024 * 1024,
		maxIdle:     maxIdle,
		entries:     make(map[*Buffer]*poolEntry),
		idle:        make(map[BufferDescriptor]*queue.Queue),
		idleCount:   make(map[BufferDescriptor]int),
		idleOrder:   queue.New(),
	}
}

// Acquire returns a buffer with the given geometry, reusing an idle one when
// possible. The caller owns the buffer until it passes it to Release.
func (p *Pool) Acquire(width, height int, usage BufferUsage, format BufferFormat) (*Buffer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrPoolClosed
	}
	if err := checkDimensions(width, height); err != nil {
		return nil, err
	}

	//nolint:gosec // G115: checkDimensions bounds both to uint32
	desc := NewBufferDescriptor(uint32(width), uint32(height), format, usage)
	if b := p.popIdleLocked(desc); b != nil {
		p.reuses++
		return b, nil
	}

	required := desc.estimatedBytes()
	if required > p.budgetBytes {
		return nil, fmt.Errorf("%w: buffer %s needs %d MB, total budget %d MB",
			ErrMemoryBudgetExceeded, desc, required/(1024*1024), p.budgetBytes/(1024*1024))
	}
	if err := p.evictIfNeededLocked(required); err != nil {
		return nil, err
	}

	b, err := NewBuffer(p.session, width, height, p.api, usage, format)
	if err != nil {
		return nil, err
	}

	// The vendor pitch can exceed the estimate; admit on the real size.
	size := b.SizeBytes()
	if size > p.budgetBytes {
		b.Close()
		return nil, fmt.Errorf("%w: buffer %s needs %d MB, total budget %d MB",
			ErrMemoryBudgetExceeded, desc, size/(1024*1024), p.budgetBytes/(1024*1024))
	}
	if err := p.evictIfNeededLocked(size); err != nil {
		b.Close()
		return nil, err
	}

	p.entries[b] = &poolEntry{buf: b, sizeBytes: size}
	p.usedBytes += size
	p.allocations++
	b.pool = p

	return b, nil
}

// Release returns a buffer obtained from Acquire to the pool. The caller
// must not use it afterwards.
//
// The buffer is destroyed instead of kept when its descriptor already has
// MaxIdlePerDescriptor idle buffers or the pool is closed. Buffers the pool
// does not own, already released, or already closed are ignored.
func (p *Pool) Release(b *Buffer) {
	if b == nil || b.IsClosed() {
		return
	}

	p.mu.Lock()
	entry, ok := p.entries[b]
	if !ok || entry.idle {
		p.mu.Unlock()
		return
	}

	desc := b.Descriptor()
	if p.closed || p.idleCount[desc] >= p.maxIdle {
		p.removeLocked(entry)
		p.mu.Unlock()
		b.Close()
		return
	}

	p.pushIdleLocked(entry)
	p.mu.Unlock()
}

// Stats returns current pool statistics.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	var utilization float64
	if p.budgetBytes > 0 {
		utilization = float64(p.usedBytes) / float64(p.budgetBytes)
	}

	return PoolStats{
		TotalBytes:     p.budgetBytes,
		UsedBytes:      p.usedBytes,
		AvailableBytes: p.availableLocked(),
		Live:           len(p.entries) - p.idleTotal,
		Idle:           p.idleTotal,
		Allocations:    p.allocations,
		Reuses:         p.reuses,
		Evictions:      p.evictions,
		Utilization:    utilization,
	}
}

// SetBudget updates the memory budget. Idle buffers are evicted if the pool
// is now over budget; an error is returned if that is not enough.
func (p *Pool) SetBudget(megabytes int) error {
	if megabytes < MinMemoryMB {
		megabytes = MinMemoryMB
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}

	//nolint:gosec // G115: megabytes bounded by MinMemoryMB minimum
	p.budgetBytes = uint64(megabytes) * 1024 * 1024
	return p.evictIfNeededLocked(0)
}

// Close destroys all idle buffers. Buffers still held by callers are
// destroyed when they are released. Close is idempotent.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	for _, entry := range p.entries {
		if entry.idle {
			p.removeLocked(entry)
			entry.buf.Close()
		}
	}
	p.idle = make(map[BufferDescriptor]*queue.Queue)
	p.idleOrder = queue.New()
}

// forget drops a buffer closed directly by its owner.
func (p *Pool) forget(b *Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if entry, ok := p.entries[b]; ok {
		p.removeLocked(entry)
	}
}

// removeLocked stops tracking entry. It clears the buffer's pool reference
// so a following Close does not call back into the pool. Caller must hold mu.
func (p *Pool) removeLocked(entry *poolEntry) {
	if entry.idle {
		entry.idle = false
		p.idleCount[entry.buf.desc]--
		p.idleTotal--
	}
	delete(p.entries, entry.buf)
	p.usedBytes -= entry.sizeBytes
	entry.buf.pool = nil
}

func (p *Pool) pushIdleLocked(entry *poolEntry) {
	p.nextSeq++
	entry.idle = true
	entry.seq = p.nextSeq

	desc := entry.buf.desc
	q, ok := p.idle[desc]
	if !ok {
		q = queue.New()
		p.idle[desc] = q
	}
	item := idleItem{buf: entry.buf, seq: entry.seq}
	q.Add(item)
	p.idleOrder.Add(item)
	p.idleCount[desc]++
	p.idleTotal++

	p.compactLocked()
}

// validLocked returns the entry an idle item refers to, if that idle period
// is still current.
func (p *Pool) validLocked(item idleItem) (*poolEntry, bool) {
	entry, ok := p.entries[item.buf]
	if !ok || !entry.idle || entry.seq != item.seq {
		return nil, false
	}
	return entry, true
}

func (p *Pool) popIdleLocked(desc BufferDescriptor) *Buffer {
	q, ok := p.idle[desc]
	if !ok {
		return nil
	}
	for q.Length() > 0 {
		item, _ := q.Remove().(idleItem)
		entry, ok := p.validLocked(item)
		if !ok {
			continue
		}
		entry.idle = false
		p.idleCount[desc]--
		p.idleTotal--
		entry.buf.pool = p
		return entry.buf
	}
	return nil
}

// evictIfNeededLocked destroys idle buffers, oldest first, until required
// more bytes fit in the budget. Caller must hold mu.
func (p *Pool) evictIfNeededLocked(required uint64) error {
	for p.usedBytes+required > p.budgetBytes && p.idleOrder.Length() > 0 {
		item, _ := p.idleOrder.Remove().(idleItem)
		entry, ok := p.validLocked(item)
		if !ok {
			continue
		}

		buf := entry.buf
		p.removeLocked(entry)
		buf.Close()
		p.evictions++

		slogger().Warn("opticalflow: evicted idle buffer", "desc", buf.desc.String(), "bytes", entry.sizeBytes)
	}

	if p.usedBytes+required > p.budgetBytes {
		return fmt.Errorf("%w: need %d bytes, have %d bytes available",
			ErrMemoryBudgetExceeded, required, p.availableLocked())
	}
	return nil
}

func (p *Pool) availableLocked() uint64 {
	if p.usedBytes >= p.budgetBytes {
		return 0
	}
	return p.budgetBytes - p.usedBytes
}

// compactLocked drops stale queue items once they dominate the queues.
func (p *Pool) compactLocked() {
	if p.idleOrder.Length() <= 2*p.idleTotal+16 {
		return
	}

	order := queue.New()
	for p.idleOrder.Length() > 0 {
		item, _ := p.idleOrder.Remove().(idleItem)
		if _, ok := p.validLocked(item); ok {
			order.Add(item)
		}
	}
	p.idleOrder = order

	for desc, q := range p.idle {
		fresh := queue.New()
		for q.Length() > 0 {
			item, _ := q.Remove().(idleItem)
			if _, ok := p.validLocked(item); ok {
				fresh.Add(item)
			}
		}
		if fresh.Length() == 0 {
			delete(p.idle, desc)
			continue
		}
		p.idle[desc] = fresh
	}
}
