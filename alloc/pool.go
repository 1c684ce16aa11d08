package alloc

import "sync"

// DefaultPoolSize is the default number of blocks a Pool retains.
const DefaultPoolSize = 64

// Compile time check to ensure Pool satisfies the Allocator interface.
var _ Allocator[int] = (*Pool[int])(nil)

// Pool keeps released blocks for reuse in front of an upstream allocator.
//
// Only blocks of the first length the Pool sees are retained; other lengths
// go straight to the upstream allocator. Retained blocks still count against
// the upstream allocator until Drain returns them.
type Pool[T any] struct {
	upstream Allocator[T]
	max      int

	mu       sync.Mutex
	blockLen int
	free     [][]T

	counters counters
	hits     uint64
}

// NewPool creates a Pool retaining at most size blocks. A nil upstream uses a
// Heap allocator; size <= 0 uses DefaultPoolSize.
func NewPool[T any](upstream Allocator[T], size int) *Pool[T] {
	if upstream == nil {
		upstream = NewHeap[T]()
	}
	if size <= 0 {
		size = DefaultPoolSize
	}
	return &Pool[T]{upstream: upstream, max: size}
}

// Allocate implements Allocator.
func (p *Pool[T]) Allocate(n int) ([]T, error) {
	p.mu.Lock()
	if n > 0 && n == p.blockLen && len(p.free) > 0 {
		last := len(p.free) - 1
		buf := p.free[last]
		p.free[last] = nil
		p.free = p.free[:last]
		p.hits++
		p.mu.Unlock()

		p.counters.allocated(n)
		return buf, nil
	}
	p.mu.Unlock()

	buf, err := p.upstream.Allocate(n)
	if err != nil {
		p.counters.failed()
		return nil, err
	}
	p.counters.allocated(n)
	return buf, nil
}

// Deallocate implements Allocator.
func (p *Pool[T]) Deallocate(buf []T) {
	if buf == nil {
		return
	}
	p.counters.deallocated(len(buf))

	// A retained block must not hold references.
	Destroy(buf)

	p.mu.Lock()
	if p.blockLen == 0 {
		p.blockLen = len(buf)
	}
	if len(buf) == p.blockLen && len(p.free) < p.max {
		p.free = append(p.free, buf)
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.upstream.Deallocate(buf)
}

// Drain returns every retained block to the upstream allocator.
func (p *Pool[T]) Drain() {
	p.mu.Lock()
	free := p.free
	p.free = nil
	p.mu.Unlock()

	for _, buf := range free {
		p.upstream.Deallocate(buf)
	}
}

// Retained returns the number of blocks currently held for reuse.
func (p *Pool[T]) Retained() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Hits returns how many Allocate calls were served from the free list.
func (p *Pool[T]) Hits() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits
}

// Stats returns a snapshot of the allocator counters as seen by callers of
// the Pool (retained blocks are not live).
func (p *Pool[T]) Stats() Stats {
	return p.counters.snapshot()
}
