package alloc

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// ErrOutOfMemory is returned when storage cannot be provided.
var ErrOutOfMemory = errors.New("alloc: out of memory")

// Allocator hands out storage for elements of type T.
type Allocator[T any] interface {
	// Allocate returns zeroed storage for exactly n elements.
	Allocate(n int) ([]T, error)
	// Deallocate returns storage obtained from Allocate. Every element must
	// already be destroyed.
	Deallocate(buf []T)
}

// Stats reports allocator activity.
type Stats struct {
	Allocations   uint64 // Historical: successful Allocate calls
	Deallocations uint64 // Historical: Deallocate calls
	Failures      uint64 // Historical: failed Allocate calls
	LiveBlocks    int64  // Current: blocks handed out and not yet returned
	LiveElements  int64  // Current: element cells in live blocks
}

// Destroy resets every element of buf to the zero value.
func Destroy[T any](buf []T) {
	clear(buf)
}

type counters struct {
	allocations   atomic.Uint64
	deallocations atomic.Uint64
	failures      atomic.Uint64
	liveBlocks    atomic.Int64
	liveElements  atomic.Int64
}

func (c *counters) allocated(n int) {
	c.allocations.Add(1)
	c.liveBlocks.Add(1)
	c.liveElements.Add(int64(n))
}

func (c *counters) deallocated(n int) {
	c.deallocations.Add(1)
	c.liveBlocks.Add(-1)
	c.liveElements.Add(-int64(n))
}

func (c *counters) failed() {
	c.failures.Add(1)
}

func (c *counters) snapshot() Stats {
	return Stats{
		Allocations:   c.allocations.Load(),
		Deallocations: c.deallocations.Load(),
		Failures:      c.failures.Load(),
		LiveBlocks:    c.liveBlocks.Load(),
		LiveElements:  c.liveElements.Load(),
	}
}

func invalidCount(n int) error {
	return errors.Newf("alloc: invalid element count %d", n)
}
