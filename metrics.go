package segdeque

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting deque storage metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// A collector may be shared by many deques, so implementations must be safe
// for concurrent use.
type MetricsCollector interface {
	// RecordSegmentsAllocated is called after n segments were allocated.
	RecordSegmentsAllocated(n int)

	// RecordSegmentsReleased is called after n segments were returned to
	// the allocator.
	RecordSegmentsReleased(n int)

	// RecordIndexGrowth is called after the indirection index was
	// reallocated from oldSlots to newSlots to make room on side.
	RecordIndexGrowth(side Side, oldSlots, newSlots int)

	// RecordAllocationFailure is called when segment allocation failed.
	RecordAllocationFailure(err error)

	// RecordShift is called after an interior insert or erase moved
	// the given number of existing elements to make or close a gap.
	RecordShift(elements int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSegmentsAllocated(int)      {}
func (NoopMetricsCollector) RecordSegmentsReleased(int)       {}
func (NoopMetricsCollector) RecordIndexGrowth(Side, int, int) {}
func (NoopMetricsCollector) RecordAllocationFailure(error)    {}
func (NoopMetricsCollector) RecordShift(int)                  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SegmentsAllocated  atomic.Int64
	SegmentsReleased   atomic.Int64
	IndexGrowths       atomic.Int64
	FrontIndexGrowths  atomic.Int64
	BackIndexGrowths   atomic.Int64
	MaxIndexSlots      atomic.Int64
	AllocationFailures atomic.Int64
	Shifts             atomic.Int64
	ShiftedElements    atomic.Int64
}

// RecordSegmentsAllocated implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSegmentsAllocated(n int) {
	b.SegmentsAllocated.Add(int64(n))
}

// RecordSegmentsReleased implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSegmentsReleased(n int) {
	b.SegmentsReleased.Add(int64(n))
}

// RecordIndexGrowth implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIndexGrowth(side Side, oldSlots, newSlots int) {
	b.IndexGrowths.Add(1)
	if side == Front {
		b.FrontIndexGrowths.Add(1)
	} else {
		b.BackIndexGrowths.Add(1)
	}
	for {
		cur := b.MaxIndexSlots.Load()
		if int64(newSlots) <= cur || b.MaxIndexSlots.CompareAndSwap(cur, int64(newSlots)) {
			return
		}
	}
}

// RecordAllocationFailure implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAllocationFailure(error) {
	b.AllocationFailures.Add(1)
}

// RecordShift implements MetricsCollector.
func (b *BasicMetricsCollector) RecordShift(elements int) {
	b.Shifts.Add(1)
	b.ShiftedElements.Add(int64(elements))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SegmentsAllocated:  b.SegmentsAllocated.Load(),
		SegmentsReleased:   b.SegmentsReleased.Load(),
		LiveSegments:       b.SegmentsAllocated.Load() - b.SegmentsReleased.Load(),
		IndexGrowths:       b.IndexGrowths.Load(),
		FrontIndexGrowths:  b.FrontIndexGrowths.Load(),
		BackIndexGrowths:   b.BackIndexGrowths.Load(),
		MaxIndexSlots:      b.MaxIndexSlots.Load(),
		AllocationFailures: b.AllocationFailures.Load(),
		Shifts:             b.Shifts.Load(),
		ShiftedElements:    b.ShiftedElements.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SegmentsAllocated  int64
	SegmentsReleased   int64
	LiveSegments       int64
	IndexGrowths       int64
	FrontIndexGrowths  int64
	BackIndexGrowths   int64
	MaxIndexSlots      int64
	AllocationFailures int64
	Shifts             int64
	ShiftedElements    int64
}
