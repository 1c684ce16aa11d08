package segdeque

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/segdeque/alloc"
	"github.com/hupe1980/segdeque/resource"
	"github.com/hupe1980/segdeque/testutil"
)

func TestPos_Add(t *testing.T) {
	tests := []struct {
		name string
		p    pos
		n    int
		want pos
	}{
		{"within segment", pos{2, 1}, 2, pos{2, 3}},
		{"to next segment", pos{0, 3}, 1, pos{1, 0}},
		{"across segments", pos{0, 0}, 9, pos{2, 1}},
		{"back within segment", pos{1, 3}, -3, pos{1, 0}},
		{"to previous segment", pos{1, 0}, -1, pos{0, 3}},
		{"back across segments", pos{2, 0}, -9, pos{-1, 3}},
		{"exact multiple back", pos{3, 2}, -10, pos{1, 0}},
		{"zero", pos{5, 2}, 0, pos{5, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.add(tt.n, 4)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.n, got.sub(tt.p, 4))
		})
	}
}

func TestPos_AddMatchesUnitSteps(t *testing.T) {
	for _, segLen := range []int{1, 2, 3, 4, 7} {
		start := pos{slot: 10, off: segLen / 2}
		fwd, back := start, start
		for n := 0; n <= 40; n++ {
			require.Equal(t, fwd, start.add(n, segLen), "segLen=%d n=%d", segLen, n)
			require.Equal(t, back, start.add(-n, segLen), "segLen=%d n=%d", segLen, -n)
			fwd = fwd.next(segLen)
			back = back.prev(segLen)
		}
	}
}

func TestInitIndex_Centered(t *testing.T) {
	tests := []struct {
		n          int
		size       int
		begin, end pos
	}{
		{0, 8, pos{3, 0}, pos{3, 0}},
		{10, 8, pos{2, 0}, pos{4, 2}},
		{12, 8, pos{2, 0}, pos{5, 0}},
		{40, 13, pos{1, 0}, pos{11, 0}},
	}

	for _, tt := range tests {
		d, err := NewSized[int](tt.n, WithSegmentLen(4))
		require.NoError(t, err)

		assert.Len(t, d.slots, tt.size, "n=%d", tt.n)
		assert.Equal(t, tt.begin, d.begin, "n=%d", tt.n)
		assert.Equal(t, tt.end, d.end, "n=%d", tt.n)
		assert.Equal(t, tt.n, d.Len())
		assert.NoError(t, d.CheckInvariants())
	}
}

func TestGrowIndex_Back(t *testing.T) {
	m := &BasicMetricsCollector{}
	d, err := New[int](WithSegmentLen(4), WithMetrics(m))
	require.NoError(t, err)

	// Slots 3..7 hold 19 elements with the end position in slot 7.
	for i := 0; i < 19; i++ {
		require.NoError(t, d.PushBack(i))
	}
	assert.Equal(t, 8, d.Stats().IndexSlots)
	assert.Equal(t, int64(0), m.GetStats().IndexGrowths)
	c := d.Begin()

	require.NoError(t, d.PushBack(19))

	stats := d.Stats()
	assert.Equal(t, 17, stats.IndexSlots)
	assert.Equal(t, 5, stats.FrontHeadroom)
	assert.Equal(t, 6, stats.BackHeadroom)
	assert.Equal(t, 6, stats.Segments)
	assert.Equal(t, int64(1), m.GetStats().BackIndexGrowths)
	assert.Equal(t, int64(17), m.GetStats().MaxIndexSlots)
	assert.True(t, errors.Is(d.CheckCursor(c), ErrInvalidCursor))
	assert.Equal(t, seq(20), d.Slice())
	assert.NoError(t, d.CheckInvariants())
}

func TestGrowIndex_Front(t *testing.T) {
	m := &BasicMetricsCollector{}
	d, err := New[int](WithSegmentLen(4), WithMetrics(m))
	require.NoError(t, err)

	// Slots 0..2 take 12 elements in front of the initial segment.
	for i := 0; i < 12; i++ {
		require.NoError(t, d.PushFront(i))
	}
	assert.Equal(t, 0, d.Stats().FrontHeadroom)
	assert.Equal(t, 8, d.Stats().IndexSlots)

	require.NoError(t, d.PushFront(12))

	stats := d.Stats()
	assert.Equal(t, 17, stats.IndexSlots)
	assert.Equal(t, 6, stats.FrontHeadroom)
	assert.Equal(t, 6, stats.BackHeadroom)
	assert.Equal(t, int64(1), m.GetStats().FrontIndexGrowths)
	assert.Equal(t, 3, d.begin.off)

	v, _ := d.Front()
	assert.Equal(t, 12, v)
	assert.Equal(t, 13, d.Len())
	assert.NoError(t, d.CheckInvariants())
}

func TestGrowIndex_AllocationFailureKeepsIndex(t *testing.T) {
	heap := alloc.NewHeap[int]()
	// One segment for New, four more for slots 4..7.
	a := testutil.NewFailingAllocator[int](heap, 5)
	m := &BasicMetricsCollector{}
	d, err := New[int](WithSegmentLen(4), WithAllocator[int](a), WithMetrics(m))
	require.NoError(t, err)

	for i := 0; i < 19; i++ {
		require.NoError(t, d.PushBack(i))
	}
	before := d.Stats()

	err = d.PushBack(19)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCapacityExhausted))
	assert.True(t, errors.Is(err, alloc.ErrOutOfMemory))
	assert.True(t, errors.Is(err, testutil.ErrInjected))

	assert.Equal(t, before, d.Stats())
	assert.Equal(t, seq(19), d.Slice())
	assert.Equal(t, int64(5), heap.Stats().LiveBlocks)
	assert.Equal(t, int64(1), m.GetStats().AllocationFailures)
	assert.Equal(t, int64(0), m.GetStats().IndexGrowths)
	assert.NoError(t, d.CheckInvariants())

	a.FailAfter(-1)
	require.NoError(t, d.PushBack(19))
	assert.Equal(t, seq(20), d.Slice())
}

func TestGrowIndex_IndexTooLarge(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})
	m := &BasicMetricsCollector{}
	d, err := New[int](WithAllocator[int](alloc.NewBudget[int](rc)), WithMetrics(m))
	require.NoError(t, err)
	require.NoError(t, d.PushBack(1))
	before := d.Stats()
	used := rc.MemoryUsage()

	err = d.ReserveBack(d.MaxLen() / 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCapacityExhausted))

	_, err = d.InsertN(d.End(), d.MaxLen()-d.Len(), 0)
	assert.True(t, errors.Is(err, ErrCapacityExhausted))

	assert.Equal(t, before, d.Stats())
	assert.Equal(t, used, rc.MemoryUsage())
	assert.Equal(t, int64(2), m.GetStats().AllocationFailures)
	assert.Equal(t, int64(0), m.GetStats().IndexGrowths)
	assert.Equal(t, []int{1}, d.Slice())
	assert.NoError(t, d.CheckInvariants())
}

func TestMaxIndexSlots(t *testing.T) {
	small := &Deque[int]{segLen: 512, indexMin: 8}
	assert.Equal(t, maxIndexBytes/24, small.maxIndexSlots())

	large := &Deque[[1 << 20]byte]{segLen: 16, indexMin: 8}
	assert.Equal(t, large.MaxLen()/16+18, large.maxIndexSlots())
}

func TestGrowIndex_ReusesSpareSegments(t *testing.T) {
	heap := alloc.NewHeap[int]()
	d, err := New[int](WithSegmentLen(4), WithAllocator[int](heap))
	require.NoError(t, err)

	// Spares in slots 4..7, then an insert that needs six segments.
	require.NoError(t, d.PushBack(0))
	require.NoError(t, d.ReserveBack(18))
	assert.Equal(t, 4, d.Stats().SpareSegments)

	_, err = d.InsertN(d.End(), 26, 1)
	require.NoError(t, err)

	assert.Equal(t, int64(7), heap.Stats().LiveBlocks)
	assert.Equal(t, 0, d.Stats().SpareSegments)
	assert.Equal(t, 22, d.Stats().IndexSlots)
	assert.Equal(t, 27, d.Len())
	assert.NoError(t, d.CheckInvariants())
}

func TestReserveAndShrinkToFit(t *testing.T) {
	heap := alloc.NewHeap[int]()
	d, err := New[int](WithSegmentLen(4), WithAllocator[int](heap))
	require.NoError(t, err)

	require.NoError(t, d.ReserveBack(10))
	stats := d.Stats()
	assert.Equal(t, 3, stats.Segments)
	assert.Equal(t, 2, stats.SpareSegments)
	assert.True(t, d.Empty())

	for i := 0; i < 10; i++ {
		require.NoError(t, d.PushBack(i))
	}
	assert.Equal(t, uint64(3), heap.Stats().Allocations)

	require.NoError(t, d.ReserveFront(5))
	assert.Equal(t, 5, d.Stats().Segments)
	assert.Equal(t, 2, d.Stats().SpareSegments)

	d.ShrinkToFit()
	assert.Equal(t, 3, d.Stats().Segments)
	assert.Equal(t, 0, d.Stats().SpareSegments)
	assert.Equal(t, int64(3), heap.Stats().LiveBlocks)
	assert.Equal(t, seq(10), d.Slice())
	assert.NoError(t, d.CheckInvariants())

	assert.ErrorIs(t, d.ReserveBack(-1), ErrLength)
}
