package segdeque

import (
	"slices"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/segdeque/algo"
	"github.com/hupe1980/segdeque/alloc"
	"github.com/hupe1980/segdeque/testutil"
)

func TestInsert_ShiftsShorterSide(t *testing.T) {
	const n = 37
	for p := 0; p <= n; p++ {
		m := &BasicMetricsCollector{}
		d := mustFromSlice(t, seq(n), WithSegmentLen(4), WithMetrics(m))

		c, err := d.Insert(d.Begin().Advance(p), -1)
		require.NoError(t, err)

		assert.Equal(t, -1, c.Value())
		assert.Equal(t, p, c.Index())
		assert.Equal(t, slices.Insert(seq(n), p, -1), d.Slice())
		assert.LessOrEqual(t, m.GetStats().ShiftedElements, int64(min(p, n-p)), "p=%d", p)
		require.NoError(t, d.CheckInvariants())
	}
}

func TestErase_ShiftsShorterSide(t *testing.T) {
	const n = 37
	for p := 0; p < n; p++ {
		m := &BasicMetricsCollector{}
		d := mustFromSlice(t, seq(n), WithSegmentLen(4), WithMetrics(m))

		c := d.Erase(d.Begin().Advance(p))

		assert.Equal(t, p, c.Index())
		if p < n-1 {
			assert.Equal(t, p+1, c.Value())
		} else {
			assert.True(t, c.Equal(d.End()))
		}
		assert.Equal(t, slices.Delete(seq(n), p, p+1), d.Slice())
		assert.LessOrEqual(t, m.GetStats().ShiftedElements, int64(min(p, n-p-1)), "p=%d", p)
		require.NoError(t, d.CheckInvariants())
	}
}

func TestInsertErase_RoundTrip(t *testing.T) {
	for _, segLen := range []int{1, 2, 4, 8} {
		const n = 25
		for p := 0; p <= n; p++ {
			d := mustFromSlice(t, seq(n), WithSegmentLen(segLen))

			c, err := d.Insert(d.Begin().Advance(p), 99)
			require.NoError(t, err)
			d.Erase(c)

			require.Equal(t, seq(n), d.Slice(), "segLen=%d p=%d", segLen, p)
			require.Equal(t, n, d.Len())
			require.NoError(t, d.CheckInvariants())
		}
	}
}

func TestEraseRange(t *testing.T) {
	const n = 40
	tests := []struct {
		name     string
		from, to int
	}{
		{"empty range", 10, 10},
		{"prefix", 0, 13},
		{"suffix", 27, 40},
		{"everything", 0, 40},
		{"near front", 3, 9},
		{"near back", 30, 38},
		{"middle", 12, 28},
		{"single", 20, 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			heap := alloc.NewHeap[int]()
			d := mustFromSlice(t, seq(n), WithSegmentLen(4), WithAllocator[int](heap))

			c, err := d.EraseRange(d.Begin().Advance(tt.from), d.Begin().Advance(tt.to))
			require.NoError(t, err)

			want := slices.Delete(seq(n), tt.from, tt.to)
			assert.Equal(t, want, d.Slice())
			assert.Equal(t, tt.from, c.Index())
			assert.NoError(t, d.CheckInvariants())

			// Only the segments spanned by the remaining elements stay allocated.
			used := d.end.slot - d.begin.slot + 1
			assert.Equal(t, int64(used), heap.Stats().LiveBlocks)
		})
	}

	t.Run("reversed", func(t *testing.T) {
		d := mustFromSlice(t, seq(n), WithSegmentLen(4))
		_, err := d.EraseRange(d.Begin().Advance(5), d.Begin().Advance(2))
		assert.True(t, errors.Is(err, ErrInvalidCursor))
		assert.Equal(t, seq(n), d.Slice())
	})
}

func TestBulkInsert(t *testing.T) {
	const n = 21
	vals := []int{100, 101, 102, 103, 104, 105, 106, 107, 108}

	for _, p := range []int{0, 1, 5, 10, 16, 20, n} {
		want := slices.Insert(seq(n), p, vals...)

		t.Run("slice", func(t *testing.T) {
			d := mustFromSlice(t, seq(n), WithSegmentLen(4))
			c, err := d.InsertSlice(d.Begin().Advance(p), vals)
			require.NoError(t, err)
			assert.Equal(t, want, d.Slice())
			assert.Equal(t, p, c.Index())
			assert.NoError(t, d.CheckInvariants())
		})

		t.Run("func", func(t *testing.T) {
			d := mustFromSlice(t, seq(n), WithSegmentLen(4))
			c, err := d.InsertFunc(d.Begin().Advance(p), len(vals), func(i int) (int, error) { return vals[i], nil })
			require.NoError(t, err)
			assert.Equal(t, want, d.Slice())
			assert.Equal(t, p, c.Index())
		})

		t.Run("seq", func(t *testing.T) {
			d := mustFromSlice(t, seq(n), WithSegmentLen(4))
			_, err := d.InsertSeq(d.Begin().Advance(p), slices.Values(vals))
			require.NoError(t, err)
			assert.Equal(t, want, d.Slice())
		})

		t.Run("range", func(t *testing.T) {
			d := mustFromSlice(t, seq(n), WithSegmentLen(4))
			first, last := algo.Range(vals)
			_, err := InsertRange(d, d.Begin().Advance(p), first, last)
			require.NoError(t, err)
			assert.Equal(t, want, d.Slice())
		})

		t.Run("single pass range", func(t *testing.T) {
			d := mustFromSlice(t, seq(n), WithSegmentLen(4))
			first, last := algo.Range(vals)
			_, err := InsertRange(d, d.Begin().Advance(p), algo.Limit[int](first, algo.Input), algo.Limit[int](last, algo.Input))
			require.NoError(t, err)
			assert.Equal(t, want, d.Slice())
		})

		t.Run("copies", func(t *testing.T) {
			d := mustFromSlice(t, seq(n), WithSegmentLen(4))
			_, err := d.InsertN(d.Begin().Advance(p), 6, 7)
			require.NoError(t, err)
			assert.Equal(t, slices.Insert(seq(n), p, slices.Repeat([]int{7}, 6)...), d.Slice())
		})
	}
}

func TestInsert_Emplace(t *testing.T) {
	d, err := New[string](WithSegmentLen(2))
	require.NoError(t, err)

	require.NoError(t, d.EmplaceBack(func() (string, error) { return "b", nil }))
	require.NoError(t, d.EmplaceFront(func() (string, error) { return "a", nil }))
	c, err := d.Emplace(d.End().Prev(), func() (string, error) { return "ab", nil })
	require.NoError(t, err)
	assert.Equal(t, "ab", c.Value())
	assert.Equal(t, []string{"a", "ab", "b"}, d.Slice())

	boom := errors.New("boom")
	err = d.EmplaceBack(func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
	err = d.EmplaceFront(func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
	_, err = d.Emplace(d.Begin().Next(), func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a", "ab", "b"}, d.Slice())
}

// TestScenarioE_ConstructorFailureDuringFrontGrowth checks that a bulk
// insert whose generator fails leaves the deque exactly as it was and
// returns every segment it allocated.
func TestScenarioE_ConstructorFailureDuringFrontGrowth(t *testing.T) {
	tests := []struct {
		name      string
		indexSize int
		grows     bool
	}{
		{"headroom available", DefaultIndexSize, false},
		{"index reallocated", 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			heap := alloc.NewHeap[int]()
			m := &BasicMetricsCollector{}
			d := mustFromSlice(t, seq(10),
				WithSegmentLen(4), WithInitialIndexSize(tt.indexSize),
				WithAllocator[int](heap), WithMetrics(m))
			live := heap.Stats().LiveBlocks

			_, err := d.InsertFunc(d.Begin(), 5, testutil.FailAt(3, func(i int) int { return 100 + i }))
			require.Error(t, err)
			assert.ErrorIs(t, err, testutil.ErrInjected)

			assert.Equal(t, 10, d.Len())
			assert.Equal(t, seq(10), d.Slice())
			assert.Equal(t, live, heap.Stats().LiveBlocks)
			assert.Equal(t, live, m.GetStats().LiveSegments)
			assert.Equal(t, tt.grows, m.GetStats().IndexGrowths > 0)
			assert.Greater(t, heap.Stats().Allocations, uint64(live))
			assert.NoError(t, d.CheckInvariants())

			// The deque is fully usable afterwards.
			_, err = d.InsertFunc(d.Begin(), 5, func(i int) (int, error) { return 100 + i, nil })
			require.NoError(t, err)
			assert.Equal(t, slices.Concat([]int{100, 101, 102, 103, 104}, seq(10)), d.Slice())
		})
	}
}

func TestInsertFunc_ConstructorFailure(t *testing.T) {
	positions := map[string]int{"back": 10, "interior": 4}

	for name, p := range positions {
		t.Run(name, func(t *testing.T) {
			heap := alloc.NewHeap[int]()
			d := mustFromSlice(t, seq(10), WithSegmentLen(4), WithAllocator[int](heap))
			live := heap.Stats().LiveBlocks

			_, err := d.InsertFunc(d.Begin().Advance(p), 9, testutil.FailAt(7, func(i int) int { return i }))
			assert.ErrorIs(t, err, testutil.ErrInjected)

			assert.Equal(t, seq(10), d.Slice())
			assert.Equal(t, live, heap.Stats().LiveBlocks)
			assert.NoError(t, d.CheckInvariants())
		})
	}
}

func TestInsert_AllocationFailure(t *testing.T) {
	heap := alloc.NewHeap[int]()
	a := testutil.NewFailingAllocator[int](heap, -1)
	d := mustFromSlice(t, seq(10), WithSegmentLen(4), WithAllocator[int](a))
	live := heap.Stats().LiveBlocks

	// Two segments are needed; the second allocation fails.
	a.FailAfter(1)
	_, err := d.InsertN(d.Begin(), 6, -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCapacityExhausted))
	assert.Equal(t, seq(10), d.Slice())
	assert.Equal(t, live, heap.Stats().LiveBlocks)

	a.FailAfter(0)
	_, err = d.InsertN(d.End(), 6, -1)
	assert.True(t, errors.Is(err, ErrCapacityExhausted))
	_, err = d.Insert(d.Begin().Advance(2), -1)
	assert.True(t, errors.Is(err, ErrCapacityExhausted))
	_, err = d.InsertSlice(d.Begin().Advance(7), []int{-1, -2, -3})
	assert.True(t, errors.Is(err, ErrCapacityExhausted))

	assert.Equal(t, seq(10), d.Slice())
	assert.Equal(t, live, heap.Stats().LiveBlocks)
	assert.NoError(t, d.CheckInvariants())
}

func TestInsert_LengthError(t *testing.T) {
	heap := alloc.NewHeap[int]()
	d := mustFromSlice(t, seq(3), WithAllocator[int](heap))
	allocations := heap.Stats().Allocations

	_, err := d.InsertN(d.End(), d.MaxLen(), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLength)

	var le *LengthError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 3, le.Len)
	assert.Equal(t, d.MaxLen(), le.Max)

	_, err = d.InsertN(d.Begin(), -1, 0)
	assert.ErrorIs(t, err, ErrLength)
	assert.Equal(t, allocations, heap.Stats().Allocations)
}

func TestAssignAndResize(t *testing.T) {
	d := mustFromSlice(t, seq(20), WithSegmentLen(4))

	require.NoError(t, d.Assign(5, 9))
	assert.Equal(t, slices.Repeat([]int{9}, 5), d.Slice())

	require.NoError(t, d.AssignSlice(seq(30)))
	assert.Equal(t, seq(30), d.Slice())

	require.NoError(t, d.AssignSeq(slices.Values([]int{3, 2, 1})))
	assert.Equal(t, []int{3, 2, 1}, d.Slice())

	require.NoError(t, d.Resize(6))
	assert.Equal(t, []int{3, 2, 1, 0, 0, 0}, d.Slice())

	require.NoError(t, d.ResizeWith(8, 5))
	assert.Equal(t, []int{3, 2, 1, 0, 0, 0, 5, 5}, d.Slice())

	require.NoError(t, d.Resize(2))
	assert.Equal(t, []int{3, 2}, d.Slice())

	require.NoError(t, d.Resize(0))
	assert.True(t, d.Empty())
	assert.NoError(t, d.CheckInvariants())

	assert.ErrorIs(t, d.Resize(-1), ErrLength)
	assert.ErrorIs(t, d.Assign(-1, 0), ErrLength)

	require.NoError(t, d.AssignSlice([]int{1, 2, 3}))
	var lerr *LengthError
	require.ErrorAs(t, d.Assign(-1, 0), &lerr)
	assert.Equal(t, 3, lerr.Len)
	assert.Equal(t, -4, lerr.Add)
}
