package segdeque

import (
	"math"
	"unsafe"

	"github.com/cockroachdb/errors"

	"github.com/hupe1980/segdeque/internal/conv"
)

const (
	// segmentBytes is the target size of a segment.
	segmentBytes = 4096
	// minSegmentLen is the segment length for elements of 256 bytes or more.
	minSegmentLen = 16
	// maxIndexBytes bounds the indirection index array.
	maxIndexBytes = math.MaxInt >> 16
)

// segmentLenFor returns the default number of elements per segment for T.
func segmentLenFor[T any]() int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	switch {
	case size == 0:
		return segmentBytes
	case size < segmentBytes/minSegmentLen:
		return segmentBytes / size
	default:
		return minSegmentLen
	}
}

// pos is a position in the indirection index: a slot and an offset into the
// segment that slot owns. Valid positions keep 0 <= off < segment length.
type pos struct {
	slot int
	off  int
}

// add returns p moved n elements. Moves that leave the current segment round
// the slot toward negative infinity, so a sequence of unit steps and a single
// jump land on the same position.
func (p pos) add(n, segLen int) pos {
	if n == 0 {
		return p
	}
	off := p.off + n
	if off >= 0 && off < segLen {
		p.off = off
		return p
	}

	var slots int
	if off > 0 {
		slots = off / segLen
	} else {
		slots = -((-off - 1) / segLen) - 1
	}
	p.slot += slots
	p.off = off - slots*segLen
	return p
}

func (p pos) next(segLen int) pos {
	if p.off+1 < segLen {
		p.off++
		return p
	}
	return pos{slot: p.slot + 1}
}

func (p pos) prev(segLen int) pos {
	if p.off > 0 {
		p.off--
		return p
	}
	return pos{slot: p.slot - 1, off: segLen - 1}
}

// sub returns the number of elements from q to p.
func (p pos) sub(q pos, segLen int) int {
	return segLen*(p.slot-q.slot) + p.off - q.off
}

func (p pos) less(q pos) bool {
	if p.slot != q.slot {
		return p.slot < q.slot
	}
	return p.off < q.off
}

// staged tracks segments allocated for a pending insertion. Until commit is
// called, rollback returns them to the allocator.
//
//	st, err := d.requireCapacity(n, Back, "op")
//	if err != nil {
//		return err
//	}
//	defer st.rollback()
//	...
//	st.commit()
type staged[T any] struct {
	d     *Deque[T]
	slots []int
	done  bool
}

func (s *staged[T]) commit() {
	s.done = true
}

func (s *staged[T]) rollback() {
	if s.done || s.d == nil {
		return
	}
	s.done = true
	for _, i := range s.slots {
		s.d.releaseSlot(i)
	}
}

// initIndex builds an index sized for n elements. The occupied run is
// centered so both ends start with the same headroom.
func (d *Deque[T]) initIndex(n int, op string) error {
	nodes := n/d.segLen + 1
	size := max(d.indexMin, nodes+2)

	slots := make([][]T, size)
	start := (size - nodes) / 2

	st, err := d.allocateInto(slots, start, start+nodes, op)
	if err != nil {
		return err
	}
	st.commit()

	d.slots = slots
	d.begin = pos{slot: start}
	d.end = pos{slot: start + nodes - 1, off: n % d.segLen}
	d.gen++
	return nil
}

// allocateInto allocates a segment for every empty slot in [lo, hi). On
// failure the segments allocated by this call are released and the slots
// are left as they were.
func (d *Deque[T]) allocateInto(slots [][]T, lo, hi int, op string) (staged[T], error) {
	st := staged[T]{d: d}
	for i := lo; i < hi; i++ {
		if slots[i] != nil {
			continue
		}
		seg, err := d.alloc.Allocate(d.segLen)
		if err != nil {
			for _, j := range st.slots {
				d.alloc.Deallocate(slots[j])
				slots[j] = nil
			}
			d.metrics.RecordAllocationFailure(err)
			d.logger.LogAllocationFailure(op, hi-lo, err)
			return staged[T]{}, capacityError(err, op, hi-lo)
		}
		slots[i] = seg
		st.slots = append(st.slots, i)
	}
	if len(st.slots) > 0 {
		d.metrics.RecordSegmentsAllocated(len(st.slots))
	}
	return st, nil
}

// releaseSlot returns the segment owned by slot i. Its elements must already
// be destroyed.
func (d *Deque[T]) releaseSlot(i int) {
	seg := d.slots[i]
	if seg == nil {
		return
	}
	d.slots[i] = nil
	d.deallocate(seg)
}

// releaseSlots releases every segment in slots [lo, hi).
func (d *Deque[T]) releaseSlots(lo, hi int) {
	for i := lo; i < hi; i++ {
		d.releaseSlot(i)
	}
}

func (d *Deque[T]) deallocate(seg []T) {
	d.alloc.Deallocate(seg)
	d.metrics.RecordSegmentsReleased(1)
}

// maxIndexSlots returns the largest index d may allocate: enough slots for
// MaxLen elements plus headroom, and no more than maxIndexBytes.
func (d *Deque[T]) maxIndexSlots() int {
	bySize := maxIndexBytes / int(unsafe.Sizeof([]T(nil)))
	byLen := d.MaxLen()/d.segLen + 2*d.indexMin + 2
	return min(bySize, byLen)
}

// growIndex reallocates the index so that need slots are available on side,
// allocating segments for them. The occupied run is recentered in the new
// array. Segment pointers move; segments themselves are not copied.
//
// If allocation fails the old index is left untouched.
func (d *Deque[T]) growIndex(side Side, need int, op string) (staged[T], error) {
	oldLen := len(d.slots)
	run := d.end.slot - d.begin.slot + 1

	doubled, err := conv.MulInt(oldLen, 2)
	if err != nil {
		return staged[T]{}, capacityError(err, op, need)
	}
	headroom, err := conv.AddInt(need, d.indexMin)
	if err == nil {
		headroom, err = conv.AddInt(oldLen, headroom)
	}
	if err != nil {
		return staged[T]{}, capacityError(err, op, need)
	}
	newLen := max(doubled, headroom)
	if limit := d.maxIndexSlots(); newLen > limit {
		if run+need > limit {
			err := errors.Newf("index of %d slots exceeds limit of %d", run+need, limit)
			d.metrics.RecordAllocationFailure(err)
			d.logger.LogAllocationFailure(op, need, err)
			return staged[T]{}, capacityError(err, op, need)
		}
		newLen = limit
	}

	start := (newLen - run - need) / 2
	first := start // new slot of the current begin segment
	lo, hi := start+run, start+run+need
	if side == Front {
		first = start + need
		lo, hi = start, start+need
	}
	shift := first - d.begin.slot

	slots := make([][]T, newLen)
	for i, seg := range d.slots {
		if seg == nil {
			continue
		}
		if j := i + shift; j >= 0 && j < newLen {
			slots[j] = seg
		}
	}

	st, err := d.allocateInto(slots, lo, hi, op)
	if err != nil {
		return staged[T]{}, err
	}

	// Spare segments that do not fit the new array go back to the allocator.
	for i, seg := range d.slots {
		if seg == nil {
			continue
		}
		if j := i + shift; j < 0 || j >= newLen {
			d.deallocate(seg)
		}
	}

	d.slots = slots
	d.begin.slot += shift
	d.end.slot += shift
	d.gen++

	d.metrics.RecordIndexGrowth(side, oldLen, newLen)
	d.logger.LogIndexGrowth(side, oldLen, newLen, len(st.slots))
	return st, nil
}
