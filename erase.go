package segdeque

import (
	"github.com/cockroachdb/errors"

	"github.com/hupe1980/segdeque/algo"
)

// PopBack removes and returns the last element. It returns false if the
// deque is empty.
func (d *Deque[T]) PopBack() (T, bool) {
	var zero T
	if d.Empty() {
		return zero, false
	}
	if d.end.off == 0 {
		// The end segment is drained; the last element sits at the back of
		// the previous one.
		d.releaseSlot(d.end.slot)
		d.end = pos{slot: d.end.slot - 1, off: d.segLen - 1}
	} else {
		d.end.off--
	}
	seg := d.slots[d.end.slot]
	v := seg[d.end.off]
	seg[d.end.off] = zero
	return v, true
}

// PopFront removes and returns the first element. It returns false if the
// deque is empty.
func (d *Deque[T]) PopFront() (T, bool) {
	var zero T
	if d.Empty() {
		return zero, false
	}
	seg := d.slots[d.begin.slot]
	v := seg[d.begin.off]
	seg[d.begin.off] = zero
	if d.begin.off == d.segLen-1 {
		// end lies in a later segment, so this one is drained.
		d.releaseSlot(d.begin.slot)
		d.begin = pos{slot: d.begin.slot + 1}
	} else {
		d.begin.off++
	}
	return v, true
}

// Erase removes the element at at and returns a cursor at the element that
// followed it. The shorter side of the sequence is shifted to close the gap.
func (d *Deque[T]) Erase(at Cursor[T]) Cursor[T] {
	d.assertCursor(at)
	n := d.Len()
	before := at.p.sub(d.begin, d.segLen)
	next := at.Next()

	if 2*before+1 < n {
		algo.MoveBackward[T](d.Begin(), at, next)
		d.PopFront()
		d.metrics.RecordShift(before)
	} else {
		algo.Move[T](next, d.End(), at)
		d.PopBack()
		d.metrics.RecordShift(n - before - 1)
	}
	return d.cursor(d.at(before))
}

// EraseRange removes the elements of [first, last) and returns a cursor at
// the element that followed them. Segments drained by the erase are
// released.
func (d *Deque[T]) EraseRange(first, last Cursor[T]) (Cursor[T], error) {
	d.assertCursor(first)
	d.assertCursor(last)
	if last.p.less(first.p) {
		return first, errors.Mark(errors.Newf("segdeque: range [%d, %d) is reversed", first.Index(), last.Index()), ErrInvalidCursor)
	}
	if first.p == last.p {
		return first, nil
	}
	if first.p == d.begin && last.p == d.end {
		d.Clear()
		return d.End(), nil
	}

	n := last.p.sub(first.p, d.segLen)
	before := first.p.sub(d.begin, d.segLen)
	after := d.Len() - before - n

	if before < after {
		algo.MoveBackward[T](d.Begin(), first, last)
		begin := d.begin.add(n, d.segLen)
		d.destroy(d.begin, begin)
		d.releaseSlots(d.begin.slot, begin.slot)
		d.begin = begin
		d.metrics.RecordShift(before)
	} else {
		algo.Move[T](last, d.End(), first)
		end := d.end.add(-n, d.segLen)
		d.destroy(end, d.end)
		d.releaseSlots(end.slot+1, d.end.slot+1)
		d.end = end
		d.metrics.RecordShift(after)
	}
	return d.cursor(d.at(before)), nil
}

// Clear removes all elements. The segment holding the first position is
// kept for reuse; all others are released.
func (d *Deque[T]) Clear() {
	if d.slots == nil {
		return
	}
	d.destroy(d.begin, d.end)
	d.releaseSlots(0, d.begin.slot)
	d.releaseSlots(d.begin.slot+1, len(d.slots))
	d.end = d.begin
	d.gen++
}

// destroy resets the cells of [first, last) to the zero value.
func (d *Deque[T]) destroy(first, last pos) {
	for ; first.slot < last.slot; first = (pos{slot: first.slot + 1}) {
		clear(d.slots[first.slot][first.off:])
	}
	clear(d.slots[first.slot][first.off:last.off])
}
