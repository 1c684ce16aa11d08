package segdeque

import "github.com/hupe1980/segdeque/internal/conv"

// requireCapacity makes room for n more elements on side and returns the
// segments it allocated, staged for rollback. Free cells in the edge segment
// are used first, then empty index slots on that side; the index is
// reallocated only when those run out.
func (d *Deque[T]) requireCapacity(n int, side Side, op string) (staged[T], error) {
	var avail, headroom int
	if side == Front {
		avail = d.begin.off
		headroom = d.begin.slot
	} else {
		// The end position itself must stay inside an allocated segment.
		avail = d.segLen - d.end.off - 1
		headroom = len(d.slots) - d.end.slot - 1
	}
	if n <= avail {
		return staged[T]{}, nil
	}

	need := conv.CeilDiv(n-avail, d.segLen)
	if need > headroom {
		return d.growIndex(side, need, op)
	}
	if side == Front {
		return d.allocateInto(d.slots, d.begin.slot-need, d.begin.slot, op)
	}
	return d.allocateInto(d.slots, d.end.slot+1, d.end.slot+1+need, op)
}

// checkGrow returns a LengthError if n more elements would exceed MaxLen.
func (d *Deque[T]) checkGrow(n int) error {
	if n < 0 || n > d.MaxLen()-d.Len() {
		return &LengthError{Len: d.Len(), Add: n, Max: d.MaxLen()}
	}
	return nil
}

// ReserveFront allocates storage so that n elements can be pushed to the
// front without allocating. Reserved segments stay allocated until they are
// filled, ShrinkToFit, Clear or Release.
func (d *Deque[T]) ReserveFront(n int) error {
	return d.reserve(n, Front, "reserve front")
}

// ReserveBack is ReserveFront for the back.
func (d *Deque[T]) ReserveBack(n int) error {
	return d.reserve(n, Back, "reserve back")
}

func (d *Deque[T]) reserve(n int, side Side, op string) error {
	if err := d.checkGrow(n); err != nil {
		return err
	}
	if err := d.init(); err != nil {
		return err
	}
	st, err := d.requireCapacity(n, side, op)
	if err != nil {
		return err
	}
	st.commit()
	return nil
}

// ShrinkToFit releases spare segments outside the occupied run. The index
// itself keeps its size.
func (d *Deque[T]) ShrinkToFit() {
	if d.slots == nil {
		return
	}
	d.releaseSlots(0, d.begin.slot)
	d.releaseSlots(d.end.slot+1, len(d.slots))
	d.gen++
}
