package segdeque

import (
	"github.com/cockroachdb/errors"

	"github.com/hupe1980/segdeque/algo"
)

// Compile time check to ensure Cursor satisfies the algo.Cursor interface.
var _ algo.Cursor[int, Cursor[int]] = Cursor[int]{}

// Cursor is a random access position in a Deque.
//
// A Cursor is a small value: a slot in the deque's indirection index and an
// offset into the segment that slot owns. Arithmetic crosses segment
// boundaries transparently.
//
// Cursors are invalidated by any operation that reallocates the index or
// releases the segment they point into: inserts at either end, erases,
// Clear, ShrinkToFit, Move, Swap and Release. Using an invalidated cursor is
// a precondition violation; builds with the segdeque_debug tag detect it.
type Cursor[T any] struct {
	d   *Deque[T]
	p   pos
	gen uint64
}

func (d *Deque[T]) cursor(p pos) Cursor[T] {
	return Cursor[T]{d: d, p: p, gen: d.gen}
}

// Value returns the element at c. c must not be the end cursor.
func (c Cursor[T]) Value() T {
	if debug {
		c.assertStorage()
	}
	return c.d.slots[c.p.slot][c.p.off]
}

// SetValue overwrites the element at c. c must not be the end cursor.
func (c Cursor[T]) SetValue(v T) {
	if debug {
		c.assertStorage()
	}
	c.d.slots[c.p.slot][c.p.off] = v
}

// Next returns the cursor one element forward.
func (c Cursor[T]) Next() Cursor[T] {
	c.p = c.p.next(c.d.segLen)
	return c
}

// Prev returns the cursor one element backward.
func (c Cursor[T]) Prev() Cursor[T] {
	c.p = c.p.prev(c.d.segLen)
	return c
}

// Advance returns the cursor n elements away. n may be negative.
func (c Cursor[T]) Advance(n int) Cursor[T] {
	c.p = c.p.add(n, c.d.segLen)
	return c
}

// At returns the element n positions away from c.
func (c Cursor[T]) At(n int) T {
	return c.Advance(n).Value()
}

// Distance returns the number of elements from `from` to c. Both cursors
// must belong to the same deque.
func (c Cursor[T]) Distance(from Cursor[T]) int {
	return c.p.sub(from.p, c.d.segLen)
}

// Equal reports whether c and other denote the same position.
func (c Cursor[T]) Equal(other Cursor[T]) bool {
	return c.d == other.d && c.p == other.p
}

// Less reports whether c is before other.
func (c Cursor[T]) Less(other Cursor[T]) bool {
	return c.p.less(other.p)
}

// Compare returns -1, 0 or +1 depending on whether c is before, at or after
// other.
func (c Cursor[T]) Compare(other Cursor[T]) int {
	switch {
	case c.p == other.p:
		return 0
	case c.p.less(other.p):
		return -1
	default:
		return 1
	}
}

// Capabilities implements algo.Cursor. Deque cursors support every
// capability.
func (Cursor[T]) Capabilities() algo.Capability {
	return algo.Full
}

// Index returns the position of c relative to the first element.
func (c Cursor[T]) Index() int {
	return c.p.sub(c.d.begin, c.d.segLen)
}

// CheckCursor reports whether c can be passed to d's positional operations:
// it must belong to d, predate no index reallocation and lie in
// [Begin(), End()]. The returned error matches ErrInvalidCursor.
func (d *Deque[T]) CheckCursor(c Cursor[T]) error {
	switch {
	case c.d != d:
		return errors.Mark(errors.New("segdeque: cursor belongs to another deque"), ErrInvalidCursor)
	case c.gen != d.gen:
		return errors.Mark(errors.Newf("segdeque: stale cursor (generation %d, deque at %d)", c.gen, d.gen), ErrInvalidCursor)
	case c.p.less(d.begin) || d.end.less(c.p):
		return errors.Mark(errors.Newf("segdeque: cursor outside [begin, end] at index %d", c.Index()), ErrInvalidCursor)
	}
	return nil
}

// assertCursor panics in debug builds if c is not a valid position in d.
func (d *Deque[T]) assertCursor(c Cursor[T]) {
	if !debug {
		return
	}
	if err := d.CheckCursor(c); err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "segdeque: invalid cursor"))
	}
}

// assertStorage panics if c does not address allocated storage. Cursors
// used while staging an insertion may point outside [begin, end), so only
// ownership, generation and allocation are checked.
func (c Cursor[T]) assertStorage() {
	d := c.d
	if d == nil {
		panic(errors.AssertionFailedf("segdeque: zero cursor dereferenced"))
	}
	if c.gen != d.gen {
		err := errors.Mark(errors.Newf("segdeque: stale cursor (generation %d, deque at %d)", c.gen, d.gen), ErrInvalidCursor)
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "segdeque: dereference"))
	}
	if c.p.slot < 0 || c.p.slot >= len(d.slots) || d.slots[c.p.slot] == nil {
		err := errors.Mark(errors.Newf("segdeque: cursor at slot %d has no segment", c.p.slot), ErrInvalidCursor)
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "segdeque: dereference"))
	}
}
