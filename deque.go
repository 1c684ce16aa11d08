package segdeque

import (
	"iter"
	"math"
	"unsafe"

	"github.com/bits-and-blooms/bitset"
	"github.com/cockroachdb/errors"

	"github.com/hupe1980/segdeque/algo"
	"github.com/hupe1980/segdeque/alloc"
)

// Deque is a double-ended sequence stored in fixed-size segments reached
// through an indirection index.
//
// Pushing and popping at either end is amortized O(1) and never moves
// existing elements. Inserting or erasing in the middle moves the shorter
// side of the sequence. Random access is O(1).
//
// The zero value is an empty deque with default options. A Deque is not
// safe for concurrent use.
type Deque[T any] struct {
	slots      [][]T // indirection index; nil entries are unallocated
	begin, end pos
	gen        uint64 // bumped whenever cursors become invalid

	segLen   int
	indexMin int
	alloc    alloc.Allocator[T]
	logger   *Logger
	metrics  MetricsCollector
}

// New creates an empty deque.
func New[T any](opts ...Option) (*Deque[T], error) {
	return newSized[T](0, "new", opts)
}

// NewSized creates a deque holding n zero values.
func NewSized[T any](n int, opts ...Option) (*Deque[T], error) {
	return newSized[T](n, "new sized", opts)
}

// NewFilled creates a deque holding n copies of v.
func NewFilled[T any](n int, v T, opts ...Option) (*Deque[T], error) {
	d, err := newSized[T](n, "new filled", opts)
	if err != nil {
		return nil, err
	}
	algo.UninitializedFill[T](d.Begin(), d.End(), v)
	return d, nil
}

// FromSlice creates a deque holding a copy of s.
func FromSlice[T any](s []T, opts ...Option) (*Deque[T], error) {
	d, err := newSized[T](len(s), "from slice", opts)
	if err != nil {
		return nil, err
	}
	first, last := algo.Range(s)
	algo.UninitializedCopy[T](first, last, d.Begin())
	return d, nil
}

// FromRange creates a deque holding the elements of [first, last).
//
// Multi-pass ranges are measured first and copied into storage sized once;
// single-pass ranges are appended one element at a time.
func FromRange[T any, C algo.Cursor[T, C]](first, last C, opts ...Option) (*Deque[T], error) {
	if !first.Capabilities().Has(algo.MultiPass) {
		d, err := New[T](opts...)
		if err != nil {
			return nil, err
		}
		for ; !first.Equal(last); first = first.Next() {
			if err := d.PushBack(first.Value()); err != nil {
				d.Release()
				return nil, err
			}
		}
		return d, nil
	}

	d, err := newSized[T](algo.Distance[T](first, last), "from range", opts)
	if err != nil {
		return nil, err
	}
	algo.UninitializedCopy[T](first, last, d.Begin())
	return d, nil
}

// FromSeq creates a deque holding the values yielded by seq.
func FromSeq[T any](seq iter.Seq[T], opts ...Option) (*Deque[T], error) {
	d, err := New[T](opts...)
	if err != nil {
		return nil, err
	}
	for v := range seq {
		if err := d.PushBack(v); err != nil {
			d.Release()
			return nil, err
		}
	}
	return d, nil
}

func newSized[T any](n int, op string, opts []Option) (*Deque[T], error) {
	d := &Deque[T]{}
	if err := d.configure(opts); err != nil {
		return nil, err
	}
	if n < 0 || n > d.MaxLen() {
		return nil, &LengthError{Len: 0, Add: n, Max: d.MaxLen()}
	}
	if err := d.initIndex(n, op); err != nil {
		return nil, err
	}
	return d, nil
}

// init prepares a zero or moved-from deque for its first mutation.
func (d *Deque[T]) init() error {
	if d.alloc == nil {
		if err := d.configure(nil); err != nil {
			return err
		}
	}
	if d.slots == nil {
		return d.initIndex(0, "init")
	}
	return nil
}

// Clone returns a copy of d that uses the same options.
func (d *Deque[T]) Clone() (*Deque[T], error) {
	c := d.emptyLike()
	if c.alloc == nil {
		if err := c.configure(nil); err != nil {
			return nil, err
		}
	}
	if err := c.initIndex(d.Len(), "clone"); err != nil {
		return nil, err
	}
	if d.slots != nil {
		algo.UninitializedCopy[T](d.Begin(), d.End(), c.Begin())
	}
	return c, nil
}

// emptyLike returns a deque without storage that shares d's configuration.
func (d *Deque[T]) emptyLike() *Deque[T] {
	return &Deque[T]{
		segLen:   d.segLen,
		indexMin: d.indexMin,
		alloc:    d.alloc,
		logger:   d.logger,
		metrics:  d.metrics,
	}
}

// Move transfers d's elements and storage to a new deque. d is left empty,
// without an index; it allocates a fresh one on its next insertion. All
// cursors into d are invalidated.
func (d *Deque[T]) Move() *Deque[T] {
	m := d.emptyLike()
	m.slots, m.begin, m.end = d.slots, d.begin, d.end
	m.gen = d.gen + 1

	d.slots = nil
	d.begin, d.end = pos{}, pos{}
	d.gen++
	return m
}

// Swap exchanges the contents and options of d and other. Cursors into
// either deque are invalidated.
func (d *Deque[T]) Swap(other *Deque[T]) {
	if d == other {
		return
	}
	*d, *other = *other, *d
	d.gen = max(d.gen, other.gen) + 1
	other.gen = d.gen
}

// CopyFrom replaces d's elements with a copy of other's, reusing d's
// storage where possible.
func (d *Deque[T]) CopyFrom(other *Deque[T]) error {
	if d == other {
		return nil
	}
	n := other.Len()
	if n <= d.Len() {
		mid := algo.Copy[T](other.Begin(), other.End(), d.Begin())
		_, err := d.EraseRange(mid, d.End())
		return err
	}
	if err := d.init(); err != nil {
		return err
	}
	mid := other.Begin().Advance(d.Len())
	algo.Copy[T](other.Begin(), mid, d.Begin())
	_, err := InsertRange(d, d.End(), mid, other.End())
	return err
}

// Release destroys every element and returns all segments to the
// allocator. d is left empty and allocates again on its next insertion.
func (d *Deque[T]) Release() {
	if d.slots == nil {
		return
	}
	segments := 0
	for i, seg := range d.slots {
		if seg == nil {
			continue
		}
		alloc.Destroy(seg)
		d.releaseSlot(i)
		segments++
	}
	d.slots = nil
	d.begin, d.end = pos{}, pos{}
	d.gen++
	d.logger.LogRelease(segments)
}

// Len returns the number of elements.
func (d *Deque[T]) Len() int {
	return d.end.sub(d.begin, d.segLen)
}

// Empty reports whether the deque has no elements.
func (d *Deque[T]) Empty() bool {
	return d.begin == d.end
}

// MaxLen returns the largest length a deque of T can reach.
func (d *Deque[T]) MaxLen() int {
	var zero T
	return math.MaxInt / 2 / max(int(unsafe.Sizeof(zero)), 1)
}

// SegmentLen returns the number of elements per segment.
func (d *Deque[T]) SegmentLen() int {
	if d.segLen == 0 {
		return segmentLenFor[T]()
	}
	return d.segLen
}

// at returns the position of the i-th element.
func (d *Deque[T]) at(i int) pos {
	return d.begin.add(i, d.segLen)
}

// At returns the i-th element.
func (d *Deque[T]) At(i int) (T, error) {
	if i < 0 || i >= d.Len() {
		var zero T
		return zero, &IndexError{Index: i, Len: d.Len()}
	}
	p := d.at(i)
	return d.slots[p.slot][p.off], nil
}

// AtUnsafe returns the i-th element without bounds checking.
func (d *Deque[T]) AtUnsafe(i int) T {
	if debug {
		d.assertIndex(i)
	}
	p := d.at(i)
	return d.slots[p.slot][p.off]
}

// Set overwrites the i-th element.
func (d *Deque[T]) Set(i int, v T) error {
	if i < 0 || i >= d.Len() {
		return &IndexError{Index: i, Len: d.Len()}
	}
	p := d.at(i)
	d.slots[p.slot][p.off] = v
	return nil
}

// SetUnsafe overwrites the i-th element without bounds checking.
func (d *Deque[T]) SetUnsafe(i int, v T) {
	if debug {
		d.assertIndex(i)
	}
	p := d.at(i)
	d.slots[p.slot][p.off] = v
}

func (d *Deque[T]) assertIndex(i int) {
	if i < 0 || i >= d.Len() {
		panic(errors.NewAssertionErrorWithWrappedErrf(&IndexError{Index: i, Len: d.Len()}, "segdeque: unchecked access"))
	}
}

// Front returns the first element, or false if the deque is empty.
func (d *Deque[T]) Front() (T, bool) {
	if d.Empty() {
		var zero T
		return zero, false
	}
	return d.slots[d.begin.slot][d.begin.off], true
}

// Back returns the last element, or false if the deque is empty.
func (d *Deque[T]) Back() (T, bool) {
	if d.Empty() {
		var zero T
		return zero, false
	}
	p := d.end.prev(d.segLen)
	return d.slots[p.slot][p.off], true
}

// Begin returns a cursor at the first element.
func (d *Deque[T]) Begin() Cursor[T] {
	return d.cursor(d.begin)
}

// End returns a cursor one past the last element.
func (d *Deque[T]) End() Cursor[T] {
	return d.cursor(d.end)
}

// CursorAt returns a cursor at index i, which may equal Len.
func (d *Deque[T]) CursorAt(i int) (Cursor[T], error) {
	if i < 0 || i > d.Len() {
		return Cursor[T]{}, &IndexError{Index: i, Len: d.Len()}
	}
	return d.cursor(d.at(i)), nil
}

// Iter returns an iterator over the elements front to back.
func (d *Deque[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for p := d.begin; p != d.end; p = p.next(d.segLen) {
			if !yield(d.slots[p.slot][p.off]) {
				return
			}
		}
	}
}

// All returns an iterator over index-value pairs front to back.
func (d *Deque[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := 0
		for p := d.begin; p != d.end; p = p.next(d.segLen) {
			if !yield(i, d.slots[p.slot][p.off]) {
				return
			}
			i++
		}
	}
}

// Backward returns an iterator over index-value pairs back to front.
func (d *Deque[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		i := d.Len() - 1
		for p := d.end; p != d.begin; i-- {
			p = p.prev(d.segLen)
			if !yield(i, d.slots[p.slot][p.off]) {
				return
			}
		}
	}
}

// Slice returns a copy of the elements as a slice.
func (d *Deque[T]) Slice() []T {
	s := make([]T, 0, d.Len())
	if d.Empty() {
		return s
	}
	for p := d.begin; ; p = (pos{slot: p.slot + 1}) {
		seg := d.slots[p.slot]
		if p.slot == d.end.slot {
			return append(s, seg[p.off:d.end.off]...)
		}
		s = append(s, seg[p.off:]...)
	}
}

// Stats describes a deque's storage.
type Stats struct {
	Len           int    // Elements
	SegmentLen    int    // Elements per segment
	Segments      int    // Allocated segments, spares included
	SpareSegments int    // Allocated segments outside the occupied run
	IndexSlots    int    // Length of the indirection index
	FrontHeadroom int    // Index slots before the first occupied segment
	BackHeadroom  int    // Index slots after the last occupied segment
	Generation    uint64 // Cursor generation
}

// Stats returns a snapshot of the deque's storage layout.
func (d *Deque[T]) Stats() Stats {
	s := Stats{
		Len:        d.Len(),
		SegmentLen: d.SegmentLen(),
		IndexSlots: len(d.slots),
		Generation: d.gen,
	}
	if d.slots == nil {
		return s
	}
	for i, seg := range d.slots {
		if seg == nil {
			continue
		}
		s.Segments++
		if i < d.begin.slot || i > d.end.slot {
			s.SpareSegments++
		}
	}
	s.FrontHeadroom = d.begin.slot
	s.BackHeadroom = len(d.slots) - d.end.slot - 1
	return s
}

// CheckInvariants verifies the internal consistency of the deque and
// returns an assertion error describing the first violation found.
func (d *Deque[T]) CheckInvariants() error {
	if d.slots == nil {
		if d.begin != (pos{}) || d.end != (pos{}) {
			return errors.AssertionFailedf("segdeque: cursors set without an index")
		}
		return nil
	}
	if d.end.less(d.begin) {
		return errors.AssertionFailedf("segdeque: end %v before begin %v", d.end, d.begin)
	}
	if d.begin.slot < 0 || d.end.slot >= len(d.slots) {
		return errors.AssertionFailedf("segdeque: run [%d, %d] outside index of %d slots", d.begin.slot, d.end.slot, len(d.slots))
	}
	for _, p := range []pos{d.begin, d.end} {
		if p.off < 0 || p.off >= d.segLen {
			return errors.AssertionFailedf("segdeque: offset %d outside segment of %d", p.off, d.segLen)
		}
	}

	allocated := bitset.New(uint(len(d.slots)))
	for i, seg := range d.slots {
		if seg == nil {
			continue
		}
		if len(seg) != d.segLen {
			return errors.AssertionFailedf("segdeque: segment at slot %d has length %d, want %d", i, len(seg), d.segLen)
		}
		allocated.Set(uint(i))
	}
	run := uint(d.end.slot - d.begin.slot + 1)
	if n := allocated.Count(); n < run {
		return errors.AssertionFailedf("segdeque: %d segments allocated for a run of %d slots", n, run)
	}
	for i := uint(d.begin.slot); i <= uint(d.end.slot); i++ {
		if !allocated.Test(i) {
			return errors.AssertionFailedf("segdeque: slot %d inside the occupied run has no segment", i)
		}
	}
	return nil
}
