package segdeque

import (
	"iter"
	"slices"

	"github.com/hupe1980/segdeque/algo"
)

// PushBack appends v.
func (d *Deque[T]) PushBack(v T) error {
	if err := d.init(); err != nil {
		return err
	}
	if d.end.off != d.segLen-1 {
		d.slots[d.end.slot][d.end.off] = v
		d.end.off++
		return nil
	}

	st, err := d.requireCapacity(1, Back, "push back")
	if err != nil {
		return err
	}
	st.commit()
	d.slots[d.end.slot][d.end.off] = v
	d.end = pos{slot: d.end.slot + 1}
	return nil
}

// PushFront prepends v.
func (d *Deque[T]) PushFront(v T) error {
	if err := d.init(); err != nil {
		return err
	}
	if d.begin.off != 0 {
		d.begin.off--
		d.slots[d.begin.slot][d.begin.off] = v
		return nil
	}

	st, err := d.requireCapacity(1, Front, "push front")
	if err != nil {
		return err
	}
	st.commit()
	d.begin = pos{slot: d.begin.slot - 1, off: d.segLen - 1}
	d.slots[d.begin.slot][d.begin.off] = v
	return nil
}

// EmplaceBack appends the value built by fn. If fn fails the deque is
// unchanged.
func (d *Deque[T]) EmplaceBack(fn func() (T, error)) error {
	v, err := fn()
	if err != nil {
		return constructError(err, "emplace back")
	}
	return d.PushBack(v)
}

// EmplaceFront prepends the value built by fn. If fn fails the deque is
// unchanged.
func (d *Deque[T]) EmplaceFront(fn func() (T, error)) error {
	v, err := fn()
	if err != nil {
		return constructError(err, "emplace front")
	}
	return d.PushFront(v)
}

// Emplace inserts the value built by fn before at.
func (d *Deque[T]) Emplace(at Cursor[T], fn func() (T, error)) (Cursor[T], error) {
	v, err := fn()
	if err != nil {
		return at, constructError(err, "emplace")
	}
	return d.Insert(at, v)
}

// Insert inserts v before at and returns a cursor at the new element.
//
// Inserting at either end moves no elements. Otherwise the shorter side of
// the sequence is shifted by one. If storage cannot be allocated the
// deque is unchanged; all cursors are invalidated either way.
func (d *Deque[T]) Insert(at Cursor[T], v T) (Cursor[T], error) {
	d.assertCursor(at)
	switch at.p {
	case d.begin:
		if err := d.PushFront(v); err != nil {
			return at, err
		}
		return d.Begin(), nil
	case d.end:
		if err := d.PushBack(v); err != nil {
			return at, err
		}
		return d.End().Prev(), nil
	default:
		return d.insertAux(at, v)
	}
}

// insertAux inserts v at an interior position by duplicating the edge
// element on the shorter side and shifting everything between it and at.
//
// The deque is valid if this fails, but only the allocation step is
// guaranteed to leave the contents unchanged.
func (d *Deque[T]) insertAux(at Cursor[T], v T) (Cursor[T], error) {
	n := d.Len()
	before := at.p.sub(d.begin, d.segLen)

	if 2*before < n {
		front, _ := d.Front()
		if err := d.PushFront(front); err != nil {
			return at, err
		}
		// [front, front, x1, ..., x(before-1), at, ...]
		first := d.Begin().Next()
		c := d.Begin().Advance(before)
		algo.Copy[T](first.Next(), c.Next(), first)
		c.SetValue(v)
		d.metrics.RecordShift(before)
		return c, nil
	}

	back, _ := d.Back()
	if err := d.PushBack(back); err != nil {
		return at, err
	}
	// [..., at, ..., x(n-1), back]
	last := d.End().Prev()
	c := d.Begin().Advance(before)
	algo.CopyBackward[T](c, last.Prev(), last)
	c.SetValue(v)
	d.metrics.RecordShift(n - before)
	return c, nil
}

// InsertN inserts n copies of v before at and returns a cursor at the first
// inserted element.
func (d *Deque[T]) InsertN(at Cursor[T], n int, v T) (Cursor[T], error) {
	return d.insertGenerated(at, n, func(int) (T, error) { return v, nil }, "insert n")
}

// InsertSlice inserts a copy of s before at and returns a cursor at the
// first inserted element.
func (d *Deque[T]) InsertSlice(at Cursor[T], s []T) (Cursor[T], error) {
	d.assertCursor(at)
	if at.p != d.begin && at.p != d.end && len(s) > 0 {
		if err := d.checkGrow(len(s)); err != nil {
			return at, err
		}
		return d.insertInterior(at.p.sub(d.begin, d.segLen), s, "insert slice")
	}
	return d.insertGenerated(at, len(s), func(i int) (T, error) { return s[i], nil }, "insert slice")
}

// InsertSeq inserts the values yielded by seq before at and returns a
// cursor at the first inserted element. seq is consumed before the deque is
// modified.
func (d *Deque[T]) InsertSeq(at Cursor[T], seq iter.Seq[T]) (Cursor[T], error) {
	return d.InsertSlice(at, slices.Collect(seq))
}

// InsertFunc inserts gen(0), ..., gen(n-1) before at and returns a cursor
// at the first inserted element.
//
// If gen or an allocation fails, the elements and length of the deque are
// as before the call and the error is returned. Cursors are invalidated
// either way.
func (d *Deque[T]) InsertFunc(at Cursor[T], n int, gen func(i int) (T, error)) (Cursor[T], error) {
	return d.insertGenerated(at, n, gen, "insert func")
}

// InsertRange inserts the elements of [first, last) before at and returns
// a cursor at the first inserted element.
//
// Multi-pass ranges are counted and written straight into reserved storage;
// single-pass ranges are collected first. The range must not belong to d.
func InsertRange[T any, C algo.Cursor[T, C]](d *Deque[T], at Cursor[T], first, last C) (Cursor[T], error) {
	if !first.Capabilities().Has(algo.MultiPass) {
		var vals []T
		for ; !first.Equal(last); first = first.Next() {
			vals = append(vals, first.Value())
		}
		return d.InsertSlice(at, vals)
	}

	n := algo.Distance[T](first, last)
	cur := first
	return d.insertGenerated(at, n, func(int) (T, error) {
		v := cur.Value()
		cur = cur.Next()
		return v, nil
	}, "insert range")
}

func (d *Deque[T]) insertGenerated(at Cursor[T], n int, gen func(i int) (T, error), op string) (Cursor[T], error) {
	d.assertCursor(at)
	if err := d.checkGrow(n); err != nil {
		return at, err
	}
	if n == 0 {
		return at, nil
	}

	switch at.p {
	case d.begin:
		if err := d.init(); err != nil {
			return at, err
		}
		st, err := d.requireCapacity(n, Front, op)
		if err != nil {
			return at, err
		}
		defer st.rollback()

		first := d.begin.add(-n, d.segLen)
		if _, err := algo.UninitializedGenerate[T](d.cursor(first), n, gen); err != nil {
			return d.Begin(), constructError(err, op)
		}
		st.commit()
		d.begin = first
		return d.Begin(), nil

	case d.end:
		if err := d.init(); err != nil {
			return at, err
		}
		st, err := d.requireCapacity(n, Back, op)
		if err != nil {
			return at, err
		}
		defer st.rollback()

		if _, err := algo.UninitializedGenerate[T](d.End(), n, gen); err != nil {
			return d.End(), constructError(err, op)
		}
		st.commit()
		before := d.Len()
		d.end = d.end.add(n, d.segLen)
		return d.cursor(d.at(before)), nil

	default:
		vals := make([]T, n)
		for i := range vals {
			v, err := gen(i)
			if err != nil {
				return at, constructError(err, op)
			}
			vals[i] = v
		}
		return d.insertInterior(at.p.sub(d.begin, d.segLen), vals, op)
	}
}

// insertInterior inserts vals before the element at index before, which is
// neither the first position nor the end. The shorter side is shifted.
func (d *Deque[T]) insertInterior(before int, vals []T, op string) (Cursor[T], error) {
	n := len(vals)
	length := d.Len()
	src, _ := algo.Range(vals)

	if 2*before < length {
		st, err := d.requireCapacity(n, Front, op)
		if err != nil {
			return d.cursor(d.at(before)), err
		}
		first := d.begin.add(-n, d.segLen)
		mid := algo.Copy[T](d.Begin(), d.Begin().Advance(before), d.cursor(first))
		algo.Copy[T](src, src.Advance(n), mid)
		st.commit()

		d.begin = first
		d.metrics.RecordShift(before)
		return d.cursor(d.at(before)), nil
	}

	st, err := d.requireCapacity(n, Back, op)
	if err != nil {
		return d.cursor(d.at(before)), err
	}
	at := d.Begin().Advance(before)
	last := d.end.add(n, d.segLen)
	algo.CopyBackward[T](at, d.End(), d.cursor(last))
	algo.Copy[T](src, src.Advance(n), at)
	st.commit()

	d.end = last
	d.metrics.RecordShift(length - before)
	return at, nil
}

// Assign replaces the contents with n copies of v.
func (d *Deque[T]) Assign(n int, v T) error {
	return d.assign(n, func(int) (T, error) { return v, nil }, "assign")
}

// AssignSlice replaces the contents with a copy of s.
func (d *Deque[T]) AssignSlice(s []T) error {
	return d.assign(len(s), func(i int) (T, error) { return s[i], nil }, "assign slice")
}

// AssignSeq replaces the contents with the values yielded by seq.
func (d *Deque[T]) AssignSeq(seq iter.Seq[T]) error {
	return d.AssignSlice(slices.Collect(seq))
}

// assign overwrites the common prefix in place, then erases the surplus or
// appends the rest.
func (d *Deque[T]) assign(n int, gen func(i int) (T, error), op string) error {
	if n < 0 || n > d.MaxLen() {
		return &LengthError{Len: d.Len(), Add: n - d.Len(), Max: d.MaxLen()}
	}
	keep := min(n, d.Len())
	c := d.Begin()
	for i := 0; i < keep; i++ {
		v, err := gen(i)
		if err != nil {
			return constructError(err, op)
		}
		c.SetValue(v)
		c = c.Next()
	}
	if keep < d.Len() {
		_, err := d.EraseRange(c, d.End())
		return err
	}
	_, err := d.insertGenerated(d.End(), n-keep, func(i int) (T, error) { return gen(keep + i) }, op)
	return err
}

// Resize changes the length to n, appending zero values or erasing from
// the back.
func (d *Deque[T]) Resize(n int) error {
	var zero T
	return d.ResizeWith(n, zero)
}

// ResizeWith changes the length to n, appending copies of v or erasing from
// the back.
func (d *Deque[T]) ResizeWith(n int, v T) error {
	if n < 0 || n > d.MaxLen() {
		return &LengthError{Len: d.Len(), Add: n - d.Len(), Max: d.MaxLen()}
	}
	if l := d.Len(); n < l {
		_, err := d.EraseRange(d.cursor(d.at(n)), d.End())
		return err
	} else if n > l {
		_, err := d.InsertN(d.End(), n-l, v)
		return err
	}
	return nil
}
