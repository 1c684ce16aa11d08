package testutil

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cockroachdb/errors"
)

// Tracker records which uint32 values should be live in a container and
// checks a container's contents for lost or duplicated values.
type Tracker struct {
	live *roaring.Bitmap
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{live: roaring.New()}
}

// Add marks v live.
func (t *Tracker) Add(v uint32) {
	t.live.Add(v)
}

// Remove marks v removed.
func (t *Tracker) Remove(v uint32) {
	t.live.Remove(v)
}

// Len returns the number of live values.
func (t *Tracker) Len() uint64 {
	return t.live.GetCardinality()
}

// Check returns an error unless values holds every live value exactly once
// and nothing else.
func (t *Tracker) Check(values []uint32) error {
	seen := roaring.New()
	for i, v := range values {
		if !t.live.Contains(v) {
			return errors.Newf("testutil: unexpected value %d at index %d", v, i)
		}
		if !seen.CheckedAdd(v) {
			return errors.Newf("testutil: duplicate value %d at index %d", v, i)
		}
	}
	if missing := roaring.AndNot(t.live, seen); !missing.IsEmpty() {
		return errors.Newf("testutil: %d values lost, first %d", missing.GetCardinality(), missing.Minimum())
	}
	return nil
}
