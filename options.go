package segdeque

import (
	"github.com/cockroachdb/errors"

	"github.com/hupe1980/segdeque/alloc"
)

// DefaultIndexSize is the initial number of slots in the indirection index.
// It is also the minimum headroom added whenever the index is reallocated.
const DefaultIndexSize = 8

type options struct {
	allocator  any // alloc.Allocator[T], checked when the deque is built
	logger     *Logger
	name       string
	metrics    MetricsCollector
	segmentLen int
	indexSize  int
}

// Option configures a Deque.
//
// Options are shared by every element type; WithAllocator is generic and is
// checked against the deque's element type when the deque is created.
type Option func(*options)

// WithAllocator configures the allocator that provides segment storage.
// The allocator's element type must match the deque's.
//
// If not set, each deque uses its own alloc.Heap.
func WithAllocator[T any](a alloc.Allocator[T]) Option {
	return func(o *options) {
		o.allocator = a
	}
}

// WithLogger configures structured logging.
//
// If nil is passed, NoopLogger is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithName tags the deque's log records with name.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithMetrics configures the metrics collector.
//
// If nil is passed, NoopMetricsCollector is used.
func WithMetrics(m MetricsCollector) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithSegmentLen overrides the number of elements per segment. By default
// a segment holds about 4KB of elements and never fewer than 16.
//
// Small segments are mostly useful in tests that need many segment
// boundaries with few elements.
func WithSegmentLen(n int) Option {
	return func(o *options) {
		o.segmentLen = n
	}
}

// WithInitialIndexSize sets the initial indirection index size and the
// minimum headroom added on reallocation (default DefaultIndexSize).
func WithInitialIndexSize(n int) Option {
	return func(o *options) {
		o.indexSize = n
	}
}

func (d *Deque[T]) configure(opts []Option) error {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.segmentLen < 0 {
		return errors.Wrapf(ErrInvalidOption, "segment length %d", o.segmentLen)
	}
	if o.indexSize < 0 {
		return errors.Wrapf(ErrInvalidOption, "index size %d", o.indexSize)
	}

	d.segLen = o.segmentLen
	if d.segLen == 0 {
		d.segLen = segmentLenFor[T]()
	}
	d.indexMin = o.indexSize
	if d.indexMin == 0 {
		d.indexMin = DefaultIndexSize
	}

	switch a := o.allocator.(type) {
	case nil:
		d.alloc = alloc.NewHeap[T]()
	case alloc.Allocator[T]:
		d.alloc = a
	default:
		var zero T
		return errors.Wrapf(ErrInvalidOption, "allocator %T cannot allocate %T", a, zero)
	}

	d.logger = o.logger
	if d.logger == nil {
		d.logger = NoopLogger()
	}
	if o.name != "" {
		d.logger = d.logger.WithName(o.name)
	}
	d.logger = d.logger.WithSegmentLen(d.segLen)
	d.metrics = o.metrics
	if d.metrics == nil {
		d.metrics = NoopMetricsCollector{}
	}
	return nil
}
