package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Ints returns n pseudo-random values in [0, max).
func (r *RNG) Ints(n, max int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, n)
	for i := range out {
		out[i] = r.rand.Intn(max)
	}
	return out
}

// OpKind identifies a deque operation in a trace.
type OpKind uint8

const (
	OpPushBack OpKind = iota
	OpPushFront
	OpPopBack
	OpPopFront
	OpInsert
	OpErase
)

// AllOps lists every operation kind.
var AllOps = []OpKind{OpPushBack, OpPushFront, OpPopBack, OpPopFront, OpInsert, OpErase}

func (k OpKind) String() string {
	switch k {
	case OpPushBack:
		return "push-back"
	case OpPushFront:
		return "push-front"
	case OpPopBack:
		return "pop-back"
	case OpPopFront:
		return "pop-front"
	case OpInsert:
		return "insert"
	case OpErase:
		return "erase"
	default:
		return "unknown"
	}
}

// Op is one step of a trace.
//
// Pos is a raw random number; Index maps it onto a container of a given
// length so the same trace can drive containers of any size.
type Op struct {
	Kind  OpKind
	Pos   int
	Value int
}

// Index returns the position Pos selects in a container of length n. For
// OpInsert the result is in [0, n]; for other kinds it is in [0, n).
func (o Op) Index(n int) int {
	if o.Kind == OpInsert {
		return o.Pos % (n + 1)
	}
	if n == 0 {
		return 0
	}
	return o.Pos % n
}

// Trace returns n random operations drawn from kinds (all kinds if none are
// given). Values are 0, 1, 2, ... in trace order, so every pushed or
// inserted value is unique.
func (r *RNG) Trace(n int, kinds ...OpKind) []Op {
	if len(kinds) == 0 {
		kinds = AllOps
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	ops := make([]Op, n)
	for i := range ops {
		ops[i] = Op{
			Kind:  kinds[r.rand.Intn(len(kinds))],
			Pos:   r.rand.Intn(1 << 30),
			Value: i,
		}
	}
	return ops
}
