package containers

import "sync"

type swapSlot[T any] struct {
	payload   T
	gen       uint64
	committed bool
}

// TripleSwapchain hands frames from one producer to one consumer
// through three slots. The producer always owns exactly one slot for
// writing and the consumer at most one for reading, the third slot
// carries the newest committed frame between them. Neither side ever
// waits for the other: if the consumer is slow, committed frames are
// superseded in place (latest wins), never queued.
type TripleSwapchain[T any] struct {
	mu    sync.Mutex
	slots [3]swapSlot[T]

	write int
	read  int
	spare int

	gen     uint64
	readGen uint64

	onRecycle func(T)
}

// NewTripleSwapchain creates an empty swapchain. onRecycle, when not
// nil, is invoked with the payload of a committed slot that was
// superseded without ever becoming the consumer's current frame, or
// that the consumer has moved past. It runs on the producer goroutine
// right before the slot is reused, so the callback must hand the
// payload somewhere else rather than touch GPU state itself.
func NewTripleSwapchain[T any](onRecycle func(T)) *TripleSwapchain[T] {
	return &TripleSwapchain[T]{
		write:     0,
		read:      1,
		spare:     2,
		onRecycle: onRecycle,
	}
}

// BeginWrite returns the producer's slot for filling. Only the
// producer goroutine may call this, and each BeginWrite must be
// followed by Commit before the next BeginWrite.
func (ts *TripleSwapchain[T]) BeginWrite() *T {
	// The write slot is owned by the producer alone; if a committed
	// frame was parked here by an earlier swap it has been superseded
	// and its payload is handed to the recycle hook now.
	s := &ts.slots[ts.write]
	if s.committed {
		s.committed = false
		if ts.onRecycle != nil {
			ts.onRecycle(s.payload)
		}
		var zero T
		s.payload = zero
	}
	return &s.payload
}

// Commit publishes the slot filled since BeginWrite as the newest
// complete frame.
func (ts *TripleSwapchain[T]) Commit() {
	ts.mu.Lock()
	ts.write, ts.spare = ts.spare, ts.write
	ts.gen++
	ts.slots[ts.spare].gen = ts.gen
	ts.slots[ts.spare].committed = true
	ts.mu.Unlock()
}

// AcquireLatest swaps the newest committed frame into the consumer's
// slot and returns it. It reports false when the consumer already
// holds the latest generation (or nothing was committed yet); the
// previously returned pointer stays valid until the next successful
// acquire.
func (ts *TripleSwapchain[T]) AcquireLatest() (*T, bool) {
	ts.mu.Lock()
	sp := &ts.slots[ts.spare]
	if !sp.committed || sp.gen <= ts.readGen {
		ts.mu.Unlock()
		return nil, false
	}
	ts.read, ts.spare = ts.spare, ts.read
	ts.readGen = ts.slots[ts.read].gen
	p := &ts.slots[ts.read].payload
	ts.mu.Unlock()
	return p, true
}

// Generation reports the stamp of the most recently committed frame.
func (ts *TripleSwapchain[T]) Generation() uint64 {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.gen
}
