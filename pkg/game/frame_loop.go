package game

// FrameCallback is invoked once on the next frame.
type FrameCallback func()

// FrameLoop schedules one-shot callbacks for the next animation frame.
//
// It mirrors requestAnimationFrame: a callback runs once, and must request
// itself again to keep running. Cancel is idempotent, so cancelling an
// already-fired or already-cancelled handle is harmless.
type FrameLoop struct {
	nextHandle uint64
	pending    map[uint64]FrameCallback
	order      []uint64
}

// NewFrameLoop creates an empty FrameLoop.
func NewFrameLoop() *FrameLoop {
	return &FrameLoop{
		nextHandle: 1, // 0 is reserved for "no handle"
		pending:    make(map[uint64]FrameCallback),
	}
}

// Request schedules cb for the next RunFrame and returns its handle.
func (f *FrameLoop) Request(cb FrameCallback) uint64 {
	h := f.nextHandle
	f.nextHandle++
	f.pending[h] = cb
	f.order = append(f.order, h)
	return h
}

// Cancel removes a pending callback. Unknown handles are ignored.
func (f *FrameLoop) Cancel(handle uint64) {
	delete(f.pending, handle)
}

// Pending returns the number of callbacks waiting for the next frame.
func (f *FrameLoop) Pending() int {
	return len(f.pending)
}

// RunFrame fires every callback scheduled before this call.
// Callbacks requested while running are deferred to the next frame.
func (f *FrameLoop) RunFrame() {
	if len(f.order) == 0 {
		return
	}
	order := f.order
	f.order = nil

	for _, h := range order {
		cb, ok := f.pending[h]
		if !ok {
			continue // cancelled
		}
		delete(f.pending, h)
		cb()
	}
}
