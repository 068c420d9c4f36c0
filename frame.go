package sticker

// FrameID identifies a pending frame request. Zero is never issued.
type FrameID uint64

// FrameScheduler runs callbacks once on the next frame, in the manner of
// requestAnimationFrame. Callbacks may request further frames.
type FrameScheduler interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id FrameID
	fn func()
}

// TickScheduler is a FrameScheduler driven by explicit Tick calls, one per
// frame. Engine.Update ticks it when it is the engine's scheduler.
type TickScheduler struct {
	pending []frameRequest
	running []frameRequest
	nextID  FrameID
}

// NewTickScheduler returns an empty scheduler.
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{}
}

// RequestFrame queues fn for the next Tick.
func (s *TickScheduler) RequestFrame(fn func()) FrameID {
	s.nextID++
	s.pending = append(s.pending, frameRequest{id: s.nextID, fn: fn})
	return s.nextID
}

// CancelFrame drops a queued request. Unknown or already-run ids are ignored.
func (s *TickScheduler) CancelFrame(id FrameID) {
	for i := range s.pending {
		if s.pending[i].id == id {
			copy(s.pending[i:], s.pending[i+1:])
			s.pending[len(s.pending)-1] = frameRequest{}
			s.pending = s.pending[:len(s.pending)-1]
			return
		}
	}
}

// Pending returns the number of queued requests.
func (s *TickScheduler) Pending() int { return len(s.pending) }

// Tick runs every request queued before the call. Requests made by those
// callbacks wait for the next Tick.
func (s *TickScheduler) Tick() {
	if len(s.pending) == 0 {
		return
	}
	s.running, s.pending = s.pending, s.running[:0]
	for _, r := range s.running {
		r.fn()
	}
	clear(s.running)
	s.running = s.running[:0]
}
