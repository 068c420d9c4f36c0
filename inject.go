package sticker

import "math"

type syntheticKind uint8

const (
	synthPress syntheticKind = iota
	synthMove
	synthRelease
	synthTouchStart
	synthTouchMove
	synthTouchEnd
)

// syntheticEvent is a single injected input event in surface coordinates.
type syntheticEvent struct {
	kind    syntheticKind
	x, y    float64
	touches []Vec2
}

// InjectPress queues a pointer press at (x, y). Events are consumed one per
// Update call.
func (e *Engine) InjectPress(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthPress, x: x, y: y})
}

// InjectMove queues a pointer move with the button held. Use it between
// InjectPress and InjectRelease to simulate a drag.
func (e *Engine) InjectMove(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthMove, x: x, y: y})
}

// InjectRelease queues a pointer release.
func (e *Engine) InjectRelease(x, y float64) {
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthRelease, x: x, y: y})
}

// InjectClick queues a press followed by a release. Consumes two frames.
func (e *Engine) InjectClick(x, y float64) {
	e.InjectPress(x, y)
	e.InjectRelease(x, y)
}

// InjectDrag queues a press at (fromX, fromY), frames-2 linearly
// interpolated moves, and a release at (toX, toY). The last move lands on
// the release point so the gesture sees it. Minimum frames is 2.
func (e *Engine) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		e.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	e.InjectRelease(toX, toY)
}

// InjectPinch queues a two-finger pinch centered on (cx, cy) along angle
// radians, spreading the fingers from fromDist to toDist over frames-2
// moves. Minimum frames is 2.
func (e *Engine) InjectPinch(cx, cy, fromDist, toDist, angle float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	pair := func(dist float64) []Vec2 {
		dx := math.Cos(angle) * dist / 2
		dy := math.Sin(angle) * dist / 2
		return []Vec2{{cx - dx, cy - dy}, {cx + dx, cy + dy}}
	}
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthTouchStart, touches: pair(fromDist)})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		e.injectQueue = append(e.injectQueue, syntheticEvent{
			kind:    synthTouchMove,
			touches: pair(fromDist + (toDist-fromDist)*t),
		})
	}
	e.injectQueue = append(e.injectQueue, syntheticEvent{kind: synthTouchEnd, touches: pair(toDist)})
}

// PendingInjections returns the number of queued synthetic events.
func (e *Engine) PendingInjections() int { return len(e.injectQueue) }

// processInjectedInput pops one event from the queue and dispatches it.
// Returns true if an event was consumed.
func (e *Engine) processInjectedInput() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	evt := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue[len(e.injectQueue)-1] = syntheticEvent{}
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	switch evt.kind {
	case synthPress:
		e.PointerDown(evt.x, evt.y)
	case synthMove:
		e.PointerMove(evt.x, evt.y)
	case synthRelease:
		e.PointerMove(evt.x, evt.y)
		e.PointerUp()
	case synthTouchStart:
		e.TouchStart(TouchEvent{Touches: evt.touches, Changed: evt.touches})
	case synthTouchMove:
		e.TouchMove(TouchEvent{Touches: evt.touches, Changed: evt.touches})
	case synthTouchEnd:
		e.TouchEnd(TouchEvent{Changed: evt.touches})
	}
	return true
}
