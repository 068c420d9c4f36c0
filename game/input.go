package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/sticker"
)

// maxTouches is the number of concurrent touches tracked. The engine only
// looks at the first two.
const maxTouches = 10

// inputState turns ebiten's polled mouse and touch state into the engine's
// pointer and touch events.
type inputState struct {
	mouseDown      bool
	mouseCancelled bool
	lastX, lastY   float64

	touchIDs  []ebiten.TouchID
	touchMap  [maxTouches]ebiten.TouchID
	touchUsed [maxTouches]bool
	touchPos  [maxTouches]sticker.Vec2
}

// update polls input once per frame and forwards it to e. w and h are the
// canvas bounds; a held mouse that leaves them cancels the gesture.
func (in *inputState) update(e *sticker.Engine, w, h float64) {
	in.processMouse(e, w, h)
	in.processTouches(e)
}

// processMouse handles the left mouse button.
func (in *inputState) processMouse(e *sticker.Engine, w, h float64) {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	inside := x >= 0 && y >= 0 && x < w && y < h

	switch {
	case !pressed:
		if in.mouseDown {
			e.PointerMove(x, y)
			e.PointerUp()
		}
		in.mouseDown = false
		in.mouseCancelled = false
	case in.mouseCancelled:
		// Wait for release after leaving the canvas.
	case !in.mouseDown:
		if !inside {
			return
		}
		in.mouseDown = true
		e.PointerDown(x, y)
	case !inside:
		in.mouseDown = false
		in.mouseCancelled = true
		e.PointerCancel()
	case x != in.lastX || y != in.lastY:
		e.PointerMove(x, y)
	}
	in.lastX, in.lastY = x, y
}

// processTouches diffs this frame's touches against the previous frame and
// emits start, move, and end events.
func (in *inputState) processTouches(e *sticker.Engine) {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])

	var active [maxTouches]bool
	var started, moved []sticker.Vec2
	for _, tid := range in.touchIDs {
		slot, fresh := in.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		p := sticker.Vec2{X: float64(tx), Y: float64(ty)}
		switch {
		case fresh:
			started = append(started, p)
		case p != in.touchPos[slot]:
			moved = append(moved, p)
		}
		in.touchPos[slot] = p
	}

	var ended []sticker.Vec2
	for i := range maxTouches {
		if in.touchUsed[i] && !active[i] {
			ended = append(ended, in.touchPos[i])
			in.touchUsed[i] = false
			in.touchMap[i] = 0
		}
	}

	current := in.activeTouches()
	if len(ended) > 0 {
		e.TouchEnd(sticker.TouchEvent{Touches: current, Changed: ended})
	}
	if len(started) > 0 {
		e.TouchStart(sticker.TouchEvent{Touches: current, Changed: started})
	} else if len(moved) > 0 {
		e.TouchMove(sticker.TouchEvent{Touches: current, Changed: moved})
	}
}

// touchSlot maps an ebiten.TouchID to a slot. fresh is true when the slot
// was allocated this call. Returns -1 if full.
func (in *inputState) touchSlot(tid ebiten.TouchID) (slot int, fresh bool) {
	for i := range maxTouches {
		if in.touchUsed[i] && in.touchMap[i] == tid {
			return i, false
		}
	}
	for i := range maxTouches {
		if !in.touchUsed[i] {
			in.touchUsed[i] = true
			in.touchMap[i] = tid
			return i, true
		}
	}
	return -1, false
}

// activeTouches lists live touch positions in slot order.
func (in *inputState) activeTouches() []sticker.Vec2 {
	var out []sticker.Vec2
	for i := range maxTouches {
		if in.touchUsed[i] {
			out = append(out, in.touchPos[i])
		}
	}
	return out
}
