package sticker

// TouchEvent carries the touch points of one touch callback in
// surface-local coordinates. Touches lists the points still on the surface
// in order; Changed lists the points that started, moved, or lifted.
type TouchEvent struct {
	Touches []Vec2
	Changed []Vec2
}

// --- Pointer input ---

// PointerDown hit-tests a press at (x, y). Direct manipulation only happens
// in custom scale mode; otherwise the press is ignored.
func (e *Engine) PointerDown(x, y float64) {
	if e.activeConfig().Scale != ScaleCustom || e.gesture.Mode() != GestureIdle {
		return
	}
	mode, selChanged := e.gesture.down(e.target(), x, y)
	if selChanged {
		e.Redraw()
		e.emit(EventSelectionChanged)
	}
	if mode != GestureIdle {
		e.logger.Debug("gesture start", "mode", mode, "x", x, "y", y)
		e.emit(EventGestureStart)
	}
}

// PointerMove feeds pointer motion to the active gesture.
func (e *Engine) PointerMove(x, y float64) {
	if e.gesture.move(e.target(), x, y) {
		e.Redraw()
	}
}

// PointerUp ends the active gesture and commits the sticker's transform.
// This is the only point where gesture motion enters history. A release with
// no gesture in progress, such as a selection click, commits nothing.
func (e *Engine) PointerUp() {
	prev := e.gesture.end()
	if prev == GestureIdle {
		return
	}
	if _, ok := e.state.Sticker(); ok {
		e.commit()
	}
	e.logger.Debug("gesture end", "mode", prev)
	e.emit(EventGestureEnd)
}

// PointerCancel handles a pointer sequence that ends without an up event,
// such as the pointer leaving the surface. It is treated as an implicit up.
func (e *Engine) PointerCancel() {
	e.PointerUp()
}

// --- Touch input ---

// TouchStart begins a single-touch gesture, or a pinch when two or more
// touches are active. Events without touches are ignored.
func (e *Engine) TouchStart(ev TouchEvent) {
	switch n := len(ev.Touches); {
	case n == 0:
		return
	case n >= 2:
		e.beginPinch(ev.Touches[0], ev.Touches[1])
	default:
		e.PointerDown(ev.Touches[0].X, ev.Touches[0].Y)
	}
}

// TouchMove updates the pinch when two touches are active, otherwise the
// single-touch gesture. Pinch moves only mutate state; the pinch frame loop
// redraws.
func (e *Engine) TouchMove(ev TouchEvent) {
	switch n := len(ev.Touches); {
	case n == 0:
		return
	case n >= 2:
		if e.gesture.Mode() == GesturePinching {
			e.gesture.pinchMove(e.target(), ev.Touches[0], ev.Touches[1])
			return
		}
		e.beginPinch(ev.Touches[0], ev.Touches[1])
	default:
		if e.gesture.Mode() == GesturePinching {
			return
		}
		e.PointerMove(ev.Touches[0].X, ev.Touches[0].Y)
	}
}

// TouchEnd ends the active gesture like PointerUp. An event with no touch
// points at all carries nothing usable and is ignored.
func (e *Engine) TouchEnd(ev TouchEvent) {
	if len(ev.Touches) == 0 && len(ev.Changed) == 0 {
		return
	}
	e.PointerUp()
}

// beginPinch abandons any single-touch gesture without committing and
// enters Pinching.
func (e *Engine) beginPinch(p0, p1 Vec2) {
	if e.activeConfig().Scale != ScaleCustom {
		return
	}
	if e.gesture.Mode() != GestureIdle {
		e.gesture.end()
	}
	if e.gesture.pinchStart(e.target(), p0, p1) {
		e.logger.Debug("gesture start", "mode", GesturePinching)
		e.emit(EventGestureStart)
	}
}
