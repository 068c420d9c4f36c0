package sticker

import "math"

// GestureMode is the active interaction. At most one is active at a time.
type GestureMode uint8

const (
	GestureIdle GestureMode = iota
	GestureDragging
	GestureResizingTL
	GestureResizingTR
	GestureResizingBL
	GestureResizingBR
	GestureRotating
	GesturePinching
)

var gestureModeNames = [...]string{
	"idle", "dragging", "resizing-tl", "resizing-tr", "resizing-bl", "resizing-br",
	"rotating", "pinching",
}

func (m GestureMode) String() string {
	if int(m) < len(gestureModeNames) {
		return gestureModeNames[m]
	}
	return "unknown"
}

// Corner identifies a corner of the sticker's bounding box.
type Corner uint8

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

// left and top report which edges move when this corner is dragged.
func (c Corner) left() bool { return c == CornerTopLeft || c == CornerBottomLeft }
func (c Corner) top() bool  { return c == CornerTopLeft || c == CornerTopRight }

func (c Corner) mode() GestureMode {
	return GestureResizingTL + GestureMode(c)
}

// --- Hit shapes ---

// HitCircle is a circular hit area.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// cornerHitBox is the square resize handle centered on a corner.
func cornerHitBox(p Vec2, size float64) Rect {
	half := size / 2
	return Rect{X: p.X - half, Y: p.Y - half, Width: size, Height: size}
}

// rotationHitCircle is the knob below the sticker's bottom edge.
func rotationHitCircle(t Transform, s Settings) HitCircle {
	return HitCircle{
		CenterX: t.X + t.Width/2,
		CenterY: t.Y + t.Height + s.RotationHandleOffset,
		Radius:  s.RotationHandleRadius,
	}
}

// --- Gesture state variants ---

// gestureState is one case of the tagged gesture variant. Each case carries
// only the data its mode needs.
type gestureState interface {
	mode() GestureMode
}

type idleGesture struct{}

// dragGesture records the pointer-to-origin offset captured on press.
type dragGesture struct {
	offsetX, offsetY float64
}

// resizeGesture records the press position and the transform at press time.
type resizeGesture struct {
	corner         Corner
	startX, startY float64
	initial        Transform
}

type rotateGesture struct{}

// pinchGesture tracks the inter-touch distance and angle of the previous event.
type pinchGesture struct {
	initialDist, initialAngle float64
	prevDist, prevAngle       float64
}

func (idleGesture) mode() GestureMode     { return GestureIdle }
func (dragGesture) mode() GestureMode     { return GestureDragging }
func (g resizeGesture) mode() GestureMode { return g.corner.mode() }
func (rotateGesture) mode() GestureMode   { return GestureRotating }
func (*pinchGesture) mode() GestureMode   { return GesturePinching }

// gestureTarget is what a gesture mutates: the live state plus the canvas
// it must stay within.
type gestureTarget struct {
	state   *TransformState
	canvasW float64
	canvasH float64
}

// GestureController converts pointer and touch input into drag, resize,
// rotate, and pinch operations on a TransformState.
type GestureController struct {
	settings Settings
	state    gestureState

	scheduler   FrameScheduler
	redraw      func()
	pinchActive bool
	pinchFrame  FrameID
}

func newGestureController(settings Settings, scheduler FrameScheduler, redraw func()) *GestureController {
	return &GestureController{
		settings:  settings,
		state:     idleGesture{},
		scheduler: scheduler,
		redraw:    redraw,
	}
}

// Mode returns the active gesture mode.
func (g *GestureController) Mode() GestureMode {
	return g.state.mode()
}

// down hit-tests a press at (x, y). It returns the mode entered and whether
// the selection flag changed. The caller only invokes it in custom mode.
func (g *GestureController) down(tg gestureTarget, x, y float64) (GestureMode, bool) {
	st := tg.state
	t, present := st.Sticker()
	if !present {
		return GestureIdle, false
	}

	if st.selected {
		for i, c := range corners(t) {
			if cornerHitBox(c, g.settings.CornerSize).Contains(x, y) {
				g.state = resizeGesture{corner: Corner(i), startX: x, startY: y, initial: t}
				return g.Mode(), false
			}
		}
		if rotationHitCircle(t, g.settings).Contains(x, y) {
			g.state = rotateGesture{}
			return GestureRotating, false
		}
		if t.Bounds().Contains(x, y) {
			g.state = dragGesture{offsetX: x - t.X, offsetY: y - t.Y}
			return GestureDragging, false
		}
	}

	inside := t.Bounds().Contains(x, y)
	changed := inside != st.selected
	st.selected = inside
	return GestureIdle, changed
}

// move applies pointer motion to the active gesture. It reports whether the
// transform changed.
func (g *GestureController) move(tg gestureTarget, x, y float64) bool {
	t, present := tg.state.Sticker()
	if !present {
		return false
	}

	switch gs := g.state.(type) {
	case dragGesture:
		t.X = math.Min(math.Max(0, x-gs.offsetX), tg.canvasW-t.Width)
		t.Y = math.Min(math.Max(0, y-gs.offsetY), tg.canvasH-t.Height)
	case resizeGesture:
		if !tg.state.selected {
			return false
		}
		aspect := tg.state.aspectFor(gs.initial.Content)
		if aspect <= 0 {
			aspect = gs.initial.Width / gs.initial.Height
		}
		t = g.resize(gs, aspect, x, y, tg.canvasW, tg.canvasH)
	case rotateGesture:
		cx, cy := t.Center()
		t.Rotation = math.Atan2(y-cy, x-cx)
	default:
		return false
	}

	tg.state.set(t)
	return true
}

// resize computes the aspect-locked size for a corner drag. The axis with the
// larger pointer delta drives the size; the opposite corner stays fixed.
func (g *GestureController) resize(gs resizeGesture, aspect, x, y, canvasW, canvasH float64) Transform {
	i := gs.initial
	dx := x - gs.startX
	dy := y - gs.startY

	sx, sy := 1.0, 1.0
	if gs.corner.left() {
		sx = -1
	}
	if gs.corner.top() {
		sy = -1
	}

	var w, h float64
	if math.Abs(dx) > math.Abs(dy) {
		w = i.Width + sx*dx
		h = w / aspect
	} else {
		h = i.Height + sy*dy
		w = h * aspect
	}

	// Fixed corner and the canvas space available from it.
	anchorX, maxW := i.X, canvasW-i.X
	if gs.corner.left() {
		anchorX, maxW = i.X+i.Width, i.X+i.Width
	}
	anchorY, maxH := i.Y, canvasH-i.Y
	if gs.corner.top() {
		anchorY, maxH = i.Y+i.Height, i.Y+i.Height
	}

	if w > maxW {
		w = maxW
		h = w / aspect
	}
	if h > maxH {
		h = maxH
		w = h * aspect
	}
	w = math.Max(w, g.settings.MinSize)
	h = math.Max(h, g.settings.MinSize)

	i.Width, i.Height = w, h
	i.X, i.Y = anchorX, anchorY
	if gs.corner.left() {
		i.X = anchorX - w
	}
	if gs.corner.top() {
		i.Y = anchorY - h
	}
	return i
}

// pinchStart enters Pinching from any single-pointer state without
// committing. It reports whether the pinch began.
func (g *GestureController) pinchStart(tg gestureTarget, p0, p1 Vec2) bool {
	if _, present := tg.state.Sticker(); !present {
		return false
	}
	dist, angle := touchGeometry(p0, p1)
	g.state = &pinchGesture{
		initialDist: dist, initialAngle: angle,
		prevDist: dist, prevAngle: angle,
	}
	g.startPinchLoop()
	return true
}

// pinchMove scales and rotates the sticker from the change in inter-touch
// distance and angle since the previous event.
func (g *GestureController) pinchMove(tg gestureTarget, p0, p1 Vec2) bool {
	ps, ok := g.state.(*pinchGesture)
	if !ok {
		return false
	}
	t, present := tg.state.Sticker()
	if !present {
		return false
	}

	dist, angle := touchGeometry(p0, p1)
	factor := 1.0
	if ps.prevDist > 0 {
		factor = dist / ps.prevDist
	}

	threshold := g.settings.PinchThreshold
	minSize := g.settings.MinSize
	switch {
	case factor > threshold:
		w, h := t.Width*factor, t.Height*factor
		if w <= tg.canvasW && h <= tg.canvasH {
			t.Width, t.Height = w, h
		}
	case factor < 1/threshold:
		if t.Width > minSize && t.Height > minSize {
			t.Width = math.Max(t.Width*factor, minSize)
			t.Height = math.Max(t.Height*factor, minSize)
		}
	}
	t.X = clampSpan(t.X, t.Width, tg.canvasW)
	t.Y = clampSpan(t.Y, t.Height, tg.canvasH)
	t.Rotation += normalizeAngle(angle - ps.prevAngle)

	ps.prevDist = dist
	ps.prevAngle = angle
	tg.state.set(t)
	return true
}

// end returns the controller to idle and reports the mode it left.
func (g *GestureController) end() GestureMode {
	prev := g.Mode()
	g.stopPinchLoop()
	g.state = idleGesture{}
	return prev
}

// --- Pinch frame loop ---

// startPinchLoop redraws once per frame while pinching. Touch moves during a
// pinch only mutate state; the loop paints them.
func (g *GestureController) startPinchLoop() {
	if g.pinchActive || g.scheduler == nil {
		return
	}
	g.pinchActive = true
	g.animate()
}

func (g *GestureController) animate() {
	if !g.pinchActive {
		return
	}
	g.pinchFrame = g.scheduler.RequestFrame(g.animate)
	if g.redraw != nil {
		g.redraw()
	}
}

func (g *GestureController) stopPinchLoop() {
	if !g.pinchActive {
		return
	}
	g.pinchActive = false
	if g.pinchFrame != 0 {
		g.scheduler.CancelFrame(g.pinchFrame)
		g.pinchFrame = 0
	}
}

// --- Geometry helpers ---

func touchGeometry(p0, p1 Vec2) (dist, angle float64) {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	return math.Hypot(dx, dy), math.Atan2(dy, dx)
}

// normalizeAngle maps a into (-pi, pi] so a touch pair crossing the atan2
// branch cut does not spin the sticker a full turn.
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// clampSpan keeps [pos, pos+size] inside [0, extent] where possible.
func clampSpan(pos, size, extent float64) float64 {
	return math.Min(math.Max(0, pos), extent-size)
}
