package sticker

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

// newTestController returns a controller over a selected 100x50 sticker at
// (100, 100) on a 300x450 canvas.
func newTestController(t *testing.T) (*GestureController, gestureTarget, *TickScheduler, *int) {
	t.Helper()
	st := newTransformState()
	c := Content{Key: "logo", Width: 200, Height: 100}
	st.recordAspect(c)
	st.set(Transform{Content: c, X: 100, Y: 100, Width: 100, Height: 50})

	redraws := 0
	sched := NewTickScheduler()
	g := newGestureController(DefaultSettings(), sched, func() { redraws++ })
	return g, gestureTarget{state: st, canvasW: 300, canvasH: 450}, sched, &redraws
}

func TestGestureModeString(t *testing.T) {
	if GestureResizingBR.String() != "resizing-br" || GesturePinching.String() != "pinching" {
		t.Errorf("unexpected names: %s %s", GestureResizingBR, GesturePinching)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Rect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 50, CenterY: 50, Radius: 25}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 50, 50, true},
		{"on circumference", 75, 50, true},
		{"outside", 80, 50, false},
		{"outside diagonal", 70, 70, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitCircle.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestDownHitPriority(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want GestureMode
	}{
		{"top-left handle", 100, 100, GestureResizingTL},
		{"top-right handle", 200, 100, GestureResizingTR},
		{"bottom-left handle", 100, 150, GestureResizingBL},
		{"bottom-right handle", 200, 150, GestureResizingBR},
		{"handle outside body", 92, 92, GestureResizingTL},
		{"rotation knob", 150, 180, GestureRotating},
		{"rotation knob edge", 150, 195, GestureRotating},
		{"body", 150, 125, GestureDragging},
		{"outside", 10, 10, GestureIdle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, tg, _, _ := newTestController(t)
			if got, _ := g.down(tg, tt.x, tt.y); got != tt.want {
				t.Errorf("down(%v, %v) = %s, want %s", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestDownTogglesSelection(t *testing.T) {
	g, tg, _, _ := newTestController(t)

	mode, changed := g.down(tg, 10, 10)
	if mode != GestureIdle || !changed || tg.state.selected {
		t.Fatalf("press outside: mode %s changed %v selected %v", mode, changed, tg.state.selected)
	}

	// Handles are inactive while deselected.
	mode, changed = g.down(tg, 100, 100)
	if mode != GestureIdle || !changed || !tg.state.selected {
		t.Fatalf("press on corner while deselected: mode %s changed %v selected %v", mode, changed, tg.state.selected)
	}

	if mode, _ = g.down(tg, 150, 125); mode != GestureDragging {
		t.Errorf("press on body after reselect = %s, want dragging", mode)
	}
}

func TestDownWithoutSticker(t *testing.T) {
	g, tg, _, _ := newTestController(t)
	tg.state.clear()
	if mode, changed := g.down(tg, 150, 125); mode != GestureIdle || changed {
		t.Errorf("down = %s, %v; want idle, false", mode, changed)
	}
}

func TestDragClampsToCanvas(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		wx, wy float64
	}{
		{"inside", 160, 140, 110, 115},
		{"past bottom-right", 1000, 1000, 200, 400},
		{"past top-left", -500, -500, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, tg, _, _ := newTestController(t)
			g.down(tg, 150, 125)
			g.move(tg, tt.x, tt.y)
			got, _ := tg.state.Sticker()
			if got.X != tt.wx || got.Y != tt.wy {
				t.Errorf("after move to (%v, %v): (%v, %v), want (%v, %v)", tt.x, tt.y, got.X, got.Y, tt.wx, tt.wy)
			}
			if got.Width != 100 || got.Height != 50 {
				t.Errorf("drag changed size to %vx%v", got.Width, got.Height)
			}
		})
	}
}

func TestResizeKeepsOppositeCornerFixed(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		mx, my float64
		want   Transform
	}{
		{"bottom-right grows", 200, 150, 240, 150, Transform{X: 100, Y: 100, Width: 140, Height: 70}},
		{"top-left grows", 100, 100, 80, 100, Transform{X: 80, Y: 90, Width: 120, Height: 60}},
		{"top-right by height", 200, 100, 200, 80, Transform{X: 100, Y: 80, Width: 140, Height: 70}},
		{"bottom-left shrinks", 100, 150, 120, 150, Transform{X: 120, Y: 100, Width: 80, Height: 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, tg, _, _ := newTestController(t)
			g.down(tg, tt.px, tt.py)
			g.move(tg, tt.mx, tt.my)
			got, _ := tg.state.Sticker()
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) ||
				!approx(got.Width, tt.want.Width) || !approx(got.Height, tt.want.Height) {
				t.Errorf("resize = (%v, %v, %vx%v), want (%v, %v, %vx%v)",
					got.X, got.Y, got.Width, got.Height,
					tt.want.X, tt.want.Y, tt.want.Width, tt.want.Height)
			}
		})
	}
}

func TestResizeClampsToCanvasAndMinimum(t *testing.T) {
	g, tg, _, _ := newTestController(t)
	g.down(tg, 200, 150)
	g.move(tg, 900, 150)
	got, _ := tg.state.Sticker()
	if got.Width != 200 || got.Height != 100 || got.X != 100 || got.Y != 100 {
		t.Errorf("max clamp = %+v, want 200x100 at (100, 100)", got)
	}

	g.move(tg, 0, 150)
	got, _ = tg.state.Sticker()
	if got.Width != 30 || got.Height != 30 {
		t.Errorf("min clamp = %vx%v, want 30x30", got.Width, got.Height)
	}
	if got.X != 100 || got.Y != 100 {
		t.Errorf("min clamp moved the fixed corner to (%v, %v)", got.X, got.Y)
	}
}

func TestRotateFollowsPointer(t *testing.T) {
	g, tg, _, _ := newTestController(t)
	if mode, _ := g.down(tg, 150, 180); mode != GestureRotating {
		t.Fatalf("down = %s, want rotating", mode)
	}

	g.move(tg, 250, 125)
	got, _ := tg.state.Sticker()
	if !approx(got.Rotation, 0) {
		t.Errorf("rotation = %v, want 0", got.Rotation)
	}

	g.move(tg, 150, 225)
	got, _ = tg.state.Sticker()
	if !approx(got.Rotation, math.Pi/2) {
		t.Errorf("rotation = %v, want pi/2", got.Rotation)
	}
	if got.X != 100 || got.Width != 100 {
		t.Error("rotation changed geometry")
	}
}

func TestMoveWhileIdleIsNoop(t *testing.T) {
	g, tg, _, _ := newTestController(t)
	if g.move(tg, 10, 10) {
		t.Error("idle move reported a change")
	}
}

func TestPinchThresholds(t *testing.T) {
	g, tg, _, _ := newTestController(t)
	if !g.pinchStart(tg, Vec2{0, 0}, Vec2{64, 0}) {
		t.Fatal("pinchStart failed")
	}
	if g.Mode() != GesturePinching {
		t.Fatalf("mode = %s, want pinching", g.Mode())
	}

	// Each step is measured against the previous event's distance.
	steps := []struct {
		name string
		dist float64
		w, h float64
	}{
		{"below threshold", 64.5, 100, 50},
		{"grow", 129, 200, 100},
		{"shrink", 64.5, 100, 50},
		{"shrink floored", 32.25, 50, 30},
		{"blocked at minimum", 16.125, 50, 30},
	}
	for _, st := range steps {
		g.pinchMove(tg, Vec2{0, 0}, Vec2{st.dist, 0})
		got, _ := tg.state.Sticker()
		if !approx(got.Width, st.w) || !approx(got.Height, st.h) {
			t.Errorf("%s: size = %vx%v, want %vx%v", st.name, got.Width, got.Height, st.w, st.h)
		}
	}
}

func TestPinchGrowthBlockedByCanvas(t *testing.T) {
	g, tg, _, _ := newTestController(t)
	g.pinchStart(tg, Vec2{0, 0}, Vec2{100, 0})
	g.pinchMove(tg, Vec2{0, 0}, Vec2{400, 0})
	got, _ := tg.state.Sticker()
	if got.Width != 100 || got.Height != 50 {
		t.Errorf("size = %vx%v, want unchanged 100x50", got.Width, got.Height)
	}
}

func TestPinchRotates(t *testing.T) {
	g, tg, _, _ := newTestController(t)
	g.pinchStart(tg, Vec2{0, 0}, Vec2{100, 0})
	g.pinchMove(tg, Vec2{0, 0}, Vec2{0, 100})
	got, _ := tg.state.Sticker()
	if !approx(got.Rotation, math.Pi/2) {
		t.Errorf("rotation = %v, want pi/2", got.Rotation)
	}
}

func TestPinchAcrossBranchCut(t *testing.T) {
	g, tg, _, _ := newTestController(t)
	// Angles just either side of +/-pi.
	g.pinchStart(tg, Vec2{0, 0}, Vec2{-100, 1})
	g.pinchMove(tg, Vec2{0, 0}, Vec2{-100, -1})
	got, _ := tg.state.Sticker()
	if math.Abs(got.Rotation) > 0.1 {
		t.Errorf("rotation = %v, want a small delta", got.Rotation)
	}
}

func TestPinchFrameLoop(t *testing.T) {
	g, tg, sched, redraws := newTestController(t)
	g.pinchStart(tg, Vec2{0, 0}, Vec2{100, 0})
	if sched.Pending() != 1 || *redraws != 1 {
		t.Fatalf("after start: pending %d redraws %d, want 1 1", sched.Pending(), *redraws)
	}

	// Moves only mutate state.
	g.pinchMove(tg, Vec2{0, 0}, Vec2{150, 0})
	if *redraws != 1 {
		t.Errorf("pinchMove redrew: %d", *redraws)
	}

	sched.Tick()
	sched.Tick()
	if *redraws != 3 || sched.Pending() != 1 {
		t.Errorf("after two frames: redraws %d pending %d, want 3 1", *redraws, sched.Pending())
	}

	if prev := g.end(); prev != GesturePinching {
		t.Errorf("end = %s, want pinching", prev)
	}
	if sched.Pending() != 0 {
		t.Errorf("pending after end = %d, want 0", sched.Pending())
	}
	sched.Tick()
	if *redraws != 3 {
		t.Errorf("loop kept running after end: %d redraws", *redraws)
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{7 * math.Pi / 4, -math.Pi / 4},
	}
	for _, tt := range tests {
		if got := normalizeAngle(tt.in); !approx(got, tt.want) {
			t.Errorf("normalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
