package sticker

import (
	"github.com/tanema/gween/ease"
)

// Surface is the drawing collaborator. The engine issues a full redraw on
// every change and performs no diffing; implementations only rasterize.
type Surface interface {
	// Clear erases region to transparent.
	Clear(region Rect)
	// DrawImage draws content scaled to w x h at (x, y), rotated by rotation
	// radians about the center of that box.
	DrawImage(content Content, x, y, w, h, rotation float64)
	StrokeRect(r Rect, width float64, c Color)
	FillRect(r Rect, c Color)
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
	FillCircle(cx, cy, radius float64, c Color)
}

// Decoration sizes that are not configurable.
const (
	handleStrokeWidth = 2
	knobInnerRatio    = 2.0 / 3.0
)

// RenderSync redraws the whole canvas from the live transform.
type RenderSync struct {
	surface  Surface
	settings Settings
	canvas   Rect

	snap    *snapTween
	easeFn  ease.TweenFunc
	redraws int
}

func newRenderSync(surface Surface, settings Settings) *RenderSync {
	return &RenderSync{surface: surface, settings: settings, easeFn: ease.OutCubic}
}

// Redraws returns how many full redraws were issued.
func (r *RenderSync) Redraws() int { return r.redraws }

func (r *RenderSync) setCanvas(w, h float64) {
	r.canvas = Rect{Width: w, Height: h}
}

// animate starts a snap tween from the displayed geometry to "to" when snap
// animation is enabled.
func (r *RenderSync) animate(from, to Transform) {
	d := r.settings.SnapDuration.Seconds()
	if d <= 0 || sameGeometry(from, to) {
		r.snap = nil
		return
	}
	if r.snap != nil && !r.snap.Done {
		from = r.snap.display(from)
	}
	r.snap = newSnapTween(from, to, float32(d), r.easeFn)
}

// animating reports whether a snap tween is still running.
func (r *RenderSync) animating() bool {
	return r.snap != nil && !r.snap.Done
}

// update advances the snap tween; it reports whether a redraw is due.
func (r *RenderSync) update(dt float32) bool {
	if !r.animating() {
		return false
	}
	r.snap.Update(dt)
	return true
}

// Draw clears the canvas and paints the sticker plus, when selected, its
// bounding stroke, corner handles, and rotation handle.
func (r *RenderSync) Draw(t Transform, present, selected bool) {
	r.redraws++
	r.surface.Clear(r.canvas)
	if !present {
		return
	}

	if r.snap != nil {
		if !sameGeometry(r.snap.target, t) {
			r.snap = nil
		} else {
			t = r.snap.display(t)
		}
	}

	r.surface.DrawImage(t.Content, t.X, t.Y, t.Width, t.Height, t.Rotation)
	if !selected {
		return
	}

	s := r.settings
	r.surface.StrokeRect(t.Bounds(), s.StrokeWidth, ColorBlue)

	for _, c := range corners(t) {
		box := cornerHitBox(c, s.CornerSize)
		r.surface.FillRect(box, ColorWhite)
		r.surface.StrokeRect(box, handleStrokeWidth, ColorBlue)
	}

	cx := t.X + t.Width/2
	bottom := t.Y + t.Height
	knobY := bottom + s.RotationHandleOffset
	r.surface.StrokeLine(cx, bottom, cx, knobY, s.StrokeWidth, ColorBlue)
	r.surface.FillCircle(cx, knobY, s.RotationHandleRadius, ColorBlue)
	r.surface.FillCircle(cx, knobY, s.RotationHandleRadius*knobInnerRatio, ColorYellow)
}

// corners returns the four bounding-box corners in TL, TR, BL, BR order.
func corners(t Transform) [4]Vec2 {
	return [4]Vec2{
		{t.X, t.Y},
		{t.X + t.Width, t.Y},
		{t.X, t.Y + t.Height},
		{t.X + t.Width, t.Y + t.Height},
	}
}
