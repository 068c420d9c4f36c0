package sticker

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// snapTween animates the displayed geometry of the sticker from one
// transform to another after an anchor-driven change. Only the picture
// moves; the live transform and history already hold the target.
type snapTween struct {
	tweens  [4]*gween.Tween
	target  Transform
	current Transform
	Done    bool
}

func newSnapTween(from, to Transform, duration float32, fn ease.TweenFunc) *snapTween {
	if fn == nil {
		fn = ease.OutCubic
	}
	g := &snapTween{target: to, current: from}
	g.tweens[0] = gween.New(float32(from.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(from.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(from.Width), float32(to.Width), duration, fn)
	g.tweens[3] = gween.New(float32(from.Height), float32(to.Height), duration, fn)
	return g
}

// Update advances the tween by dt seconds. Once finished the displayed
// geometry equals the target exactly.
func (g *snapTween) Update(dt float32) {
	if g.Done {
		return
	}
	fields := [4]*float64{&g.current.X, &g.current.Y, &g.current.Width, &g.current.Height}
	allDone := true
	for i, tw := range g.tweens {
		val, finished := tw.Update(dt)
		*fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	if g.Done {
		g.current = g.target
	}
}

// display returns t with its geometry replaced by the tween's current frame.
// Content and rotation always come from t.
func (g *snapTween) display(t Transform) Transform {
	t.X, t.Y = g.current.X, g.current.Y
	t.Width, t.Height = g.current.Width, g.current.Height
	return t
}

func sameGeometry(a, b Transform) bool {
	return a.X == b.X && a.Y == b.Y && a.Width == b.Width && a.Height == b.Height
}
