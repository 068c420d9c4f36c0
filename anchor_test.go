package sticker

import (
	"errors"
	"testing"
)

func TestPositionFor(t *testing.T) {
	tests := []struct {
		anchor AnchorPosition
		x, y   float64
	}{
		{TopLeft, 0, 0},
		{TopCenter, 100, 0},
		{TopRight, 200, 0},
		{MiddleLeft, 0, 195},
		{MiddleCenter, 100, 195},
		{MiddleRight, 200, 195},
		{BottomLeft, 0, 390},
		{BottomCenter, 100, 390},
		{BottomRight, 200, 390},
	}
	for _, tt := range tests {
		t.Run(tt.anchor.String(), func(t *testing.T) {
			x, y := PositionFor(tt.anchor, 100, 60, 300, 450)
			if x != tt.x || y != tt.y {
				t.Errorf("PositionFor(%s) = (%v, %v), want (%v, %v)", tt.anchor, x, y, tt.x, tt.y)
			}
		})
	}
}

func TestPositionForUnknownAnchor(t *testing.T) {
	x, y := PositionFor(AnchorPosition(42), 100, 60, 300, 450)
	if x != 0 || y != 0 {
		t.Errorf("unknown anchor = (%v, %v), want (0, 0)", x, y)
	}
}

func TestScaleFor(t *testing.T) {
	tests := []struct {
		name           string
		mode           ScaleMode
		sw, sh, cw, ch float64
		wantW, wantH   float64
	}{
		{"fit width-bound", ScaleFit, 200, 100, 300, 450, 300, 150},
		{"fit height-bound", ScaleFit, 100, 200, 450, 300, 150, 300},
		{"fit equal ratios", ScaleFit, 150, 225, 300, 450, 300, 450},
		{"fit square on portrait", ScaleFit, 512, 512, 300, 450, 300, 300},
		{"fill wide sticker", ScaleFill, 200, 100, 300, 450, 900, 450},
		{"fill tall sticker", ScaleFill, 100, 200, 300, 450, 300, 600},
		{"fill same aspect", ScaleFill, 30, 45, 300, 450, 300, 450},
		{"custom unchanged", ScaleCustom, 123, 45, 300, 450, 123, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := ScaleFor(tt.mode, tt.sw/tt.sh, tt.sw, tt.sh, tt.cw, tt.ch)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("ScaleFor = (%v, %v), want (%v, %v)", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestScaleForUsesRecordedAspect(t *testing.T) {
	// A sticker squashed by the minimum-size floor still fits with its
	// original aspect.
	w, h := ScaleFor(ScaleFit, 2, 30, 30, 300, 450)
	if w != 300 || h != 150 {
		t.Errorf("ScaleFor = (%v, %v), want (300, 150)", w, h)
	}
}

func TestLayoutFitReanchorsWithNewSize(t *testing.T) {
	in := Transform{Width: 300, Height: 300}
	got := Layout(ScaleFit, MiddleCenter, 1, in, 300, 450)
	if got.X != 0 || got.Y != 75 || got.Width != 300 || got.Height != 300 {
		t.Errorf("Layout = %+v, want 300x300 at (0, 75)", got)
	}
}

func TestLayoutFillAlwaysCenters(t *testing.T) {
	for _, a := range Anchors {
		got := Layout(ScaleFill, a, 0.5, Transform{Width: 100, Height: 200}, 300, 450)
		if got.X != 0 || got.Y != -75 || got.Width != 300 || got.Height != 600 {
			t.Errorf("Layout(fill, %s) = %+v, want 300x600 at (0, -75)", a, got)
		}
	}
}

func TestLayoutCustomUnchanged(t *testing.T) {
	in := Transform{X: 12, Y: 34, Width: 56, Height: 78, Rotation: 1}
	if got := Layout(ScaleCustom, BottomRight, 56.0/78.0, in, 300, 450); got != in {
		t.Errorf("Layout(custom) = %+v, want %+v", got, in)
	}
}

func TestLayoutIdempotent(t *testing.T) {
	for _, mode := range []ScaleMode{ScaleFit, ScaleFill} {
		for _, a := range Anchors {
			once := Layout(mode, a, 2, Transform{Width: 200, Height: 100}, 300, 450)
			twice := Layout(mode, a, 2, once, 300, 450)
			if once != twice {
				t.Errorf("Layout(%s, %s) not idempotent: %+v then %+v", mode, a, once, twice)
			}
		}
	}
}

func TestLayoutPreservesRotationAndContent(t *testing.T) {
	c := Content{Key: "logo", Width: 200, Height: 100}
	got := Layout(ScaleFit, TopLeft, 2, Transform{Content: c, Width: 200, Height: 100, Rotation: 0.3}, 300, 450)
	if got.Content != c || got.Rotation != 0.3 {
		t.Errorf("Layout lost content or rotation: %+v", got)
	}
}

func TestParseAnchor(t *testing.T) {
	for _, a := range Anchors {
		got, err := ParseAnchor(a.String())
		if err != nil || got != a {
			t.Errorf("ParseAnchor(%q) = %v, %v", a.String(), got, err)
		}
	}
	if got, err := ParseAnchor("Middle-Center"); err != nil || got != MiddleCenter {
		t.Errorf("ParseAnchor is case-sensitive: %v, %v", got, err)
	}
	if _, err := ParseAnchor("center"); !errors.Is(err, ErrUnknownAnchor) {
		t.Errorf("ParseAnchor(center) err = %v, want ErrUnknownAnchor", err)
	}
}

func TestParseScaleMode(t *testing.T) {
	for _, name := range []string{"custom", "fit", "fill"} {
		m, err := ParseScaleMode(name)
		if err != nil || m.String() != name {
			t.Errorf("ParseScaleMode(%q) = %v, %v", name, m, err)
		}
	}
	if _, err := ParseScaleMode("stretch"); !errors.Is(err, ErrUnknownScaleMode) {
		t.Errorf("err = %v, want ErrUnknownScaleMode", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		w, h float64
		want Orientation
	}{
		{300, 450, Portrait},
		{450, 300, Landscape},
		{300, 300, Square},
	}
	for _, tt := range tests {
		if got := Classify(tt.w, tt.h); got != tt.want {
			t.Errorf("Classify(%v, %v) = %s, want %s", tt.w, tt.h, got, tt.want)
		}
	}
}
