package sticker

// Horizontal and vertical alignment tokens of an anchor name. An anchor such
// as "bottom-center" carries the vertical token "bottom" and the horizontal
// token "center"; the two are resolved independently.
const (
	alignStart  = 0 // left / top
	alignMiddle = 1 // center / middle
	alignEnd    = 2 // right / bottom
)

// tokens splits an anchor into its horizontal and vertical alignment.
// ok is false for values outside the nine known anchors.
func (a AnchorPosition) tokens() (horizontal, vertical int, ok bool) {
	if int(a) >= len(anchorNames) {
		return alignStart, alignStart, false
	}
	return int(a) % 3, int(a) / 3, true
}

// alignOffset places a span of length size inside extent according to the
// alignment token.
func alignOffset(token int, size, extent float64) float64 {
	switch token {
	case alignMiddle:
		return extent/2 - size/2
	case alignEnd:
		return extent - size
	default:
		return 0
	}
}

// PositionFor returns the sticker origin for the given anchor on a canvas of
// canvasW x canvasH. Unknown anchors fall back to top-left (0, 0).
//
//	left-x   = 0
//	center-x = canvasW/2 - stickerW/2
//	right-x  = canvasW - stickerW
//	top-y    = 0
//	middle-y = canvasH/2 - stickerH/2
//	bottom-y = canvasH - stickerH
func PositionFor(anchor AnchorPosition, stickerW, stickerH, canvasW, canvasH float64) (x, y float64) {
	h, v, ok := anchor.tokens()
	if !ok {
		return 0, 0
	}
	return alignOffset(h, stickerW, canvasW), alignOffset(v, stickerH, canvasH)
}

// ScaleFor returns the sticker size for a scale mode. aspect is the
// width/height ratio captured when the content was attached; a non-positive
// value falls back to stickerW/stickerH.
//
// fit scales the sticker so its relatively larger axis spans the canvas.
// fill scales it to cover the canvas, overflowing on the other axis.
// custom returns the size unchanged.
func ScaleFor(mode ScaleMode, aspect, stickerW, stickerH, canvasW, canvasH float64) (w, h float64) {
	if aspect <= 0 && stickerH > 0 {
		aspect = stickerW / stickerH
	}
	if aspect <= 0 || canvasW <= 0 || canvasH <= 0 {
		return stickerW, stickerH
	}

	switch mode {
	case ScaleFit:
		wr := stickerW / canvasW
		hr := stickerH / canvasH
		switch {
		case wr > hr:
			return canvasW, canvasW / aspect
		case wr < hr:
			return canvasH * aspect, canvasH
		default:
			return canvasW, canvasH
		}
	case ScaleFill:
		canvasAspect := canvasW / canvasH
		switch {
		case canvasAspect > aspect:
			return canvasW, canvasW / aspect
		case canvasAspect < aspect:
			return canvasH * aspect, canvasH
		default:
			return canvasW, canvasH
		}
	default:
		return stickerW, stickerH
	}
}

// Layout applies a scale mode and anchor to t and returns the resulting
// transform. Content and rotation are preserved.
//
// custom leaves t untouched. fit sizes the sticker and then re-anchors it
// using the new size. fill sizes the sticker and always centers it,
// ignoring the anchor.
func Layout(mode ScaleMode, anchor AnchorPosition, aspect float64, t Transform, canvasW, canvasH float64) Transform {
	switch mode {
	case ScaleFit:
		t.Width, t.Height = ScaleFor(mode, aspect, t.Width, t.Height, canvasW, canvasH)
		t.X, t.Y = PositionFor(anchor, t.Width, t.Height, canvasW, canvasH)
	case ScaleFill:
		t.Width, t.Height = ScaleFor(mode, aspect, t.Width, t.Height, canvasW, canvasH)
		t.X, t.Y = PositionFor(MiddleCenter, t.Width, t.Height, canvasW, canvasH)
	}
	return t
}
