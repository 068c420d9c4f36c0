package game

import (
	"image"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/sticker"
)

var _ sticker.Surface = (*Surface)(nil)

// placeholderColor fills the sticker box when its content was never loaded.
var placeholderColor = sticker.Color{R: 0.5, G: 0.5, B: 0.5, A: 0.6}

// Surface implements sticker.Surface on an offscreen ebiten image. Content
// images are looked up by Content.Key.
type Surface struct {
	canvas  *ebiten.Image
	images  map[string]*ebiten.Image
	missing map[string]bool
	logger  *log.Logger
}

// NewSurface allocates a w x h offscreen canvas.
func NewSurface(w, h int, logger *log.Logger) *Surface {
	if logger == nil {
		logger = log.Default()
	}
	return &Surface{
		canvas:  ebiten.NewImage(w, h),
		images:  make(map[string]*ebiten.Image),
		missing: make(map[string]bool),
		logger:  logger,
	}
}

// Image returns the offscreen canvas.
func (s *Surface) Image() *ebiten.Image { return s.canvas }

// Resize reallocates the canvas when the size changes.
func (s *Surface) Resize(w, h int) {
	b := s.canvas.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return
	}
	s.canvas.Deallocate()
	s.canvas = ebiten.NewImage(w, h)
}

// AddImage registers img under key for later DrawImage calls.
func (s *Surface) AddImage(key string, img image.Image) {
	if old, ok := s.images[key]; ok {
		old.Deallocate()
	}
	s.images[key] = ebiten.NewImageFromImage(img)
	delete(s.missing, key)
}

// Clear erases region to transparent.
func (s *Surface) Clear(region sticker.Rect) {
	r := rectToImage(region).Intersect(s.canvas.Bounds())
	if r.Empty() {
		return
	}
	s.canvas.SubImage(r).(*ebiten.Image).Clear()
}

// DrawImage draws content scaled into the w x h box at (x, y), rotated about
// the box center.
func (s *Surface) DrawImage(content sticker.Content, x, y, w, h, rotation float64) {
	img, ok := s.images[content.Key]
	if !ok {
		if !s.missing[content.Key] {
			s.missing[content.Key] = true
			s.logger.Warn("no image for sticker content", "key", content.Key)
		}
		s.FillRect(sticker.Rect{X: x, Y: y, Width: w, Height: h}, placeholderColor)
		return
	}

	b := img.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(rotation)
	op.GeoM.Translate(x+w/2, y+h/2)
	op.Filter = ebiten.FilterLinear
	s.canvas.DrawImage(img, &op)
}

func (s *Surface) StrokeRect(r sticker.Rect, width float64, c sticker.Color) {
	vector.StrokeRect(s.canvas, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
		float32(width), toRGBA(c), true)
}

func (s *Surface) FillRect(r sticker.Rect, c sticker.Color) {
	vector.DrawFilledRect(s.canvas, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
		toRGBA(c), true)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c sticker.Color) {
	vector.StrokeLine(s.canvas, float32(x0), float32(y0), float32(x1), float32(y1),
		float32(width), toRGBA(c), true)
}

func (s *Surface) FillCircle(cx, cy, radius float64, c sticker.Color) {
	vector.DrawFilledCircle(s.canvas, float32(cx), float32(cy), float32(radius), toRGBA(c), true)
}

func rectToImage(r sticker.Rect) image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height))
}

// toRGBA converts a straight-alpha sticker Color to a premultiplied
// color.RGBA.
func toRGBA(c sticker.Color) color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
