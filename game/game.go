package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/sticker"
)

var backdropColor = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}

// scaleKeys and anchorKeys switch the active orientation's placement.
var (
	scaleKeys = map[ebiten.Key]sticker.ScaleMode{
		ebiten.KeyC: sticker.ScaleCustom,
		ebiten.KeyF: sticker.ScaleFit,
		ebiten.KeyL: sticker.ScaleFill,
	}
	anchorKeys = [...]ebiten.Key{
		ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
		ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
		ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
	}
)

// Game implements ebiten.Game around a sticker.Engine.
type Game struct {
	engine     *sticker.Engine
	surface    *Surface
	background *ebiten.Image
	keys       Keymap
	input      inputState
	snapshots  *Snapshotter
	logger     *log.Logger

	// base is the portrait canvas size; Tab cycles through its portrait,
	// landscape, and square variants.
	baseW, baseH int
	variant      int
}

// New wires an engine to an ebiten surface and sets the initial canvas from
// the engine's settings.
func New(engine *sticker.Engine, surface *Surface, logger *log.Logger) (*Game, error) {
	if engine == nil || surface == nil {
		return nil, fmt.Errorf("new game: %w", sticker.ErrNoSurface)
	}
	keys, err := NewKeymap(engine.Settings())
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	s := engine.Settings()
	g := &Game{
		engine:  engine,
		surface: surface,
		keys:    keys,
		logger:  logger,
		baseW:   int(min(s.CanvasWidth, s.CanvasHeight)),
		baseH:   int(max(s.CanvasWidth, s.CanvasHeight)),
	}
	if s.CanvasWidth > s.CanvasHeight {
		g.variant = 1
	}
	if err := g.applyCanvas(); err != nil {
		return nil, err
	}
	return g, nil
}

// SetBackground sets the photo shown under the canvas.
func (g *Game) SetBackground(img image.Image) {
	if g.background != nil {
		g.background.Deallocate()
	}
	g.background = ebiten.NewImageFromImage(img)
}

// SetSnapshotter enables writing queued snapshots to disk.
func (g *Game) SetSnapshotter(s *Snapshotter) {
	g.snapshots = s
}

// Engine returns the wrapped engine.
func (g *Game) Engine() *sticker.Engine { return g.engine }

// canvasSize returns the canvas dimensions for the current variant.
func (g *Game) canvasSize() (int, int) {
	switch g.variant {
	case 1:
		return g.baseH, g.baseW
	case 2:
		return g.baseW, g.baseW
	default:
		return g.baseW, g.baseH
	}
}

func (g *Game) applyCanvas() error {
	w, h := g.canvasSize()
	g.surface.Resize(w, h)
	if err := g.engine.SetCanvasSize(float64(w), float64(h)); err != nil {
		return fmt.Errorf("set canvas: %w", err)
	}
	ebiten.SetWindowSize(w, h)
	return nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	w, h := g.canvasSize()
	g.input.update(g.engine, float64(w), float64(h))
	if err := g.handleShortcuts(); err != nil {
		return err
	}
	g.engine.Update(1 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) handleShortcuts() error {
	if g.keys.dispatch(g.engine) != ActionNone {
		return nil
	}
	if readModifiers() != 0 {
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.variant = (g.variant + 1) % 3
		return g.applyCanvas()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.engine.RemoveSticker()
	}
	for k, mode := range scaleKeys {
		if inpututil.IsKeyJustPressed(k) {
			if err := g.engine.SetScale(mode); err != nil {
				g.logger.Warn("set scale", "err", err)
			}
		}
	}
	for i, k := range anchorKeys {
		if inpututil.IsKeyJustPressed(k) {
			if err := g.engine.SetPosition(sticker.Anchors[i]); err != nil {
				g.logger.Warn("set position", "err", err)
			}
		}
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backdropColor)
	if g.background != nil {
		sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
		bw, bh := g.background.Bounds().Dx(), g.background.Bounds().Dy()
		var op ebiten.DrawImageOptions
		op.GeoM.Scale(float64(sw)/float64(bw), float64(sh)/float64(bh))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(g.background, &op)
	}
	screen.DrawImage(g.surface.Image(), nil)

	if labels := g.engine.TakeSnapshots(); len(labels) > 0 && g.snapshots != nil {
		g.snapshots.Flush(screen, labels)
	}
}

// Layout implements ebiten.Game. The screen always matches the canvas.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.canvasSize()
}
