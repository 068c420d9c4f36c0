package sticker

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// Engine coordinates the sticker state, per-orientation history, gesture
// controller, and redraws. It is single-threaded: every method must be
// called from the goroutine that owns the event loop.
type Engine struct {
	settings Settings
	logger   *log.Logger

	canvasW, canvasH float64
	canvasSet        bool
	orientation      Orientation

	state   *TransformState
	history *HistoryStore
	gesture *GestureController
	render  *RenderSync

	scheduler FrameScheduler
	ticker    *TickScheduler // non-nil when the engine owns the scheduler

	handlers handlerRegistry
	store    EventStore

	injectQueue   []syntheticEvent
	testRunner    *TestRunner
	snapshotQueue []string
}

// NewEngine creates an engine drawing to surface. A nil surface is fatal:
// the engine cannot run without one.
func NewEngine(surface Surface, settings Settings) (*Engine, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	ticker := NewTickScheduler()
	e := &Engine{
		settings:  settings,
		logger:    newDefaultLogger(),
		state:     newTransformState(),
		history:   NewHistoryStore(),
		render:    newRenderSync(surface, settings),
		scheduler: ticker,
		ticker:    ticker,
	}
	e.gesture = newGestureController(settings, ticker, e.Redraw)
	return e, nil
}

func newDefaultLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "sticker",
		Level:  log.WarnLevel,
	})
}

// SetLogger replaces the engine's logger.
func (e *Engine) SetLogger(l *log.Logger) {
	if l != nil {
		e.logger = l
	}
}

// SetDebugMode switches the engine logger between debug and warn level.
func (e *Engine) SetDebugMode(enabled bool) {
	if enabled {
		e.logger.SetLevel(log.DebugLevel)
	} else {
		e.logger.SetLevel(log.WarnLevel)
	}
}

// SetScheduler replaces the frame scheduler used by the pinch loop. Update
// keeps ticking it only when it is a *TickScheduler; any other scheduler is
// driven by the caller.
func (e *Engine) SetScheduler(s FrameScheduler) {
	if s == nil {
		return
	}
	e.gesture.stopPinchLoop()
	e.scheduler = s
	e.gesture.scheduler = s
	e.ticker = nil
	if ts, ok := s.(*TickScheduler); ok {
		e.ticker = ts
	}
}

// Settings returns the settings the engine was created with.
func (e *Engine) Settings() Settings { return e.settings }

// --- Accessors ---

// Orientation returns the active orientation.
func (e *Engine) Orientation() Orientation { return e.orientation }

// CanvasSize returns the canvas dimensions; ok is false before SetCanvasSize.
func (e *Engine) CanvasSize() (w, h float64, ok bool) {
	return e.canvasW, e.canvasH, e.canvasSet
}

// Sticker returns the live transform; ok is false when no sticker is present.
func (e *Engine) Sticker() (Transform, bool) { return e.state.Sticker() }

// Selected reports whether the sticker shows its handles and accepts
// direct manipulation.
func (e *Engine) Selected() bool { return e.state.selected }

// GestureMode returns the active gesture.
func (e *Engine) GestureMode() GestureMode { return e.gesture.Mode() }

// Scale returns the active orientation's scale mode.
func (e *Engine) Scale() ScaleMode { return e.activeConfig().Scale }

// Position returns the active orientation's anchor position.
func (e *Engine) Position() AnchorPosition { return e.activeConfig().Position }

// History returns the history track for o.
func (e *Engine) History(o Orientation) *HistoryTrack { return e.history.Track(o) }

// Redraws returns how many full redraws the engine has issued.
func (e *Engine) Redraws() int { return e.render.Redraws() }

func (e *Engine) activeConfig() *OrientationConfig {
	return e.state.config.For(e.orientation)
}

func (e *Engine) target() gestureTarget {
	return gestureTarget{state: e.state, canvasW: e.canvasW, canvasH: e.canvasH}
}

// --- Canvas and sticker ---

// SetCanvasSize sets the canvas dimensions and re-evaluates the orientation.
// The sticker shown is the current entry of the new orientation's history;
// other orientations are left untouched.
func (e *Engine) SetCanvasSize(w, h float64) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("set canvas size %vx%v: %w", w, h, ErrInvalidCanvas)
	}
	e.gesture.end()

	prev := e.orientation
	first := !e.canvasSet
	e.canvasW, e.canvasH, e.canvasSet = w, h, true
	e.orientation = Classify(w, h)
	e.render.setCanvas(w, h)

	if t, ok := e.history.Track(e.orientation).Current(); ok {
		e.state.set(t)
	} else {
		e.state.clear()
	}
	e.syncSelection()
	e.Redraw()

	if first || prev != e.orientation {
		e.logger.Debug("orientation", "orientation", e.orientation, "width", w, "height", h)
		e.emit(EventOrientationChanged)
	}
	return nil
}

// AttachSticker places content on the canvas. The aspect ratio is captured
// once here. The natural size is shrunk to fit the canvas, floored at the
// minimum size, placed at the origin, and then laid out with the active scale
// mode and anchor. When the active config already holds committed geometry
// for the same content key, that geometry is used instead of the origin. The
// result is committed to history.
func (e *Engine) AttachSticker(c Content) error {
	if !e.canvasSet {
		e.logger.Warn("attach before canvas size", "content", c.Key)
		return fmt.Errorf("attach %q: %w", c.Key, ErrNoCanvas)
	}
	if !c.valid() {
		return fmt.Errorf("attach %q: %w", c.Key, ErrInvalidContent)
	}
	e.gesture.end()

	aspect := e.state.recordAspect(c)
	w, h := c.Width, c.Height
	if w > e.canvasW {
		w = e.canvasW
		h = w / aspect
	}
	if h > e.canvasH {
		h = e.canvasH
		w = h * aspect
	}
	w = max(w, e.settings.MinSize)
	h = max(h, e.settings.MinSize)

	cfg := e.activeConfig()
	t := Transform{Content: c, Width: w, Height: h}
	if saved, ok := cfg.placement(c, e.canvasW, e.canvasH, e.settings.MinSize); ok {
		t = saved
		e.logger.Debug("restored placement", "content", c.Key, "x", t.X, "y", t.Y, "w", t.Width, "h", t.Height)
	}
	content := c
	cfg.Content = &content

	e.updateSticker(t, cfg.Scale, cfg.Position)
	return nil
}

// RemoveSticker clears the live sticker. History is untouched, so Undo and
// Redo can bring it back.
func (e *Engine) RemoveSticker() {
	if _, ok := e.state.Sticker(); !ok {
		return
	}
	e.gesture.end()
	e.state.clear()
	e.Redraw()
	e.emit(EventStickerRemoved)
}

// updateSticker lays t out with mode and anchor, replaces the live
// transform, and commits it.
func (e *Engine) updateSticker(t Transform, mode ScaleMode, anchor AnchorPosition) {
	prev, had := e.state.Sticker()
	nt := Layout(mode, anchor, e.state.aspectFor(t.Content), t, e.canvasW, e.canvasH)

	e.state.set(nt)
	if mode != ScaleCustom {
		e.setSelected(false)
		if had {
			e.render.animate(prev, nt)
		}
	}
	e.commit()
}

// commit records the live transform on the active track and redraws.
func (e *Engine) commit() {
	t, ok := e.state.Sticker()
	if !ok {
		return
	}
	e.history.Commit(e.orientation, t)
	e.activeConfig().place(t)
	e.logger.Debug("commit",
		"orientation", e.orientation,
		"cursor", e.history.Track(e.orientation).Cursor(),
		"x", t.X, "y", t.Y, "w", t.Width, "h", t.Height, "rotation", t.Rotation)
	e.Redraw()
	e.emit(EventCommitted)
}

// --- Scale and anchor ---

// SetScale changes the active orientation's scale mode. A non-custom mode
// re-lays out the sticker and deselects it; custom re-enables selection.
func (e *Engine) SetScale(mode ScaleMode) error {
	if int(mode) >= len(scaleModeNames) {
		return fmt.Errorf("set scale: %w: %d", ErrUnknownScaleMode, mode)
	}
	cfg := e.activeConfig()
	cfg.Scale = mode
	t, present := e.state.Sticker()
	if present && mode != ScaleCustom {
		e.gesture.end()
		e.updateSticker(t, mode, cfg.Position)
	} else {
		e.setSelected(mode == ScaleCustom)
		e.Redraw()
	}
	return nil
}

// SetPosition changes the active orientation's anchor. Outside custom mode
// the sticker is re-laid out immediately.
func (e *Engine) SetPosition(anchor AnchorPosition) error {
	if int(anchor) >= len(anchorNames) {
		return fmt.Errorf("set position: %w: %d", ErrUnknownAnchor, anchor)
	}
	cfg := e.activeConfig()
	cfg.Position = anchor
	if t, present := e.state.Sticker(); present && cfg.Scale != ScaleCustom {
		e.updateSticker(t, cfg.Scale, anchor)
	}
	return nil
}

// setSelected updates the selection flag and emits on change.
func (e *Engine) setSelected(v bool) {
	if e.state.selected == v {
		return
	}
	e.state.selected = v
	e.emit(EventSelectionChanged)
}

// syncSelection forces selection off while an anchor-driven mode is active.
func (e *Engine) syncSelection() {
	if e.activeConfig().Scale != ScaleCustom {
		e.setSelected(false)
	}
}

// --- History ---

// Undo steps the active orientation's history back. It returns the live
// transform afterwards; ok is false when no sticker remains. Undo past the
// oldest entry is a no-op.
func (e *Engine) Undo() (Transform, bool) {
	e.gesture.end()
	t, present, moved := e.history.Undo(e.orientation)
	if !moved {
		return e.state.Sticker()
	}
	if present {
		e.state.set(t)
		e.activeConfig().place(t)
	} else {
		e.state.clear()
	}
	e.logger.Debug("undo", "orientation", e.orientation, "cursor", e.history.Track(e.orientation).Cursor())
	e.Redraw()
	e.emit(EventUndo)
	return e.state.Sticker()
}

// Redo steps the active orientation's history forward. Redo at the newest
// entry is a no-op.
func (e *Engine) Redo() (Transform, bool) {
	e.gesture.end()
	t, ok := e.history.Redo(e.orientation)
	if !ok {
		return e.state.Sticker()
	}
	e.state.set(t)
	e.activeConfig().place(t)
	e.logger.Debug("redo", "orientation", e.orientation, "cursor", e.history.Track(e.orientation).Cursor())
	e.Redraw()
	e.emit(EventRedo)
	return t, true
}

// --- Configuration ---

// Config returns a copy of the declared configuration.
func (e *Engine) Config() Config {
	return e.state.config.Clone()
}

// LoadConfig replaces all three orientation configs. An invalid config is
// rejected and the previous state is left untouched.
func (e *Engine) LoadConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		e.logger.Warn("rejected config", "id", cfg.ID, "err", err)
		return fmt.Errorf("load config: %w", err)
	}
	e.gesture.end()
	e.state.config = cfg.Clone()
	e.syncSelection()
	e.logger.Debug("config loaded", "id", cfg.ID)
	e.Redraw()
	e.emit(EventConfigLoaded)
	return nil
}

// --- Rendering and frames ---

// Redraw issues a full redraw of the canvas.
func (e *Engine) Redraw() {
	t, present := e.state.Sticker()
	e.render.Draw(t, present, e.state.selected)
}

// Update advances one frame: it runs the test runner, consumes one injected
// event, runs scheduled frame callbacks, and advances the snap animation.
// dt is the frame time in seconds.
func (e *Engine) Update(dt float64) {
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.processInjectedInput()
	if e.ticker != nil {
		e.ticker.Tick()
	}
	if e.render.update(float32(dt)) {
		e.Redraw()
	}
}

// Snapshot queues a labeled capture of the rendered canvas. The shell that
// owns the real surface drains the queue with TakeSnapshots.
func (e *Engine) Snapshot(label string) {
	e.snapshotQueue = append(e.snapshotQueue, label)
}

// TakeSnapshots returns and clears the queued snapshot labels.
func (e *Engine) TakeSnapshots() []string {
	if len(e.snapshotQueue) == 0 {
		return nil
	}
	out := e.snapshotQueue
	e.snapshotQueue = nil
	return out
}
