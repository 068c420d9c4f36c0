package sticker

import (
	"fmt"
	"math"
)

// OrientationConfig is the declared placement for one orientation: which
// content to show and how to scale and anchor it. X, Y, Width, Height, and
// Rotation hold the last committed geometry so a custom placement survives a
// save and restore. A zero Width means nothing has been committed yet.
type OrientationConfig struct {
	Content  *Content       `json:"content,omitempty"`
	Scale    ScaleMode      `json:"scale"`
	Position AnchorPosition `json:"position"`
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Width    float64        `json:"width,omitempty"`
	Height   float64        `json:"height,omitempty"`
	Rotation float64        `json:"rotation,omitempty"`
}

// DefaultOrientationConfig returns custom scaling anchored top-left.
func DefaultOrientationConfig() OrientationConfig {
	return OrientationConfig{Scale: ScaleCustom, Position: TopLeft}
}

func (c OrientationConfig) validate() error {
	if int(c.Scale) >= len(scaleModeNames) {
		return fmt.Errorf("%w: %d", ErrUnknownScaleMode, c.Scale)
	}
	if int(c.Position) >= len(anchorNames) {
		return fmt.Errorf("%w: %d", ErrUnknownAnchor, c.Position)
	}
	if c.Content != nil && !c.Content.valid() {
		return ErrInvalidContent
	}
	for _, v := range [...]float64{c.X, c.Y, c.Width, c.Height, c.Rotation} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite placement (%v, %v, %vx%v, %v)", c.X, c.Y, c.Width, c.Height, c.Rotation)
		}
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("negative size %vx%v", c.Width, c.Height)
	}
	return nil
}

// place records t as the committed geometry.
func (c *OrientationConfig) place(t Transform) {
	c.X, c.Y = t.X, t.Y
	c.Width, c.Height = t.Width, t.Height
	c.Rotation = t.Rotation
}

// placement returns the committed geometry for content, fitted into the
// canvas. ok is false when none was committed or it belongs to other content.
func (c OrientationConfig) placement(content Content, canvasW, canvasH, minSize float64) (t Transform, ok bool) {
	if c.Content == nil || c.Content.Key != content.Key || c.Width <= 0 || c.Height <= 0 {
		return Transform{}, false
	}
	w, h := c.Width, c.Height
	if k := math.Min(canvasW/w, canvasH/h); k < 1 {
		w, h = w*k, h*k
	}
	w = max(w, minSize)
	h = max(h, minSize)
	t = Transform{
		Content:  content,
		X:        math.Min(math.Max(0, c.X), math.Max(0, canvasW-w)),
		Y:        math.Min(math.Max(0, c.Y), math.Max(0, canvasH-h)),
		Width:    w,
		Height:   h,
		Rotation: c.Rotation,
	}
	return t, true
}

// Config is the persisted watermark configuration: one OrientationConfig per
// orientation. Loading a Config replaces all three wholesale.
type Config struct {
	ID        string            `json:"id"`
	Portrait  OrientationConfig `json:"portrait"`
	Landscape OrientationConfig `json:"landscape"`
	Square    OrientationConfig `json:"square"`
}

// DefaultConfig returns a config with default placement for every orientation.
func DefaultConfig() Config {
	return Config{
		Portrait:  DefaultOrientationConfig(),
		Landscape: DefaultOrientationConfig(),
		Square:    DefaultOrientationConfig(),
	}
}

// For returns a pointer to the OrientationConfig for o.
func (c *Config) For(o Orientation) *OrientationConfig {
	switch o {
	case Landscape:
		return &c.Landscape
	case Square:
		return &c.Square
	default:
		return &c.Portrait
	}
}

// Validate reports the first invalid orientation, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	for _, o := range Orientations {
		if err := c.For(o).validate(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, o, err)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (c Config) Clone() Config {
	for _, o := range Orientations {
		oc := c.For(o)
		if oc.Content != nil {
			content := *oc.Content
			oc.Content = &content
		}
	}
	return c
}

// TransformState holds the single live sticker transform, the declared
// per-orientation configuration, and the selection flag.
type TransformState struct {
	config   Config
	sticker  Transform
	present  bool
	selected bool

	// aspects records width/height per content key at attach time so later
	// layouts never derive it from mutated dimensions.
	aspects map[string]float64
}

func newTransformState() *TransformState {
	return &TransformState{
		config:   DefaultConfig(),
		selected: true,
		aspects:  make(map[string]float64),
	}
}

// Sticker returns the live transform; ok is false when no sticker is present.
func (s *TransformState) Sticker() (Transform, bool) {
	return s.sticker, s.present
}

func (s *TransformState) set(t Transform) {
	s.sticker = t
	s.present = true
}

func (s *TransformState) clear() {
	s.sticker = Transform{}
	s.present = false
}

// aspectFor returns the aspect ratio recorded for c, falling back to its
// natural size when c was never attached (e.g. restored from a saved config).
func (s *TransformState) aspectFor(c Content) float64 {
	if a, ok := s.aspects[c.Key]; ok {
		return a
	}
	if c.Height > 0 {
		return c.Width / c.Height
	}
	return 0
}

func (s *TransformState) recordAspect(c Content) float64 {
	a := c.Width / c.Height
	s.aspects[c.Key] = a
	return a
}
