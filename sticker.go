package sticker

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the engine.
var (
	ErrNoSurface        = errors.New("sticker: drawing surface unavailable")
	ErrNoCanvas         = errors.New("sticker: canvas size not set")
	ErrInvalidCanvas    = errors.New("sticker: canvas size must be positive")
	ErrInvalidContent   = errors.New("sticker: content must have a key and a positive size")
	ErrInvalidConfig    = errors.New("sticker: invalid configuration")
	ErrUnknownAnchor    = errors.New("sticker: unknown anchor position")
	ErrUnknownScaleMode = errors.New("sticker: unknown scale mode")
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Colors used by the selection decoration.
var (
	ColorBlue   = Color{0, 0, 1, 1}
	ColorWhite  = Color{1, 1, 1, 1}
	ColorYellow = Color{1, 1, 0, 1}
)

// Vec2 is a 2D point in surface-local coordinates.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Content references the image a sticker displays. Width and Height are the
// natural pixel dimensions of the image.
type Content struct {
	Key    string  `json:"key"`
	Path   string  `json:"path"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (c Content) valid() bool {
	return c.Key != "" && c.Width > 0 && c.Height > 0
}

// Transform is the rendered geometry of the sticker. Rotation is in radians
// about the sticker's center.
type Transform struct {
	Content  Content `json:"content"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
}

// Bounds returns the unrotated bounding box.
func (t Transform) Bounds() Rect {
	return Rect{X: t.X, Y: t.Y, Width: t.Width, Height: t.Height}
}

// Center returns the point the sticker rotates about.
func (t Transform) Center() (float64, float64) {
	return t.X + t.Width/2, t.Y + t.Height/2
}

// --- Orientation ---

// Orientation is the shape class of the canvas. Each orientation keys its own
// configuration and history.
type Orientation uint8

const (
	Portrait Orientation = iota
	Landscape
	Square
)

var orientationNames = [...]string{"portrait", "landscape", "square"}

// Orientations lists every orientation in a stable order.
var Orientations = [...]Orientation{Portrait, Landscape, Square}

func (o Orientation) String() string {
	if int(o) < len(orientationNames) {
		return orientationNames[o]
	}
	return fmt.Sprintf("Orientation(%d)", o)
}

// Classify derives the orientation from canvas dimensions.
func Classify(width, height float64) Orientation {
	switch {
	case width > height:
		return Landscape
	case width < height:
		return Portrait
	default:
		return Square
	}
}

// --- Scale mode ---

// ScaleMode governs whether the sticker's size is user-controlled (custom)
// or derived from the canvas (fit, fill).
type ScaleMode uint8

const (
	ScaleCustom ScaleMode = iota
	ScaleFit
	ScaleFill
)

var scaleModeNames = [...]string{"custom", "fit", "fill"}

func (m ScaleMode) String() string {
	if int(m) < len(scaleModeNames) {
		return scaleModeNames[m]
	}
	return fmt.Sprintf("ScaleMode(%d)", m)
}

// ParseScaleMode converts a case-insensitive name into a ScaleMode.
func ParseScaleMode(s string) (ScaleMode, error) {
	for i, name := range scaleModeNames {
		if strings.EqualFold(s, name) {
			return ScaleMode(i), nil
		}
	}
	return ScaleCustom, fmt.Errorf("%w: %q", ErrUnknownScaleMode, s)
}

// MarshalText implements encoding.TextMarshaler.
func (m ScaleMode) MarshalText() ([]byte, error) {
	if int(m) >= len(scaleModeNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScaleMode, m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ScaleMode) UnmarshalText(b []byte) error {
	v, err := ParseScaleMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// --- Anchor position ---

// AnchorPosition is one of nine named alignment points used for non-custom
// placement: {top, middle, bottom} x {left, center, right}.
type AnchorPosition uint8

const (
	TopLeft AnchorPosition = iota
	TopCenter
	TopRight
	MiddleLeft
	MiddleCenter
	MiddleRight
	BottomLeft
	BottomCenter
	BottomRight
)

var anchorNames = [...]string{
	"top-left", "top-center", "top-right",
	"middle-left", "middle-center", "middle-right",
	"bottom-left", "bottom-center", "bottom-right",
}

// Anchors lists all nine anchor positions in row-major order.
var Anchors = [...]AnchorPosition{
	TopLeft, TopCenter, TopRight,
	MiddleLeft, MiddleCenter, MiddleRight,
	BottomLeft, BottomCenter, BottomRight,
}

func (a AnchorPosition) String() string {
	if int(a) < len(anchorNames) {
		return anchorNames[a]
	}
	return fmt.Sprintf("AnchorPosition(%d)", a)
}

// ParseAnchor converts a case-insensitive name such as "middle-center" into
// an AnchorPosition.
func ParseAnchor(s string) (AnchorPosition, error) {
	for i, name := range anchorNames {
		if strings.EqualFold(s, name) {
			return AnchorPosition(i), nil
		}
	}
	return TopLeft, fmt.Errorf("%w: %q", ErrUnknownAnchor, s)
}

// MarshalText implements encoding.TextMarshaler.
func (a AnchorPosition) MarshalText() ([]byte, error) {
	if int(a) >= len(anchorNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAnchor, a)
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AnchorPosition) UnmarshalText(b []byte) error {
	v, err := ParseAnchor(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
