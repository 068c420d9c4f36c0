package sticker

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Settings tunes handle geometry, gesture thresholds, and the editor shell.
// The zero value is not useful; start from DefaultSettings.
type Settings struct {
	CanvasWidth  float64 `toml:"canvas_width"`
	CanvasHeight float64 `toml:"canvas_height"`

	// CornerSize is the side of the square resize hit-box centered on each
	// corner.
	CornerSize float64 `toml:"corner_size"`
	// RotationHandleRadius is the radius of the rotation knob hit-circle.
	RotationHandleRadius float64 `toml:"rotation_handle_radius"`
	// RotationHandleOffset is the distance from the bottom edge to the knob center.
	RotationHandleOffset float64 `toml:"rotation_handle_offset"`
	MinSize              float64 `toml:"min_size"`
	// PinchThreshold is the per-event scale factor a pinch must exceed to grow
	// the sticker; shrinking requires falling below its inverse.
	PinchThreshold float64 `toml:"pinch_threshold"`
	StrokeWidth    float64 `toml:"stroke_width"`

	// SnapDuration animates anchor-driven moves on screen. Zero disables it.
	SnapDuration Duration `toml:"snap_duration"`

	UndoKeys []string `toml:"undo_keys"`
	RedoKeys []string `toml:"redo_keys"`

	StoreDir  string `toml:"store_dir"`
	RedisAddr string `toml:"redis_addr"`
}

// Duration wraps time.Duration so TOML can carry values like "250ms".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultSettings returns the editor defaults.
func DefaultSettings() Settings {
	return Settings{
		CanvasWidth:          300,
		CanvasHeight:         450,
		CornerSize:           25,
		RotationHandleRadius: 15,
		RotationHandleOffset: 30,
		MinSize:              30,
		PinchThreshold:       1.01,
		StrokeWidth:          5,
		UndoKeys:             []string{"ctrl+z"},
		RedoKeys:             []string{"ctrl+y", "ctrl+shift+z"},
		StoreDir:             "watermarks",
	}
}

// LoadSettings decodes a TOML file over DefaultSettings. Keys absent from
// the file keep their defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Settings{}, fmt.Errorf("load settings %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("load settings %s: %w", path, err)
	}
	return s, nil
}

// DecodeSettings is LoadSettings for in-memory TOML.
func DecodeSettings(data string) (Settings, error) {
	s := DefaultSettings()
	if _, err := toml.Decode(data, &s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

// Validate rejects settings the gesture math cannot run with.
func (s Settings) Validate() error {
	switch {
	case s.CanvasWidth <= 0 || s.CanvasHeight <= 0:
		return fmt.Errorf("canvas size %vx%v: %w", s.CanvasWidth, s.CanvasHeight, ErrInvalidCanvas)
	case s.MinSize <= 0:
		return fmt.Errorf("min_size must be positive, got %v", s.MinSize)
	case s.CornerSize <= 0 || s.RotationHandleRadius <= 0:
		return fmt.Errorf("handle sizes must be positive")
	case s.PinchThreshold <= 1:
		return fmt.Errorf("pinch_threshold must be above 1, got %v", s.PinchThreshold)
	}
	return nil
}
