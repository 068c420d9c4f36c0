package game

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/sticker"
)

// KeyModifiers is a bitmask of keyboard modifier keys.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

var modifierNames = map[string]KeyModifiers{
	"shift":   ModShift,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"super":   ModMeta,
}

// KeyBinding is a key plus the exact set of modifiers that must be held.
type KeyBinding struct {
	Key  ebiten.Key
	Mods KeyModifiers
}

// ParseKeyBinding parses bindings such as "ctrl+z" or "ctrl+shift+z".
// Modifier names are case-insensitive; the key uses ebiten's key names.
func ParseKeyBinding(s string) (KeyBinding, error) {
	parts := strings.Split(strings.TrimSpace(s), "+")
	var b KeyBinding
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return KeyBinding{}, fmt.Errorf("key binding %q: empty token", s)
		}
		if i < len(parts)-1 {
			m, ok := modifierNames[strings.ToLower(p)]
			if !ok {
				return KeyBinding{}, fmt.Errorf("key binding %q: unknown modifier %q", s, p)
			}
			b.Mods |= m
			continue
		}
		if err := b.Key.UnmarshalText([]byte(p)); err != nil {
			return KeyBinding{}, fmt.Errorf("key binding %q: %w", s, err)
		}
	}
	return b, nil
}

func (b KeyBinding) String() string {
	var sb strings.Builder
	for _, m := range []struct {
		mod  KeyModifiers
		name string
	}{{ModCtrl, "ctrl"}, {ModAlt, "alt"}, {ModShift, "shift"}, {ModMeta, "meta"}} {
		if b.Mods&m.mod != 0 {
			sb.WriteString(m.name)
			sb.WriteByte('+')
		}
	}
	sb.WriteString(strings.ToLower(b.Key.String()))
	return sb.String()
}

// matches reports whether the binding fires given the key was just pressed
// and mods are held. Modifiers must match exactly so "ctrl+z" does not fire
// for "ctrl+shift+z".
func (b KeyBinding) matches(justPressed func(ebiten.Key) bool, mods KeyModifiers) bool {
	return mods == b.Mods && justPressed(b.Key)
}

// Keymap holds the undo and redo bindings.
type Keymap struct {
	Undo []KeyBinding
	Redo []KeyBinding
}

// NewKeymap parses the undo and redo bindings from settings.
func NewKeymap(s sticker.Settings) (Keymap, error) {
	var km Keymap
	for _, name := range s.UndoKeys {
		b, err := ParseKeyBinding(name)
		if err != nil {
			return Keymap{}, fmt.Errorf("undo_keys: %w", err)
		}
		km.Undo = append(km.Undo, b)
	}
	for _, name := range s.RedoKeys {
		b, err := ParseKeyBinding(name)
		if err != nil {
			return Keymap{}, fmt.Errorf("redo_keys: %w", err)
		}
		km.Redo = append(km.Redo, b)
	}
	return km, nil
}

// Action is the editor command a key press resolved to.
type Action uint8

const (
	ActionNone Action = iota
	ActionUndo
	ActionRedo
)

// resolve maps this frame's key state to an action.
func (km Keymap) resolve(justPressed func(ebiten.Key) bool, mods KeyModifiers) Action {
	for _, b := range km.Undo {
		if b.matches(justPressed, mods) {
			return ActionUndo
		}
	}
	for _, b := range km.Redo {
		if b.matches(justPressed, mods) {
			return ActionRedo
		}
	}
	return ActionNone
}

// dispatch polls the keyboard and runs the matching command on e.
func (km Keymap) dispatch(e *sticker.Engine) Action {
	a := km.resolve(inpututil.IsKeyJustPressed, readModifiers())
	switch a {
	case ActionUndo:
		e.Undo()
	case ActionRedo:
		e.Redo()
	}
	return a
}

// readModifiers returns the currently held modifier keys.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}
