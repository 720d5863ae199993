package key

import (
	"fmt"
	"strings"
)

// Key represents a logical keyboard key.
// For character keys, use KeyRune and set the Rune field in Event.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Special keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Other special keys
	KeyPause
	KeyPrintScreen
	KeyScrollLock
	KeyNumLock

	// Modifier keys. These only appear in keydown/keyup events and are
	// never part of a combo.
	KeyShift
	KeyControl
	KeyAlt
	KeyMeta
	KeySuper
	KeyCapsLock

	// KeyRune is used for character keys (letters, numbers, punctuation).
	// The actual character is stored in Event.Rune.
	KeyRune
)

var keyNames = [...]string{
	KeyNone:        "None",
	KeyEscape:      "Escape",
	KeyEnter:       "Enter",
	KeyTab:         "Tab",
	KeyBackspace:   "Backspace",
	KeyDelete:      "Delete",
	KeyInsert:      "Insert",
	KeyHome:        "Home",
	KeyEnd:         "End",
	KeyPageUp:      "PageUp",
	KeyPageDown:    "PageDown",
	KeyUp:          "Up",
	KeyDown:        "Down",
	KeyLeft:        "Left",
	KeyRight:       "Right",
	KeyF1:          "F1",
	KeyF2:          "F2",
	KeyF3:          "F3",
	KeyF4:          "F4",
	KeyF5:          "F5",
	KeyF6:          "F6",
	KeyF7:          "F7",
	KeyF8:          "F8",
	KeyF9:          "F9",
	KeyF10:         "F10",
	KeyF11:         "F11",
	KeyF12:         "F12",
	KeyPause:       "Pause",
	KeyPrintScreen: "PrintScreen",
	KeyScrollLock:  "ScrollLock",
	KeyNumLock:     "NumLock",
	KeyShift:       "Shift",
	KeyControl:     "Control",
	KeyAlt:         "Alt",
	KeyMeta:        "Meta",
	KeySuper:       "Super",
	KeyCapsLock:    "CapsLock",
	KeyRune:        "Rune",
}

// String returns the canonical name of the key, as used in combos.
func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsSpecial returns true if this is a special (non-character) key.
func (k Key) IsSpecial() bool {
	return k != KeyNone && k != KeyRune
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// IsModifierKey returns true for keys that only change modifier state.
// CapsLock is included: it never produces a combo of its own.
func (k Key) IsModifierKey() bool {
	return k >= KeyShift && k <= KeyCapsLock
}

// keyNameMap maps key names (lowercase) to Key values.
var keyNameMap = map[string]Key{
	"escape":      KeyEscape,
	"esc":         KeyEscape,
	"enter":       KeyEnter,
	"return":      KeyEnter,
	"ret":         KeyEnter,
	"tab":         KeyTab,
	"backspace":   KeyBackspace,
	"back_space":  KeyBackspace,
	"delete":      KeyDelete,
	"del":         KeyDelete,
	"insert":      KeyInsert,
	"home":        KeyHome,
	"end":         KeyEnd,
	"pageup":      KeyPageUp,
	"page_up":     KeyPageUp,
	"pagedown":    KeyPageDown,
	"page_down":   KeyPageDown,
	"up":          KeyUp,
	"down":        KeyDown,
	"left":        KeyLeft,
	"right":       KeyRight,
	"f1":          KeyF1,
	"f2":          KeyF2,
	"f3":          KeyF3,
	"f4":          KeyF4,
	"f5":          KeyF5,
	"f6":          KeyF6,
	"f7":          KeyF7,
	"f8":          KeyF8,
	"f9":          KeyF9,
	"f10":         KeyF10,
	"f11":         KeyF11,
	"f12":         KeyF12,
	"pause":       KeyPause,
	"printscreen": KeyPrintScreen,
	"scrolllock":  KeyScrollLock,
	"numlock":     KeyNumLock,
	"capslock":    KeyCapsLock,
	"caps_lock":   KeyCapsLock,
}

// KeyFromName returns the Key for a given name (case-insensitive).
// Returns KeyNone if the name is not recognized.
func KeyFromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNameMap[name]; ok {
		return k
	}
	return KeyNone
}
