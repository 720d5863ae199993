package key

import (
	"time"
	"unicode"
)

// Type distinguishes the platform event kinds the engine consumes.
type Type uint8

const (
	// TypeKeyPress is a key press that may produce a character.
	TypeKeyPress Type = iota
	// TypeKeyDown is a physical key going down.
	TypeKeyDown
	// TypeKeyUp is a physical key being released.
	TypeKeyUp
	// TypeAppCommand is a platform command (media keys, browser back, ...).
	TypeAppCommand
)

func (t Type) String() string {
	switch t {
	case TypeKeyPress:
		return "keypress"
	case TypeKeyDown:
		return "keydown"
	case TypeKeyUp:
		return "keyup"
	case TypeAppCommand:
		return "appcommand"
	default:
		return "unknown"
	}
}

// specialCodeBase offsets special key codes past the unicode range so they
// never collide with rune codes.
const specialCodeBase = unicode.MaxRune + 1

// Event is an immutable snapshot of a platform key or app-command event.
// Events are passed by value; copying one never aliases the platform
// object it was built from.
type Event struct {
	// Type is the platform event kind.
	Type Type

	// Key is the logical key. KeyRune for character keys.
	Key Key

	// Code is the raw platform key code. Zero means unknown; KeyCode
	// derives a stable code in that case.
	Code int

	// Rune is the character for KeyRune events.
	Rune rune

	// Button is the mouse button, zero for keyboard events.
	Button int

	// Command is the platform command id for TypeAppCommand events.
	Command string

	// Modifiers is the set of modifier keys held during the event.
	Modifiers Modifier

	// StickyModifiers are modifiers carried over from a previous sticky
	// modifier command and merged into this event.
	StickyModifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewRuneEvent creates a keypress event for a character key.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{
		Type:      TypeKeyPress,
		Key:       KeyRune,
		Rune:      r,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewSpecialEvent creates a keypress event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{
		Type:      TypeKeyPress,
		Key:       k,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewAppCommand creates an app-command event.
func NewAppCommand(command string) Event {
	return Event{
		Type:      TypeAppCommand,
		Command:   command,
		Timestamp: time.Now(),
	}
}

// WithType returns a copy of the event with a different type.
func (e Event) WithType(t Type) Event {
	e.Type = t
	return e
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune
}

// IsPrintable returns true if the event produces a printable character.
func (e Event) IsPrintable() bool {
	return e.Key == KeyRune && e.Rune != 0 && unicode.IsPrint(e.Rune)
}

// AllModifiers returns the held modifiers merged with the sticky ones.
func (e Event) AllModifiers() Modifier {
	return e.Modifiers | e.StickyModifiers
}

// KeyCode returns the raw key code of the event. Character keys without a
// platform code use the upper-case rune, so "a" and "A" share a code the
// way physical keys do.
func (e Event) KeyCode() int {
	if e.Code != 0 {
		return e.Code
	}
	switch e.Key {
	case KeyNone:
		return 0
	case KeyRune:
		return int(unicode.ToUpper(e.Rune))
	default:
		return int(specialCodeBase) + int(e.Key)
	}
}

// String returns the combo for the event.
func (e Event) String() string {
	return FormatCombo(e)
}
