// Package key provides the key event snapshot and combo formatting used by
// the input engine.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a logical key (special keys, function keys, or runes)
//   - Modifier: Bitmask of modifier keys (Ctrl, Meta, Alt, Shift, Super)
//   - Event: An immutable snapshot of one platform key or app-command event
//   - Sequence: The combos accumulated by an in-progress key sequence
//
// # Combos
//
// A combo is the canonical string used as a keymap lookup key. Modifier
// prefixes are written in a fixed order followed by the key name:
//
//	C-  control
//	M-  meta (Alt is folded into meta)
//	s-  super
//	S-  shift, only for keys that do not produce a character
//
// Examples: "a", "A", "C-x", "M-x", "C-M-Backspace", "S-Tab", "space".
//
// Normalize turns a raw Event into its combo, merging any pending sticky
// modifiers and applying the caps-lock rule.
package key
