// Package keymap provides key binding storage and lookup for the input
// engine.
//
// # Key Concepts
//
// Keymap: A named table from combo to Binding, with an optional parent
// consulted when the table has no entry.
//
// Binding: The resolved value of a lookup. It is one of four kinds:
// undefined, fallthrough (let the content surface see the key), a
// sub-keymap stack (the combo is a prefix) or a command.
//
// Stack: The keymaps in effect for a focus target. The last keymap is the
// highest priority.
//
// # Lookup
//
// Lookup walks the stack from the top, following parent links. The first
// exact or predicate match that is not a prefix wins. When a prefix is
// found, lower keymaps are still scanned for prefixes on the same combo so
// the returned stack merges every keymap that continues the sequence.
//
// # Usage
//
//	global := keymap.New("global")
//	global.Define("C-x C-f", "find-file")
//	global.Define("C-x C-x", "swap-point-mark")
//
//	b := keymap.Lookup(keymap.Stack{global}, "C-x", ev)
//	if b.Kind == keymap.KindKeymaps {
//	    // continue the sequence with b.Keymaps
//	}
package keymap
