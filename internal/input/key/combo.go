package key

import "unicode"

// FormatCombo returns the canonical combo for an event. Sticky modifiers
// are included. Pure modifier keys format as the empty string.
func FormatCombo(e Event) string {
	if e.Type == TypeAppCommand {
		return e.Command
	}

	mods := e.AllModifiers()
	switch {
	case e.Key == KeyRune && e.Rune != 0:
		name := string(e.Rune)
		if e.Rune == ' ' {
			name = "space"
		}
		// Shift is already visible in the character for printable keys.
		return mods.Prefix(!unicode.IsPrint(e.Rune)) + name
	case e.Key == KeyNone, e.Key == KeyRune, e.Key.IsModifierKey():
		return ""
	default:
		return mods.Prefix(true) + e.Key.String()
	}
}

// Normalize produces the combo and a detached snapshot for ev. The sticky
// modifiers are merged into the snapshot and recorded in its
// StickyModifiers field. With ignoreCapsLock, a printable letter is forced
// to upper case when shift is held and lower case otherwise.
func Normalize(ev Event, sticky Modifier, ignoreCapsLock bool) (string, Event) {
	snap := ev
	snap.StickyModifiers |= sticky
	snap.Modifiers |= sticky

	if ignoreCapsLock && snap.IsPrintable() {
		if snap.Modifiers.Has(ModShift) {
			snap.Rune = unicode.ToUpper(snap.Rune)
		} else {
			snap.Rune = unicode.ToLower(snap.Rune)
		}
	}
	return FormatCombo(snap), snap
}
