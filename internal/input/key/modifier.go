package key

import "strings"

// Modifier represents keyboard modifier keys as a bitmask.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key.
	ModMeta

	// ModSuper indicates the Super key (Cmd on macOS, Win on Windows).
	ModSuper
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns a human-readable representation like "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "Meta")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModSuper) {
		parts = append(parts, "Super")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "+")
}

// Prefix returns the combo prefix for the modifiers, e.g. "C-M-".
// Alt is written as meta. Shift is only written when includeShift is set,
// since for character keys shift is already reflected in the character.
func (m Modifier) Prefix(includeShift bool) string {
	var b strings.Builder
	if m.Has(ModCtrl) {
		b.WriteString("C-")
	}
	if m.Has(ModMeta) || m.Has(ModAlt) {
		b.WriteString("M-")
	}
	if m.Has(ModSuper) {
		b.WriteString("s-")
	}
	if includeShift && m.Has(ModShift) {
		b.WriteString("S-")
	}
	return b.String()
}

// modifierNameMap maps modifier names to Modifier values.
// Single letters are case-sensitive: "s" is super and "S" is shift.
var modifierNameMap = map[string]Modifier{
	"C":       ModCtrl,
	"M":       ModMeta,
	"A":       ModAlt,
	"s":       ModSuper,
	"S":       ModShift,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"meta":    ModMeta,
	"alt":     ModAlt,
	"super":   ModSuper,
	"shift":   ModShift,
}

// ModifierFromName returns the Modifier for a given name.
// Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	if m, ok := modifierNameMap[name]; ok {
		return m
	}
	if m, ok := modifierNameMap[strings.ToLower(name)]; ok && len(name) > 1 {
		return m
	}
	return ModNone
}

// ParseModifiers parses a modifier list like "C", "C-M" or "ctrl+shift".
// Unknown names are ignored.
func ParseModifiers(s string) Modifier {
	var result Modifier
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '+' || r == ' ' }) {
		result = result.With(ModifierFromName(part))
	}
	return result
}
