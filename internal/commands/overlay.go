package commands

import (
	"context"
	"fmt"

	"github.com/dshills/keyseq/internal/dispatcher"
	"github.com/dshills/keyseq/internal/input"
	"github.com/dshills/keyseq/internal/input/key"
	"github.com/dshills/keyseq/internal/input/keymap"
)

// Command name prefixes for overlay commands.
const (
	KeyAliasPrefix       = "generate-key-event:"
	StickyModifierPrefix = "sticky-modifiers:"
)

// DefineKeyAlias makes typing typed behave as typing generated. It binds
// typed in overlay to a generate-key-event command. Callers must enable
// the global overlay mode for the binding to take effect.
func DefineKeyAlias(reg *dispatcher.Registry, overlay *keymap.Keymap, typed, generated string) error {
	combo, err := key.Canonical(generated)
	if err != nil {
		return fmt.Errorf("key alias %q: %w", generated, err)
	}
	name := KeyAliasPrefix + combo
	if !reg.Has(name) {
		err := reg.Register(dispatcher.Command{
			Name: name,
			Doc:  "Generate a " + combo + " key event.",
			Fn:   generateKeyEvent(combo),
		})
		if err != nil {
			return err
		}
	}
	return overlay.Define(typed, name)
}

// generateKeyEvent sends combo to the window. Mid-sequence it first
// reinstalls the context so the generated key continues the sequence.
func generateKeyEvent(combo string) input.CommandFunc {
	return func(_ context.Context, ic *input.Context) error {
		if !ic.FirstEvent {
			ic.Continue()
		}
		return ic.SendKey(combo)
	}
}

// DefineStickyModifier makes typing typed add mods to the next key.
// Callers must enable the global overlay mode for the binding to take
// effect.
func DefineStickyModifier(reg *dispatcher.Registry, overlay *keymap.Keymap, typed, mods string) error {
	m := key.ParseModifiers(mods)
	if m.IsEmpty() {
		return fmt.Errorf("sticky modifier %q: %w", mods, key.ErrUnknownKey)
	}
	prefix := m.Prefix(true)
	name := StickyModifierPrefix + prefix[:len(prefix)-1]
	if !reg.Has(name) {
		err := reg.Register(dispatcher.Command{
			Name: name,
			Doc:  "Apply " + prefix + " to the next key.",
			Fn: func(_ context.Context, ic *input.Context) error {
				ic.StickyModifiers = m
				return nil
			},
			Prefix: true,
		})
		if err != nil {
			return err
		}
	}
	return overlay.Define(typed, name)
}
