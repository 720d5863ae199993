package app

import (
	"github.com/dshills/keyseq/internal/commands"
	"github.com/dshills/keyseq/internal/input"
)

// DefineKey binds seq to command in the keymap registered under name.
func (app *Application) DefineKey(name, seq, command string) error {
	km, err := app.keymaps.Get(name)
	if err != nil {
		return err
	}
	if err := km.Define(seq, command); err != nil {
		return NewOperationError("define-key", name, err)
	}
	return nil
}

// DefineKeyAlias makes typing typed generate the generated combo, in every
// window. It turns on global overlay mode.
func (app *Application) DefineKeyAlias(typed, generated string) error {
	if err := commands.DefineKeyAlias(app.registry, app.overlay, typed, generated); err != nil {
		return err
	}
	app.setOverlayMode(true)
	return nil
}

// DefineStickyModifier makes typing typed add mods to the next combo, in
// every window. It turns on global overlay mode.
func (app *Application) DefineStickyModifier(typed, mods string) error {
	if err := commands.DefineStickyModifier(app.registry, app.overlay, typed, mods); err != nil {
		return err
	}
	app.setOverlayMode(true)
	return nil
}

// Interactive registers a command.
func (app *Application) Interactive(name, doc string, fn input.CommandFunc) error {
	return app.registry.Define(name, doc, fn)
}

// Message shows msg in the most recently created window, or logs it when
// there is none.
func (app *Application) Message(msg string) {
	app.mu.RLock()
	w := app.active
	app.mu.RUnlock()
	if w == nil {
		app.logger.Infow("message", "text", msg)
		return
	}
	w.Post(func() { w.mb.Message(msg) })
}
