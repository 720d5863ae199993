package input

import "github.com/dshills/keyseq/internal/input/keymap"

// GlobalOverlayHookName names the hook registered by the global overlay mode.
const GlobalOverlayHookName = "global-overlay-keymap"

// GlobalOverlayHook resolves keys bound in the global overlay keymap before
// any other keymap. Bound keys are not added to the key sequence.
type GlobalOverlayHook struct {
	Keymap *keymap.Keymap
}

// HandleKeypress handles the event when its combo is bound in the overlay.
func (h GlobalOverlayHook) HandleKeypress(ic *Context, pe PlatformEvent) bool {
	b := keymap.Lookup(keymap.Stack{h.Keymap}, ic.Combo, ic.Event)
	if b.IsUndefined() {
		return false
	}
	ic.engine.HandleBinding(ic, pe, b)
	return true
}

// GlobalOverlay returns the keymap used by the global overlay mode.
func (e *Engine) GlobalOverlay() *keymap.Keymap {
	return e.overlay
}

// SetGlobalOverlayMode enables or disables the global overlay keymap hook.
// Safe from any goroutine.
func (e *Engine) SetGlobalOverlayMode(enabled bool) {
	if enabled {
		e.hooks.RegisterWithOptions(GlobalOverlayHook{Keymap: e.overlay}, GlobalOverlayHookName, HookPriorityHigh)
		return
	}
	e.hooks.UnregisterByName(GlobalOverlayHookName)
}

// GlobalOverlayMode reports whether the global overlay hook is registered.
func (e *Engine) GlobalOverlayMode() bool {
	return e.hooks.Has(GlobalOverlayHookName)
}
