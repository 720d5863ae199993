package input

import (
	"github.com/dshills/keyseq/internal/input/key"
	"github.com/dshills/keyseq/internal/input/keymap"
)

// Dispatch routes a platform event to the handler for its type.
func (e *Engine) Dispatch(pe PlatformEvent) {
	switch pe.Snapshot().Type {
	case key.TypeKeyPress:
		e.HandleKeyPress(pe)
	case key.TypeKeyDown:
		e.HandleKeyDown(pe)
	case key.TypeKeyUp:
		e.HandleKeyUp(pe)
	case key.TypeAppCommand:
		e.HandleAppCommand(pe)
	}
}

// HandleKeyPress handles a keypress. Events carrying neither a key nor a
// character, pure modifiers and caps lock are swallowed.
func (e *Engine) HandleKeyPress(pe PlatformEvent) {
	ev := pe.Snapshot()
	if (ev.Key == key.KeyNone && ev.Rune == 0) || ev.Key.IsModifierKey() {
		kill(pe)
		return
	}
	e.HandleEvent(pe)
}

// HandleAppCommand handles a platform command event.
func (e *Engine) HandleAppCommand(pe PlatformEvent) {
	e.HandleEvent(pe)
}

// HandleKeyDown records keys whose release may pass through to the content
// surface. Only active with Options.TrackFallthroughKeys.
func (e *Engine) HandleKeyDown(pe PlatformEvent) {
	if e.closed || !e.options().TrackFallthroughKeys {
		return
	}
	ev := pe.Snapshot()
	code := ev.KeyCode()
	if code == 0 || ev.Key.IsModifierKey() {
		kill(pe)
		return
	}

	stack := e.window.Keymaps()
	if ic := e.state.current; ic != nil {
		stack = ic.Keymaps
	}

	// Keyed by code only: modifiers held at keydown are not recorded.
	if keymap.LookupFallthrough(stack.Top(), ev) {
		e.state.passKeys[code] = true
		return
	}
	kill(pe)
}

// HandleKeyUp lets the release of a key recorded by HandleKeyDown through
// once, and swallows every other release. Only active with
// Options.TrackFallthroughKeys.
func (e *Engine) HandleKeyUp(pe PlatformEvent) {
	if e.closed || !e.options().TrackFallthroughKeys {
		return
	}
	ev := pe.Snapshot()
	code := ev.KeyCode()
	if code == 0 || ev.Key.IsModifierKey() {
		kill(pe)
		return
	}
	if e.state.passKeys[code] {
		delete(e.state.passKeys, code)
		return
	}
	kill(pe)
}
