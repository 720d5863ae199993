// Package input turns the raw key events of one window into commands.
//
// Each window owns an Engine. The engine keeps the window's input State:
// at most one live interactive Context collecting a key sequence, at most
// one pending help timer, and the set of key codes allowed to fall through
// on key release.
//
// # Architecture
//
// The input system consists of several cooperating components:
//
//   - Normalizer (key.Normalize): builds the combo and a detached event snapshot
//   - Sequence dispatcher (Engine.HandleEvent): grows the sequence and resolves it
//   - Binding resolver (Engine.HandleBinding): acts on the resolved binding
//   - Command runner (Engine.RunCommand): runs commands off the loop
//   - Help scheduler: shows the partial sequence after a delay
//
// # Threading
//
// Every Engine method except SetGlobalOverlayMode, Hooks and Metrics must be
// called on the window's event loop. Commands run on their own goroutines
// and reach back into the window only through the Context helpers, which
// post to the loop.
//
// # Resolution order
//
// For each keypress the engine consults, in order: the sequence-abort
// keymap (only once the sequence has more than one combo), the context's
// overlay keymap, the context's keymap stack, and the sequence-help keymap.
//
// # Usage
//
//	eng, err := input.NewEngine(input.Config{
//	    Window: win,
//	    Loop:   loop,
//	    Runner: registry,
//	})
//
//	// on the window loop, for every platform event
//	eng.Dispatch(input.NewRawEvent(ev))
package input
