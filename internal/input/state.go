package input

import "sort"

// State is the per-window input state. It is only touched on the window
// loop and needs no locking.
type State struct {
	// passKeys holds key codes whose next keyup may pass through.
	// Keyed by key code only, so modifiers held at keydown are ignored.
	passKeys map[int]bool

	// current is the context collecting a key sequence, if any.
	current *Context

	// helpTimer is the pending partial sequence display, if any.
	helpTimer Timer
}

func newState() State {
	return State{passKeys: make(map[int]bool)}
}

// Current returns the live context, or nil when idle.
func (s *State) Current() *Context {
	return s.current
}

// Idle reports whether no key sequence is in progress.
func (s *State) Idle() bool {
	return s.current == nil
}

// HelpPending reports whether a help timer is armed.
func (s *State) HelpPending() bool {
	return s.helpTimer != nil
}

// FallthroughKeys returns the key codes awaiting keyup, sorted.
func (s *State) FallthroughKeys() []int {
	codes := make([]int, 0, len(s.passKeys))
	for code := range s.passKeys {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}
