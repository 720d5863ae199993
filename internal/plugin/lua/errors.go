package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua: state is closed")

	// ErrNotFunction is returned when a global is not a function.
	ErrNotFunction = errors.New("lua: not a function")

	// ErrPanic wraps a panic raised while running Lua code.
	ErrPanic = errors.New("lua: panic")
)
