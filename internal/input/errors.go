package input

import "errors"

// Sentinel errors for the input engine.
var (
	// ErrNoWindow is returned when an engine is created without a window.
	ErrNoWindow = errors.New("input: window is required")

	// ErrNoLoop is returned when an engine is created without an event loop.
	ErrNoLoop = errors.New("input: event loop is required")

	// ErrNoRunner is returned when an engine is created without a runner.
	ErrNoRunner = errors.New("input: command runner is required")

	// ErrCommandPanic wraps a panic raised by a command.
	ErrCommandPanic = errors.New("input: command panicked")

	// ErrReadAborted is returned by Reader.Read when the user aborts.
	ErrReadAborted = errors.New("input: minibuffer read aborted")
)

// InteractiveError is an error meant for the user rather than the log.
// The window shows its message verbatim.
type InteractiveError struct {
	Message string
}

// NewInteractiveError creates an InteractiveError.
func NewInteractiveError(msg string) *InteractiveError {
	return &InteractiveError{Message: msg}
}

func (e *InteractiveError) Error() string {
	return e.Message
}

// ErrNestedSequence is returned when a context is reinstalled while another
// context is collecting keys.
var ErrNestedSequence = NewInteractiveError("Warning: nested key sequence attempted, aborted")

// IsInteractive reports whether err wraps an InteractiveError.
func IsInteractive(err error) bool {
	var ie *InteractiveError
	return errors.As(err, &ie)
}
