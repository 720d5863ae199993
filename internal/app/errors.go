package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrClosed is returned by operations on a shut down application.
	ErrClosed = errors.New("app: application closed")

	// ErrWindowNotFound is returned when a window id is unknown.
	ErrWindowNotFound = errors.New("app: window not found")

	// ErrNoEngine is returned when the window hooks installed no input
	// engine.
	ErrNoEngine = errors.New("app: window has no input engine")

	// ErrReadActive is returned when the minibuffer is already reading.
	ErrReadActive = errors.New("app: minibuffer is already reading")

	// ErrUnknownContentCommand is returned by Buffer.DoCommand.
	ErrUnknownContentCommand = errors.New("app: unknown content command")

	// ErrNoScript is returned when Lua support is disabled.
	ErrNoScript = errors.New("app: scripting is disabled")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "source", "define-key")
	Target string // Target of the operation (e.g., file path, keymap name)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is implements errors.Is for OperationError.
// Matches both the wrapper itself and the wrapped error.
func (e *OperationError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*OperationError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}

// ErrorList collects multiple errors.
// NOTE: ErrorList is NOT safe for concurrent use.
type ErrorList struct {
	errors []error
}

// Add adds an error to the list. Nil errors are ignored.
func (e *ErrorList) Add(err error) {
	if err != nil {
		e.errors = append(e.errors, err)
	}
}

// Len returns the number of errors.
func (e *ErrorList) Len() int {
	return len(e.errors)
}

func (e *ErrorList) Error() string {
	if e == nil || len(e.errors) == 0 {
		return ""
	}
	if len(e.errors) == 1 {
		return e.errors[0].Error()
	}
	return fmt.Sprintf("%d errors: first: %v", len(e.errors), e.errors[0])
}

// Unwrap returns the collected errors for errors.Is and errors.As.
func (e *ErrorList) Unwrap() []error {
	return e.errors
}

// AsError returns nil if there are no errors, otherwise returns the ErrorList.
func (e *ErrorList) AsError() error {
	if len(e.errors) == 0 {
		return nil
	}
	return e
}
