package dispatcher

import (
	"errors"
	"fmt"
)

// Dispatcher errors.
var (
	// ErrUnknownCommand indicates no command is registered under a name.
	ErrUnknownCommand = errors.New("dispatcher: unknown command")

	// ErrInvalidCommand indicates a command without a name or body.
	ErrInvalidCommand = errors.New("dispatcher: invalid command")

	// ErrPanic indicates the command panicked.
	ErrPanic = errors.New("dispatcher: command panic")

	// ErrCancelled indicates a pre-run hook vetoed the command.
	ErrCancelled = errors.New("dispatcher: command cancelled by hook")
)

// CommandError ties an error to the command that produced it.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// CommandName returns the command named by the first CommandError in err's
// chain, or "".
func CommandName(err error) string {
	var ce *CommandError
	if errors.As(err, &ce) {
		return ce.Command
	}
	return ""
}
