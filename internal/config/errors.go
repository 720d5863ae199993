package config

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	// ErrUnknownKey indicates an option key that does not exist.
	ErrUnknownKey = errors.New("config: unknown option")

	// ErrInvalidValue indicates an option value of the wrong type or range.
	ErrInvalidValue = errors.New("config: invalid value")

	// ErrWatcherClosed indicates the watcher has been closed.
	ErrWatcherClosed = errors.New("config: watcher closed")
)

// KeyError ties an error to the option key that caused it.
type KeyError struct {
	Key string
	Err error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("option %s: %v", e.Key, e.Err)
}

func (e *KeyError) Unwrap() error {
	return e.Err
}
