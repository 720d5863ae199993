package keymap

import "errors"

// Sentinel errors for keymap operations.
var (
	// ErrPrefixConflict is returned when a sequence would extend a combo
	// already bound to a command.
	ErrPrefixConflict = errors.New("keymap: combo is bound to a non-prefix binding")

	// ErrEmptyCommand is returned when defining a binding without a command.
	ErrEmptyCommand = errors.New("keymap: empty command name")

	// ErrNilKeymap is returned when a nil keymap is supplied.
	ErrNilKeymap = errors.New("keymap: nil keymap")

	// ErrKeymapNotFound is returned when a named keymap is not registered.
	ErrKeymapNotFound = errors.New("keymap: keymap not found")

	// ErrKeymapExists is returned when registering a duplicate name.
	ErrKeymapExists = errors.New("keymap: keymap already registered")
)
