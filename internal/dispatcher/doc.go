// Package dispatcher holds the named interactive command registry.
//
// A Registry maps command names to input.CommandFunc bodies and implements
// input.Runner, so the input engine can run whatever a keymap binding
// names. Commands run on their own goroutine; a panicking command is
// recovered and reported as an error wrapping ErrPanic.
//
// Commands may invoke other commands by name with Call, which runs the
// target synchronously on a derived context.
package dispatcher
