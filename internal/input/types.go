package input

import (
	"context"
	"time"

	"github.com/dshills/keyseq/internal/input/key"
	"github.com/dshills/keyseq/internal/input/keymap"
)

// Window is the part of a window the engine needs.
type Window interface {
	// Minibuffer returns the window's message line.
	Minibuffer() Minibuffer

	// Keymaps returns the keymap stack of the current focus target: the
	// minibuffer's stack while it is reading, else the active buffer's.
	Keymaps() keymap.Stack

	// HandleError reports a command or sequence error to the user.
	HandleError(err error)
}

// EventSender is implemented by windows that route synthetic key events
// through their full platform path, including default actions.
type EventSender interface {
	SendEvent(ev key.Event)
}

// Minibuffer displays transient messages and partial key sequences.
type Minibuffer interface {
	// Message shows a transient message.
	Message(msg string)

	// Show shows status text such as the partial key sequence.
	Show(text string)

	// Clear removes the transient message.
	Clear()
}

// Reader is implemented by windows whose minibuffer can read a line of
// input. Read blocks until the user exits or aborts the minibuffer, so it
// must not be called on the window loop.
type Reader interface {
	Read(ctx context.Context, prompt string) (string, error)
}

// Loop runs closures on the window's event loop in the order posted.
type Loop interface {
	Post(fn func())
}

// Timer is a pending delayed callback.
type Timer interface {
	Stop() bool
}

// Scheduler arms delayed callbacks. Callbacks run on an arbitrary goroutine.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Timer
	Cancel(t Timer)
}

// Runner resolves a command name and runs it with an interactive context.
// prefix reports that the command asks for the key sequence to continue.
type Runner interface {
	Run(ctx context.Context, ic *Context, name string) (prefix bool, err error)
}

// CommandFunc is the body of an interactive command.
type CommandFunc func(ctx context.Context, ic *Context) error

// PlatformEvent is the live event delivered by the frontend.
type PlatformEvent interface {
	// Snapshot returns an immutable copy of the event.
	Snapshot() key.Event

	// PreventDefault stops the platform's default action, such as
	// inserting the typed character.
	PreventDefault()

	// StopPropagation stops delivery to further handlers.
	StopPropagation()
}

// RawEvent is a PlatformEvent backed by a key.Event.
type RawEvent struct {
	ev        key.Event
	prevented bool
	stopped   bool
}

// NewRawEvent wraps ev.
func NewRawEvent(ev key.Event) *RawEvent {
	return &RawEvent{ev: ev}
}

// Snapshot returns the wrapped event.
func (e *RawEvent) Snapshot() key.Event { return e.ev }

// PreventDefault marks the default action as prevented.
func (e *RawEvent) PreventDefault() { e.prevented = true }

// StopPropagation marks propagation as stopped.
func (e *RawEvent) StopPropagation() { e.stopped = true }

// DefaultPrevented reports whether PreventDefault was called.
func (e *RawEvent) DefaultPrevented() bool { return e.prevented }

// PropagationStopped reports whether StopPropagation was called.
func (e *RawEvent) PropagationStopped() bool { return e.stopped }

// Options are the hot-reloadable engine settings.
type Options struct {
	// IgnoreCapsLock bases the case of bound characters on shift only.
	IgnoreCapsLock bool

	// HelpTimeout delays display of a partial key sequence. Zero shows it
	// at once.
	HelpTimeout time.Duration

	// TrackFallthroughKeys enables the keydown/keyup fallthrough path.
	TrackFallthroughKeys bool
}

func kill(pe PlatformEvent) {
	pe.PreventDefault()
	pe.StopPropagation()
}
