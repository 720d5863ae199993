package input

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/keyseq/internal/input/key"
	"github.com/dshills/keyseq/internal/input/keymap"
)

// Context is the interactive context of one key sequence. It is created on
// the first combo of a sequence, lives while the sequence is collected and
// is handed to the command that completes it.
//
// While a Context is current its fields belong to the window loop. Once it
// is handed to a command the command goroutine owns it until the command
// finishes.
type Context struct {
	// ID identifies the context in logs.
	ID uuid.UUID

	// KeySequence holds the combos typed so far.
	KeySequence key.Sequence

	// StickyModifiers are merged into the next event, then cleared.
	StickyModifiers key.Modifier

	// InitialKeymaps is the focus stack when the context was created.
	InitialKeymaps keymap.Stack

	// Keymaps is the stack the next combo is resolved against.
	Keymaps keymap.Stack

	// FirstEvent is true while handling the event that created the context.
	FirstEvent bool

	// OverlayKeymap is consulted before Keymaps when set.
	OverlayKeymap *keymap.Keymap

	// Repeat is the command last run through a binding with a repeat
	// alternate.
	Repeat string

	// HelpDisplayed is set once the partial sequence has been shown.
	HelpDisplayed bool

	// BindingBrowserObject is the object attached to the last binding.
	BindingBrowserObject any

	// Combo is the combo of the current event.
	Combo string

	// Event is the normalized snapshot of the current event.
	Event key.Event

	// PrefixArgument is the numeric prefix set by universal-argument.
	// Zero means none.
	PrefixArgument int

	// Command is the name of the command running with this context.
	Command string

	engine *Engine
	logger *zap.SugaredLogger
}

func (e *Engine) newContext() *Context {
	id := uuid.New()
	stack := e.window.Keymaps()
	return &Context{
		ID:             id,
		InitialKeymaps: stack,
		Keymaps:        stack,
		FirstEvent:     true,
		engine:         e,
		logger:         e.logger.With("context", id.String()),
	}
}

// Window returns the window the context belongs to.
func (c *Context) Window() Window {
	return c.engine.window
}

// Logger returns the context logger.
func (c *Context) Logger() *zap.SugaredLogger {
	return c.logger
}

// Sequence returns the typed sequence as text, e.g. "C-x C-f".
func (c *Context) Sequence() string {
	return c.KeySequence.String()
}

// Count returns the prefix argument, or 1 when none was given.
func (c *Context) Count() int {
	if c.PrefixArgument <= 0 {
		return 1
	}
	return c.PrefixArgument
}

// Post runs fn on the window loop.
func (c *Context) Post(fn func()) {
	c.engine.loop.Post(fn)
}

// Message shows msg in the minibuffer. Safe from any goroutine.
func (c *Context) Message(msg string) {
	c.Post(func() {
		c.engine.window.Minibuffer().Message(msg)
	})
}

// Continue reinstalls this context as the current one on the window loop,
// so the next key continues its sequence. A failure is reported through
// the window error handler.
func (c *Context) Continue() {
	c.Post(func() {
		if err := c.engine.ContinueWithState(c); err != nil {
			c.engine.window.HandleError(err)
		}
	})
}

// SendKey delivers a synthetic keypress for a combo such as "C-f" to the
// window. It is processed after anything already posted by the caller.
func (c *Context) SendKey(combo string) error {
	ev, err := key.Parse(combo)
	if err != nil {
		return err
	}
	c.SendEvent(ev)
	return nil
}

// SendEvent delivers a synthetic event to the window.
func (c *Context) SendEvent(ev key.Event) {
	if sender, ok := c.engine.window.(EventSender); ok {
		sender.SendEvent(ev)
		return
	}
	c.Post(func() {
		c.engine.Dispatch(NewRawEvent(ev))
	})
}

// Derive returns a fresh context for invoking another command from within
// a running one. It shares the window, keymaps, current event and prefix
// argument but has its own identity and sequence.
func (c *Context) Derive() *Context {
	id := uuid.New()
	return &Context{
		ID:                   id,
		KeySequence:          c.KeySequence.Clone(),
		InitialKeymaps:       c.InitialKeymaps,
		Keymaps:              c.InitialKeymaps,
		BindingBrowserObject: c.BindingBrowserObject,
		Combo:                c.Combo,
		Event:                c.Event,
		PrefixArgument:       c.PrefixArgument,
		engine:               c.engine,
		logger:               c.engine.logger.With("context", id.String(), "parent", c.ID.String()),
	}
}
