// Package inputtest provides fakes for driving an input.Engine in tests.
package inputtest

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/dshills/keyseq/internal/input"
	"github.com/dshills/keyseq/internal/input/key"
	"github.com/dshills/keyseq/internal/input/keymap"
)

// Minibuffer records what the engine shows.
type Minibuffer struct {
	mu       sync.Mutex
	Messages []string
	Shown    []string
	Text     string
}

func (m *Minibuffer) Message(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, msg)
	m.Text = msg
}

func (m *Minibuffer) Show(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Shown = append(m.Shown, text)
	m.Text = text
}

func (m *Minibuffer) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Text = ""
}

// LastMessage returns the most recent message, or "".
func (m *Minibuffer) LastMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Messages) == 0 {
		return ""
	}
	return m.Messages[len(m.Messages)-1]
}

// Window is a fake input.Window. Read answers prompts from Answers.
type Window struct {
	MB      *Minibuffer
	Stack   keymap.Stack
	Errs    []error
	Answers []string
	Prompts []string
}

func (w *Window) Minibuffer() input.Minibuffer { return w.MB }
func (w *Window) Keymaps() keymap.Stack        { return w.Stack }
func (w *Window) HandleError(err error)        { w.Errs = append(w.Errs, err) }

// Read pops the next queued answer. With none queued it behaves as if the
// user aborted.
func (w *Window) Read(_ context.Context, prompt string) (string, error) {
	w.Prompts = append(w.Prompts, prompt)
	if len(w.Answers) == 0 {
		return "", input.ErrReadAborted
	}
	a := w.Answers[0]
	w.Answers = w.Answers[1:]
	return a, nil
}

// Loop queues posted closures until drained.
type Loop struct {
	queue []func()
}

func (l *Loop) Post(fn func()) {
	l.queue = append(l.queue, fn)
}

// Drain runs queued closures, including ones posted while draining.
func (l *Loop) Drain() {
	for len(l.queue) > 0 {
		fn := l.queue[0]
		l.queue = l.queue[1:]
		fn()
	}
}

// Harness is an engine wired to fakes. Commands run inline.
type Harness struct {
	Engine *input.Engine
	Window *Window
	Loop   *Loop
	Opts   input.Options
}

// Option configures a Harness.
type Option func(*options)

type options struct {
	wrap func(*Window) input.Window
}

// Wrap makes the engine see wrap(w) instead of the bare fake window, so
// tests can add optional window interfaces.
func Wrap(wrap func(*Window) input.Window) Option {
	return func(o *options) { o.wrap = wrap }
}

// New creates a harness whose engine runs commands through runner with
// stack as the focus keymaps.
func New(t testing.TB, runner input.Runner, stack keymap.Stack, opts ...Option) *Harness {
	t.Helper()
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	h := &Harness{
		Window: &Window{MB: &Minibuffer{}, Stack: stack},
		Loop:   &Loop{},
	}
	var w input.Window = h.Window
	if o.wrap != nil {
		w = o.wrap(h.Window)
	}
	e, err := input.NewEngine(input.Config{
		Window:  w,
		Loop:    h.Loop,
		Runner:  runner,
		Options: func() input.Options { return h.Opts },
		Logger:  zaptest.NewLogger(t).Sugar(),
		Spawn:   func(fn func()) { fn() },
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	h.Engine = e
	t.Cleanup(e.Close)
	return h
}

// Press dispatches each combo as a keypress, draining the loop after each.
// It returns the event of the last combo.
func (h *Harness) Press(t testing.TB, combos ...string) *input.RawEvent {
	t.Helper()
	var pe *input.RawEvent
	for _, combo := range combos {
		ev, err := key.Parse(combo)
		if err != nil {
			t.Fatalf("Parse(%q): %v", combo, err)
		}
		pe = input.NewRawEvent(ev)
		h.Engine.Dispatch(pe)
		h.Loop.Drain()
	}
	return pe
}

// Define binds seq to command in km or fails the test.
func Define(t testing.TB, km *keymap.Keymap, seq, command string, opts ...keymap.Option) {
	t.Helper()
	if err := km.Define(seq, command, opts...); err != nil {
		t.Fatalf("Define(%q): %v", seq, err)
	}
}
