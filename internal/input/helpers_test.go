package input

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/dshills/keyseq/internal/input/key"
	"github.com/dshills/keyseq/internal/input/keymap"
)

type fakeMinibuffer struct {
	messages []string
	shown    []string
	text     string
}

func (m *fakeMinibuffer) Message(msg string) {
	m.messages = append(m.messages, msg)
	m.text = msg
}

func (m *fakeMinibuffer) Show(text string) {
	m.shown = append(m.shown, text)
	m.text = text
}

func (m *fakeMinibuffer) Clear() {
	m.text = ""
}

type fakeWindow struct {
	mb    *fakeMinibuffer
	stack keymap.Stack
	errs  []error
}

func (w *fakeWindow) Minibuffer() Minibuffer { return w.mb }
func (w *fakeWindow) Keymaps() keymap.Stack  { return w.stack }
func (w *fakeWindow) HandleError(err error)  { w.errs = append(w.errs, err) }

// fakeLoop queues posted closures until drained.
type fakeLoop struct {
	queue []func()
}

func (l *fakeLoop) Post(fn func()) {
	l.queue = append(l.queue, fn)
}

func (l *fakeLoop) Drain() {
	for len(l.queue) > 0 {
		fn := l.queue[0]
		l.queue = l.queue[1:]
		fn()
	}
}

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	live := !t.stopped && !t.fired
	t.stopped = true
	return live
}

// fakeScheduler records timers and fires them on demand.
type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) Schedule(d time.Duration, fn func()) Timer {
	t := &fakeTimer{delay: d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) Cancel(t Timer) {
	t.Stop()
}

func (s *fakeScheduler) Live() []*fakeTimer {
	var live []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			live = append(live, t)
		}
	}
	return live
}

// FireAll runs every timer callback, including cancelled ones, the way a
// timer that fired just before being stopped would.
func (s *fakeScheduler) FireAll() {
	for _, t := range s.timers {
		if !t.fired {
			t.fired = true
			t.fn()
		}
	}
}

type fakeRunner struct {
	calls    []string
	commands map[string]func(ctx context.Context, ic *Context) (bool, error)
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{commands: make(map[string]func(context.Context, *Context) (bool, error))}
}

func (r *fakeRunner) define(name string, fn func(ctx context.Context, ic *Context) (bool, error)) {
	r.commands[name] = fn
}

func (r *fakeRunner) prefix(name string) {
	r.define(name, func(context.Context, *Context) (bool, error) { return true, nil })
}

func (r *fakeRunner) Run(ctx context.Context, ic *Context, name string) (bool, error) {
	r.calls = append(r.calls, name)
	if fn, ok := r.commands[name]; ok {
		return fn(ctx, ic)
	}
	return false, nil
}

type harness struct {
	engine *Engine
	window *fakeWindow
	loop   *fakeLoop
	sched  *fakeScheduler
	runner *fakeRunner
	opts   Options
}

func newHarness(t *testing.T, stack ...*keymap.Keymap) *harness {
	t.Helper()
	h := &harness{
		window: &fakeWindow{mb: &fakeMinibuffer{}, stack: stack},
		loop:   &fakeLoop{},
		sched:  &fakeScheduler{},
		runner: newFakeRunner(),
	}
	e, err := NewEngine(Config{
		Window:    h.window,
		Loop:      h.loop,
		Runner:    h.runner,
		Scheduler: h.sched,
		Options:   func() Options { return h.opts },
		Logger:    zaptest.NewLogger(t).Sugar(),
		Spawn:     func(fn func()) { fn() },
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	h.engine = e
	return h
}

// press dispatches a keypress for combo and drains the loop.
func (h *harness) press(t *testing.T, combo string) *RawEvent {
	t.Helper()
	ev, err := key.Parse(combo)
	if err != nil {
		t.Fatalf("Parse(%q): %v", combo, err)
	}
	pe := NewRawEvent(ev)
	h.engine.Dispatch(pe)
	h.loop.Drain()
	return pe
}

// pressNoDrain dispatches a keypress without running posted completions.
func (h *harness) pressNoDrain(t *testing.T, combo string) *RawEvent {
	t.Helper()
	pe := NewRawEvent(key.MustParse(combo))
	h.engine.Dispatch(pe)
	return pe
}

func (h *harness) current() *Context {
	return h.engine.State().Current()
}

func stackNames(s keymap.Stack) []string {
	names := make([]string, len(s))
	for i, km := range s {
		names[i] = km.Name
	}
	return names
}

func mustDefine(t *testing.T, km *keymap.Keymap, seq, command string, opts ...keymap.Option) {
	t.Helper()
	if err := km.Define(seq, command, opts...); err != nil {
		t.Fatalf("Define(%q): %v", seq, err)
	}
}
