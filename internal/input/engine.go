package input

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/keyseq/internal/input/key"
	"github.com/dshills/keyseq/internal/input/keymap"
)

// Config configures an Engine.
type Config struct {
	// Window is required.
	Window Window

	// Loop is the window event loop. Required.
	Loop Loop

	// Runner runs commands. Required.
	Runner Runner

	// Scheduler arms the help timer. Defaults to AfterFuncScheduler.
	Scheduler Scheduler

	// Options returns the current settings. Called on every event so
	// settings can change at runtime. Defaults to zero Options.
	Options func() Options

	// AbortKeymap defaults to keymap.SequenceAbortKeymap.
	AbortKeymap *keymap.Keymap

	// HelpKeymap defaults to keymap.SequenceHelpKeymap.
	HelpKeymap *keymap.Keymap

	// GlobalOverlay is the keymap used by the global overlay mode.
	GlobalOverlay *keymap.Keymap

	// Hooks defaults to a new HookManager.
	Hooks *HookManager

	// Metrics defaults to a new Metrics.
	Metrics *Metrics

	// Logger defaults to a no-op logger.
	Logger *zap.SugaredLogger

	// Spawn starts a command. Defaults to a new goroutine.
	Spawn func(fn func())
}

// Engine is the input engine of one window.
type Engine struct {
	window  Window
	loop    Loop
	runner  Runner
	sched   Scheduler
	options func() Options

	abort   *keymap.Keymap
	help    *keymap.Keymap
	overlay *keymap.Keymap

	hooks   *HookManager
	metrics *Metrics
	logger  *zap.SugaredLogger
	spawn   func(fn func())

	state  State
	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

// NewEngine creates an engine for one window.
func NewEngine(cfg Config) (*Engine, error) {
	switch {
	case cfg.Window == nil:
		return nil, ErrNoWindow
	case cfg.Loop == nil:
		return nil, ErrNoLoop
	case cfg.Runner == nil:
		return nil, ErrNoRunner
	}

	if cfg.Scheduler == nil {
		cfg.Scheduler = AfterFuncScheduler{}
	}
	if cfg.Options == nil {
		cfg.Options = func() Options { return Options{} }
	}
	if cfg.AbortKeymap == nil {
		cfg.AbortKeymap = keymap.SequenceAbortKeymap()
	}
	if cfg.HelpKeymap == nil {
		cfg.HelpKeymap = keymap.SequenceHelpKeymap()
	}
	if cfg.GlobalOverlay == nil {
		cfg.GlobalOverlay = keymap.GlobalOverlayKeymap()
	}
	if cfg.Hooks == nil {
		cfg.Hooks = NewHookManager()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	if cfg.Spawn == nil {
		cfg.Spawn = func(fn func()) { go fn() }
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		window:  cfg.Window,
		loop:    cfg.Loop,
		runner:  cfg.Runner,
		sched:   cfg.Scheduler,
		options: cfg.Options,
		abort:   cfg.AbortKeymap,
		help:    cfg.HelpKeymap,
		overlay: cfg.GlobalOverlay,
		hooks:   cfg.Hooks,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
		spawn:   cfg.Spawn,
		state:   newState(),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// State returns the window input state. Loop only.
func (e *Engine) State() *State {
	return &e.state
}

// Hooks returns the keypress hook manager.
func (e *Engine) Hooks() *HookManager {
	return e.hooks
}

// Metrics returns the engine metrics.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// HandleEvent is the entry point for every keypress and app-command event.
// It grows the current key sequence by one combo and resolves it.
func (e *Engine) HandleEvent(pe PlatformEvent) {
	if e.closed {
		return
	}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Errorw("input: event handler panic",
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
		e.metrics.RecordEvent(time.Since(start))
	}()

	ic := e.state.current
	if ic == nil {
		ic = e.newContext()
		e.state.current = ic
	} else {
		ic.FirstEvent = false
	}

	e.window.Minibuffer().Clear()
	e.clearHelpTimer()

	opts := e.options()
	combo, snap := key.Normalize(pe.Snapshot(), ic.StickyModifiers, opts.IgnoreCapsLock)
	ic.StickyModifiers = key.ModNone
	ic.Combo = combo
	ic.Event = snap

	if e.hooks.RunKeypress(ic, pe) {
		e.metrics.RecordHookConsumption()
		return
	}

	canAbort := ic.KeySequence.Push(combo) > 1
	b := e.resolve(ic, canAbort)

	ic.logger.Debugw("input: resolved",
		"sequence", ic.Sequence(),
		"binding", b.String(),
	)
	e.HandleBinding(ic, pe, b)
}

func (e *Engine) resolve(ic *Context, canAbort bool) keymap.Binding {
	if canAbort {
		if b := keymap.Lookup(keymap.Stack{e.abort}, ic.Combo, ic.Event); !b.IsUndefined() {
			e.metrics.RecordAbort()
			return b
		}
	}
	if ic.OverlayKeymap != nil {
		if b := keymap.Lookup(keymap.Stack{ic.OverlayKeymap}, ic.Combo, ic.Event); !b.IsUndefined() {
			return b
		}
	}
	if b := keymap.Lookup(ic.Keymaps, ic.Combo, ic.Event); !b.IsUndefined() {
		return b
	}
	return keymap.Lookup(keymap.Stack{e.help}, ic.Combo, ic.Event)
}

// HandleBinding acts on a resolved binding for ic and the live event pe.
func (e *Engine) HandleBinding(ic *Context, pe PlatformEvent, b keymap.Binding) {
	if b.Suppresses() {
		kill(pe)
	}

	if b.Kind == keymap.KindUndefined {
		e.window.Minibuffer().Message(ic.Sequence() + " is undefined")
		e.metrics.RecordUndefined()
		e.discard()
		return
	}

	if b.BrowserObject != nil {
		ic.BindingBrowserObject = b.BrowserObject
	}

	switch b.Kind {
	case keymap.KindKeymaps:
		ic.Keymaps = b.Keymaps
		e.showPartialSequence(ic)
		return
	case keymap.KindCommand:
		// Detached until the command finishes; a prefix command reinstalls it.
		e.state.current = nil
		if b.Command == "" {
			return
		}
		command := b.Command
		if ic.Repeat == command && b.Repeat != "" {
			command = b.Repeat
		}
		if b.Repeat != "" {
			ic.Repeat = command
		}
		e.RunCommand(ic, command)
	case keymap.KindFallthrough:
		e.state.current = nil
	}
}

// RunCommand starts the named command off the loop. Its completion is
// posted back to the loop.
func (e *Engine) RunCommand(ic *Context, name string) {
	ic.Command = name
	e.metrics.RecordCommandStarted()
	ic.logger.Debugw("input: run command", "command", name, "sequence", ic.Sequence())

	e.spawn(func() {
		prefix, err := e.runSafely(ic, name)
		e.loop.Post(func() {
			e.finishCommand(ic, name, prefix, err)
		})
	})
}

func (e *Engine) runSafely(ic *Context, name string) (prefix bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ic.logger.Errorw("input: command panic",
				"command", name,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			err = fmt.Errorf("%w: %s: %v", ErrCommandPanic, name, r)
		}
	}()
	return e.runner.Run(e.ctx, ic, name)
}

func (e *Engine) finishCommand(ic *Context, name string, prefix bool, err error) {
	if e.closed {
		return
	}
	if err != nil {
		e.metrics.RecordCommandFailed()
		ic.logger.Debugw("input: command failed", "command", name, "error", err)
		e.window.HandleError(err)
		return
	}
	if !prefix {
		return
	}

	ic.Keymaps = ic.InitialKeymaps
	e.metrics.RecordPrefixContinuation()
	if err := e.ContinueWithState(ic); err != nil {
		e.window.HandleError(err)
	}
}

// ContinueWithState installs ic as the current context so the next combo
// continues its sequence. It fails with ErrNestedSequence when another
// context is current.
func (e *Engine) ContinueWithState(ic *Context) error {
	if e.state.current != nil {
		e.metrics.RecordNestedSequence()
		return ErrNestedSequence
	}
	e.state.current = ic
	e.showPartialSequence(ic)
	return nil
}

// Abort discards the current sequence, if any.
func (e *Engine) Abort() {
	e.discard()
}

func (e *Engine) discard() {
	e.clearHelpTimer()
	e.state.current = nil
}

// Close discards the input state and cancels the context passed to running
// commands. Completions arriving afterwards are dropped.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.discard()
	e.state.passKeys = make(map[int]bool)
	e.cancel()
}
