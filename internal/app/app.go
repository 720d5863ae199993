// Package app provides the application structure: windows with their
// event loops, the shared command registry and keymaps, the Lua runtime
// and the wiring between configuration and the input engines.
package app

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/keyseq/internal/commands"
	"github.com/dshills/keyseq/internal/complete"
	"github.com/dshills/keyseq/internal/config"
	"github.com/dshills/keyseq/internal/dispatcher"
	"github.com/dshills/keyseq/internal/input"
	"github.com/dshills/keyseq/internal/input/keymap"
	"github.com/dshills/keyseq/internal/plugin/lua"
)

// Application is the central coordinator for all keyseq components.
type Application struct {
	mu sync.RWMutex

	opts    Options
	store   *config.Store
	logging *Logging
	logger  *zap.SugaredLogger

	// Commands and keymaps, shared by every window.
	registry     *dispatcher.Registry
	history      *complete.History
	keymaps      *keymap.Registry
	global       *keymap.Keymap
	content      *keymap.Keymap
	minibuffer   *keymap.Keymap
	overlay      *keymap.Keymap
	abort        *keymap.Keymap
	help         *keymap.Keymap
	inputMetrics *input.Metrics

	script *lua.Runtime

	windows     map[uuid.UUID]*Window
	active      *Window
	initHooks   []WindowHook
	overlayMode bool

	closed   bool
	done     chan struct{}
	quitOnce sync.Once
}

// Options configures the application.
type Options struct {
	// Store holds the configuration. Defaults are used when nil.
	Store *config.Store

	// Logging owns the logger and its level, which follows log_level
	// changes in Store. Optional.
	Logging *Logging

	// Logger is used when Logging is nil. Defaults to a no-op logger.
	Logger *zap.SugaredLogger

	// Clipboard backs yank-to-clipboard and copy-email-address. Defaults
	// to the system clipboard.
	Clipboard commands.Clipboard

	// DisableScript turns off the Lua runtime and the commands using it.
	DisableScript bool

	// Redraw runs on a window's loop whenever its queue drains.
	Redraw func(*Window)

	// Spawn starts a command. Defaults to a new goroutine.
	Spawn func(fn func())
}

// New creates an Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		windows: make(map[uuid.UUID]*Window),
		done:    make(chan struct{}),
	}
	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Configuration and logging
	app.store = app.opts.Store
	if app.store == nil {
		app.store = config.NewStore(config.Defaults())
	}
	app.logging = app.opts.Logging
	switch {
	case app.logging != nil:
		app.logger = app.logging.Sugar()
	case app.opts.Logger != nil:
		app.logger = app.opts.Logger
	default:
		app.logger = zap.NewNop().Sugar()
	}
	if app.opts.Clipboard == nil {
		app.opts.Clipboard = commands.SystemClipboard{}
	}

	// 2. Keymaps
	app.global = keymap.DefaultGlobalKeymap()
	app.content = keymap.DefaultContentKeymap(app.global)
	app.minibuffer = keymap.DefaultMinibufferKeymap().WithParent(app.global)
	app.overlay = keymap.GlobalOverlayKeymap()
	app.abort = keymap.SequenceAbortKeymap()
	app.help = keymap.SequenceHelpKeymap()
	app.keymaps = keymap.NewRegistry()
	for _, km := range []*keymap.Keymap{app.global, app.content, app.minibuffer, app.overlay, app.abort, app.help} {
		if err := app.keymaps.Register(km); err != nil {
			return NewOperationError("register keymap", km.Name, err)
		}
	}

	// 3. Commands
	app.registry = dispatcher.NewRegistry(
		dispatcher.WithMetrics(dispatcher.NewMetrics()),
		dispatcher.WithLogger(app.logger.Named("dispatcher")),
	)
	app.registry.AddPostRunHook(dispatcher.LoggingHook(app.logger.Named("dispatcher")))
	app.inputMetrics = input.NewMetrics()

	// 4. Lua
	var script commands.Evaluator
	if !app.opts.DisableScript {
		app.script = lua.NewRuntime(app)
		script = app.script
	}

	app.history = complete.NewHistory(complete.DefaultHistorySize)
	deps := commands.Deps{
		Registry:  app.registry,
		History:   app.history,
		Clipboard: app.opts.Clipboard,
		Script:    script,
		RCFile:    func() string { return app.store.Get().RCFile },
		Quit:      app.Quit,
	}
	if err := commands.Register(deps); err != nil {
		return NewOperationError("register commands", "", err)
	}

	// 5. Window lifecycle and hot reload
	app.overlayMode = app.store.Get().GlobalOverlayKeymap
	app.OnWindowInitialize(app.initInput)
	app.store.Observe(app.optionsChanged)
	return nil
}

// Store returns the configuration store.
func (app *Application) Store() *config.Store {
	return app.store
}

// Logger returns the application logger.
func (app *Application) Logger() *zap.SugaredLogger {
	return app.logger
}

// Registry returns the command registry.
func (app *Application) Registry() *dispatcher.Registry {
	return app.registry
}

// CommandHistory returns the names run with execute-extended-command,
// shared by every window.
func (app *Application) CommandHistory() *complete.History {
	return app.history
}

// Keymaps returns the keymap registry.
func (app *Application) Keymaps() *keymap.Registry {
	return app.keymaps
}

// InputMetrics returns the input metrics shared by all windows.
func (app *Application) InputMetrics() *input.Metrics {
	return app.inputMetrics
}

// Script returns the Lua runtime, or nil when scripting is disabled.
func (app *Application) Script() *lua.Runtime {
	return app.script
}

// optionsChanged applies a configuration change. Engine options are read
// from the store on every use and need nothing here.
func (app *Application) optionsChanged(old, cur config.Options) {
	if app.logging != nil && old.LogLevel != cur.LogLevel {
		if err := app.logging.SetLevel(cur.LogLevel); err != nil {
			app.logger.Warnw("log level not changed", "level", cur.LogLevel, "error", err)
		}
	}
	if old.GlobalOverlayKeymap != cur.GlobalOverlayKeymap {
		app.setOverlayMode(cur.GlobalOverlayKeymap)
	}
	app.logger.Infow("options reloaded",
		"help_timeout", cur.HelpTimeout,
		"ignore_capslock", cur.IgnoreCapsLock,
		"log_level", cur.LogLevel)
}

// setOverlayMode turns the global overlay keymap on or off in every
// window, including windows created later.
func (app *Application) setOverlayMode(on bool) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.overlayMode = on
	for _, w := range app.windows {
		w.Post(func() { w.engine.SetGlobalOverlayMode(on) })
	}
}
