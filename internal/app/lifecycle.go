package app

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/dshills/keyseq/internal/input"
	"github.com/dshills/keyseq/internal/input/keymap"
)

// WindowHook runs when a window is created, before its loop starts.
type WindowHook func(w *Window) error

// OnWindowInitialize adds a hook run for every new window, after the
// hooks already added. The input engine is installed by the first hook.
func (app *Application) OnWindowInitialize(hook WindowHook) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.initHooks = append(app.initHooks, hook)
}

// initInput installs the input engine on w.
func (app *Application) initInput(w *Window) error {
	e, err := input.NewEngine(input.Config{
		Window:        w,
		Loop:          w.loop,
		Runner:        app.registry,
		Options:       app.store.InputOptions,
		AbortKeymap:   app.abort,
		HelpKeymap:    app.help,
		GlobalOverlay: app.overlay,
		Metrics:       app.inputMetrics,
		Logger:        w.logger,
		Spawn:         app.opts.Spawn,
	})
	if err != nil {
		return err
	}
	w.engine = e
	app.mu.RLock()
	on := app.overlayMode
	app.mu.RUnlock()
	e.SetGlobalOverlayMode(on)
	return nil
}

// NewWindow creates a window, runs the initialization hooks and starts
// its event loop.
func (app *Application) NewWindow() (*Window, error) {
	app.mu.RLock()
	closed := app.closed
	hooks := append([]WindowHook(nil), app.initHooks...)
	app.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}

	id := uuid.New()
	w := &Window{
		ID:        id,
		mb:        &Minibuffer{},
		buffer:    NewBuffer(""),
		stack:     keymap.Stack{app.content},
		readStack: keymap.Stack{app.minibuffer},
		logger:    app.logger.With("window", id.String()),
		closed:    make(chan struct{}),
	}
	w.loop = NewEventLoop(func() {
		if app.opts.Redraw != nil {
			app.opts.Redraw(w)
		}
	})

	for _, hook := range hooks {
		if err := hook(w); err != nil {
			if w.engine != nil {
				w.engine.Close()
			}
			return nil, NewOperationError("initialize window", id.String(), err)
		}
	}
	if w.engine == nil {
		return nil, NewOperationError("initialize window", id.String(), ErrNoEngine)
	}

	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		w.engine.Close()
		return nil, ErrClosed
	}
	app.windows[id] = w
	app.active = w
	app.mu.Unlock()

	go w.loop.Run()
	w.logger.Debugw("window created")
	return w, nil
}

// Window returns the window with the given id.
func (app *Application) Window(id uuid.UUID) (*Window, error) {
	app.mu.RLock()
	defer app.mu.RUnlock()
	w, ok := app.windows[id]
	if !ok {
		return nil, ErrWindowNotFound
	}
	return w, nil
}

// Windows returns the open windows ordered by id.
func (app *Application) Windows() []*Window {
	app.mu.RLock()
	defer app.mu.RUnlock()
	out := make([]*Window, 0, len(app.windows))
	for _, w := range app.windows {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

// CloseWindow destroys a window. Commands still running for it see their
// context cancelled.
func (app *Application) CloseWindow(id uuid.UUID) error {
	app.mu.Lock()
	w, ok := app.windows[id]
	if ok {
		delete(app.windows, id)
		if app.active == w {
			app.active = nil
		}
	}
	app.mu.Unlock()
	if !ok {
		return ErrWindowNotFound
	}
	w.close()
	w.logger.Debugw("window closed")
	return nil
}

// LoadRC runs the configured rc file. It does nothing when none is set.
func (app *Application) LoadRC(ctx context.Context) error {
	path := app.store.Get().RCFile
	if path == "" {
		return nil
	}
	if app.script == nil {
		return ErrNoScript
	}
	if err := app.script.Source(ctx, nil, path); err != nil {
		return NewOperationError("source", path, err)
	}
	app.logger.Infow("rc file loaded", "path", path)
	return nil
}

// Quit asks the application to exit. Done is closed on the first call.
func (app *Application) Quit() {
	app.quitOnce.Do(func() { close(app.done) })
}

// Done is closed once Quit has been called.
func (app *Application) Done() <-chan struct{} {
	return app.done
}

// Shutdown closes every window and the Lua runtime. Later calls return
// ErrClosed.
func (app *Application) Shutdown() error {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return ErrClosed
	}
	app.closed = true
	windows := make([]*Window, 0, len(app.windows))
	for _, w := range app.windows {
		windows = append(windows, w)
	}
	app.windows = make(map[uuid.UUID]*Window)
	app.active = nil
	app.mu.Unlock()

	for _, w := range windows {
		w.close()
	}

	var errs ErrorList
	if app.script != nil {
		errs.Add(app.script.Close())
	}
	if app.logging != nil {
		errs.Add(app.logging.Sync())
	}
	app.Quit()
	return errs.AsError()
}
