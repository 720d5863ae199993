package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period before a changed file is reloaded.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a config file into a Store when it changes.
type Watcher struct {
	src      Source
	store    *Store
	logger   *zap.SugaredLogger
	debounce time.Duration
	override func(*Options)

	fsw  *fsnotify.Watcher
	file string
	done chan struct{}
	wg   sync.WaitGroup

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the reload debounce period.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithOverride applies fn to every reloaded Options, e.g. to reapply
// command-line flags.
func WithOverride(fn func(*Options)) WatcherOption {
	return func(w *Watcher) { w.override = fn }
}

// WithWatcherLogger sets the watcher logger.
func WithWatcherLogger(logger *zap.SugaredLogger) WatcherOption {
	return func(w *Watcher) { w.logger = logger }
}

// NewWatcher starts watching src.Path. The containing directory is
// watched so that editors replacing the file are noticed.
func NewWatcher(src Source, store *Store, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(src.Path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		src:      src,
		store:    store,
		logger:   zap.NewNop().Sugar(),
		debounce: DefaultDebounce,
		fsw:      fsw,
		file:     abs,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

func (w *Watcher) processLoop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.file {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.schedule()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("config: watch error", "error", err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.Reload)
}

// Reload reads the file now and installs the result. Errors are logged
// and the current options are kept.
func (w *Watcher) Reload() {
	opts, err := Load(w.src)
	if err == nil && w.override != nil {
		w.override(&opts)
	}
	if err == nil {
		err = w.store.Set(opts)
	}
	if err != nil {
		w.logger.Warnw("config: reload failed", "file", w.file, "error", err)
		return
	}
	w.logger.Infow("config: reloaded", "file", w.file)
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}
