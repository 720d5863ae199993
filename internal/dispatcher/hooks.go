package dispatcher

import (
	"go.uber.org/zap"

	"github.com/dshills/keyseq/internal/input"
)

// PreRunHook is called before a command runs.
// Returning false cancels the command.
type PreRunHook interface {
	PreRun(ic *input.Context, name string) bool
}

// PostRunHook is called after a command finishes, with its error.
type PostRunHook interface {
	PostRun(ic *input.Context, name string, err error)
}

// PreRunFunc is a function adapter for PreRunHook.
type PreRunFunc func(ic *input.Context, name string) bool

// PreRun implements PreRunHook.
func (f PreRunFunc) PreRun(ic *input.Context, name string) bool {
	return f(ic, name)
}

// PostRunFunc is a function adapter for PostRunHook.
type PostRunFunc func(ic *input.Context, name string, err error)

// PostRun implements PostRunHook.
func (f PostRunFunc) PostRun(ic *input.Context, name string, err error) {
	f(ic, name, err)
}

// AddPreRunHook appends a pre-run hook.
func (r *Registry) AddPreRunHook(h PreRunHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preHooks = append(r.preHooks, h)
}

// AddPostRunHook appends a post-run hook.
func (r *Registry) AddPostRunHook(h PostRunHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.postHooks = append(r.postHooks, h)
}

func (r *Registry) runPreHooks(ic *input.Context, name string) bool {
	r.mu.RLock()
	hooks := r.preHooks
	r.mu.RUnlock()
	for _, h := range hooks {
		if !h.PreRun(ic, name) {
			return false
		}
	}
	return true
}

func (r *Registry) runPostHooks(ic *input.Context, name string, err error) {
	r.mu.RLock()
	hooks := r.postHooks
	r.mu.RUnlock()
	for _, h := range hooks {
		h.PostRun(ic, name, err)
	}
}

// LoggingHook logs every finished command at debug level and failures at
// warn level.
func LoggingHook(logger *zap.SugaredLogger) PostRunHook {
	return PostRunFunc(func(ic *input.Context, name string, err error) {
		if err != nil {
			logger.Warnw("command failed", "command", name, "sequence", ic.Sequence(), "error", err)
			return
		}
		logger.Debugw("command finished", "command", name, "sequence", ic.Sequence())
	})
}
