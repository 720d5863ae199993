package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/keyseq/internal/input"
)

// Command is a named interactive command.
type Command struct {
	// Name is the command identifier used in keymaps.
	Name string

	// Doc is a one-line description.
	Doc string

	// Fn is the command body.
	Fn input.CommandFunc

	// Prefix marks a command that continues the key sequence once it
	// returns without error.
	Prefix bool
}

// Registry maps command names to commands. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	commands  map[string]Command
	preHooks  []PreRunHook
	postHooks []PostRunHook

	metrics *Metrics
	logger  *zap.SugaredLogger
}

// Option configures a Registry.
type Option func(*Registry)

// WithMetrics records per-command metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// WithLogger sets the registry logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(r *Registry) { r.logger = logger }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		commands: make(map[string]Command),
		logger:   zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds cmd, replacing any command with the same name.
func (r *Registry) Register(cmd Command) error {
	if cmd.Name == "" || cmd.Fn == nil {
		return fmt.Errorf("register %q: %w", cmd.Name, ErrInvalidCommand)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd.Name] = cmd
	return nil
}

// Define registers a plain command.
func (r *Registry) Define(name, doc string, fn input.CommandFunc) error {
	return r.Register(Command{Name: name, Doc: doc, Fn: fn})
}

// DefinePrefix registers a prefix command.
func (r *Registry) DefinePrefix(name, doc string, fn input.CommandFunc) error {
	return r.Register(Command{Name: name, Doc: doc, Fn: fn, Prefix: true})
}

// Unregister removes a command. It reports whether one was registered.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.commands[name]
	delete(r.commands, name)
	return ok
}

// Get returns the command registered under name.
func (r *Registry) Get(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns all command names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered commands.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Complete returns the sorted names starting with prefix.
func (r *Registry) Complete(prefix string) []string {
	var out []string
	for _, name := range r.Names() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

// Metrics returns the metrics collector, or nil.
func (r *Registry) Metrics() *Metrics {
	return r.metrics
}

// Run implements input.Runner. It records name on ic, runs the command and
// reports whether it is a prefix command that succeeded.
func (r *Registry) Run(ctx context.Context, ic *input.Context, name string) (bool, error) {
	cmd, ok := r.Get(name)
	if !ok {
		return false, &CommandError{Command: name, Err: ErrUnknownCommand}
	}
	ic.Command = name

	if !r.runPreHooks(ic, name) {
		return false, &CommandError{Command: name, Err: ErrCancelled}
	}

	start := time.Now()
	err := r.executeWithRecovery(ctx, ic, cmd)
	if r.metrics != nil {
		r.metrics.RecordRun(name, time.Since(start), err)
	}
	r.runPostHooks(ic, name, err)

	if err != nil {
		var ce *CommandError
		if !errors.As(err, &ce) {
			err = &CommandError{Command: name, Err: err}
		}
		return false, err
	}
	return cmd.Prefix, nil
}

// Call runs name synchronously on a context derived from ic. A prefix
// command continues the derived context's key sequence.
func (r *Registry) Call(ctx context.Context, ic *input.Context, name string) error {
	sub := ic.Derive()
	prefix, err := r.Run(ctx, sub, name)
	if err != nil {
		return err
	}
	if prefix {
		sub.Continue()
	}
	return nil
}

func (r *Registry) executeWithRecovery(ctx context.Context, ic *input.Context, cmd Command) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			err = fmt.Errorf("%w: %v", ErrPanic, rec)
			r.logger.Errorw("command panic", "command", cmd.Name, "panic", rec, "stack", string(stack[:n]))

			if r.metrics != nil {
				r.metrics.RecordPanic(cmd.Name)
			}
		}
	}()
	return cmd.Fn(ctx, ic)
}
