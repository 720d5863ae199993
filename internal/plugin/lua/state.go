package lua

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyseq/internal/input"
)

// DefaultExecutionTimeout bounds a single Lua execution.
const DefaultExecutionTimeout = 5 * time.Second

// State wraps a sandboxed gopher-lua state.
//
// gopher-lua's LState is not goroutine-safe. Every execution holds mu, so
// commands running on different goroutines take turns. While code runs
// on behalf of a command, Current returns that command's context.
type State struct {
	L *lua.LState

	mu               sync.Mutex
	executionTimeout time.Duration
	current          *input.Context
	closed           bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout sets the execution timeout for Lua calls. Zero
// disables it.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.executionTimeout = d
	}
}

// NewState creates a new sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	s := &State{executionTimeout: DefaultExecutionTimeout}
	for _, opt := range opts {
		opt(s)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)
	installSandbox(L)
	s.L = L
	return s
}

// run executes fn with the state locked, ic as the current context and
// ctx (plus the execution timeout) cancelling the Lua code.
func (s *State) run(ctx context.Context, ic *input.Context, fn func(L *lua.LState) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStateClosed
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if s.executionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.executionTimeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	s.current = ic
	defer func() { s.current = nil }()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn(s.L)
}

// Current returns the context of the command the running code belongs
// to, or nil. Only valid from Go functions called by Lua.
func (s *State) Current() *input.Context {
	return s.current
}

// DoFile executes a Lua file.
func (s *State) DoFile(ctx context.Context, ic *input.Context, path string) error {
	return s.run(ctx, ic, func(L *lua.LState) error {
		return L.DoFile(path)
	})
}

// DoString executes a Lua chunk.
func (s *State) DoString(ctx context.Context, ic *input.Context, code string) error {
	return s.run(ctx, ic, func(L *lua.LState) error {
		return L.DoString(code)
	})
}

// Eval evaluates code as an expression if it parses as one, else as a
// chunk, and returns its results joined by tabs.
func (s *State) Eval(ctx context.Context, ic *input.Context, code string) (string, error) {
	var out string
	err := s.run(ctx, ic, func(L *lua.LState) error {
		fn, err := L.LoadString("return " + code)
		if err != nil {
			if fn, err = L.LoadString(code); err != nil {
				return err
			}
		}
		top := L.GetTop()
		L.Push(fn)
		if err := L.PCall(0, lua.MultRet, nil); err != nil {
			return err
		}
		n := L.GetTop() - top
		results := make([]string, n)
		for i := 0; i < n; i++ {
			results[i] = L.Get(top + i + 1).String()
		}
		L.Pop(n)
		out = strings.Join(results, "\t")
		return nil
	})
	return out, err
}

// CallFunction calls fn with args, discarding results.
func (s *State) CallFunction(ctx context.Context, ic *input.Context, fn *lua.LFunction, args ...lua.LValue) error {
	return s.run(ctx, ic, func(L *lua.LState) error {
		return L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...)
	})
}

// Call calls a global Lua function with the given arguments and returns
// its results.
func (s *State) Call(ctx context.Context, name string, args ...lua.LValue) ([]lua.LValue, error) {
	var results []lua.LValue
	err := s.run(ctx, nil, func(L *lua.LState) error {
		fn, ok := L.GetGlobal(name).(*lua.LFunction)
		if !ok {
			return fmt.Errorf("%w: %q", ErrNotFunction, name)
		}
		top := L.GetTop()
		if err := L.CallByParam(lua.P{Fn: fn, NRet: lua.MultRet, Protect: true}, args...); err != nil {
			return err
		}
		n := L.GetTop() - top
		results = make([]lua.LValue, n)
		for i := 0; i < n; i++ {
			results[i] = L.Get(top + i + 1)
		}
		L.Pop(n)
		return nil
	})
	return results, err
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the Lua state. Later calls return ErrStateClosed.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
