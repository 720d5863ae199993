package lua

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/keyseq/internal/input"
)

// ModuleName is the name of the Lua module exposing the host API. It is
// preloaded for require and also set as a global.
const ModuleName = "keyseq"

// Host is the application side of the Lua API.
type Host interface {
	// DefineKey binds seq to command in the named keymap.
	DefineKey(keymap, seq, command string) error

	// DefineKeyAlias makes typed generate the generated combo.
	DefineKeyAlias(typed, generated string) error

	// DefineStickyModifier makes typed add mods to the next key.
	DefineStickyModifier(typed, mods string) error

	// Interactive registers a command.
	Interactive(name, doc string, fn input.CommandFunc) error

	// Message shows msg when no command context is available.
	Message(msg string)
}

// Runtime runs user Lua code against a Host.
type Runtime struct {
	state *State
	host  Host
}

// NewRuntime creates a sandboxed state with the keyseq module installed.
func NewRuntime(host Host, opts ...StateOption) *Runtime {
	r := &Runtime{state: NewState(opts...), host: host}
	mod := r.state.L.SetFuncs(r.state.L.NewTable(), map[string]lua.LGFunction{
		"define_key":             r.defineKey,
		"define_key_alias":       r.defineKeyAlias,
		"define_sticky_modifier": r.defineStickyModifier,
		"interactive":            r.interactive,
		"message":                r.message,
		"send_key":               r.sendKey,
	})
	r.state.L.PreloadModule(ModuleName, func(L *lua.LState) int {
		L.Push(mod)
		return 1
	})
	r.state.L.SetGlobal(ModuleName, mod)
	return r
}

// State returns the underlying state.
func (r *Runtime) State() *State {
	return r.state
}

// Eval evaluates code on behalf of ic.
func (r *Runtime) Eval(ctx context.Context, ic *input.Context, code string) (string, error) {
	return r.state.Eval(ctx, ic, code)
}

// Source runs the file at path on behalf of ic, which may be nil when
// loading the rc file at startup. A leading "~/" is expanded.
func (r *Runtime) Source(ctx context.Context, ic *input.Context, path string) error {
	path, err := expandHome(path)
	if err != nil {
		return err
	}
	return r.state.DoFile(ctx, ic, path)
}

// Close releases the state.
func (r *Runtime) Close() error {
	return r.state.Close()
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[2:]), nil
}

// command adapts a Lua function into a command. The function receives a
// table describing the invocation.
func (r *Runtime) command(fn *lua.LFunction) input.CommandFunc {
	return func(ctx context.Context, ic *input.Context) error {
		return r.state.run(ctx, ic, func(L *lua.LState) error {
			return L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, contextTable(L, ic))
		})
	}
}

func contextTable(L *lua.LState, ic *input.Context) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("sequence", lua.LString(ic.Sequence()))
	t.RawSetString("combo", lua.LString(ic.Combo))
	t.RawSetString("command", lua.LString(ic.Command))
	t.RawSetString("count", lua.LNumber(ic.Count()))
	if ic.PrefixArgument != 0 {
		t.RawSetString("prefix", lua.LNumber(ic.PrefixArgument))
	}
	return t
}

// define_key(keymap, seq, command)
func (r *Runtime) defineKey(L *lua.LState) int {
	if err := r.host.DefineKey(L.CheckString(1), L.CheckString(2), L.CheckString(3)); err != nil {
		L.RaiseError("define_key: %s", err)
	}
	return 0
}

// define_key_alias(typed, generated)
func (r *Runtime) defineKeyAlias(L *lua.LState) int {
	if err := r.host.DefineKeyAlias(L.CheckString(1), L.CheckString(2)); err != nil {
		L.RaiseError("define_key_alias: %s", err)
	}
	return 0
}

// define_sticky_modifier(typed, mods)
func (r *Runtime) defineStickyModifier(L *lua.LState) int {
	if err := r.host.DefineStickyModifier(L.CheckString(1), L.CheckString(2)); err != nil {
		L.RaiseError("define_sticky_modifier: %s", err)
	}
	return 0
}

// interactive(name, doc, fn)
func (r *Runtime) interactive(L *lua.LState) int {
	name := L.CheckString(1)
	doc := L.OptString(2, "")
	fn := L.CheckFunction(3)
	if err := r.host.Interactive(name, doc, r.command(fn)); err != nil {
		L.RaiseError("interactive: %s", err)
	}
	return 0
}

// message(msg)
func (r *Runtime) message(L *lua.LState) int {
	msg := L.CheckString(1)
	if ic := r.state.Current(); ic != nil {
		ic.Message(msg)
	} else {
		r.host.Message(msg)
	}
	return 0
}

// send_key(combo)
func (r *Runtime) sendKey(L *lua.LState) int {
	combo := L.CheckString(1)
	ic := r.state.Current()
	if ic == nil {
		L.RaiseError("send_key: no active command")
		return 0
	}
	if err := ic.SendKey(combo); err != nil {
		L.RaiseError("send_key: %s", err)
	}
	return 0
}
