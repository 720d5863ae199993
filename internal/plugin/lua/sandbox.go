package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// safeModules may be loaded with require.
var safeModules = map[string]bool{
	"string":   true,
	"table":    true,
	"math":     true,
	ModuleName: true,
}

// openSafeLibraries opens only safe Lua standard libraries. io, os,
// debug and coroutine are not opened.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenPackage(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// installSandbox removes file loading from Lua and limits require to
// safeModules. Go callers can still load files through State.DoFile.
func installSandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}

	originalRequire := L.GetGlobal("require")
	L.SetGlobal("require", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !safeModules[name] {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(originalRequire)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))
}
