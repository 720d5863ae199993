// Package lua runs user configuration written in Lua.
//
// A State wraps a sandboxed gopher-lua state: io, os, debug and
// coroutine are not opened, file loading is removed from Lua and require
// only reaches the safe libraries and the keyseq module. Executions are
// serialized and bounded by a timeout.
//
// A Runtime installs the keyseq module on a State and forwards its calls
// to a Host:
//
//	local k = require("keyseq")
//	k.define_key("global", "C-c h", "hello")
//	k.interactive("hello", "Say hello", function(ctx)
//	    k.message("hello " .. ctx.sequence)
//	end)
//	k.define_key_alias("C-j", "C-n")
//	k.define_sticky_modifier("s-c", "C")
//
// Runtime implements the Eval and Source operations behind the
// eval-expression, source and reinit commands.
package lua
