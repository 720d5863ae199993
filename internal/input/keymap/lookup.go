package keymap

import (
	"strings"

	"github.com/dshills/keyseq/internal/input/key"
)

// Stack is an ordered list of keymaps. The last element has the highest
// priority.
type Stack []*Keymap

// Top returns the highest priority keymap, or nil for an empty stack.
func (s Stack) Top() *Keymap {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

// Clone returns an independent copy of the stack.
func (s Stack) Clone() Stack {
	if s == nil {
		return nil
	}
	out := make(Stack, len(s))
	copy(out, s)
	return out
}

// String lists keymap names from bottom to top.
func (s Stack) String() string {
	names := make([]string, len(s))
	for i, km := range s {
		names[i] = km.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}

// Lookup resolves combo against stack. Keymaps are searched from the top of
// the stack, each followed by its parent chain. A command or fallthrough
// binding is returned as soon as it is found, unless a prefix has already
// been seen; in that case only further prefixes are collected and the
// merged continuation stack is returned.
func Lookup(stack Stack, combo string, ev key.Event) Binding {
	var prefixes Stack
	var first Binding

	for i := len(stack) - 1; i >= 0; i-- {
		for km := stack[i]; km != nil; km = km.Parent {
			b, ok := km.match(combo, ev)
			if !ok {
				continue
			}
			if b.Kind == KindKeymaps {
				if prefixes == nil {
					first = b
				}
				// Lower priority keymaps go underneath.
				prefixes = append(b.Keymaps.Clone(), prefixes...)
				continue
			}
			if prefixes == nil && b.Kind != KindUndefined {
				return b
			}
		}
	}

	if prefixes == nil {
		return Undefined
	}
	first.Keymaps = prefixes
	return first
}

// LookupFallthrough reports whether ev matches a fallthrough predicate of
// km or one of its parents.
func LookupFallthrough(km *Keymap, ev key.Event) bool {
	for ; km != nil; km = km.Parent {
		if km.matchFallthrough(ev) {
			return true
		}
	}
	return false
}
