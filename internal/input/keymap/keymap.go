package keymap

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dshills/keyseq/internal/input/key"
)

// Predicate matches a raw event.
type Predicate func(ev key.Event) bool

type predicateBinding struct {
	match   Predicate
	binding Binding
}

// Keymap holds the bindings for one focus target or prefix.
// Keymaps are safe for concurrent use: definitions may come from Lua or
// other goroutines while a window loop performs lookups.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Parent is consulted when this keymap has no entry for a combo.
	Parent *Keymap

	mu          sync.RWMutex
	bindings    map[string]Binding
	predicates  []predicateBinding
	passThrough []Predicate
}

// New creates an empty keymap.
func New(name string) *Keymap {
	return &Keymap{
		Name:     name,
		bindings: make(map[string]Binding),
	}
}

// WithParent sets the parent keymap and returns k.
func (k *Keymap) WithParent(parent *Keymap) *Keymap {
	k.Parent = parent
	return k
}

// String returns the keymap name.
func (k *Keymap) String() string {
	if k == nil {
		return "<nil>"
	}
	return k.Name
}

// Define binds a key sequence such as "C-x C-f" to a command. Intermediate
// combos are bound to sub-keymaps, created on demand.
func (k *Keymap) Define(seq string, command string, opts ...Option) error {
	if command == "" {
		return fmt.Errorf("define %q: %w", seq, ErrEmptyCommand)
	}
	return k.DefineBinding(seq, CommandBinding(command, opts...))
}

// DefineFallthrough binds a key sequence to a fallthrough binding.
func (k *Keymap) DefineFallthrough(seq string) error {
	return k.DefineBinding(seq, FallthroughBinding())
}

// DefineKeymap binds a key sequence to an existing sub-keymap.
func (k *Keymap) DefineKeymap(seq string, sub *Keymap) error {
	if sub == nil {
		return fmt.Errorf("define %q: %w", seq, ErrNilKeymap)
	}
	return k.DefineBinding(seq, KeymapsBinding(sub))
}

// DefineBinding binds a key sequence to b.
func (k *Keymap) DefineBinding(seq string, b Binding) error {
	combos, err := canonicalSequence(seq)
	if err != nil {
		return err
	}

	target := k
	for i, combo := range combos[:len(combos)-1] {
		sub, err := target.prefixKeymap(combo, strings.Join(combos[:i+1], " "))
		if err != nil {
			return fmt.Errorf("define %q: %w", seq, err)
		}
		target = sub
	}

	target.mu.Lock()
	defer target.mu.Unlock()
	target.bindings[combos[len(combos)-1]] = b
	return nil
}

// BindCombo binds a single combo verbatim, without parsing. Used for combos
// the parser does not know, such as platform app-command ids.
func (k *Keymap) BindCombo(combo string, b Binding) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.bindings[combo] = b
}

// prefixKeymap returns the sub-keymap bound to combo, creating it if the
// combo is unbound.
func (k *Keymap) prefixKeymap(combo, path string) (*Keymap, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	existing, ok := k.bindings[combo]
	switch {
	case !ok:
		sub := New(k.Name + " " + path)
		k.bindings[combo] = KeymapsBinding(sub)
		return sub, nil
	case existing.Kind == KindKeymaps && len(existing.Keymaps) > 0:
		return existing.Keymaps[len(existing.Keymaps)-1], nil
	default:
		return nil, fmt.Errorf("%s is bound to %s: %w", path, existing, ErrPrefixConflict)
	}
}

// Undefine removes the binding for a key sequence. Prefix keymaps left
// empty are kept.
func (k *Keymap) Undefine(seq string) error {
	combos, err := canonicalSequence(seq)
	if err != nil {
		return err
	}

	target := k
	for _, combo := range combos[:len(combos)-1] {
		b, ok := target.Get(combo)
		if !ok || b.Kind != KindKeymaps || len(b.Keymaps) == 0 {
			return nil
		}
		target = b.Keymaps[len(b.Keymaps)-1]
	}

	target.mu.Lock()
	defer target.mu.Unlock()
	delete(target.bindings, combos[len(combos)-1])
	return nil
}

// DefinePredicate binds every event matching pred to b. Exact bindings
// take precedence over predicates.
func (k *Keymap) DefinePredicate(pred Predicate, b Binding) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.predicates = append(k.predicates, predicateBinding{match: pred, binding: b})
}

// AddFallthrough registers a predicate consulted by LookupFallthrough.
func (k *Keymap) AddFallthrough(pred Predicate) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.passThrough = append(k.passThrough, pred)
}

// Get returns the exact binding for combo in this keymap only.
func (k *Keymap) Get(combo string) (Binding, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	b, ok := k.bindings[combo]
	return b, ok
}

// Combos returns the bound combos in sorted order.
func (k *Keymap) Combos() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	out := make([]string, 0, len(k.bindings))
	for c := range k.bindings {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of exact bindings.
func (k *Keymap) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.bindings)
}

// match resolves combo in this keymap only, exact bindings first.
func (k *Keymap) match(combo string, ev key.Event) (Binding, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if b, ok := k.bindings[combo]; ok {
		return b, true
	}
	for _, p := range k.predicates {
		if p.match(ev) {
			return p.binding, true
		}
	}
	return Undefined, false
}

func (k *Keymap) matchFallthrough(ev key.Event) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	for _, pred := range k.passThrough {
		if pred(ev) {
			return true
		}
	}
	return false
}

func canonicalSequence(seq string) ([]string, error) {
	events, err := key.ParseSequence(seq)
	if err != nil {
		return nil, err
	}
	combos := make([]string, len(events))
	for i, ev := range events {
		combos[i] = key.FormatCombo(ev)
	}
	return combos, nil
}

// MatchUnmodifiedRune matches printable characters typed without ctrl,
// meta, alt or super.
func MatchUnmodifiedRune(ev key.Event) bool {
	mods := ev.AllModifiers().Without(key.ModShift)
	return ev.IsPrintable() && mods.IsEmpty()
}
