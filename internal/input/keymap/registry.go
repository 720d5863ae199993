package keymap

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps keymap names to keymaps so scripts and commands can refer
// to them by name.
type Registry struct {
	mu      sync.RWMutex
	keymaps map[string]*Keymap
}

// NewRegistry creates an empty keymap registry.
func NewRegistry() *Registry {
	return &Registry{
		keymaps: make(map[string]*Keymap),
	}
}

// Register adds a keymap. Registering a different keymap under an existing
// name fails with ErrKeymapExists.
func (r *Registry) Register(km *Keymap) error {
	if km == nil {
		return ErrNilKeymap
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.keymaps[km.Name]; ok && existing != km {
		return fmt.Errorf("%q: %w", km.Name, ErrKeymapExists)
	}
	r.keymaps[km.Name] = km
	return nil
}

// Unregister removes a keymap by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.keymaps, name)
}

// Get returns the keymap registered under name.
func (r *Registry) Get(name string) (*Keymap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	km, ok := r.keymaps[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrKeymapNotFound)
	}
	return km, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.keymaps))
	for name := range r.keymaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
