package input

import (
	"sort"
	"sync"
)

// HookPriority defines the execution order for hooks.
// Lower values execute first.
type HookPriority int

const (
	// HookPriorityHighest runs before all other hooks.
	HookPriorityHighest HookPriority = -1000
	// HookPriorityHigh runs early in the hook chain.
	HookPriorityHigh HookPriority = -100
	// HookPriorityNormal is the default priority.
	HookPriorityNormal HookPriority = 0
	// HookPriorityLow runs late in the hook chain.
	HookPriorityLow HookPriority = 100
	// HookPriorityLowest runs after all other hooks.
	HookPriorityLowest HookPriority = 1000
)

// KeypressHook sees every keypress after normalization and before keymap
// lookup. Returning true means the hook fully handled the event and is
// responsible for its propagation.
type KeypressHook interface {
	HandleKeypress(ic *Context, pe PlatformEvent) bool
}

// KeypressFunc adapts a function to KeypressHook.
type KeypressFunc func(ic *Context, pe PlatformEvent) bool

// HandleKeypress calls f.
func (f KeypressFunc) HandleKeypress(ic *Context, pe PlatformEvent) bool {
	return f(ic, pe)
}

// HookID uniquely identifies a registered hook.
type HookID uint64

// HookRegistration holds metadata about a registered hook.
type HookRegistration struct {
	ID       HookID
	Name     string
	Priority HookPriority
	Hook     KeypressHook
}

// HookManager manages keypress hooks with support for priorities and named
// registration. Hooks run in priority order, then registration order,
// until one reports the event handled.
type HookManager struct {
	mu      sync.RWMutex
	hooks   []HookRegistration
	nextID  HookID
	sorted  bool
	enabled bool
}

// NewHookManager creates a new hook manager.
func NewHookManager() *HookManager {
	return &HookManager{
		sorted:  true,
		enabled: true,
	}
}

// Register adds a hook with default priority.
func (m *HookManager) Register(hook KeypressHook) HookID {
	return m.RegisterWithOptions(hook, "", HookPriorityNormal)
}

// RegisterNamed adds a hook with a name for later reference.
func (m *HookManager) RegisterNamed(hook KeypressHook, name string) HookID {
	return m.RegisterWithOptions(hook, name, HookPriorityNormal)
}

// RegisterWithOptions adds a hook with all options specified. A named hook
// replaces any hook already registered under that name.
func (m *HookManager) RegisterWithOptions(hook KeypressHook, name string, priority HookPriority) HookID {
	m.mu.Lock()
	defer m.mu.Unlock()

	if name != "" {
		m.removeLocked(func(r HookRegistration) bool { return r.Name == name })
	}

	m.nextID++
	id := m.nextID
	m.hooks = append(m.hooks, HookRegistration{
		ID:       id,
		Name:     name,
		Priority: priority,
		Hook:     hook,
	})
	m.sorted = false
	return id
}

// Unregister removes a hook by ID.
func (m *HookManager) Unregister(id HookID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(func(r HookRegistration) bool { return r.ID == id })
}

// UnregisterByName removes a hook by name.
func (m *HookManager) UnregisterByName(name string) bool {
	if name == "" {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removeLocked(func(r HookRegistration) bool { return r.Name == name })
}

func (m *HookManager) removeLocked(match func(HookRegistration) bool) bool {
	for i := range m.hooks {
		if match(m.hooks[i]) {
			m.hooks = append(m.hooks[:i], m.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// Has reports whether a hook is registered under name.
func (m *HookManager) Has(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.hooks {
		if r.Name == name {
			return true
		}
	}
	return false
}

// SetEnabled enables or disables all hooks.
func (m *HookManager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

// Count returns the number of registered hooks.
func (m *HookManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hooks)
}

// List returns all hook registrations in execution order.
func (m *HookManager) List() []HookRegistration {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureSorted()
	result := make([]HookRegistration, len(m.hooks))
	copy(result, m.hooks)
	return result
}

// ensureSorted sorts hooks by priority if needed.
func (m *HookManager) ensureSorted() {
	if m.sorted {
		return
	}
	sort.SliceStable(m.hooks, func(i, j int) bool {
		return m.hooks[i].Priority < m.hooks[j].Priority
	})
	m.sorted = true
}

// RunKeypress runs the hooks until one handles the event.
// Returns true if any hook handled it.
func (m *HookManager) RunKeypress(ic *Context, pe PlatformEvent) bool {
	m.mu.Lock()
	if !m.enabled || len(m.hooks) == 0 {
		m.mu.Unlock()
		return false
	}
	m.ensureSorted()

	// Copy hooks for iteration outside lock
	hooks := make([]KeypressHook, len(m.hooks))
	for i := range m.hooks {
		hooks[i] = m.hooks[i].Hook
	}
	m.mu.Unlock()

	for _, hook := range hooks {
		if hook.HandleKeypress(ic, pe) {
			return true
		}
	}
	return false
}

// Clear removes all hooks.
func (m *HookManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = nil
	m.sorted = true
}
