package complete

import "sync"

// DefaultHistorySize is used when NewHistory is given no capacity.
const DefaultHistorySize = 100

// History keeps names in most-recently-used order.
type History struct {
	mu    sync.Mutex
	items []string
	max   int
}

// NewHistory creates a history holding at most size names.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{max: size}
}

// Add moves name to the front.
func (h *History) Add(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, item := range h.items {
		if item == name {
			h.items = append(h.items[:i], h.items[i+1:]...)
			break
		}
	}
	h.items = append([]string{name}, h.items...)
	if len(h.items) > h.max {
		h.items = h.items[:h.max]
	}
}

// Recent returns up to limit names, most recent first. A limit of zero
// or less returns all of them.
func (h *History) Recent(limit int) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if limit <= 0 || limit > len(h.items) {
		limit = len(h.items)
	}
	out := make([]string, limit)
	copy(out, h.items)
	return out
}

// Position returns the index of name, 0 being the most recent, or -1.
func (h *History) Position(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, item := range h.items {
		if item == name {
			return i
		}
	}
	return -1
}

// Len returns the number of names held.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}
