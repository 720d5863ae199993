package config

import (
	"sync"
	"sync/atomic"

	"github.com/dshills/keyseq/internal/input"
)

// Observer is called with the old and new options after a change.
type Observer func(old, cur Options)

// Store holds the current options. Reads are lock-free; observers run on
// the goroutine that calls Set.
type Store struct {
	cur atomic.Pointer[Options]

	mu        sync.Mutex
	observers []Observer
}

// NewStore creates a store holding opts.
func NewStore(opts Options) *Store {
	s := &Store{}
	s.cur.Store(&opts)
	return s
}

// Get returns the current options.
func (s *Store) Get() Options {
	return *s.cur.Load()
}

// InputOptions returns the current engine settings. It suits
// input.Config.Options.
func (s *Store) InputOptions() input.Options {
	return s.Get().InputOptions()
}

// Set validates and installs opts, then notifies observers.
func (s *Store) Set(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	old := s.cur.Swap(&opts)

	s.mu.Lock()
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()
	for _, fn := range observers {
		fn(*old, opts)
	}
	return nil
}

// Update applies fn to a copy of the current options and stores the result.
func (s *Store) Update(fn func(*Options)) error {
	opts := s.Get()
	fn(&opts)
	return s.Set(opts)
}

// Observe registers fn for future changes.
func (s *Store) Observe(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}
