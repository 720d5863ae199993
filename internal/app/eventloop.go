package app

import (
	"sync"
)

// EventLoop runs closures one at a time on a single goroutine, in the
// order they were posted. Post never blocks, so closures may post more
// work to their own loop.
type EventLoop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	done    chan struct{}
	stopped bool

	// idle runs after the queue drains.
	idle func()
}

// NewEventLoop creates a loop. idle, if not nil, runs on the loop each
// time the queue drains, e.g. to redraw.
func NewEventLoop(idle func()) *EventLoop {
	return &EventLoop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
		idle: idle,
	}
}

// Post queues fn. Closures posted after Stop are dropped.
func (l *EventLoop) Post(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run processes closures until Stop. It must be called once.
func (l *EventLoop) Run() {
	defer close(l.done)
	busy := false
	for {
		fn, stopped := l.next()
		if stopped {
			return
		}
		if fn == nil {
			if busy && l.idle != nil {
				l.idle()
				busy = false
				continue
			}
			<-l.wake
			continue
		}
		fn()
		busy = true
	}
}

func (l *EventLoop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return nil, true
	}
	if len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, false
}

// Stop makes Run return after the closure in progress. Queued closures
// are discarded.
func (l *EventLoop) Stop() {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.stopped = true
	l.queue = nil
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Done is closed when Run returns.
func (l *EventLoop) Done() <-chan struct{} {
	return l.done
}

// Sync posts fn and waits for it to run. It returns false if the loop
// stopped first. Must not be called from the loop itself.
func (l *EventLoop) Sync(fn func()) bool {
	ran := make(chan struct{})
	l.Post(func() {
		fn()
		close(ran)
	})
	select {
	case <-ran:
		return true
	case <-l.done:
		return false
	}
}
