package app

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestEventLoopOrder(t *testing.T) {
	var idle atomic.Int32
	l := NewEventLoop(func() { idle.Add(1) })
	go l.Run()
	defer func() {
		l.Stop()
		<-l.Done()
	}()

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}
	l.Post(func() {
		// Posted from the loop itself; runs after everything queued.
		l.Post(func() { got = append(got, 99) })
	})
	l.Post(func() { got = append(got, 5) })

	var snapshot []int
	// Sync's closure is queued behind the nested post.
	if !l.Sync(func() {}) || !l.Sync(func() { snapshot = append(snapshot, got...) }) {
		t.Fatal("loop stopped")
	}
	want := []int{0, 1, 2, 3, 4, 5, 99}
	if len(snapshot) != len(want) {
		t.Fatalf("order = %v, want %v", snapshot, want)
	}
	for i := range want {
		if snapshot[i] != want[i] {
			t.Fatalf("order = %v, want %v", snapshot, want)
		}
	}
	if idle.Load() == 0 {
		t.Error("idle callback never ran")
	}
}

func TestEventLoopStop(t *testing.T) {
	l := NewEventLoop(nil)
	go l.Run()
	l.Stop()
	l.Stop()

	select {
	case <-l.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}

	ran := false
	l.Post(func() { ran = true })
	if l.Sync(func() { ran = true }) {
		t.Error("Sync ran on a stopped loop")
	}
	if ran {
		t.Error("closure ran after Stop")
	}
}
