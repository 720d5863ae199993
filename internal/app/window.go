package app

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/keyseq/internal/commands"
	"github.com/dshills/keyseq/internal/input"
	"github.com/dshills/keyseq/internal/input/key"
	"github.com/dshills/keyseq/internal/input/keymap"
)

// Window is one top-level window: a content buffer, a minibuffer and the
// input engine that routes keys between them. Everything except Post,
// SendEvent, Read and Close runs on the window's event loop.
type Window struct {
	ID uuid.UUID

	loop      *EventLoop
	engine    *input.Engine
	mb        *Minibuffer
	buffer    *Buffer
	stack     keymap.Stack
	readStack keymap.Stack
	logger    *zap.SugaredLogger
	closed    chan struct{}
}

// WindowView is a snapshot of a window for rendering.
type WindowView struct {
	Buffer     BufferView
	Minibuffer MinibufferView
}

// Engine returns the window's input engine.
func (w *Window) Engine() *input.Engine {
	return w.engine
}

// Buffer returns the window's content buffer.
func (w *Window) Buffer() *Buffer {
	return w.buffer
}

// Logger returns the window logger.
func (w *Window) Logger() *zap.SugaredLogger {
	return w.logger
}

// Post runs fn on the window loop.
func (w *Window) Post(fn func()) {
	w.loop.Post(fn)
}

// Sync runs fn on the window loop and waits for it. It returns false if
// the window closed first.
func (w *Window) Sync(fn func()) bool {
	return w.loop.Sync(fn)
}

// View returns a snapshot for rendering.
func (w *Window) View() WindowView {
	return WindowView{Buffer: w.buffer.View(), Minibuffer: w.mb.View()}
}

// Minibuffer implements input.Window.
func (w *Window) Minibuffer() input.Minibuffer {
	return w.mb
}

// MinibufferState returns the concrete minibuffer.
func (w *Window) MinibufferState() *Minibuffer {
	return w.mb
}

// Keymaps implements input.Window.
func (w *Window) Keymaps() keymap.Stack {
	if w.mb.Reading() {
		return w.readStack
	}
	return w.stack
}

// HandleError implements input.Window. Interactive errors are shown as
// they are; anything else is logged and shown with an "Error: " prefix.
func (w *Window) HandleError(err error) {
	var ie *input.InteractiveError
	if errors.As(err, &ie) {
		w.mb.Message(ie.Message)
		return
	}
	w.logger.Errorw("command error", "error", err)
	w.mb.Message("Error: " + err.Error())
}

// Content implements commands.ContentWindow.
func (w *Window) Content() commands.Content {
	return w.buffer
}

// ExitMinibuffer implements commands.MinibufferController.
func (w *Window) ExitMinibuffer() {
	w.mb.Exit()
}

// AbortMinibuffer implements commands.MinibufferController.
func (w *Window) AbortMinibuffer() {
	w.mb.Abort()
}

// CompleteMinibuffer implements commands.MinibufferCompleter.
func (w *Window) CompleteMinibuffer() bool {
	return w.mb.Complete()
}

// Read implements input.Reader. While reading, keys are resolved in the
// minibuffer keymap and unbound characters are typed into the prompt.
func (w *Window) Read(ctx context.Context, prompt string) (string, error) {
	return w.ReadCompleting(ctx, prompt, nil)
}

// ReadCompleting implements commands.CompletingReader. It reads like Read
// and completes the input with fn on minibuffer-complete.
func (w *Window) ReadCompleting(ctx context.Context, prompt string, fn commands.CompleteFunc) (string, error) {
	result := make(chan readResult, 1)
	var err error
	if !w.loop.Sync(func() { err = w.mb.begin(prompt, fn, result) }) {
		return "", ErrClosed
	}
	if err != nil {
		return "", err
	}

	select {
	case r := <-result:
		return r.text, r.err
	case <-ctx.Done():
		w.loop.Post(func() { w.mb.finish(result, ctx.Err()) })
		return "", ctx.Err()
	case <-w.closed:
		return "", input.ErrReadAborted
	}
}

// SendEvent delivers ev to the window as if typed, including the default
// action. Safe from any goroutine.
func (w *Window) SendEvent(ev key.Event) {
	w.loop.Post(func() { w.handleEvent(ev) })
}

func (w *Window) handleEvent(ev key.Event) {
	pe := input.NewRawEvent(ev)
	w.engine.Dispatch(pe)
	if !pe.DefaultPrevented() {
		w.defaultAction(ev)
	}
}

// defaultAction is what the focused widget does with a key the engine
// let through.
func (w *Window) defaultAction(ev key.Event) {
	if ev.Type != key.TypeKeyPress || !ev.Modifiers.Without(key.ModShift).IsEmpty() {
		return
	}
	if w.mb.Reading() {
		switch {
		case ev.Key == key.KeyBackspace:
			w.mb.DeleteBackward()
		case ev.IsPrintable():
			w.mb.Insert(ev.Rune)
		}
		return
	}
	switch {
	case ev.Key == key.KeyEnter:
		w.buffer.Insert("\n")
	case ev.Key == key.KeyTab:
		w.buffer.Insert("\t")
	case ev.Key == key.KeyBackspace:
		_ = w.buffer.DoCommand("cmd_deleteCharBackward")
	case ev.IsPrintable():
		w.buffer.Insert(string(ev.Rune))
	}
}

// close tears the window down and waits for its loop to exit.
func (w *Window) close() {
	w.loop.Sync(func() {
		w.engine.Close()
		w.mb.Abort()
	})
	close(w.closed)
	w.loop.Stop()
	<-w.loop.Done()
}
