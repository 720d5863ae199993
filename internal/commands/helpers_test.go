package commands

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dshills/keyseq/internal/dispatcher"
	"github.com/dshills/keyseq/internal/input"
	"github.com/dshills/keyseq/internal/input/inputtest"
	"github.com/dshills/keyseq/internal/input/keymap"
)

var errBoom = errors.New("boom")

type fakeContent struct {
	mu        sync.Mutex
	calls     []string
	selection string
	fail      map[string]error
}

func (c *fakeContent) DoCommand(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.fail[name]; err != nil {
		return err
	}
	c.calls = append(c.calls, name)
	return nil
}

func (c *fakeContent) Selection() string {
	return c.selection
}

type window struct {
	*inputtest.Window
	content     *fakeContent
	exits       int
	aborts      int
	completions int
	completeOK  bool
	complete    CompleteFunc
}

func (w *window) Content() Content         { return w.content }
func (w *window) ExitMinibuffer()          { w.exits++ }
func (w *window) AbortMinibuffer()         { w.aborts++ }
func (w *window) CompleteMinibuffer() bool { w.completions++; return w.completeOK }

func (w *window) ReadCompleting(ctx context.Context, prompt string, fn CompleteFunc) (string, error) {
	w.complete = fn
	return w.Window.Read(ctx, prompt)
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func (c *fakeClipboard) ReadAll() (string, error) {
	return c.text, c.err
}

type fakeEvaluator struct {
	evaluated []string
	sourced   []string
	result    string
	err       error
}

func (e *fakeEvaluator) Eval(_ context.Context, _ *input.Context, code string) (string, error) {
	e.evaluated = append(e.evaluated, code)
	return e.result, e.err
}

func (e *fakeEvaluator) Source(_ context.Context, _ *input.Context, path string) error {
	e.sourced = append(e.sourced, path)
	return e.err
}

type fixture struct {
	*inputtest.Harness
	reg       *dispatcher.Registry
	win       *window
	clipboard *fakeClipboard
	script    *fakeEvaluator
	quit      bool
}

// newFixture registers the built-ins and focuses the default content
// keymap of a window with a content surface.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		reg:       dispatcher.NewRegistry(),
		win:       &window{content: &fakeContent{}},
		clipboard: &fakeClipboard{},
		script:    &fakeEvaluator{},
	}
	err := Register(Deps{
		Registry:  f.reg,
		Clipboard: f.clipboard,
		Script:    f.script,
		RCFile:    func() string { return "rc.lua" },
		Quit:      func() { f.quit = true },
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	content := keymap.DefaultContentKeymap(keymap.DefaultGlobalKeymap())
	f.Harness = inputtest.New(t, f.reg, keymap.Stack{content},
		inputtest.Wrap(func(w *inputtest.Window) input.Window {
			f.win.Window = w
			return f.win
		}))
	return f
}

func (f *fixture) lastMessage() string {
	return f.Window.MB.LastMessage()
}
