// Package commands defines the built-in interactive commands.
//
// Commands reach optional window features through type assertions on
// ic.Window(): input.Reader for minibuffer prompts, CompletingReader and
// MinibufferCompleter for completion, ContentWindow for the content
// surface and MinibufferController for ending a read.
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/keyseq/internal/complete"
	"github.com/dshills/keyseq/internal/dispatcher"
	"github.com/dshills/keyseq/internal/input"
)

// ErrNoReader is returned by commands that prompt when the window cannot
// read from its minibuffer.
var ErrNoReader = errors.New("commands: window has no minibuffer reader")

// Content is the editable surface a window displays.
// Implementations must be safe for concurrent use.
type Content interface {
	// DoCommand runs a named surface command such as "cmd_copy".
	DoCommand(name string) error

	// Selection returns the selected text, or "".
	Selection() string
}

// ContentWindow is implemented by windows with a content surface.
type ContentWindow interface {
	Content() Content
}

// MinibufferController is implemented by windows whose minibuffer read
// can be ended by a key. Methods run on the window loop.
type MinibufferController interface {
	ExitMinibuffer()
	AbortMinibuffer()
}

// CompleteFunc maps typed minibuffer text to its completion. ok is false
// when nothing matches.
type CompleteFunc func(text string) (completion string, ok bool)

// CompletingReader is implemented by windows whose minibuffer reads can
// complete their input.
type CompletingReader interface {
	ReadCompleting(ctx context.Context, prompt string, fn CompleteFunc) (string, error)
}

// MinibufferCompleter is implemented by windows that can complete the
// input being read. CompleteMinibuffer reports whether a completion was
// found.
type MinibufferCompleter interface {
	CompleteMinibuffer() bool
}

// Evaluator runs script code for eval-expression, source and reinit.
type Evaluator interface {
	Eval(ctx context.Context, ic *input.Context, code string) (string, error)
	Source(ctx context.Context, ic *input.Context, path string) error
}

// Deps are the collaborators of the built-in commands. Commands whose
// collaborator is nil are not registered.
type Deps struct {
	Registry  *dispatcher.Registry
	Clipboard Clipboard
	Script    Evaluator

	// History records the names run by execute-extended-command. Nil
	// keeps a private history.
	History *complete.History

	// RCFile returns the rc file loaded by reinit.
	RCFile func() string

	// Quit shuts the application down.
	Quit func()
}

// Register adds every built-in command to d.Registry.
func Register(d Deps) error {
	if d.Registry == nil {
		return fmt.Errorf("commands: %w", dispatcher.ErrInvalidCommand)
	}
	var cmds []dispatcher.Command
	cmds = append(cmds, builtins(d.Registry, complete.New(d.History))...)
	cmds = append(cmds, contentCommands()...)
	if d.Clipboard != nil {
		cmds = append(cmds, clipboardCommands(d.Clipboard)...)
	}
	if d.Script != nil {
		cmds = append(cmds, scriptCommands(d.Script, d.RCFile)...)
	}
	if d.Quit != nil {
		quit := d.Quit
		cmds = append(cmds, dispatcher.Command{
			Name: "quit",
			Doc:  "Quit the application.",
			Fn: func(context.Context, *input.Context) error {
				quit()
				return nil
			},
		})
	}
	for _, cmd := range cmds {
		if err := d.Registry.Register(cmd); err != nil {
			return err
		}
	}
	return nil
}

// read prompts on the window minibuffer.
func read(ctx context.Context, ic *input.Context, prompt string) (string, error) {
	r, ok := ic.Window().(input.Reader)
	if !ok {
		return "", ErrNoReader
	}
	return r.Read(ctx, prompt)
}

// readCompleting prompts with completion when the window supports it.
func readCompleting(ctx context.Context, ic *input.Context, prompt string, fn CompleteFunc) (string, error) {
	if r, ok := ic.Window().(CompletingReader); ok && fn != nil {
		return r.ReadCompleting(ctx, prompt, fn)
	}
	return read(ctx, ic, prompt)
}
