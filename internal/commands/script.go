package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/dshills/keyseq/internal/dispatcher"
	"github.com/dshills/keyseq/internal/input"
)

func scriptCommands(ev Evaluator, rcFile func() string) []dispatcher.Command {
	return []dispatcher.Command{
		{
			Name: "eval-expression",
			Doc:  "Read a Lua expression and show its value.",
			Fn: func(ctx context.Context, ic *input.Context) error {
				code, ok, err := prompt(ctx, ic, "Eval: ", nil)
				if !ok || err != nil {
					return err
				}
				result, err := ev.Eval(ctx, ic, code)
				if err != nil {
					return err
				}
				if result != "" {
					ic.Message(result)
				}
				return nil
			},
		},
		{
			Name: "source",
			Doc:  "Read a Lua file name and load it.",
			Fn: func(ctx context.Context, ic *input.Context) error {
				path, ok, err := prompt(ctx, ic, "Source file: ", nil)
				if !ok || err != nil {
					return err
				}
				if err := ev.Source(ctx, ic, path); err != nil {
					return err
				}
				ic.Message("Loaded " + path)
				return nil
			},
		},
		{
			Name: "reinit",
			Doc:  "Reload the rc file.",
			Fn: func(ctx context.Context, ic *input.Context) error {
				path := ""
				if rcFile != nil {
					path = rcFile()
				}
				if path == "" {
					return input.NewInteractiveError("No rc file configured")
				}
				if err := ev.Source(ctx, ic, path); err != nil {
					return err
				}
				ic.Message("Loaded " + path)
				return nil
			},
		},
	}
}

// prompt reads a non-empty line. ok is false when the user aborted or
// entered nothing.
func prompt(ctx context.Context, ic *input.Context, p string, fn CompleteFunc) (string, bool, error) {
	s, err := readCompleting(ctx, ic, p, fn)
	if errors.Is(err, input.ErrReadAborted) {
		ic.Message("Quit")
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	s = strings.TrimSpace(s)
	return s, s != "", nil
}
