package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/dshills/keyseq/internal/complete"
	"github.com/dshills/keyseq/internal/dispatcher"
	"github.com/dshills/keyseq/internal/input"
	"github.com/dshills/keyseq/internal/input/keymap"
)

// universalArgumentBase is the factor each C-u multiplies the prefix by.
const universalArgumentBase = 4

func builtins(reg *dispatcher.Registry, completer *complete.Completer) []dispatcher.Command {
	return []dispatcher.Command{
		{
			Name: "sequence-abort",
			Doc:  "Abort the key sequence being typed.",
			Fn: func(_ context.Context, ic *input.Context) error {
				ic.Message("abort sequence")
				return nil
			},
		},
		{
			Name: "keyboard-quit",
			Doc:  "Quit the current operation.",
			Fn: func(_ context.Context, ic *input.Context) error {
				ic.Message("Quit")
				return nil
			},
		},
		{
			Name:   "universal-argument",
			Doc:    "Begin a numeric prefix argument for the following command.",
			Fn:     universalArgument,
			Prefix: true,
		},
		{
			Name: "execute-extended-command",
			Doc:  "Read a command name and run it.",
			Fn: func(ctx context.Context, ic *input.Context) error {
				return executeExtendedCommand(ctx, ic, reg, completer)
			},
		},
		{
			Name: "describe-sequence-help",
			Doc:  "List the bindings that can complete the key sequence.",
			Fn:   describeSequenceHelp,
		},
		{
			Name: "minibuffer-exit",
			Doc:  "Accept the minibuffer input.",
			Fn: func(_ context.Context, ic *input.Context) error {
				return withMinibuffer(ic, MinibufferController.ExitMinibuffer)
			},
		},
		{
			Name: "minibuffer-abort",
			Doc:  "Abandon the minibuffer input.",
			Fn: func(_ context.Context, ic *input.Context) error {
				return withMinibuffer(ic, MinibufferController.AbortMinibuffer)
			},
		},
		{
			Name: "minibuffer-complete",
			Doc:  "Complete the minibuffer input.",
			Fn:   minibufferComplete,
		},
	}
}

func universalArgument(_ context.Context, ic *input.Context) error {
	if ic.PrefixArgument <= 0 {
		ic.PrefixArgument = universalArgumentBase
	} else {
		ic.PrefixArgument *= universalArgumentBase
	}
	return nil
}

func executeExtendedCommand(ctx context.Context, ic *input.Context, reg *dispatcher.Registry, completer *complete.Completer) error {
	p := "M-x "
	if ic.PrefixArgument > 0 {
		p = fmt.Sprintf("%d M-x ", ic.PrefixArgument)
	}
	name, ok, err := prompt(ctx, ic, p, func(text string) (string, bool) {
		return completer.Complete(text, reg.Names())
	})
	if !ok || err != nil {
		return err
	}
	if !reg.Has(name) {
		return input.NewInteractiveError(fmt.Sprintf("No such command: %s", name))
	}
	completer.Record(name)
	return reg.Call(ctx, ic, name)
}

// describeSequenceHelp shows the bindings reachable from the prefix typed
// before the help key.
func describeSequenceHelp(_ context.Context, ic *input.Context) error {
	prefix := ""
	if n := ic.KeySequence.Len(); n > 1 {
		prefix = ic.KeySequence[:n-1].String()
	}

	seen := make(map[string]bool)
	var entries []string
	for i := len(ic.Keymaps) - 1; i >= 0; i-- {
		for km := ic.Keymaps[i]; km != nil; km = km.Parent {
			for _, combo := range km.Combos() {
				if seen[combo] {
					continue
				}
				seen[combo] = true
				b, _ := km.Get(combo)
				entries = append(entries, combo+" "+describeBinding(b))
			}
		}
	}

	switch {
	case len(entries) == 0 && prefix == "":
		ic.Message("No bindings")
	case len(entries) == 0:
		ic.Message(prefix + " has no bindings")
	case prefix == "":
		ic.Message(strings.Join(entries, ", "))
	default:
		ic.Message(prefix + ": " + strings.Join(entries, ", "))
	}
	return nil
}

func describeBinding(b keymap.Binding) string {
	switch b.Kind {
	case keymap.KindKeymaps:
		return "prefix"
	case keymap.KindCommand:
		return b.Command
	default:
		return b.Kind.String()
	}
}

func minibufferComplete(_ context.Context, ic *input.Context) error {
	mc, ok := ic.Window().(MinibufferCompleter)
	if !ok {
		return input.NewInteractiveError("Minibuffer is not active")
	}
	ic.Post(func() {
		if !mc.CompleteMinibuffer() {
			ic.Message("No match")
		}
	})
	return nil
}

func withMinibuffer(ic *input.Context, fn func(MinibufferController)) error {
	mc, ok := ic.Window().(MinibufferController)
	if !ok {
		return input.NewInteractiveError("Minibuffer is not active")
	}
	ic.Post(func() { fn(mc) })
	return nil
}
