package commands

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/dshills/keyseq/internal/dispatcher"
	"github.com/dshills/keyseq/internal/input"
)

// ErrClipboardUnsupported is returned when no system clipboard is available.
var ErrClipboardUnsupported = errors.New("commands: clipboard unsupported")

// Content commands run once per invocation.
var singleContentCommands = []string{
	"cmd_copy",
	"cmd_cut",
	"cmd_paste",
	"cmd_selectAll",
	"cmd_undo",
	"cmd_redo",
	"cmd_beginLine",
	"cmd_endLine",
	"cmd_moveTop",
	"cmd_moveBottom",
}

// Content commands repeated by the prefix count.
var repeatedContentCommands = []string{
	"cmd_charNext",
	"cmd_charPrevious",
	"cmd_wordNext",
	"cmd_wordPrevious",
	"cmd_lineNext",
	"cmd_linePrevious",
	"cmd_scrollPageDown",
	"cmd_scrollPageUp",
	"cmd_deleteCharForward",
	"cmd_deleteCharBackward",
}

// ContentCommandNames returns every surface command name the built-ins
// wrap.
func ContentCommandNames() []string {
	out := make([]string, 0, len(singleContentCommands)+len(repeatedContentCommands))
	out = append(out, singleContentCommands...)
	return append(out, repeatedContentCommands...)
}

func contentCommands() []dispatcher.Command {
	var cmds []dispatcher.Command
	for _, name := range singleContentCommands {
		cmds = append(cmds, dispatcher.Command{
			Name: name,
			Doc:  "Run the surface command " + name + ".",
			Fn:   doCommand(name, false),
		})
	}
	for _, name := range repeatedContentCommands {
		cmds = append(cmds, dispatcher.Command{
			Name: name,
			Doc:  "Run the surface command " + name + ", repeated by the prefix argument.",
			Fn:   doCommand(name, true),
		})
	}
	return cmds
}

// doCommand wraps a surface command. Failures are shown in the minibuffer
// rather than returned, so a missing surface feature is not an error.
func doCommand(name string, repeated bool) input.CommandFunc {
	return func(ctx context.Context, ic *input.Context) error {
		content, ok := contentOf(ic)
		if !ok {
			ic.Message(fmt.Sprintf("do-command (%s): no content", name))
			return nil
		}
		n := 1
		if repeated {
			n = ic.Count()
		}
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := content.DoCommand(name); err != nil {
				ic.Message(fmt.Sprintf("do-command (%s): %v", name, err))
				return nil
			}
		}
		return nil
	}
}

func contentOf(ic *input.Context) (Content, bool) {
	cw, ok := ic.Window().(ContentWindow)
	if !ok {
		return nil, false
	}
	c := cw.Content()
	return c, c != nil
}

// Clipboard is the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

// SystemClipboard uses the platform clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

func (SystemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", ErrClipboardUnsupported
	}
	return clipboard.ReadAll()
}

func clipboardCommands(cb Clipboard) []dispatcher.Command {
	return []dispatcher.Command{
		{
			Name: "yank-to-clipboard",
			Doc:  "Copy the selected text to the system clipboard.",
			Fn: func(_ context.Context, ic *input.Context) error {
				text := selectionOf(ic)
				if text == "" {
					return input.NewInteractiveError("Nothing selected")
				}
				if err := cb.WriteAll(text); err != nil {
					return fmt.Errorf("yank to clipboard: %w", err)
				}
				ic.Message("Yanked: " + text)
				return nil
			},
		},
		{
			Name: "copy-email-address",
			Doc:  "Copy the email address of the bound object or selection.",
			Fn: func(_ context.Context, ic *input.Context) error {
				src, _ := ic.BindingBrowserObject.(string)
				if src == "" {
					src = selectionOf(ic)
				}
				addr, err := emailAddress(src)
				if err != nil {
					return input.NewInteractiveError("No email address: " + src)
				}
				if err := cb.WriteAll(addr); err != nil {
					return fmt.Errorf("copy email address: %w", err)
				}
				ic.Message("Copied: " + addr)
				return nil
			},
		},
	}
}

func selectionOf(ic *input.Context) string {
	content, ok := contentOf(ic)
	if !ok {
		return ""
	}
	return content.Selection()
}

// emailAddress extracts the bare address from a mailto: URL or an address
// such as "Ann <ann@example.com>".
func emailAddress(s string) (string, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "mailto:")
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	a, err := mail.ParseAddress(s)
	if err != nil {
		return "", err
	}
	return a.Address, nil
}
