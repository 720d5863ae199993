package commands

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/keyseq/internal/dispatcher"
	"github.com/dshills/keyseq/internal/input"
	"github.com/dshills/keyseq/internal/input/inputtest"
	"github.com/dshills/keyseq/internal/input/keymap"
)

func TestRegisterRequiresRegistry(t *testing.T) {
	if err := Register(Deps{}); !errors.Is(err, dispatcher.ErrInvalidCommand) {
		t.Errorf("Register error = %v", err)
	}
}

func TestRegisterSkipsMissingCollaborators(t *testing.T) {
	reg := dispatcher.NewRegistry()
	if err := Register(Deps{Registry: reg}); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"quit", "eval-expression", "yank-to-clipboard"} {
		if reg.Has(name) {
			t.Errorf("%s registered without its collaborator", name)
		}
	}
	for _, name := range append([]string{"universal-argument", "sequence-abort"}, ContentCommandNames()...) {
		if !reg.Has(name) {
			t.Errorf("%s not registered", name)
		}
	}
}

func TestContentCommandRepeat(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		want  string
		count int
	}{
		{"single", []string{"C-n"}, "cmd_lineNext", 1},
		{"one prefix", []string{"C-u", "C-f"}, "cmd_charNext", 4},
		{"two prefixes", []string{"C-u", "C-u", "Down"}, "cmd_lineNext", 16},
		{"not repeated", []string{"C-u", "M-w"}, "cmd_copy", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.Press(t, tt.keys...)

			want := make([]string, tt.count)
			for i := range want {
				want[i] = tt.want
			}
			if diff := cmp.Diff(want, f.win.content.calls); diff != "" {
				t.Errorf("content calls (-want +got):\n%s", diff)
			}
		})
	}
}

func TestContentCommandFailureIsLocal(t *testing.T) {
	f := newFixture(t)
	f.win.content.fail = map[string]error{"cmd_paste": errBoom}
	f.Press(t, "C-y")

	if got, want := f.lastMessage(), "do-command (cmd_paste): boom"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
	if len(f.Window.Errs) != 0 {
		t.Errorf("errors = %v, want none", f.Window.Errs)
	}
}

func TestContentCommandWithoutContent(t *testing.T) {
	reg := dispatcher.NewRegistry()
	if err := Register(Deps{Registry: reg}); err != nil {
		t.Fatal(err)
	}
	h := inputtest.New(t, reg, keymap.Stack{keymap.DefaultContentKeymap(nil)})
	h.Press(t, "M-w")

	if got, want := h.Window.MB.LastMessage(), "do-command (cmd_copy): no content"; got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestSequenceAbortAndQuit(t *testing.T) {
	f := newFixture(t)
	f.Press(t, "C-x", "C-g")
	if got := f.lastMessage(); got != "abort sequence" {
		t.Errorf("message after C-x C-g = %q", got)
	}
	if !f.Engine.State().Idle() {
		t.Error("sequence not discarded")
	}

	f.Press(t, "C-g")
	if got := f.lastMessage(); got != "Quit" {
		t.Errorf("message after C-g = %q", got)
	}

	f.Press(t, "C-x", "C-c")
	if !f.quit {
		t.Error("C-x C-c did not quit")
	}
}

func TestExecuteExtendedCommand(t *testing.T) {
	tests := []struct {
		name       string
		keys       []string
		answers    []string
		wantCalls  []string
		wantPrompt string
		wantMsg    string
		wantErr    string
	}{
		{
			name:       "runs named command",
			keys:       []string{"M-x"},
			answers:    []string{"cmd_selectAll"},
			wantCalls:  []string{"cmd_selectAll"},
			wantPrompt: "M-x ",
		},
		{
			name:       "passes prefix argument",
			keys:       []string{"C-u", "M-x"},
			answers:    []string{" cmd_charNext "},
			wantCalls:  []string{"cmd_charNext", "cmd_charNext", "cmd_charNext", "cmd_charNext"},
			wantPrompt: "4 M-x ",
		},
		{
			name:       "aborted",
			keys:       []string{"M-x"},
			wantPrompt: "M-x ",
			wantMsg:    "Quit",
		},
		{
			name:       "unknown command",
			keys:       []string{"M-x"},
			answers:    []string{"nope"},
			wantPrompt: "M-x ",
			wantErr:    "No such command: nope",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.Window.Answers = tt.answers
			f.Press(t, tt.keys...)

			if diff := cmp.Diff(tt.wantCalls, f.win.content.calls); diff != "" {
				t.Errorf("content calls (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{tt.wantPrompt}, f.Window.Prompts); diff != "" {
				t.Errorf("prompts (-want +got):\n%s", diff)
			}
			if tt.wantMsg != "" && f.lastMessage() != tt.wantMsg {
				t.Errorf("message = %q, want %q", f.lastMessage(), tt.wantMsg)
			}
			switch {
			case tt.wantErr == "" && len(f.Window.Errs) != 0:
				t.Errorf("errors = %v", f.Window.Errs)
			case tt.wantErr != "":
				if len(f.Window.Errs) != 1 || !input.IsInteractive(f.Window.Errs[0]) ||
					!strings.Contains(f.Window.Errs[0].Error(), tt.wantErr) {
					t.Errorf("errors = %v, want %q", f.Window.Errs, tt.wantErr)
				}
			}
		})
	}
}

func TestDescribeSequenceHelp(t *testing.T) {
	f := newFixture(t)
	f.Press(t, "C-x", "C-h")

	want := "C-x: h cmd_selectAll, u cmd_undo, C-c quit, C-l source, C-r reinit"
	if got := f.lastMessage(); got != want {
		t.Errorf("message = %q\nwant      %q", got, want)
	}
	if !f.Engine.State().Idle() {
		t.Error("help did not end the sequence")
	}
}

func TestMinibufferCommands(t *testing.T) {
	f := newFixture(t)
	f.Window.Stack = keymap.Stack{keymap.DefaultMinibufferKeymap()}

	pe := f.Press(t, "a")
	if pe.DefaultPrevented() {
		t.Error("typed character did not fall through to the minibuffer")
	}
	f.Press(t, "Enter")
	f.Press(t, "C-g")
	f.Press(t, "Escape")
	if f.win.exits != 1 || f.win.aborts != 2 {
		t.Errorf("exits=%d aborts=%d, want 1 and 2", f.win.exits, f.win.aborts)
	}

	f.Press(t, "Tab")
	if f.win.completions != 1 || f.lastMessage() != "No match" {
		t.Errorf("completions=%d message=%q", f.win.completions, f.lastMessage())
	}
}

func TestExtendedCommandCompletion(t *testing.T) {
	f := newFixture(t)
	f.Window.Answers = []string{"cmd_selectAll"}
	f.Press(t, "M-x")
	if f.win.complete == nil {
		t.Fatal("execute-extended-command did not offer completion")
	}

	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{"cmd_selectA", "cmd_selectAll", true},
		{"universal-arg", "universal-argument", true},
		{"", "cmd_selectAll", true},
		{"qqqzz", "", false},
	}
	for _, tt := range tests {
		got, ok := f.win.complete(tt.text)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("complete(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestClipboardCommands(t *testing.T) {
	f := newFixture(t)
	f.win.content.selection = "hello"
	f.Press(t, "C-c", "y")
	if f.clipboard.text != "hello" || f.lastMessage() != "Yanked: hello" {
		t.Errorf("clipboard=%q message=%q", f.clipboard.text, f.lastMessage())
	}

	f.win.content.selection = "Ann Example <ann@example.com>"
	f.Press(t, "C-c", "e")
	if f.clipboard.text != "ann@example.com" {
		t.Errorf("clipboard = %q", f.clipboard.text)
	}

	f.win.content.selection = ""
	f.Press(t, "C-c", "y")
	if len(f.Window.Errs) != 1 || !input.IsInteractive(f.Window.Errs[0]) {
		t.Errorf("errors = %v, want one interactive error", f.Window.Errs)
	}
}

func TestCopyEmailFromBrowserObject(t *testing.T) {
	f := newFixture(t)
	top := keymap.New("links")
	inputtest.Define(t, top, "c", "copy-email-address",
		keymap.WithBrowserObject("mailto:bob@example.org?subject=hi"))
	f.Window.Stack = append(f.Window.Stack, top)

	f.Press(t, "c")
	if f.clipboard.text != "bob@example.org" {
		t.Errorf("clipboard = %q", f.clipboard.text)
	}
}

func TestEmailAddress(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"ann@example.com", "ann@example.com", false},
		{"mailto:ann@example.com", "ann@example.com", false},
		{" Ann <ann@example.com> ", "ann@example.com", false},
		{"mailto:ann@example.com?cc=bob@example.com", "ann@example.com", false},
		{"not an address", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := emailAddress(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("emailAddress(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestScriptCommands(t *testing.T) {
	f := newFixture(t)
	f.script.result = "2"
	f.Window.Answers = []string{"1 + 1", "init.lua"}

	f.Press(t, "M-:")
	if got := f.lastMessage(); got != "2" {
		t.Errorf("eval message = %q", got)
	}
	f.Press(t, "C-x", "C-l")
	f.Press(t, "C-x", "C-r")

	if diff := cmp.Diff([]string{"1 + 1"}, f.script.evaluated); diff != "" {
		t.Errorf("evaluated (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"init.lua", "rc.lua"}, f.script.sourced); diff != "" {
		t.Errorf("sourced (-want +got):\n%s", diff)
	}

	f.script.err = errBoom
	f.Press(t, "C-x", "C-r")
	if len(f.Window.Errs) != 1 || !errors.Is(f.Window.Errs[0], errBoom) {
		t.Errorf("errors = %v, want boom", f.Window.Errs)
	}
}
