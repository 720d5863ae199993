package keymap

// Well-known keymap names.
const (
	NameSequenceAbort = "sequence-abort"
	NameSequenceHelp  = "sequence-help"
	NameGlobalOverlay = "global-overlay"
	NameGlobal        = "global"
	NameContent       = "content"
	NameMinibuffer    = "minibuffer"
)

// SequenceAbortKeymap is consulted first once a sequence has more than one
// combo.
func SequenceAbortKeymap() *Keymap {
	km := New(NameSequenceAbort)
	mustDefine(km, "C-g", "sequence-abort")
	mustDefine(km, "Escape", "sequence-abort")
	return km
}

// SequenceHelpKeymap is consulted last, after the focus stack.
func SequenceHelpKeymap() *Keymap {
	km := New(NameSequenceHelp)
	mustDefine(km, "C-h", "describe-sequence-help")
	return km
}

// GlobalOverlayKeymap returns the empty overlay used by key aliases and
// sticky modifiers.
func GlobalOverlayKeymap() *Keymap {
	return New(NameGlobalOverlay)
}

// DefaultGlobalKeymap returns the bindings shared by every focus target.
func DefaultGlobalKeymap() *Keymap {
	km := New(NameGlobal)
	bindings := []struct {
		seq     string
		command string
	}{
		{"C-g", "keyboard-quit"},
		{"C-u", "universal-argument"},
		{"M-x", "execute-extended-command"},
		{"M-:", "eval-expression"},
		{"C-x C-c", "quit"},
		{"C-x C-r", "reinit"},
		{"C-x C-l", "source"},
	}
	for _, b := range bindings {
		mustDefine(km, b.seq, b.command)
	}
	return km
}

// DefaultContentKeymap returns the bindings for the content surface.
// Unmodified characters fall through so the surface inserts them.
func DefaultContentKeymap(parent *Keymap) *Keymap {
	km := New(NameContent).WithParent(parent)
	bindings := []struct {
		seq     string
		command string
	}{
		{"M-w", "cmd_copy"},
		{"C-w", "cmd_cut"},
		{"C-y", "cmd_paste"},
		{"C-x h", "cmd_selectAll"},
		{"C-x u", "cmd_undo"},
		{"C-f", "cmd_charNext"},
		{"C-b", "cmd_charPrevious"},
		{"C-n", "cmd_lineNext"},
		{"C-p", "cmd_linePrevious"},
		{"C-a", "cmd_beginLine"},
		{"C-e", "cmd_endLine"},
		{"Right", "cmd_charNext"},
		{"Left", "cmd_charPrevious"},
		{"Down", "cmd_lineNext"},
		{"Up", "cmd_linePrevious"},
		{"C-v", "cmd_scrollPageDown"},
		{"M-v", "cmd_scrollPageUp"},
		{"C-d", "cmd_deleteCharForward"},
		{"C-c y", "yank-to-clipboard"},
		{"C-c e", "copy-email-address"},
	}
	for _, b := range bindings {
		mustDefine(km, b.seq, b.command)
	}
	for _, seq := range []string{"Enter", "Backspace", "Tab"} {
		mustDefineFallthrough(km, seq)
	}
	km.DefinePredicate(MatchUnmodifiedRune, FallthroughBinding())
	km.AddFallthrough(MatchUnmodifiedRune)
	return km
}

// DefaultMinibufferKeymap returns the bindings active while the minibuffer
// reads input.
func DefaultMinibufferKeymap() *Keymap {
	km := New(NameMinibuffer)
	mustDefine(km, "Enter", "minibuffer-exit")
	mustDefine(km, "C-g", "minibuffer-abort")
	mustDefine(km, "Escape", "minibuffer-abort")
	mustDefine(km, "Tab", "minibuffer-complete")
	mustDefineFallthrough(km, "Backspace")
	km.DefinePredicate(MatchUnmodifiedRune, FallthroughBinding())
	km.AddFallthrough(MatchUnmodifiedRune)
	return km
}

func mustDefine(km *Keymap, seq, command string) {
	if err := km.Define(seq, command); err != nil {
		panic(err)
	}
}

func mustDefineFallthrough(km *Keymap, seq string) {
	if err := km.DefineFallthrough(seq); err != nil {
		panic(err)
	}
}
