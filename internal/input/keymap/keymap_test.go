package keymap

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/keyseq/internal/input/key"
)

func lookupCombo(t *testing.T, stack Stack, combo string) Binding {
	t.Helper()
	ev, err := key.Parse(combo)
	if err != nil {
		t.Fatalf("Parse(%q): %v", combo, err)
	}
	return Lookup(stack, key.FormatCombo(ev), ev)
}

func TestDefineCreatesPrefixKeymaps(t *testing.T) {
	km := New("global")
	if err := km.Define("C-x C-f", "find-file"); err != nil {
		t.Fatalf("Define: %v", err)
	}
	if err := km.Define("C-x C-x", "swap-point-mark"); err != nil {
		t.Fatalf("Define: %v", err)
	}

	b := lookupCombo(t, Stack{km}, "C-x")
	if b.Kind != KindKeymaps {
		t.Fatalf("C-x kind = %v, want keymaps", b.Kind)
	}
	if len(b.Keymaps) != 1 {
		t.Fatalf("len(Keymaps) = %d, want 1", len(b.Keymaps))
	}
	if got := b.Keymaps.Top().Name; got != "global C-x" {
		t.Errorf("prefix keymap name = %q", got)
	}

	next := lookupCombo(t, b.Keymaps, "C-x")
	if next.Kind != KindCommand || next.Command != "swap-point-mark" {
		t.Errorf("C-x C-x = %v, want swap-point-mark", next)
	}
	if diff := cmp.Diff([]string{"C-f", "C-x"}, b.Keymaps.Top().Combos()); diff != "" {
		t.Errorf("prefix combos (-want +got):\n%s", diff)
	}
}

func TestDefinePrefixConflict(t *testing.T) {
	km := New("global")
	if err := km.Define("C-x", "something"); err != nil {
		t.Fatal(err)
	}
	err := km.Define("C-x C-f", "find-file")
	if !errors.Is(err, ErrPrefixConflict) {
		t.Errorf("error = %v, want ErrPrefixConflict", err)
	}
}

func TestDefineErrors(t *testing.T) {
	km := New("global")
	if err := km.Define("C-x", ""); !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("empty command error = %v", err)
	}
	if err := km.Define("C-bogus", "x"); !errors.Is(err, key.ErrUnknownKey) {
		t.Errorf("bad combo error = %v", err)
	}
	if err := km.DefineKeymap("C-c", nil); !errors.Is(err, ErrNilKeymap) {
		t.Errorf("nil keymap error = %v", err)
	}
}

func TestDefineCanonicalizesCombos(t *testing.T) {
	km := New("global")
	if err := km.Define("A-x", "execute-extended-command"); err != nil {
		t.Fatal(err)
	}
	if _, ok := km.Get("M-x"); !ok {
		t.Error("A-x was not stored as M-x")
	}
}

func TestUndefine(t *testing.T) {
	km := New("global")
	_ = km.Define("C-x C-f", "find-file")
	if err := km.Undefine("C-x C-f"); err != nil {
		t.Fatal(err)
	}
	b := lookupCombo(t, Stack{km}, "C-x")
	if next := lookupCombo(t, b.Keymaps, "C-f"); !next.IsUndefined() {
		t.Errorf("C-x C-f still bound: %v", next)
	}
	if err := km.Undefine("C-c C-c"); err != nil {
		t.Errorf("undefining an unbound sequence: %v", err)
	}
}

func TestLookupStackPriority(t *testing.T) {
	global := New("global")
	_ = global.Define("C-a", "global-a")
	_ = global.Define("C-b", "global-b")
	buffer := New("buffer")
	_ = buffer.Define("C-a", "buffer-a")

	stack := Stack{global, buffer}
	if b := lookupCombo(t, stack, "C-a"); b.Command != "buffer-a" {
		t.Errorf("top of stack should win, got %v", b)
	}
	if b := lookupCombo(t, stack, "C-b"); b.Command != "global-b" {
		t.Errorf("lower keymap should resolve unshadowed combo, got %v", b)
	}
	if b := lookupCombo(t, stack, "C-z"); !b.IsUndefined() {
		t.Errorf("unbound combo = %v, want undefined", b)
	}
}

func TestLookupParentChain(t *testing.T) {
	parent := New("parent")
	_ = parent.Define("C-p", "from-parent")
	child := New("child").WithParent(parent)

	if b := lookupCombo(t, Stack{child}, "C-p"); b.Command != "from-parent" {
		t.Errorf("parent binding not found: %v", b)
	}
}

func TestLookupMergesPrefixes(t *testing.T) {
	global := New("global")
	_ = global.Define("C-x C-c", "quit")
	buffer := New("buffer")
	_ = buffer.Define("C-x C-s", "save")

	b := lookupCombo(t, Stack{global, buffer}, "C-x")
	if b.Kind != KindKeymaps {
		t.Fatalf("kind = %v", b.Kind)
	}
	names := make([]string, len(b.Keymaps))
	for i, km := range b.Keymaps {
		names[i] = km.Name
	}
	if diff := cmp.Diff([]string{"global C-x", "buffer C-x"}, names); diff != "" {
		t.Errorf("merged stack (-want +got):\n%s", diff)
	}
	if next := lookupCombo(t, b.Keymaps, "C-c"); next.Command != "quit" {
		t.Errorf("C-x C-c = %v", next)
	}
	if next := lookupCombo(t, b.Keymaps, "C-s"); next.Command != "save" {
		t.Errorf("C-x C-s = %v", next)
	}
}

func TestLookupPrefixShadowsLowerCommand(t *testing.T) {
	global := New("global")
	_ = global.Define("C-c", "copy")
	buffer := New("buffer")
	_ = buffer.Define("C-c C-c", "commit")

	if b := lookupCombo(t, Stack{global, buffer}, "C-c"); b.Kind != KindKeymaps {
		t.Errorf("prefix on top should shadow lower command, got %v", b)
	}
}

func TestLookupPredicates(t *testing.T) {
	km := New("content")
	_ = km.Define("q", "quit")
	km.DefinePredicate(MatchUnmodifiedRune, FallthroughBinding())

	if b := lookupCombo(t, Stack{km}, "q"); b.Command != "quit" {
		t.Errorf("exact binding should beat predicate, got %v", b)
	}
	b := lookupCombo(t, Stack{km}, "a")
	if b.Kind != KindFallthrough || b.Suppresses() {
		t.Errorf("predicate binding = %v, want unsuppressed fallthrough", b)
	}
	if b := lookupCombo(t, Stack{km}, "C-a"); !b.IsUndefined() {
		t.Errorf("modified rune matched predicate: %v", b)
	}
}

func TestLookupFallthrough(t *testing.T) {
	parent := New("parent")
	parent.AddFallthrough(MatchUnmodifiedRune)
	child := New("child").WithParent(parent)

	if !LookupFallthrough(child, key.NewRuneEvent('a', key.ModNone)) {
		t.Error("unmodified rune should fall through via parent")
	}
	if LookupFallthrough(child, key.NewRuneEvent('a', key.ModCtrl)) {
		t.Error("C-a should not fall through")
	}
	if LookupFallthrough(nil, key.NewRuneEvent('a', key.ModNone)) {
		t.Error("nil keymap should not fall through")
	}
}

func TestBindingSuppresses(t *testing.T) {
	tests := []struct {
		name string
		b    Binding
		want bool
	}{
		{"undefined", Undefined, true},
		{"fallthrough", FallthroughBinding(), false},
		{"command", CommandBinding("x"), true},
		{"command with fallthrough", CommandBinding("x", WithFallthrough()), false},
		{"keymaps", KeymapsBinding(New("p")), true},
	}
	for _, tt := range tests {
		if got := tt.b.Suppresses(); got != tt.want {
			t.Errorf("%s: Suppresses() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCommandBindingOptions(t *testing.T) {
	obj := struct{ URL string }{"https://example.com"}
	b := CommandBinding("follow", WithRepeat("follow-new-buffer"), WithBrowserObject(obj))
	if b.Repeat != "follow-new-buffer" {
		t.Errorf("Repeat = %q", b.Repeat)
	}
	if b.BrowserObject != obj {
		t.Errorf("BrowserObject = %v", b.BrowserObject)
	}
}

func TestDefaultKeymaps(t *testing.T) {
	abort := SequenceAbortKeymap()
	for _, combo := range []string{"C-g", "Escape"} {
		if b := lookupCombo(t, Stack{abort}, combo); b.Command != "sequence-abort" {
			t.Errorf("abort %s = %v", combo, b)
		}
	}
	if b := lookupCombo(t, Stack{SequenceHelpKeymap()}, "C-h"); b.Command != "describe-sequence-help" {
		t.Errorf("help C-h = %v", b)
	}

	global := DefaultGlobalKeymap()
	content := DefaultContentKeymap(global)
	if b := lookupCombo(t, Stack{content}, "M-x"); b.Command != "execute-extended-command" {
		t.Errorf("content inherits M-x: %v", b)
	}
	if b := lookupCombo(t, Stack{content}, "Enter"); b.Kind != KindFallthrough {
		t.Errorf("content Enter = %v", b)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	km := New("global")
	if err := r.Register(km); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(km); err != nil {
		t.Errorf("re-registering the same keymap: %v", err)
	}
	if err := r.Register(New("global")); !errors.Is(err, ErrKeymapExists) {
		t.Errorf("duplicate name error = %v", err)
	}
	if err := r.Register(nil); !errors.Is(err, ErrNilKeymap) {
		t.Errorf("nil error = %v", err)
	}

	got, err := r.Get("global")
	if err != nil || got != km {
		t.Errorf("Get = %v, %v", got, err)
	}
	if _, err := r.Get("missing"); !errors.Is(err, ErrKeymapNotFound) {
		t.Errorf("missing error = %v", err)
	}

	_ = r.Register(New("content"))
	if diff := cmp.Diff([]string{"content", "global"}, r.Names()); diff != "" {
		t.Errorf("Names (-want +got):\n%s", diff)
	}
	r.Unregister("content")
	if len(r.Names()) != 1 {
		t.Errorf("Unregister left %v", r.Names())
	}
}
