package app

import (
	"errors"
	"testing"
)

func TestBufferCommands(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		point     int
		commands  []string
		wantText  string
		wantPoint int
	}{
		{"char next", "abc", 0, []string{"cmd_charNext", "cmd_charNext"}, "abc", 2},
		{"char next at end", "abc", 3, []string{"cmd_charNext"}, "abc", 3},
		{"char previous at start", "abc", 0, []string{"cmd_charPrevious"}, "abc", 0},
		{"begin and end line", "ab\ncd\nef", 4, []string{"cmd_beginLine"}, "ab\ncd\nef", 3},
		{"end line", "ab\ncd\nef", 3, []string{"cmd_endLine"}, "ab\ncd\nef", 5},
		{"move top and bottom", "ab\ncd", 2, []string{"cmd_moveBottom"}, "ab\ncd", 5},
		{"line next keeps column", "abc\nde\nfgh", 2, []string{"cmd_lineNext"}, "abc\nde\nfgh", 6},
		{"line next twice", "abc\nde\nfgh", 1, []string{"cmd_lineNext", "cmd_lineNext"}, "abc\nde\nfgh", 8},
		{"line previous", "abc\nde\nfgh", 9, []string{"cmd_linePrevious"}, "abc\nde\nfgh", 6},
		{"line previous on first line", "abc", 2, []string{"cmd_linePrevious"}, "abc", 2},
		{"word next", "foo bar baz", 0, []string{"cmd_wordNext", "cmd_wordNext"}, "foo bar baz", 7},
		{"word previous", "foo bar baz", 11, []string{"cmd_wordPrevious"}, "foo bar baz", 8},
		{"delete forward", "abc", 1, []string{"cmd_deleteCharForward"}, "ac", 1},
		{"delete backward", "abc", 1, []string{"cmd_deleteCharBackward"}, "bc", 0},
		{"delete backward at start", "abc", 0, []string{"cmd_deleteCharBackward"}, "abc", 0},
		{"select all then cut", "abc", 1, []string{"cmd_selectAll", "cmd_cut"}, "", 0},
		{"copy then paste", "ab", 0, []string{"cmd_selectAll", "cmd_copy", "cmd_paste"}, "abab", 4},
		{"cut then undo", "abc", 0, []string{"cmd_selectAll", "cmd_cut", "cmd_undo"}, "abc", 3},
		{"undo then redo", "abc", 3, []string{"cmd_deleteCharBackward", "cmd_undo", "cmd_redo"}, "ab", 2},
		{"paste with empty kill", "abc", 1, []string{"cmd_paste"}, "abc", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(tt.text)
			b.point = tt.point
			for _, cmd := range tt.commands {
				if err := b.DoCommand(cmd); err != nil {
					t.Fatalf("DoCommand(%s): %v", cmd, err)
				}
			}
			if got := b.Text(); got != tt.wantText {
				t.Errorf("Text = %q, want %q", got, tt.wantText)
			}
			if got := b.Point(); got != tt.wantPoint {
				t.Errorf("Point = %d, want %d", got, tt.wantPoint)
			}
		})
	}
}

func TestBufferPageScroll(t *testing.T) {
	b := NewBuffer("0\n1\n2\n3\n4\n5")
	b.point = 0
	b.SetPageLines(2)
	if err := b.DoCommand("cmd_scrollPageDown"); err != nil {
		t.Fatal(err)
	}
	if v := b.View(); v.Line != 2 {
		t.Errorf("Line after page down = %d, want 2", v.Line)
	}
	if err := b.DoCommand("cmd_scrollPageUp"); err != nil {
		t.Fatal(err)
	}
	if b.Point() != 0 {
		t.Errorf("Point after page up = %d", b.Point())
	}
}

func TestBufferErrors(t *testing.T) {
	b := NewBuffer("")
	if err := b.DoCommand("cmd_undo"); err == nil {
		t.Error("undo with no history succeeded")
	}
	if err := b.DoCommand("cmd_frobnicate"); !errors.Is(err, ErrUnknownContentCommand) {
		t.Errorf("unknown command error = %v", err)
	}
}

func TestBufferSelectionAndView(t *testing.T) {
	b := NewBuffer("hello\nworld")
	if err := b.DoCommand("cmd_selectAll"); err != nil {
		t.Fatal(err)
	}
	if got := b.Selection(); got != "hello\nworld" {
		t.Errorf("Selection = %q", got)
	}
	v := b.View()
	if v.Line != 1 || v.Column != 5 || v.Selection != [2]int{0, 11} {
		t.Errorf("View = %+v", v)
	}
	if got := v.Lines(); len(got) != 2 || got[1] != "world" {
		t.Errorf("Lines = %q", got)
	}

	b.Insert("!")
	if got := b.Selection(); got != "" {
		t.Errorf("Selection after insert = %q", got)
	}
}
