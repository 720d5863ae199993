package complete

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var names = []string{"backward-char", "find-file", "forward-char", "forward-word"}

func TestRank(t *testing.T) {
	var m Matcher
	got := m.Rank("fc", names, 0)
	want := []Match{{Text: "forward-char", Score: 149, Positions: []int{0, 8}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rank(fc) mismatch (-want +got):\n%s", diff)
	}

	var texts []string
	for _, r := range m.Rank("CHAR", names, 0) {
		texts = append(texts, r.Text)
	}
	if diff := cmp.Diff([]string{"forward-char", "backward-char"}, texts); diff != "" {
		t.Errorf("Rank(CHAR) mismatch (-want +got):\n%s", diff)
	}

	if got := m.Rank("char", names, 1); len(got) != 1 {
		t.Errorf("limit ignored: %v", got)
	}
	if _, ok := m.Best("", names); ok {
		t.Error("empty query matched")
	}
	if _, ok := (Matcher{CaseSensitive: true}).Best("CHAR", names); ok {
		t.Error("case sensitive matcher ignored case")
	}
}

func TestComplete(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"forw", "forward-", true},
		{"forward-c", "forward-char", true},
		{"find-file", "find-file", true},
		{"bwc", "backward-char", true},
		{"zzz", "", false},
		{"", "", false},
	}
	c := New(nil)
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := c.Complete(tt.input, names)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Complete(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCompleteUsesHistory(t *testing.T) {
	c := New(NewHistory(10))
	c.Record("find-file")
	c.Record("gone")
	if got, ok := c.Complete("", names); !ok || got != "find-file" {
		t.Errorf("Complete(\"\") = %q, %v", got, ok)
	}

	c.Record("backward-char")
	ranked := c.Rank("char", names, 0)
	if len(ranked) != 2 || ranked[0].Text != "backward-char" {
		t.Errorf("recent command not ranked first: %+v", ranked)
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory(2)
	h.Add("a")
	h.Add("b")
	h.Add("a")
	if diff := cmp.Diff([]string{"a", "b"}, h.Recent(0)); diff != "" {
		t.Errorf("Recent mismatch (-want +got):\n%s", diff)
	}
	h.Add("c")
	if diff := cmp.Diff([]string{"c", "a"}, h.Recent(0)); diff != "" {
		t.Errorf("Recent after overflow mismatch (-want +got):\n%s", diff)
	}
	if got := h.Recent(1); len(got) != 1 || got[0] != "c" {
		t.Errorf("Recent(1) = %v", got)
	}
	if h.Position("a") != 1 || h.Position("b") != -1 {
		t.Errorf("positions: a=%d b=%d", h.Position("a"), h.Position("b"))
	}
	if NewHistory(0).max != DefaultHistorySize {
		t.Error("default size not applied")
	}
}
