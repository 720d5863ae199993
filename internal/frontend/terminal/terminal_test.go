package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap/zaptest"

	"github.com/dshills/keyseq/internal/app"
	"github.com/dshills/keyseq/internal/input/key"
)

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), "a"},
		{"ctrl code", tcell.NewEventKey(tcell.KeyCtrlF, 0, tcell.ModCtrl), "C-f"},
		{"ctrl rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl), "C-x"},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "M-x"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "Enter"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "Escape"},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "Backspace"},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "Up"},
		{"ctrl arrow", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModCtrl), "C-Right"},
		{"function key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), "F5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := ConvertKey(tt.ev)
			if !ok {
				t.Fatal("ConvertKey not ok")
			}
			if got := key.FormatCombo(ev); got != tt.want {
				t.Errorf("combo = %q, want %q", got, tt.want)
			}
		})
	}

	if _, ok := ConvertKey(tcell.NewEventKey(tcell.KeyF64, 0, tcell.ModNone)); ok {
		t.Error("F64 converted")
	}
}

func newScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(width, height)
	t.Cleanup(s.Fini)
	return s
}

func row(s tcell.SimulationScreen, y int) string {
	cells, width, _ := s.GetContents()
	out := make([]rune, 0, width)
	for x := 0; x < width; x++ {
		c := cells[y*width+x]
		if len(c.Runes) == 0 {
			out = append(out, ' ')
			continue
		}
		out = append(out, c.Runes[0])
	}
	return string(out)
}

func TestDraw(t *testing.T) {
	a, err := app.New(app.Options{Logger: zaptest.NewLogger(t).Sugar(), DisableScript: true})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Shutdown()
	w, err := a.NewWindow()
	if err != nil {
		t.Fatal(err)
	}

	s := newScreen(t, 10, 3)
	f := New(s, zaptest.NewLogger(t).Sugar())
	w.Buffer().Insert("hi\nthere")
	w.Sync(func() {
		w.MinibufferState().Message("done")
		f.Draw(w)
	})

	want := []string{"hi        ", "there     ", "done      "}
	for y, line := range want {
		if got := row(s, y); got != line {
			t.Errorf("row %d = %q, want %q", y, got, line)
		}
	}
	if x, y, visible := s.GetCursor(); !visible || x != 5 || y != 1 {
		t.Errorf("cursor = %d,%d visible=%v", x, y, visible)
	}
}

func TestDrawScrollsToPoint(t *testing.T) {
	a, err := app.New(app.Options{Logger: zaptest.NewLogger(t).Sugar(), DisableScript: true})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Shutdown()
	w, err := a.NewWindow()
	if err != nil {
		t.Fatal(err)
	}

	s := newScreen(t, 5, 3)
	f := New(s, nil)
	w.Buffer().Insert("a\nb\nc\nd")
	w.Sync(func() { f.Draw(w) })

	if got := row(s, 0); got != "c    " {
		t.Errorf("row 0 = %q", got)
	}
	if got := row(s, 1); got != "d    " {
		t.Errorf("row 1 = %q", got)
	}
}
