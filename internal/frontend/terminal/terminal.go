// Package terminal is a tcell frontend showing one window: the content
// buffer above a one-line minibuffer.
package terminal

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/keyseq/internal/app"
)

var (
	textStyle      = tcell.StyleDefault
	selectionStyle = tcell.StyleDefault.Reverse(true)
	promptStyle    = tcell.StyleDefault.Bold(true)
)

// Frontend draws a window on a tcell screen and feeds it keys.
type Frontend struct {
	screen tcell.Screen
	logger *zap.SugaredLogger
}

// New creates a frontend on an initialized screen.
func New(screen tcell.Screen, logger *zap.SugaredLogger) *Frontend {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Frontend{screen: screen, logger: logger}
}

// Run delivers screen events to w until ctx is done or the screen stops
// producing events.
func (f *Frontend) Run(ctx context.Context, w *app.Window) error {
	f.resize(w)

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go f.screen.ChannelEvents(events, quit)
	defer close(quit)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			f.handle(w, ev)
		}
	}
}

func (f *Frontend) handle(w *app.Window, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		kev, ok := ConvertKey(ev)
		if !ok {
			f.logger.Debugw("unsupported key", "key", ev.Name())
			return
		}
		w.SendEvent(kev)
	case *tcell.EventResize:
		f.screen.Sync()
		f.resize(w)
	}
}

func (f *Frontend) resize(w *app.Window) {
	_, height := f.screen.Size()
	w.Buffer().SetPageLines(height - 2)
	w.Post(func() { f.Draw(w) })
}

// Draw renders w. It is meant to run on the window loop, as the
// application redraw hook.
func (f *Frontend) Draw(w *app.Window) {
	v := w.View()
	s := f.screen
	s.Clear()
	width, height := s.Size()
	if height < 1 || width < 1 {
		return
	}
	body := height - 1

	top := 0
	if v.Buffer.Line >= body {
		top = v.Buffer.Line - body + 1
	}
	offset := 0
	for y, line := range v.Buffer.Lines() {
		runes := []rune(line)
		if y >= top && y-top < body {
			for x, r := range runes {
				if x >= width {
					break
				}
				style := textStyle
				if pos := offset + x; pos >= v.Buffer.Selection[0] && pos < v.Buffer.Selection[1] {
					style = selectionStyle
				}
				if r == '\t' {
					r = ' '
				}
				s.SetContent(x, y-top, r, nil, style)
			}
		}
		offset += len(runes) + 1
	}

	mb := v.Minibuffer
	if mb.Reading {
		n := drawString(s, 0, body, width, mb.Prompt, promptStyle)
		n += drawString(s, n, body, width-n, mb.Input, textStyle)
		s.ShowCursor(n, body)
	} else {
		drawString(s, 0, body, width, mb.Text, textStyle)
		s.ShowCursor(v.Buffer.Column, v.Buffer.Line-top)
	}
	s.Show()
}

// drawString draws text at (x, y) clipped to width and returns the number
// of cells used.
func drawString(s tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	n := 0
	for _, r := range text {
		if n >= width {
			break
		}
		s.SetContent(x+n, y, r, nil, style)
		n++
	}
	return n
}
