package app

import (
	"fmt"
	"strings"
	"sync"
	"unicode"
)

const (
	// maxUndo bounds the undo history.
	maxUndo = 1000

	defaultPageLines = 20
)

// Buffer is the editable content surface of a window. It implements
// commands.Content and is safe for concurrent use.
type Buffer struct {
	mu        sync.Mutex
	text      []rune
	point     int
	mark      int // -1 when no region is active
	kill      string
	undo      []bufferState
	redo      []bufferState
	pageLines int
}

type bufferState struct {
	text  []rune
	point int
}

// BufferView is a snapshot of a Buffer for rendering.
type BufferView struct {
	Text      string
	Point     int
	Line      int
	Column    int
	Selection [2]int // rune offsets; equal when nothing is selected
}

// NewBuffer creates a buffer holding text with point at its end.
func NewBuffer(text string) *Buffer {
	r := []rune(text)
	return &Buffer{text: r, point: len(r), mark: -1, pageLines: defaultPageLines}
}

// SetPageLines sets the distance moved by the page scroll commands.
func (b *Buffer) SetPageLines(n int) {
	if n < 1 {
		n = 1
	}
	b.mu.Lock()
	b.pageLines = n
	b.mu.Unlock()
}

// Text returns the buffer contents.
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.text)
}

// Point returns the cursor offset in runes.
func (b *Buffer) Point() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.point
}

// View returns a snapshot for rendering.
func (b *Buffer) View() BufferView {
	b.mu.Lock()
	defer b.mu.Unlock()
	line, col := 0, 0
	for _, r := range b.text[:b.point] {
		if r == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	start, end := b.region()
	return BufferView{
		Text:      string(b.text),
		Point:     b.point,
		Line:      line,
		Column:    col,
		Selection: [2]int{start, end},
	}
}

// Selection returns the text between mark and point.
func (b *Buffer) Selection() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	start, end := b.region()
	return string(b.text[start:end])
}

// Insert inserts s at point.
func (b *Buffer) Insert(s string) {
	if s == "" {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.save()
	b.insert([]rune(s))
}

// DoCommand runs a named content command.
func (b *Buffer) DoCommand(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch name {
	case "cmd_copy":
		b.kill = b.selection()
		b.mark = -1
	case "cmd_cut":
		start, end := b.region()
		if start == end {
			return nil
		}
		b.kill = string(b.text[start:end])
		b.save()
		b.delete(start, end)
	case "cmd_paste":
		if b.kill == "" {
			return nil
		}
		b.save()
		b.insert([]rune(b.kill))
	case "cmd_selectAll":
		b.mark = 0
		b.point = len(b.text)
	case "cmd_undo":
		return b.swap(&b.undo, &b.redo, "undo")
	case "cmd_redo":
		return b.swap(&b.redo, &b.undo, "redo")
	case "cmd_beginLine":
		b.point = b.lineStart(b.point)
	case "cmd_endLine":
		b.point = b.lineEnd(b.point)
	case "cmd_moveTop":
		b.point = 0
	case "cmd_moveBottom":
		b.point = len(b.text)
	case "cmd_charNext":
		if b.point < len(b.text) {
			b.point++
		}
	case "cmd_charPrevious":
		if b.point > 0 {
			b.point--
		}
	case "cmd_wordNext":
		b.point = b.wordNext(b.point)
	case "cmd_wordPrevious":
		b.point = b.wordPrevious(b.point)
	case "cmd_lineNext":
		b.moveLines(1)
	case "cmd_linePrevious":
		b.moveLines(-1)
	case "cmd_scrollPageDown":
		b.moveLines(b.pageLines)
	case "cmd_scrollPageUp":
		b.moveLines(-b.pageLines)
	case "cmd_deleteCharForward":
		if b.point < len(b.text) {
			b.save()
			b.delete(b.point, b.point+1)
		}
	case "cmd_deleteCharBackward":
		if b.point > 0 {
			b.save()
			b.delete(b.point-1, b.point)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownContentCommand, name)
	}
	return nil
}

func (b *Buffer) region() (int, int) {
	if b.mark < 0 || b.mark > len(b.text) {
		return b.point, b.point
	}
	return min(b.mark, b.point), max(b.mark, b.point)
}

func (b *Buffer) selection() string {
	start, end := b.region()
	return string(b.text[start:end])
}

func (b *Buffer) save() {
	b.undo = append(b.undo, bufferState{text: append([]rune(nil), b.text...), point: b.point})
	if len(b.undo) > maxUndo {
		b.undo = b.undo[1:]
	}
	b.redo = nil
}

func (b *Buffer) swap(from, to *[]bufferState, what string) error {
	if len(*from) == 0 {
		return fmt.Errorf("no further %s information", what)
	}
	st := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]
	*to = append(*to, bufferState{text: b.text, point: b.point})
	b.text = st.text
	b.point = st.point
	b.mark = -1
	return nil
}

func (b *Buffer) insert(r []rune) {
	text := make([]rune, 0, len(b.text)+len(r))
	text = append(text, b.text[:b.point]...)
	text = append(text, r...)
	text = append(text, b.text[b.point:]...)
	b.text = text
	b.point += len(r)
	b.mark = -1
}

func (b *Buffer) delete(start, end int) {
	b.text = append(b.text[:start:start], b.text[end:]...)
	b.point = start
	b.mark = -1
}

func (b *Buffer) lineStart(pos int) int {
	for pos > 0 && b.text[pos-1] != '\n' {
		pos--
	}
	return pos
}

func (b *Buffer) lineEnd(pos int) int {
	for pos < len(b.text) && b.text[pos] != '\n' {
		pos++
	}
	return pos
}

// moveLines moves point n lines down (up when negative), keeping the
// column where the target line is long enough.
func (b *Buffer) moveLines(n int) {
	col := b.point - b.lineStart(b.point)
	pos := b.point
	for ; n > 0; n-- {
		end := b.lineEnd(pos)
		if end == len(b.text) {
			pos = end
			break
		}
		pos = end + 1
	}
	for ; n < 0; n++ {
		start := b.lineStart(pos)
		if start == 0 {
			pos = 0
			break
		}
		pos = start - 1
	}
	start := b.lineStart(pos)
	b.point = min(start+col, b.lineEnd(start))
}

func isWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func (b *Buffer) wordNext(pos int) int {
	for pos < len(b.text) && !isWord(b.text[pos]) {
		pos++
	}
	for pos < len(b.text) && isWord(b.text[pos]) {
		pos++
	}
	return pos
}

func (b *Buffer) wordPrevious(pos int) int {
	for pos > 0 && !isWord(b.text[pos-1]) {
		pos--
	}
	for pos > 0 && isWord(b.text[pos-1]) {
		pos--
	}
	return pos
}

// Lines splits the buffer text for display.
func (v BufferView) Lines() []string {
	return strings.Split(v.Text, "\n")
}
