package app

import (
	"sync"

	"github.com/dshills/keyseq/internal/commands"
	"github.com/dshills/keyseq/internal/input"
)

// Minibuffer is the message line of a window. It implements
// input.Minibuffer and can read one line of input at a time.
type Minibuffer struct {
	mu      sync.Mutex
	message string
	status  string
	read    *minibufferRead
}

type minibufferRead struct {
	prompt   string
	input    []rune
	complete commands.CompleteFunc
	result   chan readResult
}

type readResult struct {
	text string
	err  error
}

// MinibufferView is a snapshot of a Minibuffer for rendering.
type MinibufferView struct {
	Reading bool
	Prompt  string
	Input   string
	Text    string
}

// Message shows a transient message.
func (m *Minibuffer) Message(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.message = msg
	m.status = ""
}

// Show shows status text such as a partial key sequence.
func (m *Minibuffer) Show(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = text
}

// Clear removes the message and status text.
func (m *Minibuffer) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.message = ""
	m.status = ""
}

// Reading reports whether a read is in progress.
func (m *Minibuffer) Reading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.read != nil
}

// View returns a snapshot for rendering.
func (m *Minibuffer) View() MinibufferView {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := MinibufferView{Text: m.message}
	if m.status != "" {
		v.Text = m.status
	}
	if m.read != nil {
		v.Reading = true
		v.Prompt = m.read.prompt
		v.Input = string(m.read.input)
	}
	return v
}

func (m *Minibuffer) begin(prompt string, fn commands.CompleteFunc, result chan readResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.read != nil {
		return ErrReadActive
	}
	m.read = &minibufferRead{prompt: prompt, complete: fn, result: result}
	m.message = ""
	m.status = ""
	return nil
}

// finish ends the current read with text or err. When result is not nil
// only the read it belongs to is ended.
func (m *Minibuffer) finish(result chan readResult, abort error) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.read == nil || (result != nil && m.read.result != result) {
		return false
	}
	r := readResult{text: string(m.read.input), err: abort}
	if abort != nil {
		r.text = ""
	}
	m.read.result <- r
	m.read = nil
	return true
}

// Exit ends the read, returning the typed text.
func (m *Minibuffer) Exit() bool {
	return m.finish(nil, nil)
}

// Abort ends the read with input.ErrReadAborted.
func (m *Minibuffer) Abort() bool {
	return m.finish(nil, input.ErrReadAborted)
}

// Insert appends r to the input being read.
func (m *Minibuffer) Insert(r rune) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.read != nil {
		m.read.input = append(m.read.input, r)
	}
}

// DeleteBackward removes the last input rune.
func (m *Minibuffer) DeleteBackward() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.read != nil && len(m.read.input) > 0 {
		m.read.input = m.read.input[:len(m.read.input)-1]
	}
}

// Complete replaces the input with its completion. It reports false when
// no read is active, the read has no completion function or nothing
// matches.
func (m *Minibuffer) Complete() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.read == nil || m.read.complete == nil {
		return false
	}
	text, ok := m.read.complete(string(m.read.input))
	if ok {
		m.read.input = []rune(text)
	}
	return ok
}
