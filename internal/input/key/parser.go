package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parser errors.
var (
	// ErrEmptyCombo is returned when parsing an empty combo.
	ErrEmptyCombo = errors.New("key: empty combo")

	// ErrUnknownKey is returned when the key name is not recognized.
	ErrUnknownKey = errors.New("key: unknown key name")
)

// ParseError describes a combo that could not be parsed.
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse combo %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse parses a combo string such as "C-x", "C-M-Backspace", "S-Tab",
// "space" or "C--" into a keypress Event.
//
// Modifier prefixes are single letters followed by a dash: C (ctrl),
// M (meta), A (alt), s (super) and S (shift). "S-a" yields "A".
func Parse(s string) (Event, error) {
	if s == "" {
		return Event{}, &ParseError{Input: s, Err: ErrEmptyCombo}
	}

	var mods Modifier
	rest := s
	for len(rest) > 2 && rest[1] == '-' {
		m := ModifierFromName(rest[:1])
		if m == ModNone {
			break
		}
		mods = mods.With(m)
		rest = rest[2:]
	}

	if utf8.RuneCountInString(rest) == 1 {
		r, _ := utf8.DecodeRuneInString(rest)
		if mods.Has(ModShift) {
			r = []rune(strings.ToUpper(string(r)))[0]
		}
		return NewRuneEvent(r, mods), nil
	}
	if rest == "space" || rest == "SPC" {
		return NewRuneEvent(' ', mods), nil
	}

	k := KeyFromName(rest)
	if k == KeyNone {
		return Event{}, &ParseError{Input: s, Err: ErrUnknownKey}
	}
	return NewSpecialEvent(k, mods), nil
}

// MustParse is like Parse but panics on error. Intended for static tables.
func MustParse(s string) Event {
	ev, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return ev
}

// ParseSequence parses a whitespace separated list of combos such as
// "C-x C-f".
func ParseSequence(s string) ([]Event, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, &ParseError{Input: s, Err: ErrEmptyCombo}
	}
	events := make([]Event, 0, len(fields))
	for _, f := range fields {
		ev, err := Parse(f)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// Canonical returns the canonical combo for s, e.g. "A-x" becomes "M-x".
func Canonical(s string) (string, error) {
	ev, err := Parse(s)
	if err != nil {
		return "", err
	}
	return FormatCombo(ev), nil
}
