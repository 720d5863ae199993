package key

import "strings"

// Sequence is the ordered list of combos typed so far in one key sequence.
type Sequence []string

// Push appends a combo and returns the new length.
func (s *Sequence) Push(combo string) int {
	*s = append(*s, combo)
	return len(*s)
}

// Len returns the number of combos in the sequence.
func (s Sequence) Len() int {
	return len(s)
}

// IsEmpty returns true if the sequence has no combos.
func (s Sequence) IsEmpty() bool {
	return len(s) == 0
}

// Clone returns an independent copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// String joins the combos with spaces, e.g. "C-x C-f".
func (s Sequence) String() string {
	return strings.Join(s, " ")
}
