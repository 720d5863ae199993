package complete

import (
	"strings"
	"unicode"
)

// Match is a scored candidate.
type Match struct {
	Text  string
	Score int

	// Positions are the rune indices of the matched query runes.
	Positions []int
}

// Matcher scores candidates against a query. The zero value matches
// case-insensitively.
type Matcher struct {
	CaseSensitive bool
}

// Rank returns the candidates matching query, best first. Ties are broken
// by text. A limit of zero or less returns every match.
func (m Matcher) Rank(query string, candidates []string, limit int) []Match {
	query = strings.TrimSpace(query)
	if !m.CaseSensitive {
		query = strings.ToLower(query)
	}
	q := []rune(query)

	var out []Match
	for _, text := range candidates {
		if score, pos := m.score(q, text); score > 0 {
			out = append(out, Match{Text: text, Score: score, Positions: pos})
		}
	}
	sortMatches(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Best returns the highest ranked candidate.
func (m Matcher) Best(query string, candidates []string) (Match, bool) {
	r := m.Rank(query, candidates, 1)
	if len(r) == 0 {
		return Match{}, false
	}
	return r[0], true
}

func (m Matcher) score(q []rune, text string) (int, []int) {
	if len(q) == 0 || text == "" {
		return 0, nil
	}
	orig := []rune(text)
	norm := orig
	if !m.CaseSensitive {
		norm = []rune(strings.ToLower(text))
	}

	pos := make([]int, 0, len(q))
	for i := 0; i < len(norm) && len(pos) < len(q); i++ {
		if norm[i] == q[len(pos)] {
			pos = append(pos, i)
		}
	}
	if len(pos) != len(q) {
		return 0, nil
	}

	score := 100
	for i := 1; i < len(pos); i++ {
		if pos[i] == pos[i-1]+1 {
			score += 20
		}
	}
	for _, i := range pos {
		if wordStart(orig, i) {
			score += 15
		}
	}
	if pos[0] == 0 {
		score += 25
	}
	if gap := pos[len(pos)-1] - pos[0] - len(pos) + 1; gap > 0 {
		score -= gap * 2
	}
	score -= pos[0]
	if len(norm) < 20 {
		score += 20 - len(norm)
	}
	if len(norm) >= len(q) && string(norm[:len(q)]) == string(q) {
		score += 50
	}
	return max(score, 1), pos
}

// wordStart reports whether runes[i] begins a word: the first rune, one
// after a separator, or an upper case rune after a lower case one.
func wordStart(runes []rune, i int) bool {
	if i == 0 {
		return true
	}
	prev, cur := runes[i-1], runes[i]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}
