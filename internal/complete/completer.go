package complete

import (
	"sort"
	"strings"
)

// recentBonus is added to the score of a recently used candidate; the
// most recent gets the full bonus.
const recentBonus = 30

// Completer completes minibuffer input against a candidate list.
type Completer struct {
	matcher Matcher
	history *History
}

// New creates a completer. A nil history disables recency ordering.
func New(history *History) *Completer {
	if history == nil {
		history = NewHistory(0)
	}
	return &Completer{history: history}
}

// History returns the completer's history.
func (c *Completer) History() *History {
	return c.history
}

// Record notes that name was chosen.
func (c *Completer) Record(name string) {
	c.history.Add(name)
}

// Complete returns the completion of input. The longest common prefix of
// the candidates starting with input is preferred when it extends input.
// Otherwise the best fuzzy match wins. Empty input completes to the most
// recently recorded candidate. ok is false when nothing matches.
func (c *Completer) Complete(input string, candidates []string) (string, bool) {
	if input == "" {
		for _, name := range c.history.Recent(0) {
			if contains(candidates, name) {
				return name, true
			}
		}
		return "", false
	}

	var prefixed []string
	for _, name := range candidates {
		if strings.HasPrefix(name, input) {
			prefixed = append(prefixed, name)
		}
	}
	if p := commonPrefix(prefixed); len(p) > len(input) {
		return p, true
	}
	if len(prefixed) > 0 {
		return input, true
	}

	ranked := c.Rank(input, candidates, 0)
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].Text, true
}

// Rank orders the candidates matching input, boosting recently recorded
// ones.
func (c *Completer) Rank(input string, candidates []string, limit int) []Match {
	ranked := c.matcher.Rank(input, candidates, 0)
	n := c.history.Len()
	for i := range ranked {
		if p := c.history.Position(ranked[i].Text); p >= 0 {
			ranked[i].Score += recentBonus * (n - p) / n
		}
	}
	sortMatches(ranked)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func sortMatches(ms []Match) {
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].Score != ms[j].Score {
			return ms[i].Score > ms[j].Score
		}
		return ms[i].Text < ms[j].Text
	})
}

func commonPrefix(names []string) string {
	if len(names) == 0 {
		return ""
	}
	p := names[0]
	for _, name := range names[1:] {
		for !strings.HasPrefix(name, p) {
			p = p[:len(p)-1]
		}
	}
	return p
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
