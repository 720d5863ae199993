// Package complete ranks command names against partially typed minibuffer
// input.
//
// A Matcher scores candidates with a subsequence match: every query rune
// must appear in order. Consecutive runs, word starts after '-' and
// prefixes score higher; gaps and late first matches score lower.
//
// A Completer combines a Matcher with a most-recently-used History:
//
//	c := complete.New(complete.NewHistory(50))
//	text, ok := c.Complete("fwd-ch", registry.Names())
//	...
//	c.Record("forward-char")
//
// An empty input completes to the most recently recorded candidate.
package complete
