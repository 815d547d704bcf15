package empathy

import "strings"

// Sanitize strips the artifacts the model keeps sneaking into captions:
// emphasis markup, parenthetical asides (ASCII and full-width) and quote
// characters, then trims whitespace. Applied to every summarize result.
func Sanitize(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(', '（':
			depth++
		case ')', '）':
			if depth > 0 {
				depth--
			}
		case '*', '#', '`', '_':
			// markup noise
		case '"', '\'', '“', '”', '‘', '’', '「', '」', '『', '』':
			// quote characters
		default:
			if depth == 0 {
				b.WriteRune(r)
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// Generation stamps summarize requests so a slow early call cannot overwrite
// a fast later call's caption. Issue one before dispatching; Accept reports
// whether a resolved call is still the newest. Single-writer: both sides run
// on the TUI update loop.
type Generation struct {
	issued uint64
}

// Next issues a new generation number.
func (g *Generation) Next() uint64 {
	g.issued++
	return g.issued
}

// Accept reports whether gen is the most recently issued generation.
// Stale results must be dropped by the caller.
func (g *Generation) Accept(gen uint64) bool {
	return gen == g.issued
}
