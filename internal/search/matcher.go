package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// MatchRun tags one rune of a candidate name as matched or unmatched.
type MatchRun struct {
	Char    rune
	Matched bool
}

// Runs is the ordered per-rune breakdown of a successful match. It covers
// every rune of the candidate exactly once.
type Runs []MatchRun

// MatchSpan is the half-open rune range [Start, End) of consecutive matched runes.
type MatchSpan struct {
	Start int
	End   int
}

// Match tests whether filter is a case-insensitive, ordered subsequence of
// name. Matching is greedy: each filter rune takes the first equal rune at
// or after the cursor. ok is false when some filter rune is never found.
// An empty filter matches everything with no highlighted runes.
func Match(filter, name string) (runs Runs, ok bool) {
	runs = make(Runs, 0, utf8.RuneCountInString(name))
	rest := name

	for _, want := range filter {
		found := false
		for rest != "" {
			got, size := utf8.DecodeRuneInString(rest)
			rest = rest[size:]
			if equalFold(want, got) {
				runs = append(runs, MatchRun{Char: got, Matched: true})
				found = true
				break
			}
			runs = append(runs, MatchRun{Char: got})
		}
		if !found {
			return nil, false
		}
	}

	for _, r := range rest {
		runs = append(runs, MatchRun{Char: r})
	}
	return runs, true
}

func equalFold(a, b rune) bool {
	if a == b {
		return true
	}
	if a < utf8.RuneSelf && b < utf8.RuneSelf {
		return asciiLower(a) == asciiLower(b)
	}
	return unicode.ToUpper(a) == unicode.ToUpper(b) || unicode.ToLower(a) == unicode.ToLower(b)
}

func asciiLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// String reconstructs the candidate name.
func (r Runs) String() string {
	var b strings.Builder
	b.Grow(len(r))
	for _, run := range r {
		b.WriteRune(run.Char)
	}
	return b.String()
}

// MatchedCount returns the number of highlighted runes.
func (r Runs) MatchedCount() int {
	n := 0
	for _, run := range r {
		if run.Matched {
			n++
		}
	}
	return n
}

// Spans groups consecutive matched runes into merged rune ranges.
func (r Runs) Spans() []MatchSpan {
	var spans []MatchSpan
	for idx, run := range r {
		if !run.Matched {
			continue
		}
		if n := len(spans); n > 0 && spans[n-1].End == idx {
			spans[n-1].End = idx + 1
			continue
		}
		spans = append(spans, MatchSpan{Start: idx, End: idx + 1})
	}
	return spans
}

// Segment is a maximal group of runes sharing the same tag, used for
// rendering text runs.
type Segment struct {
	Text    string
	Matched bool
}

// Segments merges consecutive runs with the same tag. With an empty filter a
// name yields a single unmatched segment.
func (r Runs) Segments() []Segment {
	var segments []Segment
	var b strings.Builder
	for idx, run := range r {
		if idx > 0 && run.Matched != r[idx-1].Matched {
			segments = append(segments, Segment{Text: b.String(), Matched: r[idx-1].Matched})
			b.Reset()
		}
		b.WriteRune(run.Char)
	}
	if len(r) > 0 {
		segments = append(segments, Segment{Text: b.String(), Matched: r[len(r)-1].Matched})
	}
	return segments
}
