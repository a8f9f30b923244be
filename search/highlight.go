package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) of a text.
type Span struct {
	Start, End int
}

// MatchSpans returns the non-overlapping, case-insensitive occurrences of
// query in text, scanning left to right. Runes are compared one by one
// after lowercasing, so spans always fall on rune boundaries of text even
// when lowercasing changes byte lengths. A whitespace-only query matches
// nothing.
func MatchSpans(text, query string) []Span {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	var spans []Span
	for i := 0; i < len(text); {
		if end, ok := matchAt(text, i, query); ok {
			spans = append(spans, Span{Start: i, End: end})
			i = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return spans
}

// matchAt reports whether query matches text starting at byte offset i,
// and where the match ends.
func matchAt(text string, i int, query string) (int, bool) {
	j := i
	for _, q := range query {
		if j >= len(text) {
			return 0, false
		}
		t, size := utf8.DecodeRuneInString(text[j:])
		if unicode.ToLower(t) != unicode.ToLower(q) {
			return 0, false
		}
		j += size
	}
	return j, true
}

// Highlight wraps every span MatchSpans finds in text with the given markers.
func Highlight(text, query, startMarker, endMarker string) string {
	spans := MatchSpans(text, query)
	if len(spans) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, s := range spans {
		b.WriteString(text[last:s.Start])
		b.WriteString(startMarker)
		b.WriteString(text[s.Start:s.End])
		b.WriteString(endMarker)
		last = s.End
	}
	b.WriteString(text[last:])
	return b.String()
}
