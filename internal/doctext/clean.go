package doctext

import (
	"strings"
	"unicode"
)

// Typographic ligatures that PDF text extraction leaves in place.
var ligatures = strings.NewReplacer(
	"ﬀ", "ff",
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
	"ﬅ", "st",
	"ﬆ", "st",
)

// Clean normalizes extracted unit text: ligature expansion, removal of soft
// hyphens, joining of line-break hyphenation, and whitespace collapsing.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = ligatures.Replace(s)
	s = strings.ReplaceAll(s, "­", "") // soft hyphen

	s = joinHyphenation(s)

	// Collapse all runs of whitespace (including newlines) to single spaces.
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}

// joinHyphenation merges words split across line breaks ("exam-\nple").
// A hyphen directly before a line break followed by a lowercase letter is
// treated as hyphenation; anything else is left alone.
func joinHyphenation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '-' && i+1 < len(runes) && (runes[i+1] == '\n' || runes[i+1] == '\r') {
			j := i + 1
			for j < len(runes) && unicode.IsSpace(runes[j]) {
				j++
			}
			if j < len(runes) && unicode.IsLower(runes[j]) {
				i = j - 1 // drop hyphen and the break
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
