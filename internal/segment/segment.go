// Package segment splits cleaned unit text into sentences. It is a
// collaborator of the context tracker, not part of the chunking policy:
// any segmenter that honors the single-element fallback can be swapped in.
package segment

import "strings"

// Segmenter splits text into sentences. Implementations must return at
// least the original text as a single element when they find no boundaries.
type Segmenter interface {
	Segment(text string) []string
}

// Func adapts a plain function to the Segmenter interface.
type Func func(text string) []string

func (f Func) Segment(text string) []string { return f(text) }

// Abbreviations that end with a period but do not end a sentence.
var abbreviations = map[string]bool{
	"mr":   true,
	"mrs":  true,
	"ms":   true,
	"dr":   true,
	"prof": true,
	"st":   true,
	"no":   true,
	"vol":  true,
	"etc":  true,
	"e.g":  true,
	"i.e":  true,
	"vs":   true,
	"fig":  true,
	"ch":   true,
	"p":    true,
	"pp":   true,
}

// Rule is the default rule-based segmenter: sentences end at '.', '!' or '?'
// followed by a space, unless the period belongs to a known abbreviation or
// a single initial.
type Rule struct{}

func (Rule) Segment(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		if i+1 >= len(runes) || runes[i+1] != ' ' {
			continue
		}
		if r == '.' && isAbbreviation(current.String()) {
			continue
		}
		s := strings.TrimSpace(current.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	if len(sentences) == 0 {
		return []string{text}
	}
	return sentences
}

func isAbbreviation(sofar string) bool {
	sofar = strings.TrimSuffix(sofar, ".")
	idx := strings.LastIndexAny(sofar, " \t")
	word := strings.ToLower(sofar[idx+1:])
	if abbreviations[word] {
		return true
	}
	// Single-letter initials such as "J." in "J. R. R. Tolkien".
	return len([]rune(word)) == 1
}

// Safe wraps a segmenter so that empty output for non-empty input, or a
// panicking implementation, degrades to the whole text as one sentence.
// Non-empty text is never dropped.
func Safe(s Segmenter, text string) (out []string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			out = []string{text}
		}
	}()
	out = s.Segment(text)
	if len(out) == 0 {
		out = []string{text}
	}
	return out
}
