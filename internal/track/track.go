// Package track walks the extracted unit sequence and produces the
// annotated sentence stream: every sentence stamped with the chapter and
// sub-chapter that are active at its position.
package track

import (
	"strings"

	"bookchunk/internal/doctext"
	"bookchunk/internal/heading"
	"bookchunk/internal/segment"
)

// DefaultFallbackChapter is the chapter assigned to text seen before any
// chapter heading.
const DefaultFallbackChapter = "Introduction"

// Config controls annotation behavior.
type Config struct {
	// FallbackChapter is the chapter title used before the first detected
	// chapter heading. Empty selects DefaultFallbackChapter.
	FallbackChapter string

	// SplitMergedHeadings enables the fix-up for segmenters that merge
	// trailing text of the previous paragraph with a sub-chapter title.
	// The heuristic is a substring search and can false-positive on short
	// titles, so it ships disabled.
	SplitMergedHeadings bool
}

// Tracker annotates unit sequences. It carries no running state itself;
// each Annotate call folds over its own local context, so one Tracker can
// serve concurrent documents.
type Tracker struct {
	classifier heading.Classifier
	seg        segment.Segmenter
	cfg        Config
}

func New(classifier heading.Classifier, seg segment.Segmenter, cfg Config) *Tracker {
	if cfg.FallbackChapter == "" {
		cfg.FallbackChapter = DefaultFallbackChapter
	}
	return &Tracker{classifier: classifier, seg: seg, cfg: cfg}
}

// Annotate converts units into the ordered annotated sentence stream.
// Units with empty cleaned text are skipped; non-empty text is never
// dropped, even when the segmenter misbehaves.
func (t *Tracker) Annotate(units []doctext.Unit) []doctext.Sentence {
	activeChapter := t.cfg.FallbackChapter
	activeSub := ""

	var out []doctext.Sentence
	for _, u := range units {
		text := strings.TrimSpace(u.Text)
		if text == "" {
			continue
		}

		kind, _ := t.classifier.Classify(u)

		title := text
		if u.Heading != "" {
			title = u.Heading
		}

		prevSub := activeSub
		switch kind {
		case heading.KindChapter:
			activeChapter = title
			activeSub = ""
		case heading.KindSubchapter:
			activeSub = title
		}

		sentences := segment.Safe(t.seg, text)
		for i, s := range sentences {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			marker := doctext.Marker(u.Seq, i+1)

			if kind == heading.KindSubchapter && t.cfg.SplitMergedHeadings {
				if pre, rest, ok := splitAtTitle(s, title); ok {
					out = append(out, doctext.Sentence{
						Text:       pre,
						Marker:     marker + "_pre",
						Chapter:    activeChapter,
						Subchapter: prevSub,
					})
					out = append(out, doctext.Sentence{
						Text:              rest,
						Marker:            marker,
						SubchapterHeading: true,
						Chapter:           activeChapter,
						Subchapter:        activeSub,
					})
					continue
				}
			}

			out = append(out, doctext.Sentence{
				Text:              s,
				Marker:            marker,
				ChapterHeading:    kind == heading.KindChapter,
				SubchapterHeading: kind == heading.KindSubchapter,
				Chapter:           activeChapter,
				Subchapter:        activeSub,
			})
		}
	}
	return out
}

// splitAtTitle splits a sentence that contains the just-detected heading
// title at a non-zero offset. A match at offset zero, or no match, means
// the sentence is left intact.
func splitAtTitle(sentence, title string) (pre, rest string, ok bool) {
	if title == "" {
		return "", "", false
	}
	idx := strings.Index(sentence, title)
	if idx <= 0 {
		return "", "", false
	}
	pre = strings.TrimSpace(sentence[:idx])
	rest = strings.TrimSpace(sentence[idx:])
	if pre == "" || rest == "" {
		return "", "", false
	}
	return pre, rest, true
}
