package doctext

import "fmt"

// Alignment is the horizontal alignment reported for a text unit.
type Alignment int

const (
	AlignUnset Alignment = iota
	AlignLeft
	AlignRight
	AlignCenter
	AlignJustify
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	case AlignJustify:
		return "justify"
	default:
		return "unset"
	}
}

// ParseAlignment maps common alignment names (including OOXML justification
// values) onto the enum. Unknown values map to AlignUnset.
func ParseAlignment(s string) Alignment {
	switch s {
	case "left", "start":
		return AlignLeft
	case "right", "end":
		return AlignRight
	case "center", "centre":
		return AlignCenter
	case "justify", "both", "distribute":
		return AlignJustify
	default:
		return AlignUnset
	}
}

// Layout carries the per-unit layout properties the extractors report.
type Layout struct {
	MaxFontSize float64 // Largest font size in the unit, in points (0 if unknown).
	Alignment   Alignment
}

// Unit is one paragraph or PDF text block, immutable once extracted.
type Unit struct {
	Raw     string // Text as extracted, before cleaning.
	Text    string // Cleaned text (whitespace-normalized, de-hyphenated, ligatures fixed).
	Layout  Layout
	Seq     int    // 1-based position within the document, strictly increasing.
	Heading string // Heading title reported by the extractor, if it found one embedded in the block.
}

// Sentence is the atomic unit consumed by the chunkers.
type Sentence struct {
	Text              string
	Marker            string // "para{seq}.s{n}", unique and order-preserving.
	ChapterHeading    bool
	SubchapterHeading bool
	Chapter           string // Active chapter title; never empty.
	Subchapter        string // Active sub-chapter title; empty means absent.
}

// SameContext reports whether two sentences share chapter and sub-chapter.
func (s Sentence) SameContext(o Sentence) bool {
	return s.Chapter == o.Chapter && s.Subchapter == o.Subchapter
}

// Chunk is a sized text segment with its structural context.
type Chunk struct {
	Text        string `json:"text"`
	StartMarker string `json:"start_marker"`
	Chapter     string `json:"chapter"`
	Subchapter  string `json:"subchapter,omitempty"`
}

// Marker builds the canonical sentence marker for a unit/sentence pair.
func Marker(seq, local int) string {
	return fmt.Sprintf("para%d.s%d", seq, local)
}
