// Package heading decides whether a text unit is a chapter or sub-chapter
// title based on its layout properties.
package heading

import (
	"fmt"

	"bookchunk/internal/doctext"
)

// Criteria configures one heading level. A criteria set with MinFontSize
// unset (<= 0) or AlignmentCentered false is inert and matches nothing.
type Criteria struct {
	MinFontSize       float64
	AlignmentCentered bool
}

// Inert reports whether the criteria can never match.
func (c Criteria) Inert() bool {
	return c.MinFontSize <= 0 || !c.AlignmentCentered
}

// Classify checks a single cleaned unit text against one criteria set.
// The reason names the first failing check, or confirms the match.
func Classify(text string, layout doctext.Layout, c Criteria) (bool, string) {
	if text == "" {
		return false, "empty text"
	}
	if c.Inert() {
		return false, "criteria inert"
	}
	if layout.MaxFontSize < c.MinFontSize {
		return false, fmt.Sprintf("font size %.1fpt below minimum %.1fpt", layout.MaxFontSize, c.MinFontSize)
	}
	if layout.Alignment != doctext.AlignCenter {
		return false, fmt.Sprintf("alignment %s is not centered", layout.Alignment)
	}
	return true, fmt.Sprintf("font size %.1fpt >= %.1fpt and centered", layout.MaxFontSize, c.MinFontSize)
}

// Kind is the heading classification of a unit.
type Kind int

const (
	KindNone Kind = iota
	KindChapter
	KindSubchapter
)

func (k Kind) String() string {
	switch k {
	case KindChapter:
		return "chapter"
	case KindSubchapter:
		return "subchapter"
	default:
		return "none"
	}
}

// Classifier holds the two criteria sets for a run. Chapter criteria are
// always evaluated first; a chapter match short-circuits the sub-chapter
// check, so the two kinds are mutually exclusive.
type Classifier struct {
	Chapter    Criteria
	Subchapter Criteria
}

// Classify returns the heading kind of a unit and a diagnostic reason.
func (cl Classifier) Classify(u doctext.Unit) (Kind, string) {
	if ok, reason := Classify(u.Text, u.Layout, cl.Chapter); ok {
		return KindChapter, "chapter: " + reason
	}
	// Sub-chapter criteria at least as strong as chapter criteria would make
	// chapters unreachable; refuse them unless chapter criteria are inert.
	if !cl.Chapter.Inert() && !cl.Subchapter.Inert() && cl.Subchapter.MinFontSize >= cl.Chapter.MinFontSize {
		return KindNone, fmt.Sprintf("subchapter minimum %.1fpt not below chapter minimum %.1fpt",
			cl.Subchapter.MinFontSize, cl.Chapter.MinFontSize)
	}
	ok, reason := Classify(u.Text, u.Layout, cl.Subchapter)
	if ok {
		return KindSubchapter, "subchapter: " + reason
	}
	return KindNone, reason
}
