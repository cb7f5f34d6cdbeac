package doctext

import "testing"

func TestClean_WhitespaceCollapse(t *testing.T) {
	got := Clean("  The   quick\n\tbrown\r\nfox  ")
	want := "The quick brown fox"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestClean_Ligatures(t *testing.T) {
	got := Clean("eﬃcient ﬁrst ﬂight")
	want := "efficient first flight"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestClean_LineBreakHyphenation(t *testing.T) {
	got := Clean("a remark-\nable exam-\nple")
	want := "a remarkable example"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestClean_HyphenBeforeCapitalKept(t *testing.T) {
	// "Jean-\nPaul" is a compound name, not hyphenation.
	got := Clean("Jean-\nPaul")
	want := "Jean- Paul"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestClean_SoftHyphenRemoved(t *testing.T) {
	got := Clean("cha­pter")
	if got != "chapter" {
		t.Errorf("expected %q, got %q", "chapter", got)
	}
}

func TestClean_Empty(t *testing.T) {
	if got := Clean(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if got := Clean("   \n  "); got != "" {
		t.Errorf("expected empty string for whitespace-only input, got %q", got)
	}
}

func TestParseAlignment(t *testing.T) {
	cases := map[string]Alignment{
		"left":    AlignLeft,
		"start":   AlignLeft,
		"right":   AlignRight,
		"center":  AlignCenter,
		"both":    AlignJustify,
		"justify": AlignJustify,
		"":        AlignUnset,
		"weird":   AlignUnset,
	}
	for in, want := range cases {
		if got := ParseAlignment(in); got != want {
			t.Errorf("ParseAlignment(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestMarker(t *testing.T) {
	if got := Marker(12, 3); got != "para12.s3" {
		t.Errorf("expected %q, got %q", "para12.s3", got)
	}
}
