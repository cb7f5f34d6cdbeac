package pipeline

import (
	"testing"

	"bookchunk/internal/config"
	"bookchunk/internal/doctext"
)

func testConfig() config.Config {
	return config.Config{
		Tokenizer:             "words",
		TargetTokens:          300,
		OverlapSentences:      2,
		FallbackChapter:       "Introduction",
		ChapterMinFontSize:    20,
		ChapterCentered:       true,
		SubchapterMinFontSize: 14,
		SubchapterCentered:    true,
	}
}

func centeredUnit(seq int, text string, size float64) doctext.Unit {
	return doctext.Unit{
		Text:   text,
		Layout: doctext.Layout{MaxFontSize: size, Alignment: doctext.AlignCenter},
		Seq:    seq,
	}
}

func bodyUnit(seq int, text string) doctext.Unit {
	return doctext.Unit{
		Text:   text,
		Layout: doctext.Layout{MaxFontSize: 11, Alignment: doctext.AlignLeft},
		Seq:    seq,
	}
}

func TestEngine_RunChapterMode(t *testing.T) {
	engine, err := NewEngine(testConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	units := []doctext.Unit{
		bodyUnit(1, "Preamble before any heading."),
		centeredUnit(2, "The Journey", 24),
		bodyUnit(3, "First paragraph of the chapter. It has two sentences."),
	}

	res, err := engine.Run(units, Options{Mode: ModeChapter})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %+v", len(res.Chunks), res.Chunks)
	}
	if res.Chunks[0].Chapter != "Introduction" {
		t.Errorf("pre-heading chunk got chapter %q", res.Chunks[0].Chapter)
	}
	if res.Chunks[1].Chapter != "The Journey" {
		t.Errorf("post-heading chunk got chapter %q", res.Chunks[1].Chapter)
	}
	if res.Sentences != 4 {
		t.Errorf("expected 4 sentences (heading counts as one), got %d", res.Sentences)
	}
}

func TestEngine_RunTokenModeDefaults(t *testing.T) {
	engine, err := NewEngine(testConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	units := []doctext.Unit{
		bodyUnit(1, "A single short paragraph that fits in one chunk."),
	}

	res, err := engine.Run(units, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(res.Chunks))
	}
	if res.Chunks[0].StartMarker != "para1.s1" {
		t.Errorf("unexpected start marker %q", res.Chunks[0].StartMarker)
	}
}

func TestEngine_RunEmptyUnits(t *testing.T) {
	engine, err := NewEngine(testConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	res, err := engine.Run(nil, Options{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Chunks) != 0 {
		t.Errorf("expected no chunks for empty input, got %d", len(res.Chunks))
	}
}

func TestEngine_RunUnknownMode(t *testing.T) {
	engine, err := NewEngine(testConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if _, err := engine.Run(nil, Options{Mode: "paragraph"}); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestEngine_UnknownTokenizer(t *testing.T) {
	cfg := testConfig()
	cfg.Tokenizer = "no-such-encoding"
	if _, err := NewEngine(cfg); err == nil {
		t.Error("expected error for unknown tokenizer encoding")
	}
}
