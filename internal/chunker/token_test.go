package chunker

import (
	"reflect"
	"strings"
	"testing"

	"bookchunk/internal/doctext"
)

func sent(text, marker, chapter, sub string) doctext.Sentence {
	return doctext.Sentence{Text: text, Marker: marker, Chapter: chapter, Subchapter: sub}
}

func TestByTokens_OverlapScenario(t *testing.T) {
	// Four sentences of 80 tokens each, budget 150, one-sentence overlap:
	// {1,2}, {2,3}, {3,4}.
	sentences := []doctext.Sentence{
		sent("S1", "para1.s1", "Ch", ""),
		sent("S2", "para2.s1", "Ch", ""),
		sent("S3", "para3.s1", "Ch", ""),
		sent("S4", "para4.s1", "Ch", ""),
	}
	counts := []int{80, 80, 80, 80}

	chunks, err := ByTokens(sentences, counts, Config{TargetTokens: 150, OverlapSentences: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []doctext.Chunk{
		{Text: "S1 S2", StartMarker: "para1.s1", Chapter: "Ch"},
		{Text: "S2 S3", StartMarker: "para2.s1", Chapter: "Ch"},
		{Text: "S3 S4", StartMarker: "para3.s1", Chapter: "Ch"},
	}
	if !reflect.DeepEqual(chunks, want) {
		t.Errorf("expected %v, got %v", want, chunks)
	}

	// The overlap sentence's text appears in both adjacent chunks.
	if !strings.Contains(chunks[0].Text, "S2") || !strings.Contains(chunks[1].Text, "S2") {
		t.Error("overlap sentence S2 must appear in chunks 0 and 1")
	}
}

func TestByTokens_EmptyInput(t *testing.T) {
	chunks, err := ByTokens(nil, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 0 {
		t.Errorf("expected no chunks, got %d", len(chunks))
	}
}

func TestByTokens_MisalignedCounts(t *testing.T) {
	_, err := ByTokens([]doctext.Sentence{sent("S", "para1.s1", "Ch", "")}, nil, DefaultConfig())
	if err == nil {
		t.Fatal("expected error for misaligned counts")
	}
}

func TestByTokens_OversizedSentenceStillEmitted(t *testing.T) {
	sentences := []doctext.Sentence{sent("huge", "para1.s1", "Ch", "")}
	chunks, err := ByTokens(sentences, []int{999}, Config{TargetTokens: 150, OverlapSentences: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "huge" {
		t.Errorf("oversized sentence must not be split or dropped, got %q", chunks[0].Text)
	}
}

func TestByTokens_ContextChangeForcesBoundary(t *testing.T) {
	// Token budget is far from reached; the chapter change alone splits.
	sentences := []doctext.Sentence{
		sent("A1", "para1.s1", "One", ""),
		sent("A2", "para2.s1", "One", ""),
		sent("B1", "para3.s1", "Two", ""),
	}
	counts := []int{5, 5, 5}

	chunks, err := ByTokens(sentences, counts, Config{TargetTokens: 1000, OverlapSentences: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if chunks[0].Chapter != "One" || chunks[0].Text != "A1 A2" {
		t.Errorf("unexpected first chunk %+v", chunks[0])
	}
	// The triggering sentence opens the next chunk with its own context.
	if chunks[1].Chapter != "Two" || chunks[1].StartMarker != "para3.s1" {
		t.Errorf("unexpected second chunk %+v", chunks[1])
	}
}

func TestByTokens_SubchapterChangeForcesBoundary(t *testing.T) {
	sentences := []doctext.Sentence{
		sent("A", "para1.s1", "Ch", "Sub1"),
		sent("B", "para2.s1", "Ch", "Sub2"),
	}
	chunks, err := ByTokens(sentences, []int{1, 1}, Config{TargetTokens: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Subchapter != "Sub1" || chunks[1].Subchapter != "Sub2" {
		t.Errorf("unexpected subchapters: %q, %q", chunks[0].Subchapter, chunks[1].Subchapter)
	}
}

func TestByTokens_FirstChunkContextFromFirstSentence(t *testing.T) {
	sentences := []doctext.Sentence{sent("A", "para1.s1", "Intro", "Sub")}
	chunks, err := ByTokens(sentences, []int{3}, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chunks[0].Chapter != "Intro" || chunks[0].Subchapter != "Sub" {
		t.Errorf("expected first sentence's context, got %+v", chunks[0])
	}
}

func TestByTokens_Idempotent(t *testing.T) {
	sentences := []doctext.Sentence{
		sent("S1", "para1.s1", "Ch", ""),
		sent("S2", "para2.s1", "Ch", ""),
		sent("S3", "para3.s1", "Ch", ""),
	}
	counts := []int{60, 60, 60}
	cfg := Config{TargetTokens: 100, OverlapSentences: 1}

	first, err := ByTokens(sentences, counts, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ByTokens(sentences, counts, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-running produced different chunks:\n%v\n%v", first, second)
	}
}

func TestByTokens_ReconstructionWithOverlapsRemoved(t *testing.T) {
	sentences := []doctext.Sentence{
		sent("alpha", "para1.s1", "Ch", ""),
		sent("bravo", "para1.s2", "Ch", ""),
		sent("charlie", "para2.s1", "Ch", ""),
		sent("delta", "para3.s1", "Ch", ""),
		sent("echo", "para4.s1", "Ch", ""),
	}
	counts := []int{40, 40, 40, 40, 40}
	overlap := 1

	chunks, err := ByTokens(sentences, counts, Config{TargetTokens: 75, OverlapSentences: overlap})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Strip the declared overlap from every chunk after the first, then
	// concatenate: the original sentence sequence must come back.
	var rebuilt []string
	for i, c := range chunks {
		words := strings.Fields(c.Text)
		if i > 0 {
			words = words[overlap:]
		}
		rebuilt = append(rebuilt, words...)
	}
	want := []string{"alpha", "bravo", "charlie", "delta", "echo"}
	if !reflect.DeepEqual(rebuilt, want) {
		t.Errorf("reconstruction mismatch: expected %v, got %v (chunks %v)", want, rebuilt, chunks)
	}
}

func TestByTokens_TraceReportsCloseReasons(t *testing.T) {
	sentences := []doctext.Sentence{
		sent("A", "para1.s1", "One", ""),
		sent("B", "para2.s1", "Two", ""),
	}
	var reasons []CloseReason
	cfg := Config{
		TargetTokens:     1000,
		OverlapSentences: 0,
		Trace: func(r CloseReason, _ doctext.Chunk) {
			reasons = append(reasons, r)
		},
	}
	if _, err := ByTokens(sentences, []int{1, 1}, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []CloseReason{CloseContext, CloseFlush}
	if !reflect.DeepEqual(reasons, want) {
		t.Errorf("expected reasons %v, got %v", want, reasons)
	}
}
