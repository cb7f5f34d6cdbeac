package chunker

import (
	"reflect"
	"testing"

	"bookchunk/internal/doctext"
)

func TestByChapter_BoundaryScenario(t *testing.T) {
	sentences := []doctext.Sentence{
		{Text: "Title A", Marker: "para1.s1", ChapterHeading: true, Chapter: "Title A"},
		{Text: "Body 1", Marker: "para2.s1", Chapter: "Title A"},
		{Text: "Body 2", Marker: "para3.s1", Chapter: "Title A"},
		{Text: "Title B", Marker: "para4.s1", ChapterHeading: true, Chapter: "Title B"},
		{Text: "Body 3", Marker: "para5.s1", Chapter: "Title B"},
	}

	chunks := ByChapter(sentences)
	want := []doctext.Chunk{
		{Text: "Title A Body 1 Body 2", StartMarker: "para1.s1", Chapter: "Title A"},
		{Text: "Title B Body 3", StartMarker: "para4.s1", Chapter: "Title B"},
	}
	if !reflect.DeepEqual(chunks, want) {
		t.Errorf("expected %v, got %v", want, chunks)
	}
}

func TestByChapter_EverySentenceMatchesChunkChapter(t *testing.T) {
	sentences := []doctext.Sentence{
		{Text: "Pre", Marker: "para1.s1", Chapter: "Introduction"},
		{Text: "C1", Marker: "para2.s1", ChapterHeading: true, Chapter: "One"},
		{Text: "B1", Marker: "para3.s1", Chapter: "One"},
		{Text: "C2", Marker: "para4.s1", ChapterHeading: true, Chapter: "Two"},
	}
	chunks := ByChapter(sentences)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	// Re-derive each chunk's sentences and check the recorded chapter.
	byMarker := map[string]doctext.Sentence{}
	for _, s := range sentences {
		byMarker[s.Marker] = s
	}
	for _, c := range chunks {
		if byMarker[c.StartMarker].Chapter != c.Chapter {
			t.Errorf("chunk starting at %s: chapter %q does not match sentence context %q",
				c.StartMarker, c.Chapter, byMarker[c.StartMarker].Chapter)
		}
	}
}

func TestByChapter_FirstSubchapterRecorded(t *testing.T) {
	sentences := []doctext.Sentence{
		{Text: "C1", Marker: "para1.s1", ChapterHeading: true, Chapter: "One"},
		{Text: "intro", Marker: "para2.s1", Chapter: "One"},
		{Text: "S1", Marker: "para3.s1", SubchapterHeading: true, Chapter: "One", Subchapter: "First"},
		{Text: "S2", Marker: "para4.s1", SubchapterHeading: true, Chapter: "One", Subchapter: "Second"},
		{Text: "tail", Marker: "para5.s1", Chapter: "One", Subchapter: "Second"},
	}
	chunks := ByChapter(sentences)
	if len(chunks) != 1 {
		t.Fatalf("sub-chapter changes must not subdivide: expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Subchapter != "First" {
		t.Errorf("expected first sub-chapter of the run, got %q", chunks[0].Subchapter)
	}
}

func TestByChapter_SubchapterResetBetweenChapters(t *testing.T) {
	sentences := []doctext.Sentence{
		{Text: "A", Marker: "para1.s1", Chapter: "One", Subchapter: "Sub"},
		{Text: "B", Marker: "para2.s1", Chapter: "Two"},
	}
	chunks := ByChapter(sentences)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Subchapter != "Sub" {
		t.Errorf("expected %q, got %q", "Sub", chunks[0].Subchapter)
	}
	if chunks[1].Subchapter != "" {
		t.Errorf("second chapter must not inherit the previous sub-chapter, got %q", chunks[1].Subchapter)
	}
}

func TestByChapter_Empty(t *testing.T) {
	if chunks := ByChapter(nil); len(chunks) != 0 {
		t.Errorf("expected no chunks, got %d", len(chunks))
	}
}

func TestByChapter_Idempotent(t *testing.T) {
	sentences := []doctext.Sentence{
		{Text: "A", Marker: "para1.s1", Chapter: "One"},
		{Text: "B", Marker: "para2.s1", Chapter: "Two"},
		{Text: "C", Marker: "para3.s1", Chapter: "Two"},
	}
	first := ByChapter(sentences)
	second := ByChapter(sentences)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-running produced different chunks:\n%v\n%v", first, second)
	}
}
