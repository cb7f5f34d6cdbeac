package chunker

import "bookchunk/internal/doctext"

// ByChapter assembles sentences into chunks bounded strictly by chapter
// changes, ignoring any token budget. The recorded sub-chapter title is the
// first non-absent sub-chapter context seen within the chapter's run;
// later sub-chapter changes do not subdivide the chunk or overwrite it.
func ByChapter(sentences []doctext.Sentence) []doctext.Chunk {
	var chunks []doctext.Chunk

	var cur []doctext.Sentence
	var chapter, subchapter string
	subRecorded := false

	flush := func() {
		if len(cur) == 0 {
			return
		}
		chunks = append(chunks, buildChunk(cur, chapter, subchapter))
		cur = nil
		subchapter = ""
		subRecorded = false
	}

	for _, s := range sentences {
		if len(cur) > 0 && s.Chapter != chapter {
			flush()
		}
		if len(cur) == 0 {
			chapter = s.Chapter
		}
		if !subRecorded && s.Subchapter != "" {
			subchapter = s.Subchapter
			subRecorded = true
		}
		cur = append(cur, s)
	}
	flush()

	return chunks
}
