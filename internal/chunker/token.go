package chunker

import (
	"fmt"

	"bookchunk/internal/doctext"
)

// ByTokens assembles sentences into chunks capped by an approximate token
// budget, carrying a sentence-level overlap window between consecutive
// chunks. counts[i] must be the externally computed token length of
// sentences[i].Text. A context change (chapter or sub-chapter) always
// forces a boundary before the token budget is consulted; the incoming
// sentence then opens the next chunk and donates its context to it.
func ByTokens(sentences []doctext.Sentence, counts []int, cfg Config) ([]doctext.Chunk, error) {
	if len(sentences) != len(counts) {
		return nil, fmt.Errorf("sentences and token counts misaligned: %d vs %d", len(sentences), len(counts))
	}
	if cfg.TargetTokens <= 0 {
		cfg.TargetTokens = DefaultConfig().TargetTokens
	}
	if cfg.OverlapSentences < 0 {
		cfg.OverlapSentences = 0
	}

	var chunks []doctext.Chunk

	var cur []doctext.Sentence
	var curCounts []int
	curTokens := 0
	var chapter, subchapter string

	// Overlap window from the last closed chunk, materialized only when
	// another sentence actually arrives. A trailing window alone is never
	// emitted as a chunk of its own.
	var carry []doctext.Sentence
	var carryCounts []int

	closeCur := func(reason CloseReason) {
		if len(cur) == 0 {
			return
		}
		c := buildChunk(cur, chapter, subchapter)
		chunks = append(chunks, c)
		if cfg.Trace != nil {
			cfg.Trace(reason, c)
		}

		n := cfg.OverlapSentences
		if n > len(cur) {
			n = len(cur)
		}
		carry = append([]doctext.Sentence(nil), cur[len(cur)-n:]...)
		carryCounts = append([]int(nil), curCounts[len(curCounts)-n:]...)
		cur, curCounts, curTokens = nil, nil, 0
	}

	for i := range sentences {
		s := sentences[i]

		if len(cur) > 0 && (s.Chapter != chapter || s.Subchapter != subchapter) {
			closeCur(CloseContext)
		}

		if len(cur) == 0 {
			cur = append(cur, carry...)
			curCounts = append(curCounts, carryCounts...)
			for _, n := range carryCounts {
				curTokens += n
			}
			carry, carryCounts = nil, nil
			chapter, subchapter = s.Chapter, s.Subchapter
		}

		cur = append(cur, s)
		curCounts = append(curCounts, counts[i])
		curTokens += counts[i]

		if curTokens > cfg.TargetTokens {
			closeCur(CloseTokens)
		}
	}

	closeCur(CloseFlush)
	return chunks, nil
}
