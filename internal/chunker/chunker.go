// Package chunker assembles annotated sentences into retrieval-ready
// chunks. Two strategies exist: a token-budgeted sliding window with
// sentence overlap, and strict chapter-boundary segmentation.
package chunker

import (
	"strings"

	"bookchunk/internal/doctext"
)

// CloseReason records why a chunk was closed. Diagnostics only; it never
// changes the chunk output.
type CloseReason string

const (
	CloseContext CloseReason = "context"
	CloseTokens  CloseReason = "tokens"
	CloseFlush   CloseReason = "flush"
)

// Config controls token-bounded chunking.
type Config struct {
	// TargetTokens is the approximate token budget per chunk. It is a
	// target, not a hard cap: a chunk closes after the sentence that
	// pushes it over the budget, and a single oversized sentence still
	// forms its own chunk.
	TargetTokens int

	// OverlapSentences is how many trailing sentences of a closed chunk
	// are re-included at the start of the next one.
	OverlapSentences int

	// Trace, when set, receives each emitted chunk with its close reason.
	Trace func(reason CloseReason, c doctext.Chunk)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		TargetTokens:     300,
		OverlapSentences: 2,
	}
}

func buildChunk(sentences []doctext.Sentence, chapter, subchapter string) doctext.Chunk {
	texts := make([]string, len(sentences))
	for i, s := range sentences {
		texts[i] = s.Text
	}
	return doctext.Chunk{
		Text:        strings.Join(texts, " "),
		StartMarker: sentences[0].Marker,
		Chapter:     chapter,
		Subchapter:  subchapter,
	}
}
