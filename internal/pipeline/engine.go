package pipeline

import (
	"fmt"

	"bookchunk/internal/chunker"
	"bookchunk/internal/config"
	"bookchunk/internal/doctext"
	"bookchunk/internal/heading"
	"bookchunk/internal/segment"
	"bookchunk/internal/tokenizer"
	"bookchunk/internal/track"
)

// Chunking mode selects the boundary strategy.
const (
	ModeToken   = "token"
	ModeChapter = "chapter"
)

// Options are the per-run knobs a caller may override.
type Options struct {
	Mode             string `json:"mode"`
	TargetTokens     int    `json:"target_tokens"`
	OverlapSentences int    `json:"overlap_sentences"`
}

// Result carries the chunks plus intermediate counts for progress
// reporting.
type Result struct {
	Sentences int
	Chunks    []doctext.Chunk
}

// Engine binds the classifier, segmenter, tokenizer and chunker into
// one unit-sequence-to-chunks run. Annotation state is local to each
// Run call, so a single Engine is safe for concurrent use.
type Engine struct {
	classifier heading.Classifier
	seg        segment.Segmenter
	counter    tokenizer.Counter
	trackCfg   track.Config
	defaults   Options
}

// NewEngine builds an engine from service configuration.
func NewEngine(cfg config.Config) (*Engine, error) {
	counter, err := tokenizer.ForName(cfg.Tokenizer)
	if err != nil {
		return nil, fmt.Errorf("tokenizer %q: %w", cfg.Tokenizer, err)
	}
	return &Engine{
		classifier: heading.Classifier{
			Chapter: heading.Criteria{
				MinFontSize:       cfg.ChapterMinFontSize,
				AlignmentCentered: cfg.ChapterCentered,
			},
			Subchapter: heading.Criteria{
				MinFontSize:       cfg.SubchapterMinFontSize,
				AlignmentCentered: cfg.SubchapterCentered,
			},
		},
		seg: segment.Rule{},
		counter: counter,
		trackCfg: track.Config{
			FallbackChapter:     cfg.FallbackChapter,
			SplitMergedHeadings: cfg.SplitMergedHeadings,
		},
		defaults: Options{
			Mode:             ModeToken,
			TargetTokens:     cfg.TargetTokens,
			OverlapSentences: cfg.OverlapSentences,
		},
	}, nil
}

// Defaults returns the configured default run options.
func (e *Engine) Defaults() Options {
	return e.defaults
}

// Run annotates units with chapter context and chunks the resulting
// sentence stream. Zero-valued Options fields fall back to the
// configured defaults.
func (e *Engine) Run(units []doctext.Unit, opts Options) (Result, error) {
	if opts.Mode == "" {
		opts.Mode = e.defaults.Mode
	}
	if opts.TargetTokens <= 0 {
		opts.TargetTokens = e.defaults.TargetTokens
	}
	if opts.OverlapSentences < 0 {
		opts.OverlapSentences = 0
	}

	tracker := track.New(e.classifier, e.seg, e.trackCfg)
	sentences := tracker.Annotate(units)
	res := Result{Sentences: len(sentences)}

	switch opts.Mode {
	case ModeChapter:
		res.Chunks = chunker.ByChapter(sentences)
	case ModeToken:
		texts := make([]string, len(sentences))
		for i, s := range sentences {
			texts[i] = s.Text
		}
		counts, err := e.counter.CountBatch(texts)
		if err != nil {
			return res, fmt.Errorf("count tokens: %w", err)
		}
		chunks, err := chunker.ByTokens(sentences, counts, chunker.Config{
			TargetTokens:     opts.TargetTokens,
			OverlapSentences: opts.OverlapSentences,
		})
		if err != nil {
			return res, fmt.Errorf("chunk by tokens: %w", err)
		}
		res.Chunks = chunks
	default:
		return res, fmt.Errorf("unknown chunking mode %q", opts.Mode)
	}
	return res, nil
}
