// Package tokenizer counts tokens for chunk sizing. The token-bounded
// chunker is meaningless without counts, so counter failures propagate
// instead of being swallowed.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Counter computes token lengths for sentence texts.
type Counter interface {
	Count(text string) (int, error)
	CountBatch(texts []string) ([]int, error)
}

// Tiktoken counts BPE tokens using a tiktoken encoding.
type Tiktoken struct {
	encoding *tiktoken.Tiktoken
}

// NewTiktoken loads the named encoding (e.g. "cl100k_base").
func NewTiktoken(encoding string) (*Tiktoken, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer %q: %w", encoding, err)
	}
	return &Tiktoken{encoding: enc}, nil
}

func (t *Tiktoken) Count(text string) (int, error) {
	if t == nil || t.encoding == nil {
		return 0, fmt.Errorf("tokenizer not initialized")
	}
	return len(t.encoding.Encode(text, nil, nil)), nil
}

func (t *Tiktoken) CountBatch(texts []string) ([]int, error) {
	counts := make([]int, len(texts))
	for i, s := range texts {
		n, err := t.Count(s)
		if err != nil {
			return nil, fmt.Errorf("count sentence %d: %w", i, err)
		}
		counts[i] = n
	}
	return counts, nil
}

// ForName returns a counter by configured name. "words" selects the
// heuristic estimator; anything else is treated as a tiktoken encoding.
func ForName(name string) (Counter, error) {
	switch name {
	case "", "words", "estimate":
		return Estimator{}, nil
	default:
		return NewTiktoken(name)
	}
}
