package tokenizer

import "testing"

func TestEstimate_Empty(t *testing.T) {
	if got := Estimate(""); got != 0 {
		t.Errorf("expected 0 for empty text, got %d", got)
	}
}

func TestEstimate_NeverZeroForNonEmpty(t *testing.T) {
	if got := Estimate("hi"); got < 1 {
		t.Errorf("expected at least 1 token, got %d", got)
	}
}

func TestEstimate_ScalesWithWords(t *testing.T) {
	short := Estimate("one two three")
	long := Estimate("one two three four five six seven eight nine ten")
	if long <= short {
		t.Errorf("expected more tokens for longer text: short=%d long=%d", short, long)
	}
}

func TestEstimator_CountBatch(t *testing.T) {
	counts, err := Estimator{}.CountBatch([]string{"one two", "", "one two three four"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(counts) != 3 {
		t.Fatalf("expected 3 counts, got %d", len(counts))
	}
	if counts[1] != 0 {
		t.Errorf("expected 0 for empty text, got %d", counts[1])
	}
	if counts[2] <= counts[0] {
		t.Errorf("expected counts to grow with length: %v", counts)
	}
}

func TestForName_Estimator(t *testing.T) {
	for _, name := range []string{"", "words", "estimate"} {
		c, err := ForName(name)
		if err != nil {
			t.Fatalf("ForName(%q): unexpected error: %v", name, err)
		}
		if _, ok := c.(Estimator); !ok {
			t.Errorf("ForName(%q): expected Estimator, got %T", name, c)
		}
	}
}
