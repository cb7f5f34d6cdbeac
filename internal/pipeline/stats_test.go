package pipeline

import (
	"testing"
	"time"
)

func TestEngineStatsSnapshotPercentiles(t *testing.T) {
	stats := NewEngineStats(time.Hour)
	stats.RecordRun(100*time.Millisecond, 10, 2)
	stats.RecordRun(200*time.Millisecond, 10, 2)
	stats.RecordRun(300*time.Millisecond, 10, 2)
	stats.RecordRun(400*time.Millisecond, 10, 2)
	stats.RecordRun(500*time.Millisecond, 10, 2)

	snap := stats.Snapshot()
	if snap.Documents != 5 {
		t.Fatalf("expected documents=5, got %d", snap.Documents)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.Sentences != 50 || snap.Chunks != 10 {
		t.Fatalf("unexpected counters sentences=%d chunks=%d", snap.Sentences, snap.Chunks)
	}
}

func TestEngineStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewEngineStats(10 * time.Millisecond)
	stats.RecordRun(100*time.Millisecond, 5, 1)
	time.Sleep(25 * time.Millisecond)

	snap := stats.Snapshot()
	if snap.Documents != 0 {
		t.Fatalf("expected documents=0 after prune, got %d", snap.Documents)
	}
	// Lifetime counters survive the latency window.
	if snap.Sentences != 5 || snap.Chunks != 1 {
		t.Fatalf("expected counters to survive prune, got %+v", snap)
	}
}

func TestEngineStatsFailures(t *testing.T) {
	stats := NewEngineStats(time.Hour)
	stats.RecordFailure()
	stats.RecordFailure()
	if got := stats.Snapshot().Failures; got != 2 {
		t.Fatalf("expected 2 failures, got %d", got)
	}
}
