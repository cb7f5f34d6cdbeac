package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bookchunk/internal/doctext"
	"bookchunk/internal/extract"
	"bookchunk/internal/sink"
)

// Worker processes a single chunking job.
type Worker struct {
	engine      *Engine
	sink        *sink.Client
	stats       *EngineStats
	log         *slog.Logger
	pdfFallback bool
}

func NewWorker(engine *Engine, sc *sink.Client, stats *EngineStats, log *slog.Logger, pdfFallback bool) *Worker {
	return &Worker{
		engine:      engine,
		sink:        sc,
		stats:       stats,
		log:         log,
		pdfFallback: pdfFallback,
	}
}

// Process runs the full pipeline for a job: parse, annotate, chunk,
// deliver. A malformed file is recorded and yields an empty chunk
// list; an unsupported extension fails the job outright.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)
	started := time.Now()

	job.SetStatus(StatusParsing, "parsing")
	ex, err := extract.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "filename", job.Filename, "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		w.stats.RecordFailure()
		return
	}
	if pe, isPDF := ex.(*extract.PDFExtractor); isPDF {
		pe.FallbackPdftotext = w.pdfFallback
	}

	var units []doctext.Unit
	parseFailed := false
	units, err = ex.Extract(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("extraction failed", "filename", job.Filename, "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		parseFailed = true
		units = nil
	}

	job.SetStatus(StatusAnnotating, "annotating")
	res, err := w.engine.Run(units, job.Options)
	if err != nil {
		log.Error("engine run failed", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "chunking")
		w.stats.RecordFailure()
		return
	}
	job.SetCounts(len(units), res.Sentences)

	job.SetStatus(StatusChunking, "chunking")
	job.SetChunks(res.Chunks)
	log.Info("chunked document", "units", len(units), "sentences", res.Sentences, "chunks", len(res.Chunks))

	delivered, deliveryFailed := w.deliver(ctx, job, log)

	w.stats.RecordRun(time.Since(started), res.Sentences, len(res.Chunks))
	switch {
	case deliveryFailed && !delivered:
		job.SetStatus(StatusFailed, "delivering")
		w.stats.RecordFailure()
	case parseFailed || deliveryFailed:
		job.SetStatus(StatusPartial, "done")
	default:
		job.SetStatus(StatusCompleted, "done")
	}
}

// deliver pushes the chunk batch to the sink, retrying transient
// failures. Reports (delivered, failed); both false when no sink is
// configured or there is nothing to send.
func (w *Worker) deliver(ctx context.Context, job *Job, log *slog.Logger) (bool, bool) {
	if w.sink == nil || len(job.Chunks()) == 0 {
		return false, false
	}

	job.SetStatus(StatusDelivering, "delivering")
	req := sink.PutRequest{Chunks: job.Chunks(), Source: job.Filename}

	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		lastErr = w.sink.PutChunks(ctx, job.DocID, req)
		if lastErr == nil {
			return true, false
		}
		if !sink.IsRetryable(lastErr) {
			break
		}
		log.Warn("retryable delivery error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			lastErr = ctx.Err()
		}
		if errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
			break
		}
	}
	log.Error("delivery failed", "error", lastErr)
	job.AddError(fmt.Sprintf("deliver: %s", lastErr))
	return false, true
}
