package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"bookchunk/internal/config"
	"bookchunk/internal/sink"
)

// Orchestrator manages the async chunking pipeline.
type Orchestrator struct {
	jobs   *JobStore
	queue  chan *Job
	engine *Engine
	sink   *sink.Client
	stats  *EngineStats
	log    *slog.Logger
	cfg    config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Pass a nil sink client to
// keep chunks in the job store only.
func NewOrchestrator(cfg config.Config, engine *Engine, sc *sink.Client, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:   NewJobStore(cfg.JobTTL),
		queue:  make(chan *Job, cfg.MaxQueueSize),
		engine: engine,
		sink:   sc,
		stats:  NewEngineStats(time.Hour),
		log:    log,
		cfg:    cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.engine, o.sink, o.stats, o.log, o.cfg.PDFFallbackPdftotext)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// NewJob builds a queued job with a fresh ULID and the content hash
// of the uploaded bytes as the default document ID.
func (o *Orchestrator) NewJob(filename, docID string, data []byte, opts Options) *Job {
	hash := ContentHashHex(data)
	if docID == "" {
		docID = hash
	}
	now := time.Now()
	job := &Job{
		ID:          generateULID(),
		DocID:       docID,
		Status:      StatusQueued,
		Phase:       "queued",
		Filename:    filename,
		Options:     opts,
		ContentHash: hash,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	job.SetFileData(data)
	return job
}

// Submit queues a job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Engine returns the shared engine for synchronous use by handlers.
func (o *Orchestrator) Engine() *Engine {
	return o.engine
}

// Stats returns the engine stats collector.
func (o *Orchestrator) Stats() *EngineStats {
	return o.stats
}
