package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Piqzaa/HTML-to-Twig/internal/config"
	"github.com/Piqzaa/HTML-to-Twig/internal/convert"
)

// Orchestrator manages the batch conversion pipeline.
type Orchestrator struct {
	jobs   *JobStore
	queue  chan *Job
	cache  *ResultCache
	stats  *ConversionStats
	worker *Worker
	log    *slog.Logger
	cfg    config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to run workers.
func NewOrchestrator(cfg config.Config, log *slog.Logger) (*Orchestrator, error) {
	cache, err := NewResultCache(cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("result cache: %w", err)
	}
	stats := NewConversionStats(time.Hour)
	return &Orchestrator{
		jobs:   NewJobStore(cfg.JobTTL),
		queue:  make(chan *Job, cfg.MaxQueueSize),
		cache:  cache,
		stats:  stats,
		worker: NewWorker(cache, stats, log),
		log:    log,
		cfg:    cfg,
	}, nil
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.worker.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
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

// WithDefaults fills the layout and theme a request leaves empty from the
// server configuration.
func (o *Orchestrator) WithDefaults(req convert.Request) convert.Request {
	switch req.Target {
	case convert.TargetWordPress:
		if req.Theme == "" {
			req.Theme = o.cfg.DefaultTheme
		}
	default:
		if req.Layout == "" {
			req.Layout = o.cfg.DefaultLayout
		}
	}
	return req
}

// Convert runs one conversion on the caller's goroutine.
func (o *Orchestrator) Convert(filename string, data []byte, req convert.Request) (convert.Result, bool, error) {
	return o.worker.Convert(filename, data, o.WithDefaults(req))
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	job.Request = o.WithDefaults(job.Request)
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.AddError("queue full")
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

// Stats returns conversion counts and latency for the last hour, per target.
func (o *Orchestrator) Stats() StatsSnapshot {
	return o.stats.Snapshot()
}

// CacheLen returns the number of cached results.
func (o *Orchestrator) CacheLen() int {
	return o.cache.Len()
}
