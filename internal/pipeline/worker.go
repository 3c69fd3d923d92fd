package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Piqzaa/HTML-to-Twig/internal/convert"
	"github.com/Piqzaa/HTML-to-Twig/internal/metrics"
)

// Worker converts files, consulting the shared cache and recording
// outcomes. A Worker holds no per-job state and is safe to share.
type Worker struct {
	cache *ResultCache
	stats *ConversionStats
	log   *slog.Logger
}

func NewWorker(cache *ResultCache, stats *ConversionStats, log *slog.Logger) *Worker {
	return &Worker{cache: cache, stats: stats, log: log}
}

// Convert converts one file. The boolean reports a cache hit.
func (w *Worker) Convert(filename string, data []byte, req convert.Request) (convert.Result, bool, error) {
	key := CacheKey(filename, data, req)
	if res, ok := w.cache.Get(key, req); ok {
		metrics.ObserveCacheHit(string(req.Target))
		w.stats.CacheHit(req.Target)
		return res, true, nil
	}

	start := time.Now()
	res, err := convert.File(filename, data, req)
	elapsed := time.Since(start)
	metrics.ObserveConversion(string(req.Target), elapsed, res.Report, err)
	if err != nil {
		w.stats.Failed(req.Target)
		return convert.Result{}, false, err
	}
	w.stats.Converted(req.Target, elapsed)
	w.cache.Put(key, res)
	return res, false, nil
}

// Process runs a queued job to completion.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "batch_id", job.BatchID, "filename", job.Filename)

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "cancelled")
		return
	}

	job.SetStatus(StatusConverting, "converting")
	data := job.FileData()
	job.SetContentHash(ContentHashHex(data))

	res, cached, err := w.Convert(job.Filename, data, job.Request)
	if err != nil {
		log.Error("conversion failed", "error", err)
		job.AddError(fmt.Sprintf("convert: %s", err))
		job.SetStatus(StatusFailed, "converting")
		return
	}

	job.SetResult(res, cached)
	for _, warning := range res.Report.Warnings {
		log.Warn("conversion warning", "warning", warning)
	}
	log.Info("conversion complete",
		"target", job.Request.Target,
		"cached", cached,
		"assets", len(res.Report.Assets),
		"loops", len(res.Report.Loops))
	job.SetStatus(StatusCompleted, "done")
}
