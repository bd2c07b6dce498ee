package ingest

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/domain"
	"github.com/newsdeck/newsdeck/internal/sources"
)

// Configuration errors; fail fast, never retried.
var (
	ErrNoSources    = errors.New("no news sources configured or available")
	ErrNoCategories = errors.New("no news categories configured")
)

// BatchResult summarizes one source's ingestion batch.
type BatchResult struct {
	Source     string
	TotalJobs  int
	FailedJobs int
	Elapsed    time.Duration
}

// Orchestrator fans ingestion out as one batch per source, each batch
// holding one job per category. Every source gets its own queue and
// workers, so a slow or rate-limited provider never starves the others.
type Orchestrator struct {
	Store datasources.ArticleStorer

	// WorkersPerSource bounds concurrent jobs inside one batch; 1 when
	// unset. Ordering between categories is never guaranteed.
	WorkersPerSource int

	MaxAttempts int
	Timeout     time.Duration
	FetchLimit  int
}

// Run dispatches all batches and waits for them. Individual job failures
// are absorbed into the batch counts; only empty source or category sets
// are errors.
func (o Orchestrator) Run(ctx context.Context, srcs []sources.NewsSource, categories []string) ([]BatchResult, error) {
	if len(srcs) == 0 {
		return nil, ErrNoSources
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}

	logger := domain.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "dispatching ingestion batches",
		"sources", len(srcs),
		"categories", len(categories),
	)

	results := make([]BatchResult, len(srcs))
	var wg sync.WaitGroup
	for i, src := range srcs {
		wg.Add(1)
		go func(i int, src sources.NewsSource) {
			defer wg.Done()
			results[i] = o.runBatch(ctx, src, categories)
		}(i, src)
	}
	wg.Wait()

	return results, nil
}

func (o Orchestrator) runBatch(ctx context.Context, src sources.NewsSource, categories []string) BatchResult {
	logger := domain.LoggerFromContext(ctx).With("source", src.Identifier())
	start := time.Now()

	workers := o.WorkersPerSource
	if workers <= 0 {
		workers = 1
	}

	queue := make(chan Job)
	var failed atomic.Int64

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				if err := job.Run(ctx); err != nil {
					failed.Add(1)
				}
			}
		}()
	}

	for _, category := range categories {
		queue <- Job{
			Source:      src,
			Category:    category,
			Store:       o.Store,
			MaxAttempts: o.MaxAttempts,
			Timeout:     o.Timeout,
			FetchLimit:  o.FetchLimit,
		}
	}
	close(queue)
	wg.Wait()

	result := BatchResult{
		Source:     src.Identifier(),
		TotalJobs:  len(categories),
		FailedJobs: int(failed.Load()),
		Elapsed:    time.Since(start),
	}

	logger.InfoContext(ctx, "batch processing completed",
		"total_jobs", result.TotalJobs,
		"failed_jobs", result.FailedJobs,
		"elapsed", result.Elapsed.String(),
	)
	return result
}
