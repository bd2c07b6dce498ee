// Package ingest runs fetch jobs and per-source batches: the write path
// from providers into the article store.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/domain"
	"github.com/newsdeck/newsdeck/internal/sources"
)

// levelCritical marks terminal job failures, one step above per-attempt
// errors.
const levelCritical = slog.LevelError + 4

const (
	DefaultMaxAttempts = 3
	DefaultJobTimeout  = 5 * time.Minute
)

// Job is one (source, category) fetch-and-store unit of work.
type Job struct {
	Source      sources.NewsSource
	Category    string
	Store       datasources.ArticleStorer
	MaxAttempts int
	Timeout     time.Duration
	FetchLimit  int
}

// Run executes the job with bounded retries. Provider-side failures are
// retried up to MaxAttempts; anything else is terminal on the first hit.
// Exhaustion fails only this unit; sibling jobs are unaffected.
func (j Job) Run(ctx context.Context) error {
	logger := domain.LoggerFromContext(ctx).With(
		"source", j.Source.Identifier(),
		"category", j.Category,
	)

	maxAttempts := j.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := j.runOnce(ctx, logger, attempt)
		if err == nil {
			return nil
		}
		lastErr = err

		var srcErr *sources.SourceError
		if !errors.As(err, &srcErr) {
			// Storage preconditions and context cancellation don't get
			// better on retry.
			break
		}

		logger.ErrorContext(ctx, "failed to fetch articles",
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"error", err,
		)

		if ctx.Err() != nil {
			break
		}
	}

	logger.Log(ctx, levelCritical, "news fetching job permanently failed", "error", lastErr)
	return lastErr
}

func (j Job) runOnce(ctx context.Context, logger *slog.Logger, attempt int) error {
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.InfoContext(ctx, "fetching articles", "attempt", attempt)

	articles, err := j.Source.FetchArticlesByCategory(ctx, j.Category, j.FetchLimit)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "fetched articles", "count", len(articles))

	stats, err := j.Store.StoreArticles(ctx, articles, j.Source.Identifier())
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "article storage completed",
		"created", stats.Created,
		"updated", stats.Updated,
		"failed", stats.Failed,
		"total", stats.Total,
	)
	return nil
}
