package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/newsdeck/newsdeck/internal/app"
	"github.com/newsdeck/newsdeck/internal/config"
	"github.com/newsdeck/newsdeck/internal/domain"
	"github.com/newsdeck/newsdeck/internal/ingest"

	_ "github.com/joho/godotenv/autoload"
)

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func main() {
	var sourceSlugs, categorySlugs stringList
	flag.Var(&sourceSlugs, "source", "source slug to fetch; repeatable, all active sources when omitted")
	flag.Var(&categorySlugs, "category", "category slug to fetch; repeatable, all categories when omitted")
	maxRetry := flag.Int("max-retry", ingest.DefaultMaxAttempts, "maximum fetch attempts per job")
	timeout := flag.Int("timeout", 300, "per-job timeout in seconds")
	workers := flag.Int("workers", 1, "concurrent category fetches per source")
	schedule := flag.String("schedule", "", "cron expression; when set, fetch repeatedly instead of once")
	flag.Parse()

	ctx := context.Background()

	logger := app.SetupLogger()
	ctx = domain.ContextWithLogger(ctx, logger)

	if err := run(ctx, sourceSlugs, categorySlugs, *maxRetry, *timeout, *workers, *schedule); err != nil {
		logger.ErrorContext(ctx, "news fetching failed", "error", err)
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	sourceSlugs, categorySlugs []string,
	maxRetry, timeoutSeconds, workers int,
	schedule string,
) error {
	repo, err := app.SetupRepository(ctx)
	if err != nil {
		return err
	}

	cache, err := app.SetupCache(ctx)
	if err != nil {
		return err
	}

	catalogue, err := config.LoadSources(app.GetEnvAsStringWithDefault("SOURCES_CONFIG", ""))
	if err != nil {
		return fmt.Errorf("loading source catalogue: %w", err)
	}

	orchestrator := ingest.Orchestrator{
		Store:            repo,
		WorkersPerSource: workers,
		MaxAttempts:      maxRetry,
		Timeout:          time.Duration(timeoutSeconds) * time.Second,
	}

	fetchOnce := func(ctx context.Context) error {
		srcs, err := ingest.ResolveSources(ctx, repo, catalogue, cache, sourceSlugs)
		if err != nil {
			return fmt.Errorf("resolving sources: %w", err)
		}

		categories, err := ingest.ResolveCategories(ctx, repo, categorySlugs)
		if err != nil {
			return fmt.Errorf("resolving categories: %w", err)
		}

		_, err = orchestrator.Run(ctx, srcs, categories)
		return err
	}

	if schedule == "" {
		return fetchOnce(ctx)
	}

	return runScheduled(ctx, schedule, fetchOnce)
}

// runScheduled repeats the fetch on a cron schedule until interrupted.
func runScheduled(ctx context.Context, schedule string, fetchOnce func(context.Context) error) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := domain.LoggerFromContext(ctx)

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if err := fetchOnce(ctx); err != nil {
			logger.ErrorContext(ctx, "scheduled fetch failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule [%s]: %w", schedule, err)
	}

	logger.InfoContext(ctx, "starting scheduled fetching", "schedule", schedule)
	c.Start()
	<-ctx.Done()

	stopCtx := c.Stop()
	<-stopCtx.Done()
	return nil
}
