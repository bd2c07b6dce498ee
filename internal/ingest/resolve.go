package ingest

import (
	"context"
	"slices"

	"github.com/newsdeck/newsdeck/internal/config"
	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/domain"
	"github.com/newsdeck/newsdeck/internal/sources"
)

// ResolveSources builds adapters for the active sources, optionally
// restricted to the requested slugs. Sources without a shipped adapter are
// skipped with a warning rather than failing the run.
func ResolveSources(
	ctx context.Context,
	lister datasources.ActiveSourceLister,
	catalogue *config.Sources,
	cache datasources.Cache,
	requested []string,
) ([]sources.NewsSource, error) {
	records, err := lister.ListActiveSources(ctx)
	if err != nil {
		return nil, err
	}

	logger := domain.LoggerFromContext(ctx)

	var resolved []sources.NewsSource
	for _, record := range records {
		if len(requested) > 0 && !slices.Contains(requested, record.Slug) {
			continue
		}

		adapter, err := sources.ForSource(record, catalogue, cache)
		if err != nil {
			logger.WarnContext(ctx, "skipping source without adapter",
				"source", record.Slug,
				"error", err,
			)
			continue
		}
		resolved = append(resolved, adapter)
	}

	return resolved, nil
}

// ResolveCategories returns the canonical category slugs to fetch,
// optionally restricted to the requested subset.
func ResolveCategories(
	ctx context.Context,
	lister datasources.CategoryLister,
	requested []string,
) ([]string, error) {
	records, err := lister.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	var resolved []string
	for _, record := range records {
		if len(requested) > 0 && !slices.Contains(requested, record.Slug) {
			continue
		}
		resolved = append(resolved, record.Slug)
	}

	return resolved, nil
}
