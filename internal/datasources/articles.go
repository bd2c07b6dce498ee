package datasources

import (
	"context"

	"github.com/newsdeck/newsdeck/internal/domain"
)

// ArticleStorer idempotently persists canonical articles for one source.
// The call always completes with stats; per-article failures are counted,
// not raised. Only an unknown source fails the whole call.
type ArticleStorer interface {
	StoreArticles(ctx context.Context, articles []domain.Article, sourceSlug string) (domain.IngestStats, error)
}

// ArticleSearcher runs the filtered, ordered, paginated read path.
// A nil prefs disables preference ranking and applies the explicit sort.
type ArticleSearcher interface {
	SearchArticles(
		ctx context.Context,
		filters domain.SearchFilters,
		prefs *domain.PreferenceSet,
		options domain.SearchOptions,
	) (domain.ArticlePage, error)
}

// LatestArticleLister serves the RSS feed's read path.
type LatestArticleLister interface {
	ListLatestArticles(ctx context.Context, limit int) ([]domain.Article, error)
}
