package command

import (
	"context"
	"fmt"

	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/domain"
)

// SearchArticlesRequest carries the validated filters and pagination for an
// article search. UserID is empty for anonymous requests.
type SearchArticlesRequest struct {
	UserID  string
	Filters domain.SearchFilters
	Options domain.SearchOptions
}

// SearchArticles runs an article search, ranking by the user's saved
// preferences when they have any.
type SearchArticles struct {
	Searcher          datasources.ArticleSearcher
	PreferenceFetcher datasources.PreferenceSetGetter
}

func NewSearchArticles(
	searcher datasources.ArticleSearcher,
	preferenceFetcher datasources.PreferenceSetGetter,
) *SearchArticles {
	return &SearchArticles{
		Searcher:          searcher,
		PreferenceFetcher: preferenceFetcher,
	}
}

func (c *SearchArticles) Execute(ctx context.Context, req SearchArticlesRequest) (domain.ArticlePage, error) {
	prefs, err := c.loadPreferences(ctx, req.UserID)
	if err != nil {
		return domain.ArticlePage{}, err
	}

	page, err := c.Searcher.SearchArticles(ctx, req.Filters, prefs, req.Options)
	if err != nil {
		return domain.ArticlePage{}, fmt.Errorf("searching articles: %w", err)
	}
	return page, nil
}

// loadPreferences returns nil for anonymous users and for users whose
// preference set is empty, so the search falls through to explicit sorting.
func (c *SearchArticles) loadPreferences(ctx context.Context, userID string) (*domain.PreferenceSet, error) {
	if userID == "" {
		return nil, nil
	}

	prefs, err := c.PreferenceFetcher.GetPreferenceSet(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user preferences: %w", err)
	}
	if prefs.IsEmpty() {
		return nil, nil
	}
	return &prefs, nil
}
