package sources

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/newsdeck/newsdeck/internal/config"
	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/domain"
)

var _ NewsSource = (*NYT)(nil)

const (
	nytMaxLimit = 500

	// The NYT budget is ~5 req/min, so on a spent window the adapter
	// blocks until a fresh minute opens instead of failing fast.
	nytRateLimitWait  = 61 * time.Second
	nytRateLimitTries = 3
)

// NYT adapts the New York Times newswire API.
type NYT struct {
	f *fetcher

	// wait is swappable for tests.
	wait time.Duration
}

func NewNYT(source domain.Source, creds config.SourceCredentials, cache datasources.Cache) *NYT {
	return &NYT{f: newFetcher(source, creds, cache), wait: nytRateLimitWait}
}

func (n *NYT) Identifier() string {
	return n.f.source.Slug
}

func (n *NYT) IsConfigured() bool {
	return n.f.configured()
}

type nytResponse struct {
	Status  string        `json:"status"`
	Results *[]nytArticle `json:"results"`
}

type nytArticle struct {
	URI           string          `json:"uri"`
	Title         string          `json:"title"`
	Abstract      string          `json:"abstract"`
	LeadParagraph string          `json:"lead_paragraph"`
	URL           string          `json:"url"`
	Byline        string          `json:"byline"`
	PublishedDate time.Time       `json:"published_date"`
	Multimedia    []nytMultimedia `json:"multimedia"`
}

type nytMultimedia struct {
	URL string `json:"url"`
}

func (n *NYT) FetchArticlesByCategory(ctx context.Context, category string, limit int) ([]domain.Article, error) {
	if !n.IsConfigured() {
		return nil, n.f.fail(ErrNotConfigured)
	}
	if limit <= 0 || limit > nytMaxLimit {
		limit = nytMaxLimit
	}

	articles, err := n.f.cachedFetch(ctx, category, func(ctx context.Context) ([]domain.Article, error) {
		if err := n.f.waitRateLimit(ctx, n.wait, nytRateLimitTries); err != nil {
			return nil, err
		}

		query := url.Values{
			"api-key": {n.f.creds.APIKey},
			"limit":   {strconv.Itoa(limit)},
		}

		var resp nytResponse
		path := "/news/v3/content/all/" + n.f.mapCategory(category) + ".json"
		if err := n.f.getJSON(ctx, path, query, nil, &resp); err != nil {
			return nil, err
		}
		if resp.Status != "OK" || resp.Results == nil {
			return nil, ErrInvalidResponse
		}

		results := *resp.Results
		mapped := make([]domain.Article, 0, len(results))
		for _, raw := range results {
			mapped = append(mapped, n.mapArticle(raw, category))
		}
		return mapped, nil
	})
	if err != nil {
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "failed to fetch articles",
			"source", n.Identifier(),
			"category", category,
			"error", err,
		)
		return nil, n.f.fail(err)
	}

	return articles, nil
}

func (n *NYT) mapArticle(raw nytArticle, category string) domain.Article {
	var imageURL string
	if len(raw.Multimedia) > 0 {
		imageURL = raw.Multimedia[0].URL
	}

	return domain.Article{
		ExternalID:  raw.URI,
		Title:       raw.Title,
		Description: raw.Abstract,
		Content:     raw.LeadParagraph,
		Author:      raw.Byline,
		URL:         raw.URL,
		ImageURL:    imageURL,
		PublishedAt: raw.PublishedDate,
		Source:      n.Identifier(),
		Category:    category,
	}
}
