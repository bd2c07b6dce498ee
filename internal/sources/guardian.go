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

var _ NewsSource = (*Guardian)(nil)

// Guardian adapts the Guardian content API.
type Guardian struct {
	f *fetcher
}

func NewGuardian(source domain.Source, creds config.SourceCredentials, cache datasources.Cache) *Guardian {
	return &Guardian{f: newFetcher(source, creds, cache)}
}

func (g *Guardian) Identifier() string {
	return g.f.source.Slug
}

func (g *Guardian) IsConfigured() bool {
	return g.f.configured()
}

type guardianResponse struct {
	Response *struct {
		Results *[]guardianArticle `json:"results"`
	} `json:"response"`
}

type guardianArticle struct {
	ID                 string          `json:"id"`
	WebTitle           string          `json:"webTitle"`
	WebURL             string          `json:"webUrl"`
	WebPublicationDate time.Time       `json:"webPublicationDate"`
	Fields             *guardianFields `json:"fields"`
}

type guardianFields struct {
	TrailText string `json:"trailText"`
	BodyText  string `json:"bodyText"`
	Thumbnail string `json:"thumbnail"`
	Byline    string `json:"byline"`
}

func (g *Guardian) FetchArticlesByCategory(ctx context.Context, category string, limit int) ([]domain.Article, error) {
	if !g.IsConfigured() {
		return nil, g.f.fail(ErrNotConfigured)
	}
	if limit <= 0 {
		limit = defaultFetchLimit
	}

	articles, err := g.f.cachedFetch(ctx, category, func(ctx context.Context) ([]domain.Article, error) {
		if err := g.f.checkRateLimit(ctx); err != nil {
			return nil, err
		}

		query := url.Values{
			"api-key":     {g.f.creds.APIKey},
			"section":     {g.f.mapCategory(category)},
			"show-fields": {"all"},
			"page-size":   {strconv.Itoa(limit)},
			"order-by":    {"newest"},
		}

		var resp guardianResponse
		if err := g.f.getJSON(ctx, "/search", query, nil, &resp); err != nil {
			return nil, err
		}
		if resp.Response == nil || resp.Response.Results == nil {
			return nil, ErrInvalidResponse
		}

		results := *resp.Response.Results
		mapped := make([]domain.Article, 0, len(results))
		for _, raw := range results {
			mapped = append(mapped, g.mapArticle(raw, category))
		}
		return mapped, nil
	})
	if err != nil {
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "failed to fetch articles",
			"source", g.Identifier(),
			"category", category,
			"error", err,
		)
		return nil, g.f.fail(err)
	}

	return articles, nil
}

func (g *Guardian) mapArticle(raw guardianArticle, category string) domain.Article {
	fields := raw.Fields
	if fields == nil {
		fields = &guardianFields{}
	}

	return domain.Article{
		ExternalID:  raw.ID,
		Title:       raw.WebTitle,
		Description: fields.TrailText,
		Content:     fields.BodyText,
		Author:      fields.Byline,
		URL:         raw.WebURL,
		ImageURL:    fields.Thumbnail,
		PublishedAt: raw.WebPublicationDate,
		Source:      g.Identifier(),
		Category:    category,
	}
}
