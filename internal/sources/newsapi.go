package sources

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/newsdeck/newsdeck/internal/config"
	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/domain"
)

var _ NewsSource = (*NewsAPI)(nil)

const newsAPIMaxPageSize = 100

// NewsAPI adapts the newsapi.org top-headlines API. The provider has no
// stable article identifiers, so the external ID is derived from the URL.
type NewsAPI struct {
	f *fetcher
}

func NewNewsAPI(source domain.Source, creds config.SourceCredentials, cache datasources.Cache) *NewsAPI {
	return &NewsAPI{f: newFetcher(source, creds, cache)}
}

func (n *NewsAPI) Identifier() string {
	return n.f.source.Slug
}

func (n *NewsAPI) IsConfigured() bool {
	return n.f.configured()
}

type newsAPIResponse struct {
	Status   string            `json:"status"`
	Articles *[]newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"publishedAt"`
}

func (n *NewsAPI) FetchArticlesByCategory(ctx context.Context, category string, limit int) ([]domain.Article, error) {
	if !n.IsConfigured() {
		return nil, n.f.fail(ErrNotConfigured)
	}
	if limit <= 0 || limit > newsAPIMaxPageSize {
		limit = newsAPIMaxPageSize
	}

	articles, err := n.f.cachedFetch(ctx, category, func(ctx context.Context) ([]domain.Article, error) {
		if err := n.f.checkRateLimit(ctx); err != nil {
			return nil, err
		}

		query := url.Values{
			"category": {n.f.mapCategory(category)},
			"pageSize": {strconv.Itoa(limit)},
			"language": {"en"},
		}
		header := http.Header{"X-Api-Key": {n.f.creds.APIKey}}

		var resp newsAPIResponse
		if err := n.f.getJSON(ctx, "/top-headlines", query, header, &resp); err != nil {
			return nil, err
		}
		if resp.Status != "ok" || resp.Articles == nil {
			return nil, ErrInvalidResponse
		}

		results := *resp.Articles
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

func (n *NewsAPI) mapArticle(raw newsAPIArticle, category string) domain.Article {
	return domain.Article{
		ExternalID:  DeriveExternalID(raw.URL),
		Title:       raw.Title,
		Description: raw.Description,
		Content:     raw.Content,
		Author:      raw.Author,
		URL:         raw.URL,
		ImageURL:    raw.URLToImage,
		PublishedAt: raw.PublishedAt,
		Source:      n.Identifier(),
		Category:    category,
	}
}

// DeriveExternalID produces a deterministic identifier for providers that
// don't supply one, so repeated fetches of the same article converge on a
// single stored row.
func DeriveExternalID(articleURL string) string {
	sum := md5.Sum([]byte(articleURL))
	return hex.EncodeToString(sum[:])
}
