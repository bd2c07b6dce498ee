package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsdeck/newsdeck/internal/config"
	"github.com/newsdeck/newsdeck/internal/datasources/memcache"
	"github.com/newsdeck/newsdeck/internal/domain"
)

func guardianSource() domain.Source {
	return domain.Source{
		ID:     1,
		Name:   "The Guardian",
		Slug:   SlugGuardian,
		Active: true,
		CategoryMapping: map[string]string{
			"world-news": "world",
		},
	}
}

func guardianCreds(baseURL string) config.SourceCredentials {
	return config.SourceCredentials{
		APIKey:               "test-key",
		BaseURL:              baseURL,
		MaxRequestsPerMinute: 12,
	}
}

const guardianBody = `{
	"response": {
		"results": [
			{
				"id": "science/2026/mar/01/fusion-milestone",
				"webTitle": "Fusion milestone reached",
				"webUrl": "https://www.theguardian.com/science/2026/mar/01/fusion-milestone",
				"webPublicationDate": "2026-03-01T09:30:00Z",
				"fields": {
					"trailText": "A short summary.",
					"bodyText": "The full article text.",
					"thumbnail": "https://media.guim.co.uk/thumb.jpg",
					"byline": "Jane Doe"
				}
			}
		]
	}
}`

func TestGuardian_FetchArticlesByCategory(t *testing.T) {
	var requests atomic.Int64
	var gotQuery atomic.Value

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		gotQuery.Store(r.URL.Query())
		require.Equal(t, "/search", r.URL.Path)
		_, _ = w.Write([]byte(guardianBody))
	}))
	defer srv.Close()

	g := NewGuardian(guardianSource(), guardianCreds(srv.URL), memcache.New())

	articles, err := g.FetchArticlesByCategory(context.Background(), "world-news", 50)
	require.NoError(t, err)
	require.Len(t, articles, 1)

	assert.Equal(t, domain.Article{
		ExternalID:  "science/2026/mar/01/fusion-milestone",
		Title:       "Fusion milestone reached",
		Description: "A short summary.",
		Content:     "The full article text.",
		Author:      "Jane Doe",
		URL:         "https://www.theguardian.com/science/2026/mar/01/fusion-milestone",
		ImageURL:    "https://media.guim.co.uk/thumb.jpg",
		PublishedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Source:      SlugGuardian,
		Category:    "world-news",
	}, articles[0])

	query := gotQuery.Load().(url.Values)
	assert.Equal(t, "test-key", query["api-key"][0])
	// world-news maps to the provider's own section name.
	assert.Equal(t, "world", query["section"][0])
	assert.Equal(t, "50", query["page-size"][0])
	assert.Equal(t, "newest", query["order-by"][0])

	// A repeat fetch inside the cache TTL never reaches the provider.
	_, err = g.FetchArticlesByCategory(context.Background(), "world-news", 50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), requests.Load())
}

func TestGuardian_FetchArticlesByCategory_NotConfigured(t *testing.T) {
	g := NewGuardian(guardianSource(), config.SourceCredentials{}, memcache.New())

	_, err := g.FetchArticlesByCategory(context.Background(), "science", 10)
	assert.ErrorIs(t, err, ErrNotConfigured)

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, SlugGuardian, srcErr.Source)
}

func TestGuardian_FetchArticlesByCategory_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected": true}`))
	}))
	defer srv.Close()

	g := NewGuardian(guardianSource(), guardianCreds(srv.URL), memcache.New())

	_, err := g.FetchArticlesByCategory(context.Background(), "science", 10)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGuardian_FetchArticlesByCategory_RateLimitFailsFast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(guardianBody))
	}))
	defer srv.Close()

	creds := guardianCreds(srv.URL)
	creds.MaxRequestsPerMinute = 1
	g := NewGuardian(guardianSource(), creds, memcache.New())

	_, err := g.FetchArticlesByCategory(context.Background(), "science", 10)
	require.NoError(t, err)

	// Different category, so the response cache can't serve it; the budget
	// is spent and the fetch fails immediately.
	_, err = g.FetchArticlesByCategory(context.Background(), "technology", 10)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestGuardian_FetchArticlesByCategory_RetriesServerErrors(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(guardianBody))
	}))
	defer srv.Close()

	g := NewGuardian(guardianSource(), guardianCreds(srv.URL), memcache.New())

	articles, err := g.FetchArticlesByCategory(context.Background(), "science", 10)
	require.NoError(t, err)
	assert.Len(t, articles, 1)
	assert.Equal(t, int64(2), requests.Load())
}

func TestGuardian_FetchArticlesByCategory_ClientErrorFailsImmediately(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := NewGuardian(guardianSource(), guardianCreds(srv.URL), memcache.New())

	_, err := g.FetchArticlesByCategory(context.Background(), "science", 10)
	require.Error(t, err)
	assert.Equal(t, int64(1), requests.Load())
}
