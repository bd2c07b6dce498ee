package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsdeck/newsdeck/internal/config"
	"github.com/newsdeck/newsdeck/internal/datasources/memcache"
	"github.com/newsdeck/newsdeck/internal/domain"
)

func newsAPISource() domain.Source {
	return domain.Source{ID: 2, Name: "NewsAPI", Slug: SlugNewsAPI, Active: true}
}

func TestDeriveExternalID(t *testing.T) {
	t.Parallel()

	// Known MD5 vector.
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", DeriveExternalID("hello"))

	// Same URL always derives the same ID; different URLs never collide in
	// practice.
	assert.Equal(t,
		DeriveExternalID("https://example.com/story"),
		DeriveExternalID("https://example.com/story"))
	assert.NotEqual(t,
		DeriveExternalID("https://example.com/story"),
		DeriveExternalID("https://example.com/other"))
}

func TestNewsAPI_FetchArticlesByCategory(t *testing.T) {
	var gotAPIKey, gotCategory string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/top-headlines", r.URL.Path)
		gotAPIKey = r.Header.Get("X-Api-Key")
		gotCategory = r.URL.Query().Get("category")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{
					"title": "Chip shortage easing",
					"description": "Summary.",
					"content": "Body.",
					"url": "https://example.com/chip-shortage",
					"urlToImage": "https://example.com/chip.jpg",
					"author": "John Roe",
					"publishedAt": "2026-03-02T08:00:00Z"
				}
			]
		}`))
	}))
	defer srv.Close()

	n := NewNewsAPI(newsAPISource(), config.SourceCredentials{
		APIKey:               "newsapi-key",
		BaseURL:              srv.URL,
		MaxRequestsPerMinute: 100,
	}, memcache.New())

	articles, err := n.FetchArticlesByCategory(context.Background(), "technology", 10)
	require.NoError(t, err)
	require.Len(t, articles, 1)

	assert.Equal(t, "newsapi-key", gotAPIKey)
	assert.Equal(t, "technology", gotCategory)

	got := articles[0]
	assert.Equal(t, DeriveExternalID("https://example.com/chip-shortage"), got.ExternalID)
	assert.Equal(t, "Chip shortage easing", got.Title)
	assert.Equal(t, "John Roe", got.Author)
	assert.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), got.PublishedAt)
	assert.Equal(t, SlugNewsAPI, got.Source)
	assert.Equal(t, "technology", got.Category)
}

func TestNewsAPI_FetchArticlesByCategory_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "error", "code": "apiKeyInvalid"}`))
	}))
	defer srv.Close()

	n := NewNewsAPI(newsAPISource(), config.SourceCredentials{
		APIKey:               "bad-key",
		BaseURL:              srv.URL,
		MaxRequestsPerMinute: 100,
	}, memcache.New())

	_, err := n.FetchArticlesByCategory(context.Background(), "technology", 10)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
