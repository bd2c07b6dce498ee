package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/newsdeck/newsdeck/internal/config"
	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/domain"
)

const (
	requestTimeout    = 30 * time.Second
	transportRetries  = 3
	transportBackoff  = 100 * time.Millisecond
	responseCacheTTL  = 15 * time.Minute
	rateLimitWindow   = time.Minute
	userAgent         = "newsdeck news aggregator"
	defaultFetchLimit = 100
)

// fetcher carries the behavior shared by every adapter: the HTTP client
// with transport retries, the short-TTL response cache, and the per-source
// request budget. Adapters compose it rather than inherit from it.
type fetcher struct {
	source domain.Source
	creds  config.SourceCredentials
	cache  datasources.Cache
	client *http.Client
}

func newFetcher(source domain.Source, creds config.SourceCredentials, cache datasources.Cache) *fetcher {
	return &fetcher{
		source: source,
		creds:  creds,
		cache:  cache,
		client: &http.Client{Timeout: requestTimeout},
	}
}

func (f *fetcher) configured() bool {
	return f.creds.APIKey != "" && f.baseURL() != "" && f.source.Active
}

func (f *fetcher) baseURL() string {
	if f.creds.BaseURL != "" {
		return f.creds.BaseURL
	}
	return f.source.BaseURL
}

func (f *fetcher) mapCategory(slug string) string {
	return f.source.MappedCategory(slug)
}

// fail wraps err in a SourceError attributed to this adapter's source.
func (f *fetcher) fail(err error) error {
	return &SourceError{Source: f.source.Slug, Err: err}
}

func (f *fetcher) cacheKey(category string) string {
	return fmt.Sprintf("%s_articles_%s", f.source.Slug, category)
}

func (f *fetcher) rateLimitKey() string {
	return fmt.Sprintf("rate_limit_%s", f.source.Slug)
}

// cachedFetch returns cached results for (source, category) when fresh,
// otherwise runs fill and caches its result. Errors are never cached.
func (f *fetcher) cachedFetch(
	ctx context.Context,
	category string,
	fill func(ctx context.Context) ([]domain.Article, error),
) ([]domain.Article, error) {
	key := f.cacheKey(category)

	if raw, ok, err := f.cache.Get(ctx, key); err == nil && ok {
		var cached []domain.Article
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	articles, err := fill(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(articles); err == nil {
		if err := f.cache.Set(ctx, key, raw, responseCacheTTL); err != nil {
			logger := domain.LoggerFromContext(ctx)
			logger.WarnContext(ctx, "unable to cache provider response",
				"source", f.source.Slug,
				"category", category,
				"error", err,
			)
		}
	}

	return articles, nil
}

// checkRateLimit consumes one request from this source's per-minute budget,
// failing fast when the budget is spent. The counter increment is atomic,
// so two concurrent fetches cannot both slip under the cap.
func (f *fetcher) checkRateLimit(ctx context.Context) error {
	count, err := f.cache.Increment(ctx, f.rateLimitKey(), rateLimitWindow)
	if err != nil {
		return fmt.Errorf("tracking rate limit: %w", err)
	}
	if count > int64(f.creds.MaxRequestsPerMinute) {
		return ErrRateLimited
	}
	return nil
}

// waitRateLimit is the blocking variant used by low-budget providers: on a
// spent budget it sleeps past the end of the window and tries again, up to
// maxAttempts, so a 61s wait always lands in a fresh minute.
func (f *fetcher) waitRateLimit(ctx context.Context, wait time.Duration, maxAttempts int) error {
	for attempt := 1; ; attempt++ {
		count, err := f.cache.Increment(ctx, f.rateLimitKey(), rateLimitWindow)
		if err != nil {
			return fmt.Errorf("tracking rate limit: %w", err)
		}
		if count <= int64(f.creds.MaxRequestsPerMinute) {
			return nil
		}

		if attempt == maxAttempts {
			return fmt.Errorf("%w after %d attempts", ErrRateLimited, attempt)
		}

		logger := domain.LoggerFromContext(ctx)
		logger.InfoContext(ctx, "rate limit reached, waiting for next window",
			"source", f.source.Slug,
			"attempt", attempt,
			"max_attempts", maxAttempts,
		)

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// getJSON issues a GET against the provider and decodes the JSON body.
// Transport errors and 5xx responses are retried with a short backoff;
// other non-2xx statuses fail immediately.
func (f *fetcher) getJSON(ctx context.Context, path string, query url.Values, header http.Header, v any) error {
	requestURL := f.baseURL() + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= transportRetries; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(transportBackoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		body, retryable, err := f.doRequest(ctx, requestURL, header)
		if err != nil {
			lastErr = err
			if retryable {
				continue
			}
			return err
		}

		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}
		return nil
	}

	return fmt.Errorf("request failed after %d attempts: %w", transportRetries, lastErr)
}

func (f *fetcher) doRequest(ctx context.Context, requestURL string, header http.Header) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	for name, values := range header {
		for _, value := range values {
			req.Header.Set(name, value)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("performing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, true, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, false, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	return body, false, nil
}
