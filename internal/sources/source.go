// Package sources contains the per-provider adapters that fetch raw
// articles and normalize them into canonical records.
package sources

import (
	"context"
	"errors"
	"fmt"

	"github.com/newsdeck/newsdeck/internal/domain"
)

// Sentinel errors wrapped inside SourceError.
var (
	ErrNotConfigured   = errors.New("source is not configured")
	ErrRateLimited     = errors.New("rate limit exceeded")
	ErrInvalidResponse = errors.New("invalid response format")
)

// SourceError marks a provider-side fetch failure: missing configuration,
// rate limiting, malformed payloads, or transport errors after the
// provider-level retries. Jobs treat it as retryable.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source [%s]: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// NewsSource is the capability each provider adapter implements.
type NewsSource interface {
	// FetchArticlesByCategory returns up to limit canonical articles for
	// one canonical category slug.
	FetchArticlesByCategory(ctx context.Context, category string, limit int) ([]domain.Article, error)

	// Identifier returns the source slug the adapter serves.
	Identifier() string

	// IsConfigured reports whether credentials, base URL, and the active
	// flag allow this adapter to be used.
	IsConfigured() bool
}
