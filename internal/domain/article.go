package domain

import (
	"time"
)

// Article is the canonical article record, independent of provider shapes.
// Adapters produce it with Source and Category slugs set; the store resolves
// those to row IDs, and the read path fills both back in.
type Article struct {
	ID          int64     `json:"id,omitempty"`
	ExternalID  string    `json:"external_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content,omitempty"`
	Author      string    `json:"author,omitempty"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"image_url,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`

	SourceID   int64 `json:"-"`
	CategoryID int64 `json:"-"`
}

// SearchFilters are AND-combined; zero values mean "not filtered".
type SearchFilters struct {
	Keyword  string
	Source   string
	Category string
	Author   string
	DateFrom time.Time
	DateTo   time.Time
}

// SearchOptions control ordering and pagination of a search.
// SortBy is a field name optionally prefixed with '-' for descending;
// anything outside AllowedSortFields falls back to published_at descending.
type SearchOptions struct {
	SortBy  string
	Page    int
	PerPage int
}

const (
	SortFieldPublishedAt = "published_at"
	SortFieldTitle       = "title"

	DefaultPerPage = 15
	MaxPerPage     = 100
)

var AllowedSortFields = []string{SortFieldPublishedAt, SortFieldTitle}

// ArticlePage is one page of search results with pagination metadata.
type ArticlePage struct {
	Data []Article `json:"data"`
	Meta PageMeta  `json:"meta"`
}

type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

// NewPageMeta computes pagination metadata; LastPage is at least 1 so an
// empty result set still reports a valid page range.
func NewPageMeta(page, perPage int, total int64) PageMeta {
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return PageMeta{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
}

// IngestStats aggregates one store run for a single source. It is reported
// through logs only, never persisted.
type IngestStats struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
	Total   int `json:"total"`
}
