package domain

import (
	"errors"
	"time"
)

var ErrUnknownSource = errors.New("unknown source")
var ErrUnknownCategory = errors.New("unknown category")

// Source is a configured external news provider. The core reads these
// records; they are mutated only by configuration and admin flows.
type Source struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name"`
	Slug            string            `json:"slug"`
	BaseURL         string            `json:"base_url"`
	Active          bool              `json:"active"`
	CategoryMapping map[string]string `json:"category_mapping,omitempty"`
	LastSyncedAt    time.Time         `json:"last_synced_at,omitempty"`
}

// MappedCategory translates a canonical category slug into the provider's
// own category vocabulary, falling back to the slug itself.
func (s Source) MappedCategory(slug string) string {
	if mapped, ok := s.CategoryMapping[slug]; ok {
		return mapped
	}
	return slug
}

// Category is part of a fixed reference set.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
