package datasources

import (
	"context"

	"github.com/newsdeck/newsdeck/internal/domain"
)

// SourceGetter resolves a source record by its slug.
// Returns domain.ErrUnknownSource when no such source exists.
type SourceGetter interface {
	GetSourceBySlug(ctx context.Context, slug string) (domain.Source, error)
}

// ActiveSourceLister lists sources available for ingestion.
type ActiveSourceLister interface {
	ListActiveSources(ctx context.Context) ([]domain.Source, error)
}

// CategoryLister returns the fixed category reference set.
type CategoryLister interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// SourceCatalog combines the read operations on reference data.
type SourceCatalog interface {
	SourceGetter
	ActiveSourceLister
	CategoryLister
}
