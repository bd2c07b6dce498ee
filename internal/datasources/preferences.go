package datasources

import (
	"context"

	"github.com/newsdeck/newsdeck/internal/domain"
)

// PreferenceSetGetter loads a user's preferences in the ID form consumed by
// the ranking engine.
type PreferenceSetGetter interface {
	GetPreferenceSet(ctx context.Context, userID string) (domain.PreferenceSet, error)
}

// PreferenceGetter loads a user's preferences in the slug/name form exposed
// by the API.
type PreferenceGetter interface {
	GetPreferences(ctx context.Context, userID string) (domain.PreferenceInput, error)
}

// PreferenceReplacer atomically replaces all of a user's preference rows.
// Unknown source or category slugs fail the whole call without changes.
type PreferenceReplacer interface {
	ReplacePreferences(ctx context.Context, userID string, prefs domain.PreferenceInput) (domain.PreferenceInput, error)
}
