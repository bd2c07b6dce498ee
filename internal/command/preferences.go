package command

import (
	"context"
	"fmt"

	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/domain"
)

// GetPreferences returns a user's saved preferences in slug form.
type GetPreferences struct {
	Fetcher datasources.PreferenceGetter
}

func (c *GetPreferences) Execute(ctx context.Context, userID string) (domain.PreferenceInput, error) {
	prefs, err := c.Fetcher.GetPreferences(ctx, userID)
	if err != nil {
		return domain.PreferenceInput{}, fmt.Errorf("getting preferences: %w", err)
	}
	return prefs, nil
}

// UpdatePreferencesRequest replaces a user's preferences wholesale; omitted
// dimensions are cleared.
type UpdatePreferencesRequest struct {
	UserID      string
	Preferences domain.PreferenceInput
}

type UpdatePreferences struct {
	Replacer datasources.PreferenceReplacer
}

func (c *UpdatePreferences) Execute(ctx context.Context, req UpdatePreferencesRequest) (domain.PreferenceInput, error) {
	prefs, err := c.Replacer.ReplacePreferences(ctx, req.UserID, req.Preferences)
	if err != nil {
		return domain.PreferenceInput{}, fmt.Errorf("updating preferences: %w", err)
	}
	return prefs, nil
}
