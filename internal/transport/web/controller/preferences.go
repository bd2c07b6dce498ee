package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/newsdeck/newsdeck/internal/command"
	"github.com/newsdeck/newsdeck/internal/domain"
)

type PreferencesGet struct {
	Command *command.GetPreferences
}

func (c PreferencesGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	prefs, err := c.Command.Execute(ctx, domain.UserIDFromContext(ctx))
	if err != nil {
		logger.ErrorContext(ctx, "unable to fetch preferences", "error", err)
		writeError(w, r, http.StatusInternalServerError, "unable to fetch preferences")
		return
	}

	writeSuccess(w, r, http.StatusOK, prefs)
}

type PreferencesUpdate struct {
	Command *command.UpdatePreferences
}

func (c PreferencesUpdate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var req domain.PreferenceInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	prefs, err := c.Command.Execute(ctx, command.UpdatePreferencesRequest{
		UserID:      domain.UserIDFromContext(ctx),
		Preferences: req,
	})
	if errors.Is(err, domain.ErrUnknownSource) {
		writeValidationError(w, r, map[string][]string{"sources": {"contains an unknown source"}})
		return
	}
	if errors.Is(err, domain.ErrUnknownCategory) {
		writeValidationError(w, r, map[string][]string{"categories": {"contains an unknown category"}})
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "unable to update preferences", "error", err)
		writeError(w, r, http.StatusInternalServerError, "unable to update preferences")
		return
	}

	writeSuccess(w, r, http.StatusOK, prefs)
}
