package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/newsdeck/newsdeck/internal/datasources/mocks"
	"github.com/newsdeck/newsdeck/internal/domain"
)

func TestSearchArticles_Execute(t *testing.T) {
	published := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	page := domain.ArticlePage{
		Data: []domain.Article{{ID: 1, Title: "Quantum chip breakthrough", PublishedAt: published}},
		Meta: domain.NewPageMeta(1, 15, 1),
	}

	cases := []struct {
		name      string
		userID    string
		prefs     domain.PreferenceSet
		prefsErr  error
		wantPrefs *domain.PreferenceSet
		wantErr   string
	}{
		{
			name:      "anonymous_search_skips_preference_lookup",
			userID:    "",
			wantPrefs: nil,
		},
		{
			name:      "empty_preference_set_behaves_as_anonymous",
			userID:    "user-1",
			prefs:     domain.PreferenceSet{},
			wantPrefs: nil,
		},
		{
			name:      "preferences_are_passed_to_searcher",
			userID:    "user-1",
			prefs:     domain.PreferenceSet{SourceIDs: []int64{2}},
			wantPrefs: &domain.PreferenceSet{SourceIDs: []int64{2}},
		},
		{
			name:     "preference_lookup_failure_fails_search",
			userID:   "user-1",
			prefsErr: errors.New("connection refused"),
			wantErr:  "loading user preferences",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			searcher := &mocks.ArticleSearcher{}
			prefGetter := &mocks.PreferenceSetGetter{}

			if tc.userID != "" {
				prefGetter.On("GetPreferenceSet", mock.Anything, tc.userID).
					Return(tc.prefs, tc.prefsErr).Once()
			}
			if tc.wantErr == "" {
				searcher.On("SearchArticles", mock.Anything, domain.SearchFilters{}, tc.wantPrefs, mock.Anything).
					Return(page, nil).Once()
			}

			cmd := NewSearchArticles(searcher, prefGetter)
			got, err := cmd.Execute(context.Background(), SearchArticlesRequest{
				UserID:  tc.userID,
				Options: domain.SearchOptions{Page: 1, PerPage: 15},
			})

			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, page, got)
			searcher.AssertExpectations(t)
			prefGetter.AssertExpectations(t)
		})
	}
}
