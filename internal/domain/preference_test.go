package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreferenceSet_Tier(t *testing.T) {
	prefs := PreferenceSet{
		SourceIDs:   []int64{1},
		CategoryIDs: []int64{10},
		Authors:     []string{"Jane Smith"},
	}

	cases := []struct {
		name       string
		prefs      PreferenceSet
		sourceID   int64
		categoryID int64
		author     string
		expected   int
	}{
		{
			name:       "all_three_match",
			prefs:      prefs,
			sourceID:   1,
			categoryID: 10,
			author:     "Jane Smith",
			expected:   1,
		},
		{
			name:       "source_and_category_match",
			prefs:      prefs,
			sourceID:   1,
			categoryID: 10,
			author:     "Someone Else",
			expected:   2,
		},
		{
			name:       "source_and_author_match",
			prefs:      prefs,
			sourceID:   1,
			categoryID: 99,
			author:     "Jane Smith",
			expected:   2,
		},
		{
			name:       "category_and_author_match",
			prefs:      prefs,
			sourceID:   99,
			categoryID: 10,
			author:     "Jane Smith",
			expected:   2,
		},
		{
			name:       "source_only",
			prefs:      prefs,
			sourceID:   1,
			categoryID: 99,
			author:     "Someone Else",
			expected:   3,
		},
		{
			name:       "no_match",
			prefs:      prefs,
			sourceID:   99,
			categoryID: 99,
			author:     "Someone Else",
			expected:   4,
		},
		{
			name: "empty_source_dimension_never_matches",
			prefs: PreferenceSet{
				CategoryIDs: []int64{10},
				Authors:     []string{"Jane Smith"},
			},
			sourceID:   1,
			categoryID: 10,
			author:     "Jane Smith",
			expected:   2,
		},
		{
			name:       "empty_set_is_always_tier_four",
			prefs:      PreferenceSet{},
			sourceID:   1,
			categoryID: 10,
			author:     "Jane Smith",
			expected:   4,
		},
		{
			name: "empty_article_author_never_matches",
			prefs: PreferenceSet{
				Authors: []string{""},
			},
			sourceID:   99,
			categoryID: 99,
			author:     "",
			expected:   4,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.prefs.Tier(tc.sourceID, tc.categoryID, tc.author))
		})
	}
}

func TestNewPageMeta(t *testing.T) {
	cases := []struct {
		name     string
		page     int
		perPage  int
		total    int64
		expected PageMeta
	}{
		{
			name:     "exact_pages",
			page:     1,
			perPage:  10,
			total:    30,
			expected: PageMeta{CurrentPage: 1, PerPage: 10, Total: 30, LastPage: 3},
		},
		{
			name:     "partial_last_page",
			page:     2,
			perPage:  10,
			total:    31,
			expected: PageMeta{CurrentPage: 2, PerPage: 10, Total: 31, LastPage: 4},
		},
		{
			name:     "empty_result_set",
			page:     1,
			perPage:  15,
			total:    0,
			expected: PageMeta{CurrentPage: 1, PerPage: 15, Total: 0, LastPage: 1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NewPageMeta(tc.page, tc.perPage, tc.total))
		})
	}
}
