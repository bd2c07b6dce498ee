package domain

// Preference is one saved user preference row. Exactly one of SourceID,
// CategoryID, or Author is set; the store enforces this.
type Preference struct {
	ID         int64
	UserID     string
	SourceID   int64
	CategoryID int64
	Author     string
}

// PreferenceSet is a user's preferences grouped by dimension, as consumed
// by the ranking engine. A dimension with no entries never matches: a user
// with no preferred authors gets no author-match credit on any article.
type PreferenceSet struct {
	SourceIDs   []int64
	CategoryIDs []int64
	Authors     []string
}

func (p PreferenceSet) IsEmpty() bool {
	return len(p.SourceIDs) == 0 && len(p.CategoryIDs) == 0 && len(p.Authors) == 0
}

// Tier buckets an article into a ranking tier by how many preference
// dimensions it matches: 1 for all three, 2 for any two, 3 for one, 4 for
// none. Lower tiers sort first; published_at descending breaks ties.
func (p PreferenceSet) Tier(sourceID, categoryID int64, author string) int {
	matches := 0
	if containsInt64(p.SourceIDs, sourceID) {
		matches++
	}
	if containsInt64(p.CategoryIDs, categoryID) {
		matches++
	}
	if containsString(p.Authors, author) {
		matches++
	}

	switch matches {
	case 3:
		return 1
	case 2:
		return 2
	case 1:
		return 3
	default:
		return 4
	}
}

func containsInt64(haystack []int64, needle int64) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	if needle == "" {
		return false
	}
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

// PreferenceInput is the slug/name form accepted by the preferences API.
type PreferenceInput struct {
	Sources    []string `json:"sources"`
	Categories []string `json:"categories"`
	Authors    []string `json:"authors"`
}
