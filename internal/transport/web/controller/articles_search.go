package controller

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/newsdeck/newsdeck/internal/command"
	"github.com/newsdeck/newsdeck/internal/domain"
)

const queryDateLayout = "2006-01-02"

var validSortValues = []string{
	domain.SortFieldPublishedAt, "-" + domain.SortFieldPublishedAt,
	domain.SortFieldTitle, "-" + domain.SortFieldTitle,
}

type ArticlesSearch struct {
	Search      *command.SearchArticles
	CacheMaxAge time.Duration
}

func (c ArticlesSearch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	filters, fieldErrors := searchFiltersFromQuery(r.URL.Query())
	if len(fieldErrors) > 0 {
		writeValidationError(w, r, fieldErrors)
		return
	}

	options, err := searchOptionsFromQuery(r.URL.Query())
	if err != nil {
		writeValidationError(w, r, map[string][]string{"page": {err.Error()}})
		return
	}

	page, err := c.Search.Execute(ctx, command.SearchArticlesRequest{
		UserID:  domain.UserIDFromContext(ctx),
		Filters: filters,
		Options: options,
	})
	if err != nil {
		logger.ErrorContext(ctx, "unable to search articles", "error", err)
		writeError(w, r, http.StatusInternalServerError, "unable to search articles")
		return
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))
	writeSuccess(w, r, http.StatusOK, page)
}

func searchFiltersFromQuery(q url.Values) (domain.SearchFilters, map[string][]string) {
	filters := domain.SearchFilters{
		Keyword:  q.Get("keyword"),
		Source:   q.Get("source"),
		Category: q.Get("category"),
		Author:   q.Get("author"),
	}

	fieldErrors := map[string][]string{}

	if q.Has("date_from") {
		from, err := time.Parse(queryDateLayout, q.Get("date_from"))
		if err != nil {
			fieldErrors["date_from"] = append(fieldErrors["date_from"], "must be a date in YYYY-MM-DD format")
		}
		filters.DateFrom = from
	}

	if q.Has("date_to") {
		to, err := time.Parse(queryDateLayout, q.Get("date_to"))
		if err != nil {
			fieldErrors["date_to"] = append(fieldErrors["date_to"], "must be a date in YYYY-MM-DD format")
		}
		// The upper bound is inclusive of the whole day.
		filters.DateTo = to.Add(24*time.Hour - time.Second)
	}

	return filters, fieldErrors
}

func searchOptionsFromQuery(q url.Values) (domain.SearchOptions, error) {
	page, perPage, err := parsePagination(q)
	if err != nil {
		return domain.SearchOptions{}, err
	}

	options := domain.SearchOptions{
		SortBy:  "-" + domain.SortFieldPublishedAt,
		Page:    page,
		PerPage: perPage,
	}

	if q.Has("sort_by") {
		sort := q.Get("sort_by")
		if !slices.Contains(validSortValues, sort) {
			// Unrecognised sorts fall back to the default rather than failing
			// the request.
			return options, nil
		}
		options.SortBy = sort
	}

	return options, nil
}
