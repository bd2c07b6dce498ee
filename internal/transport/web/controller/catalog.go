package controller

import (
	"net/http"

	"github.com/newsdeck/newsdeck/internal/datasources"
	"github.com/newsdeck/newsdeck/internal/domain"
)

type sourceResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type SourcesList struct {
	Lister datasources.ActiveSourceLister
}

func (c SourcesList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	sources, err := c.Lister.ListActiveSources(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "unable to list sources", "error", err)
		writeError(w, r, http.StatusInternalServerError, "unable to list sources")
		return
	}

	out := make([]sourceResponse, 0, len(sources))
	for _, source := range sources {
		out = append(out, sourceResponse{Name: source.Name, Slug: source.Slug})
	}

	writeSuccess(w, r, http.StatusOK, out)
}

type categoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoriesList struct {
	Lister datasources.CategoryLister
}

func (c CategoriesList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	categories, err := c.Lister.ListCategories(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "unable to list categories", "error", err)
		writeError(w, r, http.StatusInternalServerError, "unable to list categories")
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, categoryResponse{Name: category.Name, Slug: category.Slug})
	}

	writeSuccess(w, r, http.StatusOK, out)
}
