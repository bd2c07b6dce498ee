package controller

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/newsdeck/newsdeck/internal/domain"
)

const defaultPage = 1

func parsePagination(q url.Values) (page, perPage int, err error) {
	page = defaultPage
	perPage = domain.DefaultPerPage

	if q.Has("page") {
		p, err := strconv.ParseInt(q.Get("page"), 10, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("unable to parse page from query: %w", err)
		}
		if p < 1 {
			return 0, 0, fmt.Errorf("invalid page value [%d]", p)
		}
		page = int(p)
	}

	if q.Has("per_page") {
		pp, err := strconv.ParseInt(q.Get("per_page"), 10, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("unable to parse per_page from query: %w", err)
		}
		if pp > domain.MaxPerPage {
			return 0, 0, fmt.Errorf("per_page [%d] exceeds limit [%d]", pp, domain.MaxPerPage)
		}
		if pp < 1 {
			return 0, 0, fmt.Errorf("invalid per_page value [%d]", pp)
		}
		perPage = int(pp)
	}

	return page, perPage, nil
}
