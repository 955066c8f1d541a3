package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/msomdec/newsdesk/internal/domain"
)

// Default page sizes when the query omits limit.
const (
	defaultUserLimit    = domain.MaxPageLimit
	defaultArticleLimit = 10
)

// parsePage reads skip and limit from the query string. Bounds are left to
// domain.Page.Validate.
func parsePage(r *http.Request, defaultLimit int) (domain.Page, error) {
	page := domain.Page{Limit: defaultLimit}
	q := r.URL.Query()

	if v := q.Get("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return page, fmt.Errorf("%w: skip must be an integer", domain.ErrInvalidInput)
		}
		page.Skip = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return page, fmt.Errorf("%w: limit must be an integer", domain.ErrInvalidInput)
		}
		page.Limit = n
	}
	return page, page.Validate()
}

// parseArticleFilter reads q, status and tag. Tags may repeat or be comma
// separated: ?tag=1&tag=2 and ?tag=1,2 are equivalent.
func parseArticleFilter(r *http.Request, withStatus bool) (domain.ArticleFilter, error) {
	q := r.URL.Query()
	filter := domain.ArticleFilter{Title: strings.TrimSpace(q.Get("q"))}

	if withStatus {
		if v := q.Get("status"); v != "" {
			id, err := parseInt64(v)
			if err != nil {
				return filter, fmt.Errorf("%w: status must be an integer", domain.ErrInvalidInput)
			}
			filter.StatusID = &id
		}
	}

	for _, raw := range q["tag"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := parseInt64(part)
			if err != nil {
				return filter, fmt.Errorf("%w: tag must be an integer", domain.ErrInvalidInput)
			}
			filter.TagIDs = append(filter.TagIDs, id)
		}
	}
	return filter, nil
}

// pathID parses the {id} path value. A malformed id cannot name a record,
// so it is reported as not found.
func pathID(r *http.Request) (int64, error) {
	id, err := parseInt64(r.PathValue("id"))
	if err != nil || id <= 0 {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

func parseInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}
