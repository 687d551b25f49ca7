package shared

import (
	"net/http"
	"strconv"
	"strings"

	"hrconsole/internal/upstream"
)

// ParseEmployeeQuery reads the paginated employee list parameters. The
// cache layer additionally forces page back to 1 whenever the search term
// changes from the previous fetch.
func ParseEmployeeQuery(r *http.Request, defaultLimit, maxLimit int) upstream.EmployeeQuery {
	query := upstream.EmployeeQuery{Page: 1, Limit: defaultLimit}
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			query.Page = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			query.Limit = v
		}
	}
	if maxLimit > 0 && query.Limit > maxLimit {
		query.Limit = maxLimit
	}
	query.Search = strings.TrimSpace(r.URL.Query().Get("search"))
	return query
}
