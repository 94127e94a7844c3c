package api

import (
	"fmt"
	"net/http"
	"strconv"
)

// paginate slices items into the requested page. The next/previous
// links mirror the page-number pagination style: null when there is no
// such page, otherwise the request URL with an adjusted page parameter.
// A page number past the end of the result set reports !ok and the
// caller answers 404, page 1 of an empty set stays valid.
func paginate[T any](r *http.Request, defaultPageSize int, items []T) (count int, next, previous *string, page []T, ok bool) {
	count = len(items)

	pageSize := queryInt(r, "page_size", defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	pageNumber := queryInt(r, "page", 1)
	if pageNumber < 1 {
		pageNumber = 1
	}

	start := (pageNumber - 1) * pageSize
	end := start + pageSize

	if start >= count {
		if pageNumber > 1 {
			return 0, nil, nil, nil, false
		}
		page = []T{}
	} else {
		if end > count {
			end = count
		}
		page = items[start:end]
	}

	if end < count {
		next = pageLink(r, pageNumber+1)
	}
	if pageNumber > 1 {
		previous = pageLink(r, pageNumber-1)
	}

	return count, next, previous, page, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func pageLink(r *http.Request, page int) *string {
	u := *r.URL
	query := u.Query()
	query.Set("page", strconv.Itoa(page))
	u.RawQuery = query.Encode()

	link := fmt.Sprintf("%s://%s%s", scheme(r), r.Host, u.RequestURI())
	return &link
}

// scheme resolves the external scheme of the request, honoring a
// TLS-terminating proxy in front of the server.
func scheme(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		return forwarded
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
