package utils

import (
	"math"
	"net/http"
	"strconv"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	// MaxPage keeps Skip within int64.
	MaxPage = math.MaxInt32
)

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

// Skip is the number of documents before the page.
func (p Page) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// ParsePage reads ?page= and ?limit=. Missing or invalid values fall back
// to the first page of DefaultPageLimit items; limit is capped at
// MaxPageLimit and page at MaxPage.
func ParsePage(r *http.Request) Page {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	return Page{Page: page, Limit: limit}
}
