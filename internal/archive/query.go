// Package archive keeps the listing's query state, URL and fetched results consistent.
package archive

import (
	"net/url"
	"strconv"
	"strings"

	"archiveweb/internal/apiclient"
	"archiveweb/internal/model"
)

// Path is the listing route every query URL points at.
const Path = "/archive"

// Sort orders accepted by the backend.
const (
	SortLatest    = "latest"
	SortViews     = "views"
	SortDownloads = "downloads"
	SortTitle     = "title"
)

// SortOption is a selectable entry of the sort control.
type SortOption struct {
	Value string
	Label string
}

var SortOptions = []SortOption{
	{Value: SortLatest, Label: "최신순"},
	{Value: SortViews, Label: "조회수순"},
	{Value: SortDownloads, Label: "다운로드순"},
	{Value: SortTitle, Label: "제목순"},
}

// ValidSort reports whether s is one of the backend sort orders.
func ValidSort(s string) bool {
	for _, o := range SortOptions {
		if o.Value == s {
			return true
		}
	}
	return false
}

// Query is the listing state round-tripped through the URL.
type Query struct {
	Page     int
	Category string
	Search   string
	SortBy   string
}

// DefaultQuery is the state of a bare /archive visit.
func DefaultQuery() Query {
	return Query{Page: 1, Category: model.AllCategories, SortBy: SortLatest}
}

// ParseQuery reads page, category, search and sort_by, falling back to defaults for missing or invalid values.
func ParseQuery(v url.Values) Query {
	q := DefaultQuery()
	if p, err := strconv.Atoi(v.Get("page")); err == nil && p >= 1 {
		q.Page = p
	}
	if c := v.Get("category"); c != "" {
		q.Category = c
	}
	q.Search = v.Get("search")
	if s := v.Get("sort_by"); ValidSort(s) {
		q.SortBy = s
	}
	return q
}

// WithCategory selects a category and returns to the first page.
func (q Query) WithCategory(category string) Query {
	if category == "" {
		category = model.AllCategories
	}
	q.Category = category
	q.Page = 1
	return q
}

// WithSearch commits a search term and returns to the first page.
func (q Query) WithSearch(search string) Query {
	q.Search = search
	q.Page = 1
	return q
}

func (q Query) WithSort(sortBy string) Query {
	q.SortBy = sortBy
	return q
}

func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

// apiCategory is the category sent to the backend; the all-categories entry means no filter.
func (q Query) apiCategory() string {
	if q.Category == model.AllCategories {
		return ""
	}
	return q.Category
}

// Encode returns the query string with exactly page, category, search and sort_by, in that order.
func (q Query) Encode() string {
	var b strings.Builder
	b.WriteString("page=")
	b.WriteString(strconv.Itoa(q.Page))
	b.WriteString("&category=")
	b.WriteString(url.QueryEscape(q.apiCategory()))
	b.WriteString("&search=")
	b.WriteString(url.QueryEscape(q.Search))
	b.WriteString("&sort_by=")
	b.WriteString(url.QueryEscape(q.SortBy))
	return b.String()
}

// URL is the listing address for q.
func (q Query) URL() string {
	return Path + "?" + q.Encode()
}

// Params converts q into a backend list request.
func (q Query) Params(perPage int) apiclient.ListParams {
	return apiclient.ListParams{
		Page:     q.Page,
		PerPage:  perPage,
		Category: q.apiCategory(),
		Search:   q.Search,
		SortBy:   q.SortBy,
	}
}

// IsCanonical reports whether rawQuery is already the encoded form of the state it describes.
func IsCanonical(rawQuery string) bool {
	v, err := url.ParseQuery(rawQuery)
	if err != nil {
		return false
	}
	return ParseQuery(v).Encode() == rawQuery
}
