package archive

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"archiveweb/internal/model"
)

func TestParseQueryDefaults(t *testing.T) {
	q := ParseQuery(url.Values{})
	assert.Equal(t, Query{Page: 1, Category: model.AllCategories, Search: "", SortBy: SortLatest}, q)
}

func TestParseQueryFallbacks(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Query
	}{
		{"all set", "page=3&category=기타&search=ai&sort_by=views", Query{3, "기타", "ai", SortViews}},
		{"zero page", "page=0", Query{1, model.AllCategories, "", SortLatest}},
		{"negative page", "page=-4", Query{1, model.AllCategories, "", SortLatest}},
		{"junk page", "page=abc", Query{1, model.AllCategories, "", SortLatest}},
		{"empty category", "category=", Query{1, model.AllCategories, "", SortLatest}},
		{"unknown sort", "sort_by=random", Query{1, model.AllCategories, "", SortLatest}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := url.ParseQuery(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ParseQuery(v))
		})
	}
}

func TestEncodeHasExactlyFourParamsInOrder(t *testing.T) {
	categories := append([]string{}, model.ListingCategories...)
	searches := []string{"", "딥러닝", "a&b=c", "two words"}

	for _, cat := range categories {
		for _, search := range searches {
			for _, sortOpt := range SortOptions {
				for _, page := range []int{1, 2, 17} {
					q := Query{Page: page, Category: cat, Search: search, SortBy: sortOpt.Value}
					enc := q.Encode()

					v, err := url.ParseQuery(enc)
					require.NoError(t, err)
					assert.Len(t, v, 4, enc)
					for _, key := range []string{"page", "category", "search", "sort_by"} {
						assert.Len(t, v[key], 1, "%s in %s", key, enc)
					}

					assert.Equal(t, q, ParseQuery(v), "round trip of %s", enc)
					assert.True(t, IsCanonical(enc), enc)
					assert.Equal(t, q.Params(20), ParseQuery(v).Params(20), "fresh load must reproduce the request")
				}
			}
		}
	}
}

func TestEncodeOrderAndAllCategory(t *testing.T) {
	q := Query{Page: 2, Category: model.AllCategories, Search: "x y", SortBy: SortTitle}
	assert.Equal(t, "page=2&category=&search=x+y&sort_by=title", q.Encode())
	assert.Equal(t, "/archive?page=2&category=&search=x+y&sort_by=title", q.URL())
	assert.Equal(t, "", q.Params(20).Category)
}

func TestIsCanonical(t *testing.T) {
	assert.False(t, IsCanonical(""))
	assert.False(t, IsCanonical("page=1"))
	assert.False(t, IsCanonical("category=&page=1&search=&sort_by=latest"))
	assert.False(t, IsCanonical("page=1&category=&search=&sort_by=latest&extra=1"))
	assert.True(t, IsCanonical("page=1&category=&search=&sort_by=latest"))
}

func TestTransitions(t *testing.T) {
	base := Query{Page: 4, Category: "기타", Search: "old", SortBy: SortViews}

	t.Run("category resets page", func(t *testing.T) {
		got := base.WithCategory("학술팀 보고서")
		assert.Equal(t, Query{1, "학술팀 보고서", "old", SortViews}, got)
	})

	t.Run("search resets page", func(t *testing.T) {
		got := base.WithSearch("new")
		assert.Equal(t, Query{1, "기타", "new", SortViews}, got)
	})

	t.Run("sort preserves others", func(t *testing.T) {
		got := base.WithSort(SortTitle)
		assert.Equal(t, Query{4, "기타", "old", SortTitle}, got)
	})

	t.Run("page preserves others", func(t *testing.T) {
		got := base.WithPage(9)
		assert.Equal(t, Query{9, "기타", "old", SortViews}, got)
	})
}
