package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Paginate(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int64
		want  Pagination
	}{
		{
			name: "empty", page: 1, limit: 12, total: 0,
			want: Pagination{CurrentPage: 1, TotalPages: 0, Total: 0, HasNext: false, HasPrev: false},
		},
		{
			name: "single_partial_page", page: 1, limit: 12, total: 5,
			want: Pagination{CurrentPage: 1, TotalPages: 1, Total: 5, HasNext: false, HasPrev: false},
		},
		{
			name: "exact_boundary", page: 2, limit: 10, total: 20,
			want: Pagination{CurrentPage: 2, TotalPages: 2, Total: 20, HasNext: false, HasPrev: true},
		},
		{
			name: "middle_page", page: 2, limit: 10, total: 35,
			want: Pagination{CurrentPage: 2, TotalPages: 4, Total: 35, HasNext: true, HasPrev: true},
		},
		{
			name: "past_the_end", page: 9, limit: 10, total: 35,
			want: Pagination{CurrentPage: 9, TotalPages: 4, Total: 35, HasNext: false, HasPrev: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, paginate(tc.page, tc.limit, tc.total))
		})
	}
}

func Test_PageParams(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/books", nil)
		page, limit, skip := pageParams(r, 12)
		assert.Equal(t, 1, page)
		assert.Equal(t, 12, limit)
		assert.Equal(t, int64(0), skip)
	})

	t.Run("explicit_page_and_limit", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/books?page=3&limit=5", nil)
		page, limit, skip := pageParams(r, 12)
		assert.Equal(t, 3, page)
		assert.Equal(t, 5, limit)
		assert.Equal(t, int64(10), skip)
	})

	t.Run("garbage_falls_back_to_defaults", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/api/books?page=abc&limit=-2", nil)
		page, limit, skip := pageParams(r, 10)
		assert.Equal(t, 1, page)
		assert.Equal(t, 10, limit)
		assert.Equal(t, int64(0), skip)
	})
}
