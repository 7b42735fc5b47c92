package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationFor(t *testing.T, query string) *Pagination {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return NewPagination(c)
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		page   int
		limit  int
		offset int
	}{
		{"defaults", "", 1, DefaultPaginationLimit, 0},
		{"explicit", "page=3&limit=20", 3, 20, 40},
		{"limit clamped to maximum", "limit=5000", 1, MaxPaginationLimit, 0},
		{"invalid page falls back", "page=abc&limit=0", 1, DefaultPaginationLimit, 0},
		{"negative values fall back", "page=-2&limit=-5", 1, DefaultPaginationLimit, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paginationFor(t, tt.query)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.offset, p.Offset)
		})
	}
}

func TestPaginationSetTotal(t *testing.T) {
	p := &Pagination{Page: 1, Limit: 10}
	p.SetTotal(25)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, 3, p.LastPage)

	p.SetTotal(0)
	assert.Equal(t, 0, p.LastPage)
}
