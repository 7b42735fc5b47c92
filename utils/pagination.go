package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination represents pagination parameters
type Pagination struct {
	Page     int
	Limit    int
	Offset   int
	Total    int64
	LastPage int
}

// NewPagination reads page and limit from query parameters. Limit is
// clamped to MaxPaginationLimit so a client cannot request an unbounded
// result set.
func NewPagination(c *gin.Context) *Pagination {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPaginationLimit)))
	if err != nil || limit < 1 {
		limit = DefaultPaginationLimit
	}
	if limit > MaxPaginationLimit {
		limit = MaxPaginationLimit
	}

	return &Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// SetTotal sets the total number of items and calculates the last page
func (p *Pagination) SetTotal(total int64) {
	p.Total = total
	if p.Limit > 0 {
		p.LastPage = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse struct {
	Data        interface{} `json:"data"`
	TotalItems  int64       `json:"total_items"`
	CurrentPage int         `json:"current_page"`
	LastPage    int         `json:"last_page"`
	PerPage     int         `json:"per_page"`
}

// SendPaginatedResponse sends a paginated response
func SendPaginatedResponse(c *gin.Context, data interface{}, pagination *Pagination) {
	Success(c, "Success", &PaginatedResponse{
		Data:        data,
		TotalItems:  pagination.Total,
		CurrentPage: pagination.Page,
		LastPage:    pagination.LastPage,
		PerPage:     pagination.Limit,
	})
}
