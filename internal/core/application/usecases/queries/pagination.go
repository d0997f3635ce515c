package queries

import (
	"jobdispatch/internal/pkg/errs"
)

const (
	DefaultPageSize = 15
	MaxPageSize     = 100
	// MaxPage keeps (page-1)*page_size far from integer overflow.
	MaxPage = 10000
)

// Pagination is a 1-based page request.
type Pagination struct {
	Page     int
	PageSize int
}

// NewPagination fills zero values with page 1 and DefaultPageSize.
func NewPagination(page, pageSize int) (Pagination, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 || page > MaxPage {
		return Pagination{}, errs.NewValueIsOutOfRangeError("page", page, 1, MaxPage)
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return Pagination{}, errs.NewValueIsOutOfRangeError("page_size", pageSize, 1, MaxPageSize)
	}
	return Pagination{Page: page, PageSize: pageSize}, nil
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// JobPage is one page of a listing together with the total number of matches.
type JobPage struct {
	Items    []JobView
	Total    int64
	Page     int
	PageSize int
}
