package queries

import (
	"errors"

	"jobdispatch/internal/pkg/guard"
)

var ErrListAllJobsQueryIsNotConstructed = errors.New(
	"ListAllJobsQuery must be created via NewListAllJobsQuery constructor",
)

// ListAllJobsQuery pages through every job. Only roles allowed to list all jobs may run it.
type ListAllJobsQuery struct {
	pagination Pagination

	guard guard.ConstructorGuard
}

func NewListAllJobsQuery(pagination Pagination) ListAllJobsQuery {
	return ListAllJobsQuery{pagination: pagination, guard: guard.NewConstructorGuard()}
}

func (q ListAllJobsQuery) Validate() error {
	return q.guard.Validate(ErrListAllJobsQueryIsNotConstructed)
}

func (q ListAllJobsQuery) Pagination() Pagination {
	return q.pagination
}
