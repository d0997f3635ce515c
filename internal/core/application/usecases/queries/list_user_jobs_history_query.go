package queries

import (
	"errors"

	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/errs"
	"jobdispatch/internal/pkg/guard"
)

var ErrListUserJobsHistoryQueryIsNotConstructed = errors.New(
	"ListUserJobsHistoryQuery must be created via NewListUserJobsHistoryQuery constructor",
)

// ListUserJobsHistoryQuery pages through the finished (Completed or Cancelled) jobs of a user.
type ListUserJobsHistoryQuery struct {
	userID     kernel.UUID
	pagination Pagination

	guard guard.ConstructorGuard
}

func NewListUserJobsHistoryQuery(userID kernel.UUID, pagination Pagination) (ListUserJobsHistoryQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListUserJobsHistoryQuery{}, errs.NewValueIsRequiredErrorWithCause("user_id", err)
	}
	return ListUserJobsHistoryQuery{
		userID:     userID,
		pagination: pagination,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListUserJobsHistoryQuery) Validate() error {
	return q.guard.Validate(ErrListUserJobsHistoryQueryIsNotConstructed)
}

func (q ListUserJobsHistoryQuery) UserID() kernel.UUID {
	return q.userID
}

func (q ListUserJobsHistoryQuery) Pagination() Pagination {
	return q.pagination
}
