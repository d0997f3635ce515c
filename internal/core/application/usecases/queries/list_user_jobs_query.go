package queries

import (
	"errors"

	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/errs"
	"jobdispatch/internal/pkg/guard"
)

var ErrListUserJobsQueryIsNotConstructed = errors.New(
	"ListUserJobsQuery must be created via NewListUserJobsQuery constructor",
)

// ListUserJobsQuery lists the jobs still in progress where the user is the customer or the
// assigned translator.
type ListUserJobsQuery struct {
	userID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListUserJobsQuery(userID kernel.UUID) (ListUserJobsQuery, error) {
	if err := userID.Validate(); err != nil {
		return ListUserJobsQuery{}, errs.NewValueIsRequiredErrorWithCause("user_id", err)
	}
	return ListUserJobsQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListUserJobsQuery) Validate() error {
	return q.guard.Validate(ErrListUserJobsQueryIsNotConstructed)
}

func (q ListUserJobsQuery) UserID() kernel.UUID {
	return q.userID
}
