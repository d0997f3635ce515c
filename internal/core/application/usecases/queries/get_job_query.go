package queries

import (
	"errors"

	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/errs"
	"jobdispatch/internal/pkg/guard"
)

var ErrGetJobQueryIsNotConstructed = errors.New(
	"GetJobQuery must be created via NewGetJobQuery constructor",
)

// GetJobQuery reads one job with its distance record.
type GetJobQuery struct {
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetJobQuery(jobID kernel.UUID) (GetJobQuery, error) {
	if err := jobID.Validate(); err != nil {
		return GetJobQuery{}, errs.NewValueIsRequiredErrorWithCause("job_id", err)
	}
	return GetJobQuery{jobID: jobID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetJobQuery) Validate() error {
	return q.guard.Validate(ErrGetJobQueryIsNotConstructed)
}

func (q GetJobQuery) JobID() kernel.UUID {
	return q.jobID
}

// GetJobQueryResponse carries the job and, when one exists, its distance record.
type GetJobQueryResponse struct {
	Job      JobView
	Distance *DistanceView
}
