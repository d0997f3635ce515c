package commands

import (
	"errors"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/guard"
)

var ErrUpdateJobCommandIsNotConstructed = errors.New(
	"UpdateJobCommand must be created via NewUpdateJobCommand constructor",
)

// UpdateJobCommand edits the booking fields of a job. Only the fields set in the patch are written.
type UpdateJobCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID
	patch job.UpdatePatch

	guard guard.ConstructorGuard
}

func NewUpdateJobCommand(jobID kernel.UUID, patch job.UpdatePatch) (UpdateJobCommand, error) {
	if err := requireID("job_id", jobID); err != nil {
		return UpdateJobCommand{}, err
	}

	return UpdateJobCommand{
		jobID: jobID,
		patch: patch,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateJobCommand) Validate() error {
	return c.guard.Validate(ErrUpdateJobCommandIsNotConstructed)
}

func (c UpdateJobCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c UpdateJobCommand) Patch() job.UpdatePatch {
	return c.patch
}
