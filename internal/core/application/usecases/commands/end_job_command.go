package commands

import (
	"errors"

	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/guard"
)

var ErrEndJobCommandIsNotConstructed = errors.New(
	"EndJobCommand must be created via NewEndJobCommand constructor",
)

// EndJobCommand marks an Accepted job Completed.
type EndJobCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

func NewEndJobCommand(jobID kernel.UUID) (EndJobCommand, error) {
	if err := requireID("job_id", jobID); err != nil {
		return EndJobCommand{}, err
	}

	return EndJobCommand{
		jobID: jobID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c EndJobCommand) Validate() error {
	return c.guard.Validate(ErrEndJobCommandIsNotConstructed)
}

func (c EndJobCommand) JobID() kernel.UUID {
	return c.jobID
}
