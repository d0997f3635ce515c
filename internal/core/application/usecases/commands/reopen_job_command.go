package commands

import (
	"errors"

	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/guard"
)

var ErrReopenJobCommandIsNotConstructed = errors.New(
	"ReopenJobCommand must be created via NewReopenJobCommand constructor",
)

// ReopenJobCommand returns an Offered, Accepted or Cancelled job to Open.
type ReopenJobCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

func NewReopenJobCommand(jobID kernel.UUID) (ReopenJobCommand, error) {
	if err := requireID("job_id", jobID); err != nil {
		return ReopenJobCommand{}, err
	}

	return ReopenJobCommand{
		jobID: jobID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c ReopenJobCommand) Validate() error {
	return c.guard.Validate(ErrReopenJobCommandIsNotConstructed)
}

func (c ReopenJobCommand) JobID() kernel.UUID {
	return c.jobID
}
