package commands

import (
	"errors"

	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/guard"
)

var ErrCancelJobCommandIsNotConstructed = errors.New(
	"CancelJobCommand must be created via NewCancelJobCommand constructor",
)

// CancelJobCommand cancels an Offered or Accepted job on behalf of an actor.
type CancelJobCommand struct { //nolint:recvcheck //using for validation
	jobID   kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelJobCommand(jobID, actorID kernel.UUID) (CancelJobCommand, error) {
	cmd := CancelJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		requireID("job_id", jobID),
		requireID("actor_id", actorID),
	); err != nil {
		return CancelJobCommand{}, err
	}

	cmd.jobID = jobID
	cmd.actorID = actorID
	return cmd, nil
}

func (c CancelJobCommand) Validate() error {
	return c.guard.Validate(ErrCancelJobCommandIsNotConstructed)
}

func (c CancelJobCommand) JobID() kernel.UUID {
	return c.jobID
}

func (c CancelJobCommand) ActorID() kernel.UUID {
	return c.actorID
}
