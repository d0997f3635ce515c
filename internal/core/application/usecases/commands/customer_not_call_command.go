package commands

import (
	"errors"

	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/guard"
)

var ErrCustomerNotCallCommandIsNotConstructed = errors.New(
	"CustomerNotCallCommand must be created via NewCustomerNotCallCommand constructor",
)

// CustomerNotCallCommand closes an Accepted job the customer did not attend.
type CustomerNotCallCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCustomerNotCallCommand(jobID kernel.UUID) (CustomerNotCallCommand, error) {
	if err := requireID("job_id", jobID); err != nil {
		return CustomerNotCallCommand{}, err
	}

	return CustomerNotCallCommand{
		jobID: jobID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c CustomerNotCallCommand) Validate() error {
	return c.guard.Validate(ErrCustomerNotCallCommandIsNotConstructed)
}

func (c CustomerNotCallCommand) JobID() kernel.UUID {
	return c.jobID
}
