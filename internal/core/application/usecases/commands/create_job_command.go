package commands

import (
	"errors"
	"time"

	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/pkg/errs"
	"jobdispatch/internal/pkg/guard"
)

var ErrCreateJobCommandIsNotConstructed = errors.New(
	"CreateJobCommand must be created via NewCreateJobCommand constructor",
)

// CreateJobCommand registers a new Open job for a customer.
//
// Example:
//
//	cmd, err := NewCreateJobCommand(customerID, dueAt)
//	if err != nil {
//	    return fmt.Errorf("invalid job data: %w", err)
//	}
//	j, err := handler.Handle(ctx, cmd)
type CreateJobCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	dueAt      time.Time

	guard guard.ConstructorGuard
}

func NewCreateJobCommand(customerID kernel.UUID, dueAt time.Time) (CreateJobCommand, error) {
	cmd := CreateJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setDueAt(dueAt),
	); err != nil {
		return CreateJobCommand{}, err
	}

	return cmd, nil
}

func (c CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}

func (c CreateJobCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateJobCommand) DueAt() time.Time {
	return c.dueAt
}

func (c *CreateJobCommand) setCustomerID(id kernel.UUID) error {
	if err := requireID("customer_id", id); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *CreateJobCommand) setDueAt(dueAt time.Time) error {
	if dueAt.IsZero() {
		return errs.NewValueIsRequiredError("due_at")
	}
	c.dueAt = dueAt.UTC()
	return nil
}
