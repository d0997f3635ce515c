package commands

import (
	"context"
	"log/slog"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/ports"
	"jobdispatch/internal/pkg/errs"
)

// CustomerNotCallCommandHandler moves an Accepted job to NotCarriedOutByCustomer.
type CustomerNotCallCommandHandler struct {
	lifecycle
}

func NewCustomerNotCallCommandHandler(
	uowFactory JobUoWFactory, clock kernel.Clock, publisher ports.JobEventPublisher, logger *slog.Logger,
) CustomerNotCallCommandHandler {
	return CustomerNotCallCommandHandler{
		lifecycle: newLifecycle(uowFactory, clock, publisher, logger),
	}
}

func (h CustomerNotCallCommandHandler) Handle(ctx context.Context, cmd CustomerNotCallCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	return h.transition(ctx, "customer_not_call", cmd.JobID(),
		func(j *job.Job) (bool, error) {
			return true, j.MarkCustomerNotCall(now)
		},
		func(current *job.Job) error {
			return errs.NewInvalidStateError("customer not call", current.Status().String())
		},
	)
}
