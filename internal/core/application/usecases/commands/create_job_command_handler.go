package commands

import (
	"context"
	"log/slog"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/ports"
)

// CreateJobCommandHandler persists a new Open job stamped with the current time.
type CreateJobCommandHandler struct {
	lifecycle
}

func NewCreateJobCommandHandler(
	uowFactory JobUoWFactory, clock kernel.Clock, publisher ports.JobEventPublisher, logger *slog.Logger,
) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		lifecycle: newLifecycle(uowFactory, clock, publisher, logger),
	}
}

// Handle fails with errs.ValueIsInvalidError when the due time is before now.
func (h CreateJobCommandHandler) Handle(ctx context.Context, cmd CreateJobCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := job.NewJob(kernel.NewUUID(), cmd.CustomerID(), h.clock.Now(), cmd.DueAt())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.JobRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publish(ctx, "create", uow.ChangedJobs())
	return aggregate, nil
}
