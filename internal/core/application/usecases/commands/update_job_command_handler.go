package commands

import (
	"context"
	"log/slog"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/ports"
	"jobdispatch/internal/pkg/errs"
)

// UpdateJobCommandHandler writes only the columns present in the patch, so concurrent
// telemetry feeds and lifecycle transitions on other columns are kept. A due time change is
// additionally conditioned on the status the job was read with.
type UpdateJobCommandHandler struct {
	lifecycle
}

func NewUpdateJobCommandHandler(
	uowFactory JobUoWFactory, clock kernel.Clock, publisher ports.JobEventPublisher, logger *slog.Logger,
) UpdateJobCommandHandler {
	return UpdateJobCommandHandler{
		lifecycle: newLifecycle(uowFactory, clock, publisher, logger),
	}
}

func (h UpdateJobCommandHandler) Handle(ctx context.Context, cmd UpdateJobCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	patch := cmd.Patch()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.JobRepository()

	aggregate, err := repo.Get(ctx, cmd.JobID())
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return aggregate, nil
	}

	previous := aggregate.Status()
	if err = aggregate.Update(patch); err != nil {
		return nil, err
	}

	var expected *job.Status
	if patch.ChangesSchedule() {
		expected = &previous
	}

	rows, err := repo.ApplyUpdate(ctx, cmd.JobID(), patch, expected)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		current, getErr := repo.Get(ctx, cmd.JobID())
		if getErr != nil {
			return nil, getErr
		}
		h.logger.InfoContext(ctx, "conditional write lost",
			"operation", "update",
			"job_id", cmd.JobID().String(),
			"expected_status", previous.String(),
			"current_status", current.Status().String(),
		)
		return nil, errs.NewInvalidStateError("update due_at", current.Status().String())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publish(ctx, "update", []*job.Job{aggregate})
	return aggregate, nil
}
