package commands

import (
	"context"
	"log/slog"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/ports"
	"jobdispatch/internal/pkg/errs"
)

// CancelJobCommandHandler is idempotent: cancelling a Cancelled job, or losing the write to
// a concurrent cancel, succeeds without writing.
type CancelJobCommandHandler struct {
	lifecycle
}

func NewCancelJobCommandHandler(
	uowFactory JobUoWFactory, clock kernel.Clock, publisher ports.JobEventPublisher, logger *slog.Logger,
) CancelJobCommandHandler {
	return CancelJobCommandHandler{
		lifecycle: newLifecycle(uowFactory, clock, publisher, logger),
	}
}

func (h CancelJobCommandHandler) Handle(ctx context.Context, cmd CancelJobCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transition(ctx, "cancel", cmd.JobID(),
		func(j *job.Job) (bool, error) {
			return j.Cancel(cmd.ActorID())
		},
		func(current *job.Job) error {
			if current.Status() == job.Cancelled {
				return nil
			}
			return errs.NewInvalidStateError("cancel", current.Status().String())
		},
	)
}
