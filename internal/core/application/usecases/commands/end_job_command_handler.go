package commands

import (
	"context"
	"log/slog"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/ports"
	"jobdispatch/internal/pkg/errs"
)

// EndJobCommandHandler completes an Accepted job and stamps its completion time.
type EndJobCommandHandler struct {
	lifecycle
}

func NewEndJobCommandHandler(
	uowFactory JobUoWFactory, clock kernel.Clock, publisher ports.JobEventPublisher, logger *slog.Logger,
) EndJobCommandHandler {
	return EndJobCommandHandler{
		lifecycle: newLifecycle(uowFactory, clock, publisher, logger),
	}
}

func (h EndJobCommandHandler) Handle(ctx context.Context, cmd EndJobCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	return h.transition(ctx, "end", cmd.JobID(),
		func(j *job.Job) (bool, error) {
			return true, j.End(now)
		},
		func(current *job.Job) error {
			return errs.NewInvalidStateError("end", current.Status().String())
		},
	)
}
