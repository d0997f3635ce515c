package commands

import (
	"context"
	"log/slog"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/ports"
	"jobdispatch/internal/pkg/errs"
)

// ReopenJobCommandHandler clears the assignment and the offer deadline of a job so it can be
// offered again.
type ReopenJobCommandHandler struct {
	lifecycle
}

func NewReopenJobCommandHandler(
	uowFactory JobUoWFactory, clock kernel.Clock, publisher ports.JobEventPublisher, logger *slog.Logger,
) ReopenJobCommandHandler {
	return ReopenJobCommandHandler{
		lifecycle: newLifecycle(uowFactory, clock, publisher, logger),
	}
}

func (h ReopenJobCommandHandler) Handle(ctx context.Context, cmd ReopenJobCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transition(ctx, "reopen", cmd.JobID(),
		func(j *job.Job) (bool, error) {
			return true, j.Reopen()
		},
		func(current *job.Job) error {
			return errs.NewInvalidStateError("reopen", current.Status().String())
		},
	)
}
