package commands

import (
	"context"
	"log/slog"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/ports"
	"jobdispatch/internal/pkg/errs"
)

// AcceptJobCommandHandler resolves concurrent accepts: the write is conditioned on the job
// still being Offered, so of any number of racing translators exactly one wins and the others
// get errs.AlreadyAcceptedError.
//
// Example:
//
//	j, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrAlreadyAccepted):
//	    // someone else was faster
//	case errors.Is(err, errs.ErrOfferExpired):
//	    // deadline passed; job stays Offered until the sweeper cancels it
//	}
type AcceptJobCommandHandler struct {
	lifecycle
	pusher *PushDispatcher
}

func NewAcceptJobCommandHandler(
	uowFactory JobUoWFactory,
	pusher *PushDispatcher,
	clock kernel.Clock,
	publisher ports.JobEventPublisher,
	logger *slog.Logger,
) AcceptJobCommandHandler {
	return AcceptJobCommandHandler{
		lifecycle: newLifecycle(uowFactory, clock, publisher, logger),
		pusher:    pusher,
	}
}

// Handle returns the accepted job and pushes a confirmation to the customer.
func (h AcceptJobCommandHandler) Handle(ctx context.Context, cmd AcceptJobCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	accepted, err := h.transition(ctx, "accept", cmd.JobID(),
		func(j *job.Job) (bool, error) {
			return true, j.Accept(cmd.TranslatorID(), now)
		},
		func(current *job.Job) error {
			if current.Status() == job.Accepted {
				return errs.NewAlreadyAcceptedError(current.ID().String())
			}
			return errs.NewInvalidStateError("accept", current.Status().String())
		},
	)
	if err != nil {
		return nil, err
	}

	h.pusher.Dispatch(ctx, ports.ExplicitSet(accepted.Customer()), payloadFor(ports.NotificationJobAccepted, accepted))
	return accepted, nil
}
