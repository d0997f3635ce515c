package commands

import (
	"context"
	"log/slog"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/domain/services"
	"jobdispatch/internal/core/ports"
	"jobdispatch/internal/pkg/errs"
)

// OfferJobCommandHandler moves an Open job to Offered with a deadline from the expiry
// evaluator, then fans the offer out over push in the background.
type OfferJobCommandHandler struct {
	lifecycle
	evaluator services.ExpiryEvaluator
	pusher    *PushDispatcher
}

func NewOfferJobCommandHandler(
	uowFactory JobUoWFactory,
	evaluator services.ExpiryEvaluator,
	pusher *PushDispatcher,
	clock kernel.Clock,
	publisher ports.JobEventPublisher,
	logger *slog.Logger,
) OfferJobCommandHandler {
	return OfferJobCommandHandler{
		lifecycle: newLifecycle(uowFactory, clock, publisher, logger),
		evaluator: evaluator,
		pusher:    pusher,
	}
}

// Handle returns the offered job. A push failure never fails the offer.
func (h OfferJobCommandHandler) Handle(ctx context.Context, cmd OfferJobCommand) (*job.Job, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	offered, err := h.transition(ctx, "offer", cmd.JobID(),
		func(j *job.Job) (bool, error) {
			expiresAt := h.evaluator.WillExpireAt(j.DueAt(), j.CreatedAt())
			return true, j.Offer(expiresAt)
		},
		func(current *job.Job) error {
			return errs.NewInvalidStateError("offer", current.Status().String())
		},
	)
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "job offered",
		"job_id", offered.ID().String(),
		"expiry_tier", h.evaluator.TierFor(offered.DueAt(), offered.CreatedAt()),
	)

	h.pusher.Dispatch(ctx, cmd.Targets(), payloadFor(ports.NotificationJobOffered, offered))
	return offered, nil
}
