package commands

import (
	"context"
	"log/slog"
	"time"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/ports"
)

// ExpireOffersCommandHandler moves overdue offers from Offered to Cancelled. Each write is
// conditioned on the job still being Offered; a job accepted or cancelled in the meantime is
// skipped silently.
type ExpireOffersCommandHandler struct {
	lifecycle
}

func NewExpireOffersCommandHandler(
	uowFactory JobUoWFactory, clock kernel.Clock, publisher ports.JobEventPublisher, logger *slog.Logger,
) ExpireOffersCommandHandler {
	return ExpireOffersCommandHandler{
		lifecycle: newLifecycle(uowFactory, clock, publisher, logger),
	}
}

// Handle returns how many offers it expired.
func (h ExpireOffersCommandHandler) Handle(ctx context.Context, cmd ExpireOffersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.clock.Now()
	total := 0

	for {
		expired, listed, err := h.expireBatch(ctx, now, cmd.BatchSize())
		total += expired
		if err != nil {
			return total, err
		}
		if listed < cmd.BatchSize() || expired == 0 {
			return total, nil
		}
	}
}

func (h ExpireOffersCommandHandler) expireBatch(ctx context.Context, now time.Time, limit int) (expired, listed int, err error) {
	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.JobRepository()

	offers, err := repo.ListExpiredOffers(ctx, now, limit)
	if err != nil {
		return 0, 0, err
	}

	for _, offer := range offers {
		if err = offer.Expire(now); err != nil {
			h.logger.WarnContext(ctx, "skipping offer that cannot expire",
				"job_id", offer.ID().String(),
				"error", err,
			)
			continue
		}

		rows, updateErr := repo.UpdateIfStatus(ctx, offer, job.Offered)
		if updateErr != nil {
			return 0, len(offers), updateErr
		}
		if rows == 1 {
			expired++
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, len(offers), err
	}

	h.publish(ctx, "expire", uow.ChangedJobs())
	return expired, len(offers), nil
}
