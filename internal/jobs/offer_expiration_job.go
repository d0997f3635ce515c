package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"jobdispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultOfferSweepSchedule runs the sweep at second zero of every minute.
const DefaultOfferSweepSchedule = "0 * * * * *"

type expireOffersHandler interface {
	Handle(ctx context.Context, cmd commands.ExpireOffersCommand) (int, error)
}

// OfferExpirationJob cancels offers whose deadline has passed.
// A sweep still running when the next one is due is skipped.
type OfferExpirationJob struct {
	handler   expireOffersHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOfferExpirationJob creates the sweeper. An empty schedule means DefaultOfferSweepSchedule
// and a zero batch size means commands.DefaultExpireBatchSize.
func NewOfferExpirationJob(
	handler expireOffersHandler, schedule string, batchSize int, logger *slog.Logger,
) *OfferExpirationJob {
	if schedule == "" {
		schedule = DefaultOfferSweepSchedule
	}
	if batchSize == 0 {
		batchSize = commands.DefaultExpireBatchSize
	}
	return &OfferExpirationJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "offer_expiration_job"),
	}
}

// Start registers the sweep and starts the scheduler.
func (j *OfferExpirationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return fmt.Errorf("invalid offer sweep schedule %q: %w", j.schedule, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Offer expiration job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single sweep and reports how many offers it expired.
func (j *OfferExpirationJob) RunOnce(ctx context.Context) int {
	cmd, err := commands.NewExpireOffersCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Offer expiration job misconfigured", "error", err)
		return 0
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Offer expiration job failed", "expired", expired, "error", err)
		return expired
	}

	if expired > 0 {
		j.logger.InfoContext(ctx, "Expired offers cancelled", "expired", expired)
	}
	return expired
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *OfferExpirationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Offer expiration job stopped")
}
