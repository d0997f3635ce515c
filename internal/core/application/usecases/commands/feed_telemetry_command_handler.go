package commands

import (
	"context"
	"errors"
	"log/slog"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/ports"
	"jobdispatch/internal/pkg/errs"
)

// FeedTelemetryResult is the state after a feed. Distance is nil when the job has no record.
type FeedTelemetryResult struct {
	Job      *job.Job
	Distance *job.Distance
}

// FeedTelemetryCommandHandler writes only the keys present in the feed. The distance upsert
// and the job update share one transaction.
type FeedTelemetryCommandHandler struct {
	lifecycle
}

func NewFeedTelemetryCommandHandler(
	uowFactory JobUoWFactory, clock kernel.Clock, publisher ports.JobEventPublisher, logger *slog.Logger,
) FeedTelemetryCommandHandler {
	return FeedTelemetryCommandHandler{
		lifecycle: newLifecycle(uowFactory, clock, publisher, logger),
	}
}

func (h FeedTelemetryCommandHandler) Handle(ctx context.Context, cmd FeedTelemetryCommand) (FeedTelemetryResult, error) {
	if err := cmd.Validate(); err != nil {
		return FeedTelemetryResult{}, err
	}

	patch := cmd.Patch()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return FeedTelemetryResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.JobRepository()

	aggregate, err := repo.Get(ctx, cmd.JobID())
	if err != nil {
		return FeedTelemetryResult{}, err
	}

	result := FeedTelemetryResult{Job: aggregate}

	if patch.HasDistance() {
		if err = repo.UpsertDistance(ctx, cmd.JobID(), *patch.Distance); err != nil {
			return FeedTelemetryResult{}, err
		}
	}

	if patch.HasJobFields() {
		rows, applyErr := repo.ApplyTelemetry(ctx, cmd.JobID(), patch)
		if applyErr != nil {
			return FeedTelemetryResult{}, applyErr
		}
		if rows == 0 {
			return FeedTelemetryResult{}, errs.NewObjectNotFoundError("job", cmd.JobID().String())
		}
		aggregate.ApplyTelemetry(patch)
	}

	distance, err := repo.GetDistance(ctx, cmd.JobID())
	switch {
	case err == nil:
		result.Distance = &distance
	case !errors.Is(err, errs.ErrObjectNotFound):
		return FeedTelemetryResult{}, err
	}

	if patch.IsEmpty() {
		return result, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return FeedTelemetryResult{}, err
	}

	h.publish(ctx, "telemetry", []*job.Job{aggregate})
	return result, nil
}
