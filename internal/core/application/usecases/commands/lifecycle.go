package commands

import (
	"context"
	"log/slog"

	"jobdispatch/internal/core/domain/model/job"
	"jobdispatch/internal/core/domain/model/kernel"
	"jobdispatch/internal/core/ports"
)

// mutation applies one domain transition. changed == false means there is nothing to write.
type mutation func(j *job.Job) (changed bool, err error)

// conflictResolver decides what a lost compare-and-swap means for the caller. current is the
// job as re-read after the failed write. Returning nil turns the conflict into a no-op success.
type conflictResolver func(current *job.Job) error

// lifecycle holds what every state-changing handler shares.
type lifecycle struct {
	uowFactory JobUoWFactory
	clock      kernel.Clock
	publisher  ports.JobEventPublisher
	logger     *slog.Logger
}

func newLifecycle(
	uowFactory JobUoWFactory, clock kernel.Clock, publisher ports.JobEventPublisher, logger *slog.Logger,
) lifecycle {
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return lifecycle{
		uowFactory: uowFactory,
		clock:      clock,
		publisher:  publisher,
		logger:     logger.With("component", "commands"),
	}
}

// transition reads the job, applies mutate and writes the result conditioned on the status
// the job was read with, all in one transaction. The returned job is the written state, or
// the current state when the mutation was a no-op.
func (l lifecycle) transition(
	ctx context.Context, operation string, id kernel.UUID, mutate mutation, onConflict conflictResolver,
) (*job.Job, error) {
	uow := l.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.JobRepository()

	aggregate, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := aggregate.Status()

	changed, err := mutate(aggregate)
	if err != nil {
		return nil, err
	}
	if !changed {
		return aggregate, nil
	}

	rows, err := repo.UpdateIfStatus(ctx, aggregate, previous)
	if err != nil {
		return nil, err
	}

	if rows == 0 {
		current, getErr := repo.Get(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		l.logger.InfoContext(ctx, "conditional write lost",
			"operation", operation,
			"job_id", id.String(),
			"expected_status", previous.String(),
			"current_status", current.Status().String(),
		)
		if err = onConflict(current); err != nil {
			return nil, err
		}
		return current, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	l.publish(ctx, operation, uow.ChangedJobs())
	return aggregate, nil
}

// publish emits one change event per written job. Failures are logged; the write stands.
func (l lifecycle) publish(ctx context.Context, operation string, changed []*job.Job) {
	if l.publisher == nil {
		return
	}

	for _, j := range changed {
		event := ports.JobChangedEvent{
			JobID:        j.ID(),
			Operation:    operation,
			Status:       j.Status().String(),
			TranslatorID: j.Translator(),
			OccurredAt:   l.clock.Now(),
		}
		if err := l.publisher.PublishJobChanged(ctx, event); err != nil {
			l.logger.ErrorContext(ctx, "failed to publish job change",
				"operation", operation,
				"job_id", j.ID().String(),
				"error", err,
			)
		}
	}
}

// payloadFor derives the notification payload from the job as it is now.
func payloadFor(kind ports.NotificationKind, j *job.Job) ports.NotificationPayload {
	return ports.NotificationPayload{
		Kind:       kind,
		JobID:      j.ID(),
		CustomerID: j.Customer(),
		Status:     j.Status().String(),
		DueAt:      j.DueAt(),
		ExpiresAt:  j.ExpiresAt(),
		Message:    messageFor(kind),
	}
}

func messageFor(kind ports.NotificationKind) string {
	switch kind {
	case ports.NotificationJobOffered, ports.NotificationJobResent:
		return "A new translation job is available"
	case ports.NotificationJobAccepted:
		return "Your translation job has been accepted"
	default:
		return ""
	}
}
